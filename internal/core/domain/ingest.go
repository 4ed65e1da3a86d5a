package domain

// IngestError records a per-video failure during an ingest run.
// A run carries on past these; they are reported in the summary.
type IngestError struct {
	// VideoID identifies the video that failed.
	VideoID string

	// Stage names the pipeline stage that failed (e.g. "transcript", "analysis").
	Stage string

	// Err is the underlying failure.
	Err error
}

func (e IngestError) Error() string {
	return e.Stage + " failed for video " + e.VideoID + ": " + e.Err.Error()
}

func (e IngestError) Unwrap() error { return e.Err }
