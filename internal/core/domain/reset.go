package domain

// ResetOptions configures a reset run. Paths are explicit so the operation
// can be exercised against temporary directories.
type ResetOptions struct {
	// CacheDir is the transcript cache directory. Never modified; its
	// presence is only observed.
	CacheDir string

	// DatabasePath is the single database file to remove and recreate.
	DatabasePath string

	// CheckCache controls the cache probe. True probes and reports;
	// false skips the probe entirely. The outcome of the probe never
	// fails the operation either way.
	CheckCache bool
}

// ResetState describes the derived-data store before or after a reset.
type ResetState string

// The reset state machine has exactly two states; Reset moves from either
// of them to ResetStateReady.
const (
	ResetStateNeedsReset ResetState = "needs-reset"
	ResetStateReady      ResetState = "ready"
)

// ResetReport summarises what a reset run did.
type ResetReport struct {
	// CacheChecked is true when the cache probe ran.
	CacheChecked bool

	// CacheFound is true when the probe ran and found the cache directory.
	// Cached transcripts survive the reset and are reused at zero
	// re-fetch cost.
	CacheFound bool

	// DatabaseRemoved is true when an existing database file was deleted.
	// False means there was nothing to remove.
	DatabaseRemoved bool

	// SchemaInitialised is true once the schema initialiser has produced
	// a valid, empty schema.
	SchemaInitialised bool
}

// State returns the post-run state described by the report.
func (r ResetReport) State() ResetState {
	if r.SchemaInitialised {
		return ResetStateReady
	}
	return ResetStateNeedsReset
}

// ChannelResetReport summarises a scoped, per-channel reset: derived rows
// for one channel are removed so the next ingest sees its videos as new.
// The database file itself and the transcript cache are untouched.
type ChannelResetReport struct {
	ChannelID        string
	VideosRemoved    int
	SegmentsRemoved  int
	MentionsRemoved  int
	CacheRowsRemoved int
}
