package domain

import "time"

// ProductRef names a product and, when explicitly stated, its brand.
type ProductRef struct {
	// Brand is the owning brand, or empty when the transcript left it unclear.
	Brand string `json:"brand"`

	// Product is the product name as spoken.
	Product string `json:"product"`
}

// ExtractionResult holds the entity names surfaced from one transcript.
type ExtractionResult struct {
	Brands   []string     `json:"brands"`
	Products []ProductRef `json:"products"`
	Sponsors []string     `json:"sponsors"`
}

// IsEmpty reports whether the extraction surfaced nothing at all.
func (r ExtractionResult) IsEmpty() bool {
	return len(r.Brands) == 0 && len(r.Products) == 0 && len(r.Sponsors) == 0
}

// VideoAnalysis is the full LLM analysis of one transcript.
type VideoAnalysis struct {
	// Summary is a short factual summary of the transcript.
	Summary string `json:"summary"`

	// Sentiment is the overall tone: Positive, Neutral or Negative.
	Sentiment string `json:"sentiment"`

	// Topics are general discussion themes.
	Topics []string `json:"topics"`

	Brands   []string     `json:"brands"`
	Products []ProductRef `json:"products"`
	Sponsors []string     `json:"sponsors"`
}

// Extraction returns just the entity portion of the analysis.
func (a VideoAnalysis) Extraction() ExtractionResult {
	return ExtractionResult{
		Brands:   a.Brands,
		Products: a.Products,
		Sponsors: a.Sponsors,
	}
}

// ExtractionCacheEntry is a stored per-video extraction, keyed by the
// transcript hash so the LLM is only re-run when the transcript changes.
type ExtractionCacheEntry struct {
	VideoID        string
	TranscriptHash string
	Analysis       VideoAnalysis
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Matches reports whether the cached entry is valid for the given hash.
func (e ExtractionCacheEntry) Matches(transcriptHash string) bool {
	return e.TranscriptHash != "" && e.TranscriptHash == transcriptHash
}
