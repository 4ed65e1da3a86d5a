package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoTranscript indicates no transcript could be obtained for a video.
	// Ingestion treats this as a per-video skip, never a pipeline failure.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrIngestInProgress indicates an ingest run is already active for a channel.
	ErrIngestInProgress = errors.New("ingest in progress")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Features requiring analysis (extraction, answers) are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrMetadataUnavailable indicates the YouTube metadata client is not
	// configured. Channel ingestion is disabled without it.
	ErrMetadataUnavailable = errors.New("metadata client unavailable")

	// ErrRateLimited indicates an upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrDatabaseBusy indicates the database file could not be removed,
	// typically because another process holds it open.
	ErrDatabaseBusy = errors.New("database file could not be removed")
)
