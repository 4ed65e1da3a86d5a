package driven

import "context"

// SchemaInitializer creates the database schema at a given path. Running
// it against a missing file produces a complete, empty database; running
// it against an up-to-date database is a no-op.
type SchemaInitializer interface {
	// Init ensures the schema at dbPath exists, applying any pending
	// migrations.
	Init(ctx context.Context, dbPath string) error
}
