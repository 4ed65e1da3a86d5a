package sqlite

import (
	"context"
	"fmt"

	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
)

// Ensure Initializer implements the interface.
var _ driven.SchemaInitializer = (*Initializer)(nil)

// Initializer creates the database schema at an explicit path by opening
// a store there and closing it again. Opening runs all pending
// migrations, so a missing file becomes a complete, empty database and
// an up-to-date file is left alone.
type Initializer struct{}

// NewInitializer creates a schema initializer.
func NewInitializer() *Initializer {
	return &Initializer{}
}

// Init ensures the schema at dbPath exists.
func (i *Initializer) Init(ctx context.Context, dbPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store, err := openAtPath(dbPath)
	if err != nil {
		return fmt.Errorf("initialising schema at %s: %w", dbPath, err)
	}
	return store.Close()
}
