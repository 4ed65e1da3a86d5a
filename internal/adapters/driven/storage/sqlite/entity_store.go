package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
)

// entityStore implements driven.EntityStore.
type entityStore struct {
	store *Store
}

var _ driven.EntityStore = (*entityStore)(nil)

const entityColumns = "id, kind, name, normalised_name, category, brand_id, meta, created_at"

// Upsert inserts the entity if its normalised name is new for its kind
// and returns the row ID either way. The first-seen display casing wins.
func (s *entityStore) Upsert(ctx context.Context, entity domain.Entity) (int64, error) {
	if err := entity.Validate(); err != nil {
		return 0, err
	}
	if entity.NormalisedName == "" {
		entity.NormalisedName = domain.NormaliseName(entity.Name)
	}

	meta, err := marshalMeta(entity.Meta)
	if err != nil {
		return 0, err
	}
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO entities (kind, name, normalised_name, category, brand_id, meta, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, normalised_name) DO UPDATE SET
			category = CASE WHEN excluded.category != '' THEN excluded.category ELSE entities.category END,
			brand_id = CASE WHEN excluded.brand_id != 0 THEN excluded.brand_id ELSE entities.brand_id END
	`, string(entity.Kind), entity.Name, entity.NormalisedName, entity.Category,
		entity.BrandID, meta, entity.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("upserting entity: %w", err)
	}

	var id int64
	err = s.store.db.QueryRowContext(ctx,
		"SELECT id FROM entities WHERE kind = ? AND normalised_name = ?",
		string(entity.Kind), entity.NormalisedName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reading entity id: %w", err)
	}
	return id, nil
}

// GetByName looks an entity up by kind and normalised name.
func (s *entityStore) GetByName(ctx context.Context, kind domain.EntityKind, normalised string) (*domain.Entity, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+entityColumns+" FROM entities WHERE kind = ? AND normalised_name = ?",
		string(kind), normalised)
	return scanEntityRow(row)
}

// Get retrieves an entity by row ID.
func (s *entityStore) Get(ctx context.Context, id int64) (*domain.Entity, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+entityColumns+" FROM entities WHERE id = ?", id)
	return scanEntityRow(row)
}

// ListByKind returns entities of one kind, alphabetical by name.
func (s *entityStore) ListByKind(ctx context.Context, kind domain.EntityKind) ([]domain.Entity, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+entityColumns+" FROM entities WHERE kind = ? ORDER BY name", string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	var entities []domain.Entity //nolint:prealloc // size unknown from query
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		entities = append(entities, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}
	return entities, nil
}

// SuggestNames returns display names with the given prefix, alphabetical.
func (s *entityStore) SuggestNames(ctx context.Context, kind domain.EntityKind, prefix string, limit int) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT name FROM entities
		WHERE kind = ? AND normalised_name LIKE ? ESCAPE '\'
		ORDER BY name LIMIT ?
	`, string(kind), escapeLike(domain.NormaliseName(prefix))+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("querying entity names: %w", err)
	}
	defer rows.Close()

	var names []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning entity name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity names: %w", err)
	}
	return names, nil
}

func scanEntityRow(row rowScanner) (*domain.Entity, error) {
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning entity: %w", err)
	}
	return entity, nil
}

func scanEntity(row rowScanner) (*domain.Entity, error) {
	var entity domain.Entity
	var kind, meta string
	var createdAt sql.NullTime
	if err := row.Scan(&entity.ID, &kind, &entity.Name, &entity.NormalisedName,
		&entity.Category, &entity.BrandID, &meta, &createdAt); err != nil {
		return nil, err
	}
	entity.Kind = domain.EntityKind(kind)
	if meta != "" && meta != "{}" {
		if err := json.Unmarshal([]byte(meta), &entity.Meta); err != nil {
			return nil, fmt.Errorf("unmarshaling meta: %w", err)
		}
	}
	if createdAt.Valid {
		entity.CreatedAt = createdAt.Time
	}
	return &entity, nil
}

func marshalMeta(meta map[string]string) (string, error) {
	if meta == nil {
		return "{}", nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshalling meta: %w", err)
	}
	return string(data), nil
}
