package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
	"github.com/clipsight-labs/clipsight-cli/internal/core/ports/driven"
)

// searchLogStore implements driven.SearchLogStore.
type searchLogStore struct {
	store *Store
}

var _ driven.SearchLogStore = (*searchLogStore)(nil)

// Record logs one use of a query, incrementing its count.
func (s *searchLogStore) Record(ctx context.Context, query string, queryType domain.QueryType, at time.Time) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.ErrInvalidInput
	}
	if !queryType.IsValid() {
		queryType = domain.QueryFree
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO search_queries (query, type, count, last_used)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(query) DO UPDATE SET
			count = search_queries.count + 1,
			type = excluded.type,
			last_used = excluded.last_used
	`, query, string(queryType), at)
	if err != nil {
		return fmt.Errorf("recording query: %w", err)
	}
	return nil
}

// Suggest returns logged queries with the given prefix, most used first.
func (s *searchLogStore) Suggest(ctx context.Context, prefix string, limit int) ([]domain.SearchQuery, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, query, type, count, last_used
		FROM search_queries
		WHERE query LIKE ? ESCAPE '\'
		ORDER BY count DESC, last_used DESC
		LIMIT ?
	`, escapeLike(strings.TrimSpace(prefix))+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("querying suggestions: %w", err)
	}
	defer rows.Close()
	return collectQueries(rows)
}

// Trending returns the most used queries overall.
func (s *searchLogStore) Trending(ctx context.Context, limit int) ([]domain.SearchQuery, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, query, type, count, last_used
		FROM search_queries
		ORDER BY count DESC, last_used DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying trending: %w", err)
	}
	defer rows.Close()
	return collectQueries(rows)
}

func collectQueries(rows *sql.Rows) ([]domain.SearchQuery, error) {
	var queries []domain.SearchQuery //nolint:prealloc // size unknown from query
	for rows.Next() {
		var q domain.SearchQuery
		var queryType string
		var lastUsed sql.NullTime
		if err := rows.Scan(&q.ID, &q.Query, &queryType, &q.Count, &lastUsed); err != nil {
			return nil, fmt.Errorf("scanning query: %w", err)
		}
		q.Type = domain.QueryType(queryType)
		if lastUsed.Valid {
			q.LastUsed = lastUsed.Time
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating queries: %w", err)
	}
	return queries, nil
}
