// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - ChannelStore: tracked channel persistence
//   - VideoStore: video, transcript segment and keyword search persistence
//   - EntityStore: brand/product/sponsor persistence
//   - MentionStore: mention rows and aggregates
//   - ExtractionCacheStore: per-video LLM analysis cache
//   - SearchLogStore: query log for autocomplete
//   - DashboardCacheStore: precomputed dashboard payloads
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.clipsight/data/clipsight.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
