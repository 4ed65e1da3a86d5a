// Package mcp provides an MCP (Model Context Protocol) server adapter for
// ClipSight. It lets AI assistants search ingested transcripts and pull
// brand and channel insights.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
