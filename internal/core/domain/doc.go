// Package domain defines the core business entities for clipsight.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Channel: A tracked creator channel
//   - Video: An ingested video with its LLM analysis
//   - TranscriptSegment: A timed slice of transcript text
//   - Entity / Mention: Brands, products and sponsors surfaced from transcripts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
