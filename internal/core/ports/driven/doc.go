// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): storage, transcript providers, the YouTube
// metadata client, the LLM service and configuration.
//
// Services in internal/core/services depend on these interfaces; concrete
// implementations live under internal/adapters/driven.
package driven
