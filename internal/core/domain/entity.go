package domain

import (
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// EntityKind classifies a named entity surfaced from a transcript.
type EntityKind string

// Available entity kinds.
const (
	// EntityBrand is a brand mentioned in a transcript.
	EntityBrand EntityKind = "brand"

	// EntityProduct is a product, optionally tied to a brand.
	EntityProduct EntityKind = "product"

	// EntitySponsor is an explicit video sponsor.
	EntitySponsor EntityKind = "sponsor"
)

// IsValid returns true if the entity kind is recognised.
func (k EntityKind) IsValid() bool {
	switch k {
	case EntityBrand, EntityProduct, EntitySponsor:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k EntityKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k EntityKind) Description() string {
	switch k {
	case EntityBrand:
		return "Brand"
	case EntityProduct:
		return "Product"
	case EntitySponsor:
		return "Sponsor"
	default:
		return unknownDescription
	}
}

// Entity is a brand, product or sponsor known to the store.
// Names are kept exactly as they appeared in a transcript; the normalised
// form is used for deduplication and lookups.
type Entity struct {
	// ID is the store-assigned row identifier.
	ID int64

	// Kind classifies the entity.
	Kind EntityKind

	// Name is the display name, cased as first seen.
	Name string

	// NormalisedName is the lowercased, trimmed dedupe key.
	NormalisedName string

	// Category is a free-form grouping (e.g. "makeup", "sponsor").
	Category string

	// BrandID links a product to its brand, when stated. Zero means unknown.
	BrandID int64

	// Meta carries provider extras as opaque key/values.
	Meta map[string]string

	CreatedAt time.Time
}

// Validate checks the entity has the minimum required fields.
func (e Entity) Validate() error {
	if e.Name == "" || !e.Kind.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// NormaliseName produces the dedupe key for an entity name.
func NormaliseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Mention records one video's references to an entity.
type Mention struct {
	// ID is a generated identifier for the mention row.
	ID string

	// EntityID references the mentioned entity.
	EntityID int64

	// Kind mirrors the entity's kind for cheap filtering.
	Kind EntityKind

	// VideoID and ChannelID locate the mention.
	VideoID   string
	ChannelID string

	// Count is how many times the entity appeared in the transcript.
	Count int

	// SentimentScore is the 0-100 score derived from the video sentiment.
	SentimentScore int

	// FirstSeen is when the mention was first recorded.
	FirstSeen time.Time
}

// Sentiment is the overall tone of a transcript.
type Sentiment string

// Available sentiments.
const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// ParseSentiment maps free-form LLM output onto a known sentiment.
// Anything unrecognised is treated as neutral.
func ParseSentiment(s string) Sentiment {
	switch {
	case strings.Contains(strings.ToLower(s), "positive"):
		return SentimentPositive
	case strings.Contains(strings.ToLower(s), "negative"):
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Score maps a sentiment onto the 0-100 scale stored with mentions.
func (s Sentiment) Score() int {
	switch s {
	case SentimentPositive:
		return 85
	case SentimentNegative:
		return 15
	default:
		return 50
	}
}

// String returns the string representation.
func (s Sentiment) String() string {
	return string(s)
}
