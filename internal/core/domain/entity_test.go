package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityKind_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		kind  EntityKind
		valid bool
	}{
		{"brand", EntityBrand, true},
		{"product", EntityProduct, true},
		{"sponsor", EntitySponsor, true},
		{"empty", EntityKind(""), false},
		{"unknown", EntityKind("channel"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.kind.IsValid())
		})
	}
}

func TestNormaliseName(t *testing.T) {
	assert.Equal(t, "maybelline", NormaliseName("  Maybelline "))
	assert.Equal(t, "fit me foundation", NormaliseName("Fit Me Foundation"))
	assert.Equal(t, "", NormaliseName("   "))
}

func TestParseSentiment(t *testing.T) {
	tests := []struct {
		raw  string
		want Sentiment
	}{
		{"Positive", SentimentPositive},
		{"very positive overall", SentimentPositive},
		{"Negative", SentimentNegative},
		{"Neutral", SentimentNeutral},
		{"", SentimentNeutral},
		{"mixed", SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSentiment(tt.raw))
		})
	}
}

func TestSentiment_Score(t *testing.T) {
	assert.Equal(t, 85, SentimentPositive.Score())
	assert.Equal(t, 50, SentimentNeutral.Score())
	assert.Equal(t, 15, SentimentNegative.Score())
	// Unknown sentiments score neutral.
	assert.Equal(t, 50, Sentiment("weird").Score())
}

func TestEntity_Validate(t *testing.T) {
	valid := Entity{Kind: EntityBrand, Name: "NARS"}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, Entity{Kind: EntityBrand}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Entity{Name: "NARS"}.Validate(), ErrInvalidInput)
}
