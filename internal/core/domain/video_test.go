package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func segments() []TranscriptSegment {
	return []TranscriptSegment{
		{Start: 0, Duration: 4.2, Text: "welcome back everyone"},
		{Start: 4.2, Duration: 3.1, Text: "today we review the Sky High Mascara"},
	}
}

func TestTranscriptText(t *testing.T) {
	text := TranscriptText(segments())
	assert.Equal(t, "welcome back everyone\ntoday we review the Sky High Mascara", text)

	assert.Equal(t, "", TranscriptText(nil))
}

func TestTranscriptHash_Stable(t *testing.T) {
	a := TranscriptHash(segments())
	b := TranscriptHash(segments())
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestTranscriptHash_ChangesWithContent(t *testing.T) {
	base := TranscriptHash(segments())

	edited := segments()
	edited[1].Text = "today we review something else"
	assert.NotEqual(t, base, TranscriptHash(edited))

	shifted := segments()
	shifted[0].Start = 1
	assert.NotEqual(t, base, TranscriptHash(shifted))
}

func TestExtractionCacheEntry_Matches(t *testing.T) {
	entry := ExtractionCacheEntry{VideoID: "abc", TranscriptHash: "h1"}
	assert.True(t, entry.Matches("h1"))
	assert.False(t, entry.Matches("h2"))

	// An entry without a hash never matches; it forces re-extraction.
	assert.False(t, ExtractionCacheEntry{VideoID: "abc"}.Matches(""))
}

func TestResetReport_State(t *testing.T) {
	assert.Equal(t, ResetStateNeedsReset, ResetReport{}.State())
	assert.Equal(t, ResetStateReady, ResetReport{SchemaInitialised: true}.State())
}
