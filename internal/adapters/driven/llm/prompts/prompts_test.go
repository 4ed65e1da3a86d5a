package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

func TestAnalysis_IncludesContext(t *testing.T) {
	p := Analysis("Aeron Review", "Tech Reviews", "the chair is great")
	assert.Contains(t, p, "VIDEO TITLE: Aeron Review")
	assert.Contains(t, p, "CHANNEL NAME: Tech Reviews")
	assert.Contains(t, p, "the chair is great")
}

func TestAnalysis_TruncatesLongTranscripts(t *testing.T) {
	long := strings.Repeat("word ", 10000)
	p := Analysis("t", "c", long)
	assert.Less(t, len(p), len(long))
}

func TestParseJSON_Plain(t *testing.T) {
	var result domain.ExtractionResult
	err := ParseJSON(`{"brands":["NARS"],"products":[],"sponsors":["Squarespace"]}`, &result)
	require.NoError(t, err)
	assert.Equal(t, []string{"NARS"}, result.Brands)
	assert.Equal(t, []string{"Squarespace"}, result.Sponsors)
}

func TestParseJSON_FencedBlock(t *testing.T) {
	raw := "Here is the analysis:\n```json\n{\"summary\":\"a review\",\"sentiment\":\"Positive\"}\n```\nHope that helps!"
	var analysis domain.VideoAnalysis
	err := ParseJSON(raw, &analysis)
	require.NoError(t, err)
	assert.Equal(t, "a review", analysis.Summary)
	assert.Equal(t, "Positive", analysis.Sentiment)
}

func TestParseJSON_NoObject(t *testing.T) {
	var v map[string]any
	assert.Error(t, ParseJSON("I could not process that transcript.", &v))
}

func TestParseJSON_Malformed(t *testing.T) {
	var v map[string]any
	assert.Error(t, ParseJSON(`{"summary": `, &v))
}
