package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:04,200
welcome back to the channel

2
00:00:04,200 --> 00:00:07,500
today we review
the new mascara
`

const sampleVTT = `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:04.200 align:start position:0%
welcome <c>back</c> to the channel

cue-2
00:00:04.200 --> 00:00:07.500
today we review the new mascara

NOTE this block is ignored

00:00:07.500 --> 00:00:09.000
today we review the new mascara
`

func TestParseSRT(t *testing.T) {
	segments, err := ParseSRT(sampleSRT)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, 1.0, segments[0].Start)
	assert.InDelta(t, 3.2, segments[0].Duration, 0.001)
	assert.Equal(t, "welcome back to the channel", segments[0].Text)

	assert.InDelta(t, 4.2, segments[1].Start, 0.001)
	assert.Equal(t, "today we review\nthe new mascara", segments[1].Text)
}

func TestParseSRT_WindowsLineEndings(t *testing.T) {
	data := "1\r\n00:00:00,500 --> 00:00:02,000\r\nhello\r\n"
	segments, err := ParseSRT(data)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, 0.5, segments[0].Start)
	assert.Equal(t, "hello", segments[0].Text)
}

func TestParseSRT_Empty(t *testing.T) {
	_, err := ParseSRT("")
	assert.ErrorIs(t, err, domain.ErrNoTranscript)
}

func TestParseVTT(t *testing.T) {
	segments, err := ParseVTT(sampleVTT)
	require.NoError(t, err)
	require.Len(t, segments, 2, "exact repeat of the previous cue is dropped")

	assert.Equal(t, 1.0, segments[0].Start)
	assert.Equal(t, "welcome back to the channel", segments[0].Text, "markup tags stripped")
	assert.InDelta(t, 4.2, segments[1].Start, 0.001)
	assert.Equal(t, "today we review the new mascara", segments[1].Text)
}

func TestParseVTT_ShortTimestamps(t *testing.T) {
	data := "WEBVTT\n\n01:02.500 --> 01:04.000\nshort form\n"
	segments, err := ParseVTT(data)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.InDelta(t, 62.5, segments[0].Start, 0.001)
}

func TestParseVTT_NoCues(t *testing.T) {
	_, err := ParseVTT("WEBVTT\n\nNOTE nothing here\n")
	assert.ErrorIs(t, err, domain.ErrNoTranscript)
}

func TestParseTimestamp_Malformed(t *testing.T) {
	_, err := ParseSRT("1\nbogus --> lines\ntext\n")
	assert.Error(t, err)
}
