// Package prompts holds the prompt templates shared by the LLM adapters,
// plus tolerant parsing of the JSON the models return.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxTranscriptChars bounds the transcript text included in a prompt so
// long videos stay within model context windows.
const maxTranscriptChars = 12000

const analysisTemplate = `You are a highly accurate video transcript analysis engine.

Your task is to extract structured, factual information from the transcript.
Work ONLY with what is explicitly stated. DO NOT guess or infer anything.

Return your answer as strict JSON using this exact schema:

{
  "summary": "",
  "sentiment": "Positive | Neutral | Negative",
  "topics": [],
  "brands": [],
  "products": [{"brand": "", "product": ""}],
  "sponsors": []
}

Rules:
- DO NOT hallucinate or invent brands, products, or sponsors.
- ONLY output what is present in the transcript.
- If no items are found for a field, return an empty list.
- SUMMARY: a short, factual, neutral summary of the transcript.
- SENTIMENT: Positive (enthusiastic, praising), Neutral (informational,
  mixed) or Negative (complaints, dissatisfaction).
- TOPICS: general discussion themes, e.g. "product review", "tech analysis".
- BRANDS: real brands explicitly mentioned, exactly as spoken.
- PRODUCTS: product names mentioned. Set "brand" to "" when the
  transcript leaves the owning brand unclear.
- SPONSORS: only entities in phrases like "this video is sponsored by"
  or "in partnership with".

VIDEO TITLE: %s
CHANNEL NAME: %s

TRANSCRIPT:
%s

Return strict JSON only. No Markdown, no commentary, no text outside the
JSON block.`

const extractionTemplate = `You are a strict text extraction engine.
You DO NOT infer, guess, expand, correct, or interpret meaning.
You only detect explicit brand or product names EXACTLY as written.

Extract brands, products, and sponsors explicitly mentioned in the
following transcript text.

TEXT:
%s

Remember:
- Only include names that appear literally in the text.
- Do NOT guess or invent anything.
- Preserve casing as seen in the text.
- If a product has no clear brand, set "brand" to "".
Return ONLY valid JSON with this schema:

{
  "brands": ["Brand1", "Brand2"],
  "products": [{"brand": "Brand1", "product": "ProductA"}],
  "sponsors": ["Sponsor1", "Sponsor2"]
}`

const answerTemplate = `You are a careful insights analyst for social video data.

USER QUESTION:
"""%s"""

DATABASE CONTEXT:
%s

INSTRUCTIONS:
- Use ONLY the data above to answer.
- Be concise and practical (3 to 6 sentences).
- Refer to numbers and trends when possible.
- If something is not in the data, say you cannot be sure.
- Do NOT hallucinate or invent metrics.

Now answer the user's question:`

// Analysis builds the full transcript-analysis prompt.
func Analysis(title, channel, transcript string) string {
	return fmt.Sprintf(analysisTemplate, title, channel, truncate(transcript))
}

// Extraction builds the strict entity-extraction prompt.
func Extraction(transcript string) string {
	return fmt.Sprintf(extractionTemplate, truncate(transcript))
}

// Answer builds the query-answering prompt from assembled database context.
func Answer(query, context string) string {
	return fmt.Sprintf(answerTemplate, query, context)
}

func truncate(s string) string {
	if len(s) > maxTranscriptChars {
		return s[:maxTranscriptChars]
	}
	return s
}

// ParseJSON decodes a model response into v, tolerating fenced code
// blocks and commentary around the JSON object. It extracts the span
// from the first "{" to the last "}" before decoding.
func ParseJSON(raw string, v any) error {
	s := strings.TrimSpace(raw)
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last <= first {
		return fmt.Errorf("no JSON object in model response")
	}
	if err := json.Unmarshal([]byte(s[first:last+1]), v); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}
