package llm

import (
	"fmt"
	"strings"
)

const (
	// maxInputChars bounds the raw text embedded in an extraction prompt.
	maxInputChars = 6000
	// truncationMarker is appended whenever input text was cut at the ceiling.
	truncationMarker = "\n[...input truncated...]"
)

const extractionSystemPrompt = "You are a financial transaction extractor. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }."

// buildExtractionPrompt renders the user prompt for one extraction call.
// Input beyond the character ceiling is truncated with an explicit marker
// so the model never sees a silently clipped sentence as complete.
func buildExtractionPrompt(text, baseCurrency string) string {
	if len(text) > maxInputChars {
		text = text[:maxInputChars] + truncationMarker
	}

	return fmt.Sprintf(`Extract every financial transaction from the text below.

RESPONSE SHAPE:
{"transactions": [{"date": "...", "description": "...", "type": "...", "amount": 0, "currency": "...", "direction": "..."}]}

FIELD RULES:
- "date": ISO format YYYY-MM-DD, or the string "unknown" when the text gives no date
- "description": what the money was for; never empty
- "type": the payment rail if stated (e.g. "Card", "ACH credit", "Deposit", "Transfer"), else "unknown"
- "amount": non-negative number; the sign belongs in "direction", never in the value
- "currency": ISO 4217 code; use %q when the text does not state one
- "direction": exactly one of "in" (money received), "out" (money spent), "unknown"
- Add "needs_clarification": true to any transaction whose required fields you had to guess

Do not invent transactions. If the text contains none, respond with {"transactions": []}.

TEXT:
%s`, baseCurrency, strings.TrimSpace(text))
}
