package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ewisehart/tally/internal/common"
)

// fencedBlock matches a markdown code fence with an optional language tag.
var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)```")

// RecoverJSON extracts a parseable JSON document from text that is supposed
// to contain one but may be wrapped in prose or code fences. Already-valid
// input is returned unchanged. The document boundary is found by walking
// from the first opening brace or bracket and counting nesting until it
// balances; no recoverable document is an explicit *ParseError, never a
// panic.
func RecoverJSON(raw string) (string, error) {
	if json.Valid([]byte(raw)) {
		return raw, nil
	}

	s := raw
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", &ParseError{
			Reason:  "no opening brace or bracket",
			Snippet: common.Truncate(raw, 80),
		}
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		}
		if depth == 0 {
			return s[start : i+1], nil
		}
	}

	return "", &ParseError{
		Reason:  "unbalanced braces",
		Snippet: common.Truncate(raw, 80),
	}
}

// Textual fixups for the repair pass. Each is deliberately permissive:
// the pass runs only on text that already failed to parse, so corrupting
// an edge case costs nothing that was not already lost.
var (
	singleQuoted  = regexp.MustCompile(`'([^']*)'`)
	unquotedKey   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	pythonNone    = regexp.MustCompile(`\bNone\b`)
	pythonTrue    = regexp.MustCompile(`\bTrue\b`)
	pythonFalse   = regexp.MustCompile(`\bFalse\b`)

	// Adjacent value tokens separated only by whitespace are missing a comma.
	commaQuoteQuote     = regexp.MustCompile(`"(\s+)"`)
	commaBraceBrace     = regexp.MustCompile(`\}(\s*)\{`)
	commaBracketBracket = regexp.MustCompile(`\](\s*)\[`)
	commaDigitQuote     = regexp.MustCompile(`(\d)(\s+)"`)
	commaQuoteBrace     = regexp.MustCompile(`"(\s+)\{`)
)

// RepairJSON applies best-effort textual fixups to near-JSON text: quote
// normalization, unquoted identifier keys, Python literals, trailing commas,
// and missing commas between adjacent tokens. Already-valid input passes
// through untouched. It is a safety net for model output that failed
// RecoverJSON's structural pass, not a JSON parser.
func RepairJSON(s string) string {
	if json.Valid([]byte(s)) {
		return s
	}

	s = singleQuoted.ReplaceAllString(s, `"$1"`)
	s = unquotedKey.ReplaceAllString(s, `$1"$2":`)
	s = pythonNone.ReplaceAllString(s, "null")
	s = pythonTrue.ReplaceAllString(s, "true")
	s = pythonFalse.ReplaceAllString(s, "false")
	s = trailingComma.ReplaceAllString(s, "$1")

	s = commaQuoteQuote.ReplaceAllString(s, `",$1"`)
	s = commaBraceBrace.ReplaceAllString(s, "},$1{")
	s = commaBracketBracket.ReplaceAllString(s, "],$1[")
	s = commaDigitQuote.ReplaceAllString(s, `$1,$2"`)
	s = commaQuoteBrace.ReplaceAllString(s, `",$1{`)

	return s
}
