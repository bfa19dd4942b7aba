package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ewisehart/tally/internal/dates"
	"github.com/ewisehart/tally/internal/model"
)

// The three conversational templates. Each binds an optional currency
// symbol, an amount, and a free-text object that may end in a date
// fragment. The bare-amount form requires the symbol so that stray numbers
// do not become transactions.
var (
	spentPattern    = regexp.MustCompile(`(?i)\b(?:i|we)\s+(?:spent|paid|bought)\s+([¥€£₹₩$])?(\d[\d,]*(?:\.\d{1,2})?)(?:\s+(?:in\s+)?cash)?\s+(?:on|for)\s+([^.!?,;\n]+)`)
	receivedPattern = regexp.MustCompile(`(?i)\b(?:i|we)\s+(?:got|received|earned)\s+([¥€£₹₩$])?(\d[\d,]*(?:\.\d{1,2})?)\s+(?:from|for)\s+([^.!?,;\n]+)`)
	bareamtPattern  = regexp.MustCompile(`([¥€£₹₩$])(\d[\d,]*(?:\.\d{1,2})?)\s+(?:for|on)\s+([^.!?,;\n]+)`)
)

// textDatePattern finds the first date-like fragment in free text. Used for
// the whole-text default date and the cascade pre-filter.
var textDatePattern = regexp.MustCompile(`(?i)\b(yesterday|today|tonight|tomorrow|last\s+(?:sunday|monday|tuesday|wednesday|thursday|friday|saturday)|\d+\s+days?\s+ago|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:,\s*\d{4})?|\d{1,2}/\d{1,2}(?:/\d{2,4})?)\b`)

// clauseBreak cuts a captured object short when a new first-person clause
// starts without punctuation ("coffee and I got ...").
var clauseBreak = regexp.MustCompile(`(?i)\s(?:and|then)\s+(?:i|we)\b`)

// currencySymbols maps non-base symbols to the code appended to the
// description. The order decides which wins when several appear.
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"¥", "JPY"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"₹", "INR"},
	{"₩", "KRW"},
}

// ConversationalExtractor pulls transactions out of first-person phrasing
// like "I spent $45.50 on groceries yesterday".
type ConversationalExtractor struct {
	resolver *dates.Resolver
	logger   *slog.Logger
}

// NewConversationalExtractor creates a conversational extractor using the
// given date resolver.
func NewConversationalExtractor(resolver *dates.Resolver, logger *slog.Logger) *ConversationalExtractor {
	if resolver == nil {
		resolver = dates.NewResolver()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationalExtractor{resolver: resolver, logger: logger}
}

// Extract applies the three templates across the whole text. Spend and
// receive phrasings map to out and in; the bare-amount fallback maps to out
// and is suppressed when a verb template already covered the same mention.
func (e *ConversationalExtractor) Extract(batchID, text string) []model.Transaction {
	defaultDate := resolveTextDate(e.resolver, text)
	lower := strings.ToLower(text)

	var transactions []model.Transaction

	for _, m := range spentPattern.FindAllStringSubmatch(text, -1) {
		if txn, ok := e.buildMatch(batchID, m, model.DirectionOut, defaultDate); ok {
			transactions = append(transactions, txn)
		}
	}
	for _, m := range receivedPattern.FindAllStringSubmatch(text, -1) {
		if txn, ok := e.buildMatch(batchID, m, model.DirectionIn, defaultDate); ok {
			transactions = append(transactions, txn)
		}
	}
	for _, m := range bareamtPattern.FindAllStringSubmatch(text, -1) {
		if coveredByVerbPhrase(lower, m[0]) {
			continue
		}
		if txn, ok := e.buildMatch(batchID, m, model.DirectionOut, defaultDate); ok {
			transactions = append(transactions, txn)
		}
	}

	return transactions
}

// buildMatch turns one template match into a transaction. The object's
// trailing date fragment, when resolvable, overrides the whole-text
// default.
func (e *ConversationalExtractor) buildMatch(batchID string, m []string, direction model.Direction, defaultDate string) (model.Transaction, bool) {
	symbol, amountRaw, object := m[1], m[2], m[3]

	amount, err := strconv.ParseFloat(strings.ReplaceAll(amountRaw, ",", ""), 64)
	if err != nil {
		e.logger.Debug("skipping conversational match",
			"amount", amountRaw,
			"reason", err)
		return model.Transaction{}, false
	}

	object = strings.TrimSpace(object)
	if loc := clauseBreak.FindStringIndex(object); loc != nil {
		object = object[:loc[0]]
	}

	description, matchDate := e.splitTrailingDate(object)
	date := defaultDate
	if matchDate != "" {
		date = matchDate
	}

	description = annotateCurrency(description, symbol)

	txn := model.Transaction{
		ID:          model.NewTransactionID(),
		BatchID:     batchID,
		Date:        date,
		Description: description,
		Type:        inferMethodType(m[0]),
		Amount:      amount,
		Direction:   direction,
	}
	txn.Normalize("")
	if txn.IsVoid() {
		return model.Transaction{}, false
	}
	return txn, true
}

// splitTrailingDate peels a resolvable date fragment off the end of the
// object, longest suffix first, always leaving at least one word of
// description.
func (e *ConversationalExtractor) splitTrailingDate(object string) (string, string) {
	words := strings.Fields(object)
	for n := 3; n >= 1; n-- {
		if len(words) <= n {
			continue
		}
		tail := strings.Join(words[len(words)-n:], " ")
		date := e.resolver.Resolve(tail)
		if date == model.Unknown {
			continue
		}

		head := words[:len(words)-n]
		for len(head) > 1 {
			switch strings.ToLower(head[len(head)-1]) {
			case "on", "at":
				head = head[:len(head)-1]
				continue
			}
			break
		}
		return strings.Join(head, " "), date
	}
	return strings.Join(words, " "), ""
}

// coveredByVerbPhrase reports whether a bare-amount match is the tail of a
// verb phrase another template already captured, checked by substring
// containment against the lowercased source.
func coveredByVerbPhrase(lowerText, match string) bool {
	lowerMatch := strings.ToLower(strings.TrimSpace(match))
	for _, verb := range []string{"spent", "paid", "bought", "got", "received", "earned"} {
		if strings.Contains(lowerText, verb+" "+lowerMatch) {
			return true
		}
	}
	return false
}

// resolveTextDate resolves the first date-like fragment in the text as the
// batch's default date.
func resolveTextDate(resolver *dates.Resolver, text string) string {
	m := textDatePattern.FindString(text)
	if m == "" {
		return model.Unknown
	}
	return resolver.Resolve(m)
}

// inferMethodType buckets the payment method named in the matched phrase.
func inferMethodType(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "card") || strings.Contains(lower, "credit") || strings.Contains(lower, "debit"):
		return "Card"
	case strings.Contains(lower, "cash"):
		return "Cash"
	case strings.Contains(lower, "paypal") || strings.Contains(lower, "venmo") || strings.Contains(lower, "zelle"):
		return "Transfer"
	case containsWord(lower, "check"):
		return "Check"
	default:
		return "Other"
	}
}

// containsWord matches a whole token, ignoring surrounding punctuation.
func containsWord(s, word string) bool {
	for _, field := range strings.Fields(s) {
		if strings.Trim(field, ".,!?;:") == word {
			return true
		}
	}
	return false
}

// annotateCurrency appends the currency code when the amount carried a
// non-dollar symbol or the description mentions one. The amount itself is
// never converted.
func annotateCurrency(description, symbol string) string {
	code := ""
	for _, entry := range currencySymbols {
		if symbol == entry.symbol || strings.Contains(description, entry.symbol) {
			code = entry.code
			break
		}
	}
	if code == "" {
		return description
	}
	if strings.Contains(description, "("+code+")") {
		return description
	}
	return description + " (" + code + ")"
}
