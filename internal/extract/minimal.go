package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ewisehart/tally/internal/dates"
	"github.com/ewisehart/tally/internal/model"
)

// minimalAmount accepts either a symbol-prefixed amount or a bare
// dollars.cents decimal.
var minimalAmount = regexp.MustCompile(`([¥€£₹₩$])\s?(\d[\d,]*(?:\.\d{1,2})?)|\b(\d[\d,]*\.\d{2})\b`)

var (
	minimalInKeywords  = []string{"received", "got", "earned", "refund", "deposit", "credited", "credit", "income"}
	minimalOutKeywords = []string{"spent", "paid", "bought", "purchased", "purchase", "charged", "charge", "debit", "withdrawal", "withdrew", "sent"}
)

// minimalStopwords are tokens that cannot serve as the description.
var minimalStopwords = map[string]bool{
	"i": true, "we": true, "a": true, "an": true, "the": true,
	"on": true, "for": true, "from": true, "to": true, "at": true,
	"in": true, "of": true, "and": true, "with": true, "my": true,
	"our": true, "was": true, "it": true, "is": true, "this": true,
	"that": true, "some": true, "about": true, "around": true,
	"today": true, "tonight": true, "yesterday": true, "tomorrow": true,
	"last": true, "ago": true, "days": true, "day": true,
}

// minimalSingle is the cascade's last resort: one amount, one direction
// keyword, one description token, producing a single transaction or
// nothing.
func minimalSingle(resolver *dates.Resolver, batchID, text string) []model.Transaction {
	m := minimalAmount.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	symbol := m[1]
	amountRaw := m[2]
	if amountRaw == "" {
		amountRaw = m[3]
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(amountRaw, ",", ""), 64)
	if err != nil || amount <= 0 {
		return nil
	}

	lower := strings.ToLower(text)
	direction := model.DirectionUnknown
	for _, kw := range minimalInKeywords {
		if strings.Contains(lower, kw) {
			direction = model.DirectionIn
			break
		}
	}
	if direction == model.DirectionUnknown {
		for _, kw := range minimalOutKeywords {
			if strings.Contains(lower, kw) {
				direction = model.DirectionOut
				break
			}
		}
	}

	description := annotateCurrency(minimalDescription(text), symbol)

	txn := model.Transaction{
		ID:          model.NewTransactionID(),
		BatchID:     batchID,
		Date:        resolveTextDate(resolver, text),
		Description: description,
		Type:        inferMethodType(text),
		Amount:      amount,
		Direction:   direction,
	}
	txn.Normalize("")
	if txn.IsVoid() {
		return nil
	}
	return []model.Transaction{txn}
}

// minimalDescription picks the first token that is not an amount, a
// keyword, or filler.
func minimalDescription(text string) string {
	for _, field := range strings.Fields(text) {
		token := strings.Trim(field, ".,!?;:()\"'")
		if token == "" || strings.ContainsAny(token, "0123456789$¥€£₹₩") {
			continue
		}
		lower := strings.ToLower(token)
		if minimalStopwords[lower] {
			continue
		}
		if keywordInList(lower, minimalInKeywords) || keywordInList(lower, minimalOutKeywords) {
			continue
		}
		if _, isWeekday := weekdayTokens[lower]; isWeekday {
			continue
		}
		return token
	}
	return ""
}

var weekdayTokens = map[string]struct{}{
	"sunday": {}, "monday": {}, "tuesday": {}, "wednesday": {},
	"thursday": {}, "friday": {}, "saturday": {},
}

func keywordInList(token string, keywords []string) bool {
	for _, kw := range keywords {
		if token == kw {
			return true
		}
	}
	return false
}
