package rates

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Converter restates amounts in a single base currency. It shares a Cache
// with any other consumers and fetches the rate table at most once per run.
type Converter struct {
	client *Client
	cache  *Cache
	logger *slog.Logger
	base   string

	mu       sync.Mutex
	fetchErr error
}

// NewConverter creates a converter targeting baseCurrency. The cache is
// required and owned by the caller; the converter never closes it.
func NewConverter(client *Client, cache *Cache, baseCurrency string, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		client: client,
		cache:  cache,
		logger: logger,
		base:   strings.ToUpper(strings.TrimSpace(baseCurrency)),
	}
}

// BaseCurrency returns the currency amounts are restated into.
func (v *Converter) BaseCurrency() string {
	return v.base
}

// Convert restates amount from currency into the base currency. The bool
// reports whether a rate was available; when false the original amount is
// returned and the caller should treat it as unconverted.
func (v *Converter) Convert(ctx context.Context, amount float64, currency string) (float64, bool) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == v.base {
		return amount, true
	}

	table, err := v.rates(ctx)
	if err != nil {
		return amount, false
	}

	rate, ok := table[currency]
	if !ok || rate <= 0 {
		v.logger.Warn("no exchange rate available", "currency", currency, "base", v.base)
		return amount, false
	}

	// The table quotes units of currency per one unit of base, so dividing
	// restates currency into base.
	return amount / rate, true
}

// rates returns the rate table for the base currency, consulting the cache
// first. A fetch failure is remembered so a report over many transactions
// performs at most one request.
func (v *Converter) rates(ctx context.Context) (map[string]float64, error) {
	if table, ok := v.cache.get(v.base); ok {
		return table, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.fetchErr != nil {
		return nil, v.fetchErr
	}
	if table, ok := v.cache.get(v.base); ok {
		return table, nil
	}

	table, err := v.client.Latest(ctx, v.base)
	if err != nil {
		v.fetchErr = err
		v.logger.Warn("failed to fetch exchange rates", "base", v.base, "error", err)
		return nil, err
	}

	v.cache.set(v.base, table)
	return table, nil
}
