package rates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		cache := NewCache(5 * time.Minute)
		defer cache.Close()

		// Test empty cache
		_, found := cache.get("USD")
		assert.False(t, found)

		// Test set and get
		table := map[string]float64{"EUR": 0.92, "JPY": 148.9}
		cache.set("USD", table)

		retrieved, found := cache.get("USD")
		assert.True(t, found)
		assert.Equal(t, table, retrieved)

		assert.Equal(t, 1, cache.size())
	})

	t.Run("expiration", func(t *testing.T) {
		// Use a very short TTL for testing
		cache := NewCache(50 * time.Millisecond)
		defer cache.Close()

		cache.set("USD", map[string]float64{"EUR": 0.92})

		// Should be found immediately
		_, found := cache.get("USD")
		assert.True(t, found)

		// Wait for expiration
		time.Sleep(100 * time.Millisecond)

		// Should not be found after expiration
		_, found = cache.get("USD")
		assert.False(t, found)
	})

	t.Run("zero ttl uses default", func(t *testing.T) {
		cache := NewCache(0)
		defer cache.Close()

		cache.set("USD", map[string]float64{"EUR": 0.92})

		_, found := cache.get("USD")
		assert.True(t, found)
	})

	t.Run("concurrent access", func(t *testing.T) {
		cache := NewCache(5 * time.Minute)
		defer cache.Close()

		done := make(chan bool)
		go func() {
			for i := 0; i < 100; i++ {
				cache.set("USD", map[string]float64{"EUR": 0.92})
			}
			done <- true
		}()

		go func() {
			for i := 0; i < 100; i++ {
				_, _ = cache.get("USD")
			}
			done <- true
		}()

		go func() {
			for i := 0; i < 10; i++ {
				_ = cache.size()
				time.Sleep(time.Millisecond)
			}
			done <- true
		}()

		// Wait for all goroutines
		for i := 0; i < 3; i++ {
			<-done
		}

		// Cache should still be functional
		cache.set("EUR", map[string]float64{"USD": 1.09})
		_, found := cache.get("EUR")
		assert.True(t, found)
	})

	t.Run("remove expired", func(t *testing.T) {
		cache := NewCache(50 * time.Millisecond)
		defer cache.Close()

		cache.set("USD", map[string]float64{"EUR": 0.92})
		cache.set("GBP", map[string]float64{"USD": 1.27})

		time.Sleep(100 * time.Millisecond)
		cache.removeExpired()

		assert.Equal(t, 0, cache.size())
	})
}
