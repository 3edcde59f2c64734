package cache

import (
	"testing"
	"time"

	"github.com/bevmap/backend/internal/domain"
)

func TestResultCache(t *testing.T) {
	records := []domain.MappingRecord{
		{Identifier: "16 oz Jasmine Green Tea Hot", ProductName: "Jasmine Green Tea", Mapped: true},
	}

	t.Run("empty cache misses", func(t *testing.T) {
		c := NewResultCache(time.Minute)
		if _, ok := c.Get(); ok {
			t.Error("expected miss on empty cache")
		}
	})

	t.Run("set then get", func(t *testing.T) {
		c := NewResultCache(time.Minute)
		c.Set(records)

		got, ok := c.Get()
		if !ok {
			t.Fatal("expected hit after Set")
		}
		if len(got) != 1 || got[0].Identifier != records[0].Identifier {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("expires after TTL", func(t *testing.T) {
		c := NewResultCache(10 * time.Millisecond)
		c.Set(records)

		time.Sleep(30 * time.Millisecond)
		if _, ok := c.Get(); ok {
			t.Error("expected miss after expiry")
		}
	})

	t.Run("invalidate drops the run", func(t *testing.T) {
		c := NewResultCache(time.Minute)
		c.Set(records)
		c.Invalidate()

		if _, ok := c.Get(); ok {
			t.Error("expected miss after Invalidate")
		}
	})
}
