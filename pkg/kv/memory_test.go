package kv

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMemory() (*Memory, *clock) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemory()
	m.now = c.now
	return m, c
}

func TestMemory_SetExists(t *testing.T) {
	m, c := newTestMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1", time.Second))
	require.NoError(t, m.Set(ctx, "forever", "1", 0))

	ok, _ := m.Exists(ctx, "a")
	assert.True(t, ok)
	ok, _ = m.Exists(ctx, "missing")
	assert.False(t, ok)

	c.advance(time.Second)
	ok, _ = m.Exists(ctx, "a")
	assert.False(t, ok)
	ok, _ = m.Exists(ctx, "forever")
	assert.True(t, ok)
}

func TestMemory_Sweep(t *testing.T) {
	m, c := newTestMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "1", time.Second))
	require.NoError(t, m.Set(ctx, "b", "1", time.Hour))

	c.advance(time.Minute)
	m.Sweep()

	assert.Len(t, m.data, 1)
}

func TestMemory_ConcurrentSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.Set(ctx, fmt.Sprintf("k%d", i), "1", time.Minute)
			_, _ = m.Exists(ctx, "k0")
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.data, 50)
}
