package scancache

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baitblock/baitblock/internal/core"
)

func TestKey(t *testing.T) {
	t.Run("message id wins", func(t *testing.T) {
		msg := &core.Message{MessageID: "abc@mail.example", Text: "some body"}
		assert.Equal(t, "abc@mail.example", Key(msg))
	})

	t.Run("text prefix without id", func(t *testing.T) {
		msg := &core.Message{Text: strings.Repeat("x", 250)}
		assert.Equal(t, strings.Repeat("x", 100), Key(msg))
	})

	t.Run("short text used whole", func(t *testing.T) {
		msg := &core.Message{Text: "short"}
		assert.Equal(t, "short", Key(msg))
	})
}

func TestCachePutGet(t *testing.T) {
	c := New(10)

	result := &core.ScanResult{Label: "phishing"}
	c.Put("k1", result)

	got, ok := c.Get("k1")
	require.True(t, ok)
	assert.Same(t, result, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheEvictsSingleOldest(t *testing.T) {
	c := New(50)

	for i := 0; i < 51; i++ {
		c.Put(fmt.Sprintf("k%d", i), &core.ScanResult{})
	}

	assert.Equal(t, 50, c.Len())

	_, ok := c.Get("k0")
	assert.False(t, ok, "oldest entry should be evicted")

	_, ok = c.Get("k1")
	assert.True(t, ok, "second oldest survives a single eviction")

	_, ok = c.Get("k50")
	assert.True(t, ok, "newest entry present")
}

func TestCacheRePutKeepsPosition(t *testing.T) {
	c := New(2)

	c.Put("a", &core.ScanResult{Label: "first"})
	c.Put("b", &core.ScanResult{})
	updated := &core.ScanResult{Label: "second"}
	c.Put("a", updated)

	// "a" keeps its original insertion slot, so adding one more evicts it.
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Same(t, updated, got)

	c.Put("c", &core.ScanResult{})
	_, ok = c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := New(0)
	for i := 0; i < DefaultCapacity+5; i++ {
		c.Put(fmt.Sprintf("k%d", i), &core.ScanResult{})
	}
	assert.Equal(t, DefaultCapacity, c.Len())
}
