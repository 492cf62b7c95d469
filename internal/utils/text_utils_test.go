package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "hello", tp.TruncateText("hello", 100))
	})

	t.Run("non-positive limit means unlimited", func(t *testing.T) {
		long := strings.Repeat("a", 10000)
		assert.Equal(t, long, tp.TruncateText(long, 0))
	})

	t.Run("truncation appends marker", func(t *testing.T) {
		out := tp.TruncateText(strings.Repeat("a", 200), 50)
		assert.True(t, strings.HasPrefix(out, strings.Repeat("a", 50)))
		assert.Contains(t, out, "Content truncated")
	})

	t.Run("never splits a multibyte sequence", func(t *testing.T) {
		// "éé..." is two bytes per rune; an odd limit lands mid-sequence.
		out := tp.TruncateText(strings.Repeat("é", 100), 51)
		cut, _, _ := strings.Cut(out, "\n")
		assert.Equal(t, strings.Repeat("é", 25), cut)
	})
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	t.Run("valid text passes through", func(t *testing.T) {
		assert.Equal(t, "héllo 😀", tp.SanitizeUTF8("héllo 😀"))
	})

	t.Run("invalid bytes dropped", func(t *testing.T) {
		assert.Equal(t, "ab", tp.SanitizeUTF8("a\xffb"))
	})
}
