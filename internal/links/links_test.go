package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSuspicious(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "ordinary https url",
			url:      "https://docs.corp.example/handbook",
			expected: false,
		},
		{
			name:     "plain http on a benign host",
			url:      "http://corp-billing-portal.example/login",
			expected: true,
		},
		{
			name:     "suspicious tld",
			url:      "https://login-update.tk/verify",
			expected: true,
		},
		{
			name:     "xyz tld",
			url:      "http://secure-bank.xyz",
			expected: true,
		},
		{
			name:     "raw ip host",
			url:      "http://192.168.10.45/login",
			expected: true,
		},
		{
			name:     "url shortener",
			url:      "https://bit.ly/3xyzzy",
			expected: true,
		},
		{
			name:     "typosquatted brand",
			url:      "https://accounts.g00gle.com/signin",
			expected: true,
		},
		{
			name:     "typosquatted amazon",
			url:      "https://arnazon.com/deals",
			expected: true,
		},
		{
			name:     "hostless url fails closed",
			url:      "not-a-url",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSuspicious(tt.url))
		})
	}
}

func TestExtract(t *testing.T) {
	t.Run("urls from plain text", func(t *testing.T) {
		text := "Click https://bit.ly/3abc now, or visit https://docs.corp.example/faq."
		found := Extract("", text)
		require.Len(t, found, 2)
		assert.Equal(t, "https://bit.ly/3abc", found[0].URL)
		assert.True(t, found[0].Suspicious)
		assert.Equal(t, "https://docs.corp.example/faq", found[1].URL)
		assert.False(t, found[1].Suspicious)
	})

	t.Run("hrefs from html", func(t *testing.T) {
		html := `<a href="http://192.168.1.1/login">Secure login</a> <a href='https://corp.example'>home</a>`
		found := Extract(html, "")
		require.Len(t, found, 2)
		assert.True(t, found[0].Suspicious)
		assert.False(t, found[1].Suspicious)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		text := "See https://corp.example and again https://corp.example"
		found := Extract(`<a href="https://corp.example">x</a>`, text)
		assert.Len(t, found, 1)
	})

	t.Run("trailing punctuation is stripped", func(t *testing.T) {
		found := Extract("", "Go to https://corp.example/page.")
		require.Len(t, found, 1)
		assert.Equal(t, "https://corp.example/page", found[0].URL)
	})

	t.Run("no links", func(t *testing.T) {
		assert.Empty(t, Extract("", "plain message with no urls"))
	})
}

func TestReasons(t *testing.T) {
	found := Extract("", "Visit https://bit.ly/x and https://docs.corp.example")
	reasons := Reasons(found)
	require.Len(t, reasons, 1)
	assert.Equal(t, "Suspicious link detected: https://bit.ly/x", reasons[0])
}
