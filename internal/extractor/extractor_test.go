package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/fingerprint"
	"github.com/baitblock/baitblock/internal/scancache"
)

const sampleMail = "From: Billing <billing@evil.example>\r\n" +
	"To: cfo@corp.example\r\n" +
	"Subject: Urgent payment required\r\n" +
	"Message-ID: <abc123@mail.evil.example>\r\n" +
	"\r\n" +
	"Please process this wire transfer today.\r\n"

const sampleHTMLMail = "From: noreply@evil.example\r\n" +
	"Subject: Verify your account\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	`<a href="https://bit.ly/3abc">Verify now</a>` + "\r\n"

func TestExtract(t *testing.T) {
	e := NewMailExtractor(zap.NewNop())

	msg, err := e.Extract(strings.NewReader(sampleMail))
	require.NoError(t, err)

	assert.Equal(t, "Billing <billing@evil.example>", msg.Headers.From)
	assert.Equal(t, "Urgent payment required", msg.Headers.Subject)
	assert.Equal(t, "abc123@mail.evil.example", msg.MessageID)
	assert.Contains(t, msg.Text, "wire transfer")
	assert.Empty(t, msg.HTML)
}

func TestExtractHTMLBody(t *testing.T) {
	e := NewMailExtractor(zap.NewNop())

	msg, err := e.Extract(strings.NewReader(sampleHTMLMail))
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "bit.ly")
	assert.Equal(t, "Verify now", msg.Text)
}

func TestExtractHTMLOnlyDerivesText(t *testing.T) {
	raw := "From: noreply@evil.example\r\n" +
		"Subject: Account suspended\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<html><head><style>p{color:red}</style></head>" +
		"<body><p>Your account &amp; password expire today.</p>" +
		"<script>track()</script></body></html>\r\n"

	e := NewMailExtractor(zap.NewNop())
	msg, err := e.Extract(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "Your account & password expire today.", msg.Text)
	assert.NotContains(t, msg.Text, "color:red")
	assert.NotContains(t, msg.Text, "track()")
	assert.NotEqual(t, "0", fingerprint.ContentFingerprint(msg.Text))
	assert.NotEmpty(t, scancache.Key(msg))
}

func TestExtractMalformedInput(t *testing.T) {
	e := NewMailExtractor(zap.NewNop())

	_, err := e.Extract(strings.NewReader("no header separator at all"))
	assert.Error(t, err)
}
