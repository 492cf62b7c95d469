// Package extractor parses raw RFC 5322 mail into a scan message.
package extractor

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"net/mail"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/core"
)

var (
	hiddenContent = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	markupTag     = regexp.MustCompile(`<[^>]*>`)
	runsOfSpace   = regexp.MustCompile(`\s+`)
)

// MailExtractor converts a raw mail stream into a core.Message.
type MailExtractor struct {
	logger *zap.Logger
}

// NewMailExtractor creates a new mail extractor
func NewMailExtractor(logger *zap.Logger) *MailExtractor {
	return &MailExtractor{logger: logger}
}

// Extract parses a raw mail message from r. The body is carried as
// plain text unless the top-level Content-Type says otherwise.
func (e *MailExtractor) Extract(r io.Reader) (*core.Message, error) {
	parsed, err := mail.ReadMessage(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail message: %w", err)
	}

	bodyBytes, err := io.ReadAll(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read mail body: %w", err)
	}
	body := string(bodyBytes)

	msg := &core.Message{
		MessageID: strings.Trim(parsed.Header.Get("Message-ID"), "<>"),
		Headers: core.Headers{
			From:    parsed.Header.Get("From"),
			Subject: parsed.Header.Get("Subject"),
		},
	}

	contentType := parsed.Header.Get("Content-Type")
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		msg.HTML = body
		// HTML-only mail still needs visible text for fingerprinting
		// and cache keying.
		msg.Text = htmlToText(body)
	} else {
		msg.Text = body
	}

	e.logger.Debug("Parsed mail message",
		zap.String("message_id", msg.MessageID),
		zap.String("from", msg.Headers.From),
		zap.Int("body_size", len(body)))

	return msg, nil
}

// htmlToText strips markup and decodes entities, leaving the text a
// recipient would see.
func htmlToText(body string) string {
	text := hiddenContent.ReplaceAllString(body, " ")
	text = markupTag.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	return strings.TrimSpace(runsOfSpace.ReplaceAllString(text, " "))
}
