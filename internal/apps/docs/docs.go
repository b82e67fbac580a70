// Package docs provides the documentation viewer application: it takes
// raw document bytes, detects their encoding and type, sanitizes the
// markup, and extracts a renderable title and body.
package docs

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"

	"github.com/glasspane/webtop/internal/domain/registry"
	"github.com/glasspane/webtop/internal/shared/types"
)

// AppID is the docs viewer's registry identifier.
const AppID = "docs"

// MaxDocumentSize limits document input to 10MB.
const MaxDocumentSize = 10 * 1024 * 1024

var (
	// ErrEmptyDocument is returned for zero-length input.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrDocumentTooLarge is returned when input exceeds MaxDocumentSize.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size")
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Page is a rendered document ready for display.
type Page struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Text     string `json:"text"`
	Charset  string `json:"charset"`
	MimeType string `json:"mime_type"`
}

// Service renders documents into sanitized pages.
type Service struct {
	sanitizer *bluemonday.Policy
}

// NewService creates a docs service with a UGC sanitization policy.
func NewService() *Service {
	return &Service{sanitizer: bluemonday.UGCPolicy()}
}

// Render decodes, sanitizes, and extracts a document.
func (s *Service) Render(data []byte) (*Page, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrDocumentTooLarge, len(data))
	}

	mtype := mimetype.Detect(data)
	enc := detectCharset(data)

	reader, err := charset.NewReaderLabel(enc, bytes.NewReader(data))
	if err != nil {
		reader = bytes.NewReader(data)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	body, err := doc.Find("body").Html()
	if err != nil || body == "" {
		body, _ = doc.Html()
	}

	text := whitespaceRe.ReplaceAllString(doc.Find("body").Text(), " ")

	return &Page{
		Title:    title,
		Body:     s.sanitizer.Sanitize(body),
		Text:     strings.TrimSpace(text),
		Charset:  enc,
		MimeType: mtype.String(),
	}, nil
}

// detectCharset guesses the document encoding, defaulting to utf-8.
func detectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// Register adds the docs viewer to the app registry as a
// single-instance application.
func Register(reg *registry.Registry, windows registry.WindowCreator) error {
	return reg.Register(&types.Registration{
		ID:             AppID,
		Name:           "Documentation",
		Icon:           "docs.png",
		Category:       "productivity",
		SingleInstance: true,
		Launch: func() (*types.Window, error) {
			content := map[string]interface{}{
				"app":  AppID,
				"page": "welcome",
			}
			return windows.Create("Documentation", content, 720, 560), nil
		},
	})
}
