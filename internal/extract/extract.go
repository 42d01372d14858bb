// Package extract turns uploaded résumé documents into plain text.
package extract

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Supported format extensions
const (
	FormatTXT  = ".txt"
	FormatMD   = ".md"
	FormatHTML = ".html"
	FormatHTM  = ".htm"
	FormatDOCX = ".docx"
	FormatPDF  = ".pdf"
	FormatPNG  = ".png"
	FormatJPG  = ".jpg"
	FormatJPEG = ".jpeg"
)

var supportedFormats = map[string]bool{
	FormatTXT: true, FormatMD: true, FormatHTML: true, FormatHTM: true,
	FormatDOCX: true, FormatPDF: true,
	FormatPNG: true, FormatJPG: true, FormatJPEG: true,
}

// OCR recognizes text in a raster image
type OCR interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Document is a named upload; Name supplies the format hint
type Document struct {
	Name string
	Data []byte
}

// Extractor converts document bytes into cleaned text
type Extractor struct {
	ocr OCR
}

// Option configures an Extractor
type Option func(*Extractor)

// WithOCR enables image formats
func WithOCR(ocr OCR) Option {
	return func(e *Extractor) { e.ocr = ocr }
}

// New creates an Extractor
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract decodes data according to formatHint, a file name or extension.
// It fails with *UnsupportedFormatError for unknown formats and
// *ExtractionError for corrupt or empty content.
func (e *Extractor) Extract(ctx context.Context, data []byte, formatHint string) (string, error) {
	format := NormalizeFormat(formatHint)
	if !supportedFormats[format] {
		return "", &UnsupportedFormatError{Format: format}
	}
	if err := ctx.Err(); err != nil {
		return "", &ExtractionError{Format: format, Message: "cancelled", Cause: err}
	}
	if len(data) == 0 {
		return "", &ExtractionError{Format: format, Message: "empty document"}
	}

	var (
		raw string
		err error
	)
	switch format {
	case FormatTXT, FormatMD:
		if !utf8.Valid(data) {
			return "", &ExtractionError{Format: format, Message: "text is not valid UTF-8"}
		}
		raw = string(data)
	case FormatHTML, FormatHTM:
		raw, err = HTMLToText(data)
	case FormatDOCX:
		raw, err = extractDocx(data)
	case FormatPDF:
		raw, err = extractPDF(data)
	case FormatPNG, FormatJPG, FormatJPEG:
		if e.ocr == nil {
			return "", &ExtractionError{Format: format, Message: "no OCR engine configured"}
		}
		raw, err = e.ocr.Recognize(ctx, data)
	}
	if err != nil {
		return "", &ExtractionError{Format: format, Message: "unreadable content", Cause: err}
	}

	text := CleanText(raw)
	if text == "" {
		return "", &ExtractionError{Format: format, Message: "no text content found"}
	}
	return text, nil
}

// ExtractDocument extracts a named document
func (e *Extractor) ExtractDocument(ctx context.Context, doc Document) (string, error) {
	return e.Extract(ctx, doc.Data, doc.Name)
}

// NormalizeFormat maps a file name, extension or bare format name to a
// lowercase extension with a leading dot.
func NormalizeFormat(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return ""
	}
	if ext := filepath.Ext(hint); ext != "" {
		return ext
	}
	if strings.ContainsAny(hint, `/\`) {
		return ""
	}
	return "." + hint
}

// AllowedFormat reports whether a file name or extension is accepted
func AllowedFormat(name string) bool {
	return supportedFormats[NormalizeFormat(name)]
}

// Formats lists the accepted extensions in lexical order
func Formats() []string {
	out := make([]string, 0, len(supportedFormats))
	for f := range supportedFormats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
