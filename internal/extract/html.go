package extract

import (
	"bytes"
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// HTMLToText strips non-content elements and converts the remaining markup to
// Markdown, which keeps headings and list structure readable as plain text.
func HTMLToText(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, svg, nav, footer").Remove()

	cleaned, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		// fall back to the raw text nodes
		return doc.Text(), nil
	}
	return md, nil
}
