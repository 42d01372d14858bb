// Package fetch - resume.go downloads a résumé and names it by format so the
// extractor can convert it.
package fetch

import (
	"context"
	"mime"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/extract"
)

// contentTypeFormats maps media types to extractor formats
var contentTypeFormats = map[string]string{
	"application/pdf": extract.FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": extract.FormatDOCX,
	"text/html":     extract.FormatHTML,
	"text/plain":    extract.FormatTXT,
	"text/markdown": extract.FormatMD,
	"image/png":     extract.FormatPNG,
	"image/jpeg":    extract.FormatJPG,
}

// Resume downloads the résumé at urlStr. HTML pages are reduced to their main
// text, re-rendered in a headless browser first when opts.UseBrowser is set and
// the plain HTTP text is too short. Other formats are returned as-is.
func Resume(ctx context.Context, urlStr string, opts *Options, logger *zap.Logger) (extract.Document, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	resolved := ResolveDownloadURL(urlStr)
	if resolved != urlStr {
		logger.Debug("resolved download URL", zap.String("url", urlStr), zap.String("resolved", resolved))
	}

	result, err := URL(ctx, resolved, opts)
	if err != nil {
		return extract.Document{}, err
	}

	format := DocumentFormat(resolved, result.ContentType)
	name := documentName(resolved, format)
	if format != extract.FormatHTML && format != extract.FormatHTM {
		return extract.Document{Name: name, Data: result.Body}, nil
	}

	text, err := ExtractMainText(result.HTML(), ResumeSelectors(), NoiseSelectors()...)
	if err != nil {
		return extract.Document{}, &Error{URL: resolved, Message: "failed to extract page text", Cause: err}
	}

	if opts.UseBrowser && ShouldUseBrowser(text) {
		render := opts.Render
		if render == nil {
			render = WithBrowser
		}
		html, renderErr := render(ctx, resolved, opts.BrowserTimeout, logger)
		if renderErr != nil {
			logger.Warn("browser rendering failed, keeping HTTP content",
				zap.String("url", resolved),
				zap.Error(renderErr))
		} else if rendered, err := ExtractMainText(html, ResumeSelectors(), NoiseSelectors()...); err == nil {
			text = rendered
		}
	}

	return extract.Document{Name: strings.TrimSuffix(name, format) + extract.FormatTXT, Data: []byte(text)}, nil
}

// DocumentFormat picks the extractor format from the Content-Type header,
// falling back to the URL path extension and then to HTML.
func DocumentFormat(urlStr, contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if format, ok := contentTypeFormats[strings.ToLower(mediaType)]; ok {
			return format
		}
	}

	if parsed, err := url.Parse(urlStr); err == nil {
		if ext := strings.ToLower(path.Ext(parsed.Path)); extract.AllowedFormat(ext) {
			return ext
		}
	}

	return extract.FormatHTML
}

func documentName(urlStr, format string) string {
	base := "resume"
	if parsed, err := url.Parse(urlStr); err == nil {
		if b := path.Base(parsed.Path); b != "" && b != "." && b != "/" {
			base = strings.TrimSuffix(b, path.Ext(b))
		}
	}
	return base + format
}
