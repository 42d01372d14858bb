// Package fetch - platform.go recognizes document hosts and rewrites share
// links into direct downloads.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known résumé host.
type Platform string

const (
	// PlatformGoogleDocs is a Google Docs document
	PlatformGoogleDocs Platform = "google_docs"
	// PlatformGitHub is a file in a GitHub repository
	PlatformGitHub Platform = "github"
	// PlatformDropbox is a Dropbox share link
	PlatformDropbox Platform = "dropbox"
	// PlatformUnknown is any other site
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the hosting platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case host == "docs.google.com" && strings.HasPrefix(parsed.Path, "/document/d/"):
		return PlatformGoogleDocs
	case host == "github.com" || host == "www.github.com":
		return PlatformGitHub
	case strings.HasSuffix(host, "dropbox.com"):
		return PlatformDropbox
	default:
		return PlatformUnknown
	}
}

// ResolveDownloadURL rewrites viewer links into URLs that return the raw
// document. Unknown or malformed links are returned unchanged.
func ResolveDownloadURL(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	switch DetectPlatform(urlStr) {
	case PlatformGoogleDocs:
		// /document/d/<id>/edit -> /document/d/<id>/export?format=txt
		parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(parts) < 3 || parts[2] == "" {
			return urlStr
		}
		return "https://docs.google.com/document/d/" + parts[2] + "/export?format=txt"

	case PlatformGitHub:
		// /<owner>/<repo>/blob/<ref>/<path> -> raw.githubusercontent.com/<owner>/<repo>/<ref>/<path>
		parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(parts) < 5 || parts[2] != "blob" {
			return urlStr
		}
		rest := append(parts[:2:2], parts[3:]...)
		return "https://raw.githubusercontent.com/" + strings.Join(rest, "/")

	case PlatformDropbox:
		q := parsed.Query()
		q.Set("dl", "1")
		parsed.RawQuery = q.Encode()
		return parsed.String()
	}

	return urlStr
}

// NoiseSelectors returns elements that never hold résumé content.
func NoiseSelectors() []string {
	return []string{
		// Contact and download widgets
		"form",
		".contact-form",
		".download-button",
		".print-button",

		// Social and share buttons
		".social-share",
		".share-buttons",

		// Cookie and GDPR
		".cookie-consent",
		".gdpr-notice",
	}
}
