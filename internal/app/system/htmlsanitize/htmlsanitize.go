// Package htmlsanitize cleans the rich text stored on blog posts, CMS pages
// and CMS articles before it is rendered, and derives plain-text excerpts
// for listings and meta descriptions.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// policy is the shared bluemonday policy for sanitizing rich text.
	policy     *bluemonday.Policy
	policyOnce sync.Once

	strict     *bluemonday.Policy
	strictOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// Start with UGC (User Generated Content) policy as base
		policy = bluemonday.UGCPolicy()

		// Tables from the content editor
		policy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		policy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		policy.AllowAttrs("class").OnElements("table", "th", "td", "tr")

		// Allow common text formatting
		policy.AllowElements("u", "s", "sub", "sup", "mark")

		// Captioned images in posts
		policy.AllowElements("figure", "figcaption")
		policy.AllowAttrs("loading").Matching(bluemonday.Paragraph).OnElements("img")

		// Editor plugins annotate elements with data-* attributes
		policy.AllowDataAttributes()

		// Allow style attribute on specific elements for tables
		policy.AllowAttrs("style").OnElements("table", "th", "td")
	})
	return policy
}

func getStrict() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// Sanitize cleans HTML input, removing potentially dangerous elements and attributes.
// It preserves safe formatting like bold, italic, lists, links, and tables.
// Returns the sanitized HTML string.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// SanitizeToHTML sanitizes HTML input and returns it as template.HTML,
// which is safe to render directly in Go templates without escaping.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(Sanitize(html))
}

// IsPlainText checks if content appears to be plain text (no HTML tags).
// This can be used to handle legacy plain-text content.
func IsPlainText(content string) bool {
	if content == "" {
		return true
	}
	// Simple check: if it contains both < and >, it's likely HTML
	// Valid HTML tags require both characters, so if either is missing, treat as plain text
	return !strings.Contains(content, "<") || !strings.Contains(content, ">")
}

// PlainTextToHTML converts plain text to minimal HTML by:
// - Escaping HTML entities
// - Converting newlines to <br> tags
// - Wrapping in a <p> tag if it doesn't start with one
func PlainTextToHTML(text string) string {
	if text == "" {
		return ""
	}
	// Escape HTML entities
	escaped := template.HTMLEscapeString(text)
	// Convert newlines to <br>
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay takes content (which may be plain text or HTML) and
// returns sanitized template.HTML ready for rendering.
// If the content appears to be plain text, it's converted to HTML first.
func PrepareForDisplay(content string) template.HTML {
	if content == "" {
		return ""
	}
	if IsPlainText(content) {
		return template.HTML(PlainTextToHTML(content))
	}
	return SanitizeToHTML(content)
}

// PlainText strips every tag from content, unescapes entities and collapses
// whitespace.
func PlainText(content string) string {
	if content == "" {
		return ""
	}
	// Keep words on either side of block tags apart.
	spaced := strings.NewReplacer("<", " <", ">", "> ").Replace(content)
	text := html.UnescapeString(getStrict().Sanitize(spaced))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt returns the plain text of content cut to at most max runes on a
// word boundary, with "..." appended when it was cut.
func Excerpt(content string, max int) string {
	text := PlainText(content)
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
