// Package markdown renders document content to sanitized HTML and plain-text excerpts.
package markdown

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// ToHTML converts Markdown to HTML and strips anything unsafe (scripts, event handlers,
// javascript: URLs). The result is safe to embed in a page.
func ToHTML(md string) template.HTML {
	// parsers carry state and cannot be reused
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.HardLineBreak)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	raw := markdown.ToHTML([]byte(md), p, renderer)
	return template.HTML(policy.SanitizeBytes(raw))
}

var (
	mdImage   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	htmlImage = regexp.MustCompile(`<img[^>]*>`)
	mdLink    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	htmlTag   = regexp.MustCompile(`<[^>]*>`)
	mdMarks   = regexp.MustCompile("[#*_`]")
	spaces    = regexp.MustCompile(`\s+`)
)

// Excerpt returns the first max characters of md as plain text, with images dropped,
// links reduced to their text and an ellipsis appended when truncated.
func Excerpt(md string, max int) string {
	s := mdImage.ReplaceAllString(md, "")
	s = htmlImage.ReplaceAllString(s, "")
	s = mdLink.ReplaceAllString(s, "$1")
	s = htmlTag.ReplaceAllString(s, "")
	s = mdMarks.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaces.ReplaceAllString(s, " "))

	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "..."
}
