package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"docsite/internal/i18n"
	"docsite/internal/model"
)

const (
	searchLimit     = 20
	snippetLead     = 50
	snippetLength   = 200
	snippetEllipsis = "..."
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var markdownMarks = strings.NewReplacer("#", "", "*", "", "_", "")

// Search ranks title matches first, then newer documents.
func (s *documentService) Search(ctx context.Context, query, language string) ([]model.SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []model.SearchResult{}, nil
	}
	if language != "" && !i18n.IsSupported(language) {
		return nil, invalid("Unsupported language: %s", language)
	}

	needle := strings.ToLower(q)
	docs, err := s.repo.Search(ctx, "%"+likeEscaper.Replace(needle)+"%", language, searchLimit)
	if err != nil {
		return nil, err
	}

	out := make([]model.SearchResult, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.SearchResult{
			ID:        d.ID,
			Title:     d.Title,
			Slug:      d.Slug,
			Published: d.Published,
			Language:  d.Language,
			Snippet:   snippet(d.Title, d.Content, needle),
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return out, nil
}

// snippet returns the title when it contains needle. Otherwise it cuts up to 200
// characters of content starting 50 characters before the first match, removes
// Markdown marks and adds ellipses.
func snippet(title, content, needle string) string {
	if strings.Contains(strings.ToLower(title), needle) {
		return title
	}

	runes := []rune(content)
	start := 0
	if idx := strings.Index(strings.ToLower(content), needle); idx >= 0 {
		start = runeOffset(content, idx) - snippetLead
		if start < 0 {
			start = 0
		}
	}
	end := start + snippetLength
	if end > len(runes) {
		end = len(runes)
	}

	clean := markdownMarks.Replace(string(runes[start:end]))
	if clean == "" || clean[0] < 'A' || clean[0] > 'Z' {
		clean = snippetEllipsis + clean
	}
	return clean + snippetEllipsis
}

// runeOffset converts a byte index of the lowercased string into a rune index.
// Lowercasing can change byte widths, so the rune count of the prefix is used.
func runeOffset(s string, lowerByteIdx int) int {
	lower := strings.ToLower(s)
	if lowerByteIdx > len(lower) {
		lowerByteIdx = len(lower)
	}
	return utf8.RuneCountInString(lower[:lowerByteIdx])
}
