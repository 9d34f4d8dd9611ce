package page

import (
	"errors"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docsite/internal/http/middleware"
	"docsite/internal/markdown"
	"docsite/internal/model"
	"docsite/internal/service"
)

const (
	homeSections  = 3
	excerptLength = 150
)

type section struct {
	Title       string
	Slug        string
	Description string
}

// Home shows the hero and the first published documents of the locale.
func (p *Pages) Home(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	docs, err := p.cfg.Documents.ListPublished(c.UserContext(), l)
	if err != nil {
		return err
	}
	if len(docs) > homeSections {
		docs = docs[:homeSections]
	}
	sections := make([]section, 0, len(docs))
	for _, d := range docs {
		sections = append(sections, section{Title: d.Title, Slug: d.Slug, Description: markdown.Excerpt(d.Content, excerptLength)})
	}
	return p.render(c, fiber.StatusOK, "home", "", sections)
}

// DocsIndex redirects to the first published document, or home when there is none.
func (p *Pages) DocsIndex(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	docs, err := p.cfg.Documents.ListPublished(c.UserContext(), l)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return c.Redirect(localPath(l), fiber.StatusFound)
	}
	return c.Redirect(localPath(l, "docs", docs[0].Slug), fiber.StatusFound)
}

type docView struct {
	Doc     *model.Document
	HTML    template.HTML
	Sidebar []model.Document
	Current string
}

// Doc renders one document with the locale's sidebar. Drafts are visible to signed-in users only.
func (p *Pages) Doc(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	doc, err := p.cfg.Documents.GetBySlug(c.UserContext(), c.Params("slug"), l)
	if errors.Is(err, service.ErrNotFound) {
		return p.NotFound(c)
	}
	if err != nil {
		return err
	}
	if !doc.Published && middleware.SessionFrom(c).Status != middleware.StatusAuthenticated {
		return p.NotFound(c)
	}

	sidebar, err := p.cfg.Documents.ListPublished(c.UserContext(), l)
	if err != nil {
		return err
	}
	return p.render(c, fiber.StatusOK, "doc", doc.Title, docView{
		Doc:     doc,
		HTML:    markdown.ToHTML(doc.Content),
		Sidebar: sidebar,
		Current: doc.Slug,
	})
}

type searchView struct {
	Query   string
	Results []model.SearchResult
}

// Search renders published-document matches for ?q in the current locale.
func (p *Pages) Search(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	q := strings.TrimSpace(c.Query("q"))
	results, err := p.cfg.Documents.Search(c.UserContext(), q, l.String())
	if err != nil {
		return err
	}
	return p.render(c, fiber.StatusOK, "search", tr(c).SearchResults, searchView{Query: q, Results: results})
}

// NotFound renders the localized 404 page.
func (p *Pages) NotFound(c *fiber.Ctx) error {
	return p.render(c, fiber.StatusNotFound, "notfound", tr(c).DocumentNotFound, nil)
}
