package page

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"docsite/internal/http/middleware"
	"docsite/internal/model"
	"docsite/internal/service"
)

const (
	adminPageSize     = 15
	minPasswordLength = 8
)

type adminListView struct {
	Result *service.DocumentListResult
	Counts *model.DocumentCounts
}

// AdminList shows the documents of the current locale, newest first.
func (p *Pages) AdminList(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	page := c.QueryInt("page", service.DefaultPage)
	if page < 1 {
		page = service.DefaultPage
	}

	res, err := p.cfg.Documents.List(c.UserContext(), service.DocumentListQuery{
		Language: l.String(),
		Page:     service.Page{Page: page, Limit: adminPageSize},
	})
	if err != nil {
		return err
	}
	counts, err := p.cfg.Documents.Count(c.UserContext(), l.String())
	if err != nil {
		return err
	}
	return p.render(c, fiber.StatusOK, "admin_list", tr(c).AdminDocuments, adminListView{Result: res, Counts: counts})
}

type formView struct {
	Action     string
	Editing    bool
	ID         int64
	Title      string
	Content    string
	Slug       string
	Published  bool
	Language   string
	Error      string
	MaxUploads int
}

func (p *Pages) formFromRequest(c *fiber.Ctx) (service.DocumentInput, formView) {
	published := c.FormValue("published") == "on" || c.FormValue("published") == "true"
	in := service.DocumentInput{
		Title:     c.FormValue("title"),
		Content:   c.FormValue("content"),
		Slug:      c.FormValue("slug"),
		Published: &published,
		Language:  c.FormValue("language"),
	}
	return in, formView{
		Title:      in.Title,
		Content:    in.Content,
		Slug:       in.Slug,
		Published:  published,
		Language:   in.Language,
		MaxUploads: p.cfg.MaxUploads,
	}
}

// formError re-renders the form with a message for errors users can fix.
func (p *Pages) formError(c *fiber.Ctx, form formView, title string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		form.Error = verr.Msg
		return p.render(c, fiber.StatusBadRequest, "admin_form", title, form)
	case errors.Is(err, service.ErrConflict):
		form.Error = "A document with this slug already exists"
		return p.render(c, fiber.StatusConflict, "admin_form", title, form)
	case errors.Is(err, service.ErrNotFound):
		return p.NotFound(c)
	default:
		return err
	}
}

// AdminNew renders an empty document form for the current locale.
func (p *Pages) AdminNew(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	return p.render(c, fiber.StatusOK, "admin_form", tr(c).AdminNewDocument, formView{
		Action:     localPath(l, "admin", "new"),
		Published:  true,
		Language:   l.String(),
		MaxUploads: p.cfg.MaxUploads,
	})
}

// AdminCreate stores a new document and returns to the list.
func (p *Pages) AdminCreate(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	in, form := p.formFromRequest(c)
	form.Action = localPath(l, "admin", "new")
	if in.Language == "" {
		in.Language = l.String()
		form.Language = in.Language
	}

	if _, err := p.cfg.Documents.Create(c.UserContext(), in); err != nil {
		return p.formError(c, form, tr(c).AdminNewDocument, err)
	}
	return c.Redirect(localPath(l, "admin"), fiber.StatusSeeOther)
}

// AdminEdit renders the form for an existing document.
func (p *Pages) AdminEdit(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return p.NotFound(c)
	}
	doc, err := p.cfg.Documents.Get(c.UserContext(), id)
	if errors.Is(err, service.ErrNotFound) {
		return p.NotFound(c)
	}
	if err != nil {
		return err
	}
	return p.render(c, fiber.StatusOK, "admin_form", tr(c).AdminEditDocument, formView{
		Action:     localPath(l, "admin", "edit", strconv.FormatInt(id, 10)),
		Editing:    true,
		ID:         doc.ID,
		Title:      doc.Title,
		Content:    doc.Content,
		Slug:       doc.Slug,
		Published:  doc.Published,
		Language:   doc.Language,
		MaxUploads: p.cfg.MaxUploads,
	})
}

// AdminUpdate saves an edited document.
func (p *Pages) AdminUpdate(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return p.NotFound(c)
	}
	in, form := p.formFromRequest(c)
	form.Action = localPath(l, "admin", "edit", strconv.FormatInt(id, 10))
	form.Editing = true
	form.ID = id

	if _, err := p.cfg.Documents.Update(c.UserContext(), id, in); err != nil {
		return p.formError(c, form, tr(c).AdminEditDocument, err)
	}
	return c.Redirect(localPath(l, "admin"), fiber.StatusSeeOther)
}

// AdminDelete removes a document and returns to the list.
func (p *Pages) AdminDelete(c *fiber.Ctx) error {
	l := middleware.LocaleFrom(c)
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return p.NotFound(c)
	}
	if err := p.cfg.Documents.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return p.NotFound(c)
		}
		return err
	}
	return c.Redirect(localPath(l, "admin"), fiber.StatusSeeOther)
}

type settingsView struct {
	Error   string
	Message string
}

// AdminSettings renders the password form.
func (p *Pages) AdminSettings(c *fiber.Ctx) error {
	return p.render(c, fiber.StatusOK, "admin_settings", tr(c).Settings, settingsView{})
}

// AdminChangePassword updates the signed-in user's password.
func (p *Pages) AdminChangePassword(c *fiber.Ctx) error {
	t := tr(c)
	claims := middleware.SessionFrom(c).Claims
	if claims == nil {
		return c.Redirect(localPath(middleware.LocaleFrom(c), "login"), fiber.StatusFound)
	}

	current := c.FormValue("currentPassword")
	next := c.FormValue("newPassword")
	if current == "" || next == "" {
		return p.render(c, fiber.StatusBadRequest, "admin_settings", t.Settings, settingsView{Error: "Current password and new password are required"})
	}
	if utf8.RuneCountInString(next) < minPasswordLength {
		return p.render(c, fiber.StatusBadRequest, "admin_settings", t.Settings, settingsView{Error: t.PasswordTooShort})
	}

	_, err := p.cfg.Credentials.UpdatePassword(c.UserContext(), claims.UserID, current, next)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return p.render(c, fiber.StatusBadRequest, "admin_settings", t.Settings, settingsView{Error: verr.Msg})
	case errors.Is(err, service.ErrIncorrectPassword):
		return p.render(c, fiber.StatusBadRequest, "admin_settings", t.Settings, settingsView{Error: "Current password is incorrect"})
	case errors.Is(err, service.ErrUserNotFound):
		return p.render(c, fiber.StatusBadRequest, "admin_settings", t.Settings, settingsView{Error: "User not found"})
	case err != nil:
		return err
	}
	return p.render(c, fiber.StatusOK, "admin_settings", t.Settings, settingsView{Message: t.PasswordUpdated})
}

// Loading is served by the admin guard while a session cannot be verified.
// The page refreshes itself until the revocation store answers again.
func (p *Pages) Loading(c *fiber.Ctx) error {
	c.Set("Refresh", "3")
	c.Set(fiber.HeaderRetryAfter, "3")
	return p.render(c, fiber.StatusServiceUnavailable, "loading", tr(c).Loading, nil)
}
