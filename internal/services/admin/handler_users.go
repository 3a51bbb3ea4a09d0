package admin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/promptops/console/internal/platform/errors"
	"github.com/promptops/console/internal/services/admin/routepath"
	"github.com/promptops/console/internal/services/admin/storage"
	"github.com/promptops/console/internal/services/admin/templates"
	"github.com/promptops/console/internal/services/shared/htmx"
	"golang.org/x/text/message"
)

// createdParam names the record created by the previous form post.
const createdParam = "created"

// HandleUsersPage renders the users page with its table.
func (h *Handler) HandleUsersPage(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	loc, lang := h.localizer(w, r)

	rendered, err := h.usersTable(r, r.URL.Query(), loc)
	if err != nil {
		logRequestError(r, "list users", err)
		renderError(w, err, lang)
		return
	}
	if rendered.Acted {
		htmx.Redirect(w, r, rendered.CanonicalURL(routepath.Users), http.StatusSeeOther)
		return
	}

	view := templates.UsersPageView{
		Roles: roleOptions(loc, ""),
		Table: rendered.View,
	}
	if name := strings.TrimSpace(r.URL.Query().Get(createdParam)); name != "" {
		view.Flash = templates.Flash{Message: loc.Sprintf("flash.users.created", name)}
	}
	htmx.RenderPage(
		w,
		r,
		templates.UsersPage(view, loc),
		templates.UsersFullPage(h.pageContext(lang, loc, r), view),
		htmx.TitleTag(templates.PageTitle(loc, loc.Sprintf("page.users.title"))),
	)
}

// HandleUsersTable renders the users table fragment.
func (h *Handler) HandleUsersTable(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	loc, lang := h.localizer(w, r)
	rendered, err := h.usersTable(r, r.URL.Query(), loc)
	if err != nil {
		logRequestError(r, "list users", err)
		renderError(w, err, lang)
		return
	}
	tableResponse(w, r, routepath.Users, rendered, loc)
}

// HandleUserCreate stores a user submitted by the create form.
func (h *Handler) HandleUserCreate(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	loc, lang := h.localizer(w, r)
	if !requireSameOrigin(w, r, lang) {
		return
	}
	if !canWrite(r) {
		renderError(w, apperrors.New(apperrors.CodePermissionDenied, "role cannot create users"), lang)
		return
	}
	if err := r.ParseForm(); err != nil {
		renderError(w, apperrors.Wrap(apperrors.CodeInvalidArgument, "parse user form", err), lang)
		return
	}

	form := templates.UserForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Role:     strings.TrimSpace(r.PostFormValue("role")),
	}
	user := storage.User{Username: form.Username, Email: form.Email, Role: storage.Role(form.Role)}

	ctx, cancel := storeContext(r)
	err := h.store.PutUser(ctx, user)
	cancel()
	if err != nil {
		logRequestError(r, "put user", err)
		h.renderUserFormError(w, r, form, err, loc, lang)
		return
	}
	htmx.Redirect(w, r, routepath.WithQuery(routepath.Users, url.Values{createdParam: {user.Username}}), http.StatusSeeOther)
}

// renderUserFormError shows the users page again with the submitted values
// and the localized failure.
func (h *Handler) renderUserFormError(w http.ResponseWriter, r *http.Request, form templates.UserForm, cause error, loc *message.Printer, lang string) {
	rendered, err := h.usersTable(r, url.Values{}, loc)
	if err != nil {
		logRequestError(r, "list users", err)
		renderError(w, cause, lang)
		return
	}
	view := templates.UsersPageView{
		Flash: templates.Flash{Message: apperrors.LocalizedMessage(cause, lang), Error: true},
		Form:  form,
		Roles: roleOptions(loc, form.Role),
		Table: rendered.View,
	}
	page := h.pageContext(lang, loc, r)
	page.CurrentPath = routepath.Users
	page.Nav = h.menu.Resolve(routepath.Users)
	templ.Handler(
		templates.UsersFullPage(page, view),
		templ.WithStatus(apperrors.HTTPStatus(cause)),
	).ServeHTTP(w, r)
}

func (h *Handler) usersTable(r *http.Request, q url.Values, loc *message.Printer) (tableRender, error) {
	ctx, cancel := storeContext(r)
	defer cancel()
	rows, err := h.store.ListUsers(ctx)
	if err != nil {
		return tableRender{}, err
	}
	return h.users.render(q, rows, loc)
}

// roleOptions lists the selectable roles, defaulting to viewer.
func roleOptions(loc *message.Printer, selected string) []templates.Option {
	if _, ok := storage.ParseRole(selected); !ok {
		selected = string(storage.RoleViewer)
	}
	options := make([]templates.Option, 0, len(storage.Roles()))
	for _, role := range storage.Roles() {
		options = append(options, templates.Option{
			Value:    string(role),
			Label:    templates.T(loc, "role."+string(role)),
			Selected: string(role) == selected,
		})
	}
	return options
}
