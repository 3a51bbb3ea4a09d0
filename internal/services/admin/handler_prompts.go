package admin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/promptops/console/internal/platform/errors"
	"github.com/promptops/console/internal/platform/requestctx"
	"github.com/promptops/console/internal/services/admin/routepath"
	"github.com/promptops/console/internal/services/admin/storage"
	"github.com/promptops/console/internal/services/admin/templates"
	"github.com/promptops/console/internal/services/shared/htmx"
	"golang.org/x/text/message"
)

// HandlePromptsPage renders the prompts page with its table.
func (h *Handler) HandlePromptsPage(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	loc, lang := h.localizer(w, r)

	rendered, err := h.promptsTable(r, r.URL.Query(), loc)
	if err != nil {
		logRequestError(r, "list prompts", err)
		renderError(w, err, lang)
		return
	}
	if rendered.Acted {
		htmx.Redirect(w, r, rendered.CanonicalURL(routepath.Prompts), http.StatusSeeOther)
		return
	}

	view := templates.PromptsPageView{
		Form:  templates.PromptForm{Owner: requestctx.UserIDFromContext(r.Context())},
		Table: rendered.View,
	}
	if name := strings.TrimSpace(r.URL.Query().Get(createdParam)); name != "" {
		view.Flash = templates.Flash{Message: loc.Sprintf("flash.prompts.created", name)}
	}
	htmx.RenderPage(
		w,
		r,
		templates.PromptsPage(view, loc),
		templates.PromptsFullPage(h.pageContext(lang, loc, r), view),
		htmx.TitleTag(templates.PageTitle(loc, loc.Sprintf("page.prompts.title"))),
	)
}

// HandlePromptsTable renders the prompts table fragment.
func (h *Handler) HandlePromptsTable(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	loc, lang := h.localizer(w, r)
	rendered, err := h.promptsTable(r, r.URL.Query(), loc)
	if err != nil {
		logRequestError(r, "list prompts", err)
		renderError(w, err, lang)
		return
	}
	tableResponse(w, r, routepath.Prompts, rendered, loc)
}

// HandlePromptCreate stores a prompt submitted by the create form.
func (h *Handler) HandlePromptCreate(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	loc, lang := h.localizer(w, r)
	if !requireSameOrigin(w, r, lang) {
		return
	}
	if !canWrite(r) {
		renderError(w, apperrors.New(apperrors.CodePermissionDenied, "role cannot create prompts"), lang)
		return
	}
	if err := r.ParseForm(); err != nil {
		renderError(w, apperrors.Wrap(apperrors.CodeInvalidArgument, "parse prompt form", err), lang)
		return
	}

	form := templates.PromptForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Version: strings.TrimSpace(r.PostFormValue("version")),
		Commit:  strings.TrimSpace(r.PostFormValue("commit")),
		Owner:   strings.TrimSpace(r.PostFormValue("owner")),
	}
	prompt := storage.Prompt{
		Name:          form.Name,
		LatestVersion: form.Version,
		LatestCommit:  form.Commit,
		Owner:         form.Owner,
	}

	ctx, cancel := storeContext(r)
	err := h.store.PutPrompt(ctx, prompt)
	cancel()
	if err != nil {
		logRequestError(r, "put prompt", err)
		h.renderPromptFormError(w, r, form, err, loc, lang)
		return
	}
	htmx.Redirect(w, r, routepath.WithQuery(routepath.Prompts, url.Values{createdParam: {prompt.Name}}), http.StatusSeeOther)
}

func (h *Handler) renderPromptFormError(w http.ResponseWriter, r *http.Request, form templates.PromptForm, cause error, loc *message.Printer, lang string) {
	rendered, err := h.promptsTable(r, url.Values{}, loc)
	if err != nil {
		logRequestError(r, "list prompts", err)
		renderError(w, cause, lang)
		return
	}
	view := templates.PromptsPageView{
		Flash: templates.Flash{Message: apperrors.LocalizedMessage(cause, lang), Error: true},
		Form:  form,
		Table: rendered.View,
	}
	page := h.pageContext(lang, loc, r)
	page.CurrentPath = routepath.Prompts
	page.Nav = h.menu.Resolve(routepath.Prompts)
	templ.Handler(
		templates.PromptsFullPage(page, view),
		templ.WithStatus(apperrors.HTTPStatus(cause)),
	).ServeHTTP(w, r)
}

func (h *Handler) promptsTable(r *http.Request, q url.Values, loc *message.Printer) (tableRender, error) {
	ctx, cancel := storeContext(r)
	defer cancel()
	rows, err := h.store.ListPrompts(ctx)
	if err != nil {
		return tableRender{}, err
	}
	return h.prompts.render(q, rows, loc)
}
