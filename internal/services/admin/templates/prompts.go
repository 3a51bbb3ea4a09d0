package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/promptops/console/internal/services/admin/routepath"
)

// PromptForm holds submitted values of the create prompt form.
type PromptForm struct {
	Name    string
	Version string
	Commit  string
	Owner   string
}

// PromptsPageView is the data of the prompts page.
type PromptsPageView struct {
	Flash Flash
	Form  PromptForm
	Table TableView
}

// PromptsPage renders the prompts page body.
func PromptsPage(view PromptsPageView, loc Localizer) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) error {
		h.component(ctx, Heading(PageHeading{
			Title:    T(loc, "page.prompts.title"),
			Subtitle: T(loc, "page.prompts.subtitle"),
		}))
		h.component(ctx, FlashMessage(view.Flash))
		createForm(h, T(loc, "form.prompts.create"), routepath.PromptsCreate, view.Flash.Error)
		formField(h, T(loc, "form.name"), "name", "text", view.Form.Name, true)
		formField(h, T(loc, "form.version"), "version", "text", view.Form.Version, true)
		formField(h, T(loc, "form.commit"), "commit", "text", view.Form.Commit, false)
		formField(h, T(loc, "form.owner"), "owner", "text", view.Form.Owner, false)
		closeCreateForm(h, T(loc, "form.submit"))
		h.component(ctx, Table(view.Table, loc))
		return h.err
	})
}

// PromptsFullPage renders the prompts page inside the layout.
func PromptsFullPage(page PageContext, view PromptsPageView) templ.Component {
	return Layout(page, T(page.Loc, "page.prompts.title"), PromptsPage(view, page.Loc))
}
