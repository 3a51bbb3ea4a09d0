package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/promptops/console/internal/services/admin/routepath"
)

// UserForm holds submitted values of the create user form.
type UserForm struct {
	Username string
	Email    string
	Role     string
}

// UsersPageView is the data of the users page.
type UsersPageView struct {
	Flash Flash
	Form  UserForm
	Roles []Option
	Table TableView
}

// UsersPage renders the users page body.
func UsersPage(view UsersPageView, loc Localizer) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) error {
		h.component(ctx, Heading(PageHeading{
			Title:    T(loc, "page.users.title"),
			Subtitle: T(loc, "page.users.subtitle"),
		}))
		h.component(ctx, FlashMessage(view.Flash))
		createForm(h, T(loc, "form.users.create"), routepath.UsersCreate, view.Flash.Error)
		formField(h, T(loc, "form.username"), "username", "text", view.Form.Username, true)
		formField(h, T(loc, "form.email"), "email", "email", view.Form.Email, true)
		formSelect(h, T(loc, "form.role"), "role", view.Roles)
		closeCreateForm(h, T(loc, "form.submit"))
		h.component(ctx, Table(view.Table, loc))
		return h.err
	})
}

// UsersFullPage renders the users page inside the layout.
func UsersFullPage(page PageContext, view UsersPageView) templ.Component {
	return Layout(page, T(page.Loc, "page.users.title"), UsersPage(view, page.Loc))
}
