package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/promptops/console/internal/services/admin/nav"
)

// Asset URLs loaded by every full page.
const (
	htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"
	daisyUIURL    = "https://cdn.jsdelivr.net/npm/daisyui@4.12.14/dist/full.min.css"
	adminStyleURL = "/static/admin.css"
	mainContentID = "content"
)

// AppName returns the application name for the active locale.
func AppName(loc Localizer) string {
	return T(loc, "core.app.name")
}

// Layout renders a full HTML document with the sidebar and body in <main>.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) error {
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", page.Lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(PageTitle(page.Loc, title))
		h.raw("</title>")
		h.raw(`<link rel="stylesheet"`)
		h.attr("href", daisyUIURL)
		h.raw(`><link rel="stylesheet"`)
		h.attr("href", adminStyleURL)
		h.raw(`><script defer`)
		h.attr("src", htmxScriptURL)
		h.raw(`></script></head><body class="min-h-screen bg-base-200"><div class="flex">`)
		h.component(ctx, Sidebar(page))
		h.raw(`<main class="flex-1 p-6"`)
		h.attr("id", mainContentID)
		h.raw(">")
		h.component(ctx, body)
		h.raw("</main></div></body></html>")
		return h.err
	})
}

// PageTitle combines a page title with the application name.
func PageTitle(loc Localizer, title string) string {
	app := AppName(loc)
	if title == "" {
		return app
	}
	return title + " | " + app
}

// Sidebar renders the navigation menu and language switcher.
func Sidebar(page PageContext) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) error {
		h.raw(`<aside class="w-64 min-h-screen bg-base-100 p-4"><a href="/" class="text-lg font-bold">`)
		h.text(AppName(page.Loc))
		h.raw(`</a><ul class="menu mt-4">`)
		for _, item := range page.Nav {
			h.raw("<li>")
			switch item.Kind {
			case nav.KindLink:
				navLink(h, page.Loc, item)
			case nav.KindCollapsible:
				h.raw("<details")
				h.boolAttr("open", item.Open)
				h.raw("><summary>")
				h.text(T(page.Loc, item.Title))
				h.raw("</summary><ul>")
				for _, child := range item.Children {
					h.raw("<li>")
					navLink(h, page.Loc, child)
					h.raw("</li>")
				}
				h.raw("</ul></details>")
			}
			h.raw("</li>")
		}
		h.raw(`</ul><div class="mt-6"><span class="text-sm">`)
		h.text(T(page.Loc, "core.language.label"))
		h.raw(`</span><ul class="menu menu-sm">`)
		for _, option := range LanguageOptions(page, page.Loc) {
			h.raw("<li><a")
			h.urlAttr("href", LanguageURL(page, option.Tag))
			if option.Active {
				h.attr("class", "active")
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a></li>")
		}
		h.raw("</ul></div></aside>")
		return h.err
	})
}

func navLink(h *htmlWriter, loc Localizer, item nav.View) {
	h.raw("<a")
	h.urlAttr("href", item.URL)
	if item.Active {
		h.attr("class", "active")
		h.attr("aria-current", "page")
	}
	h.raw(">")
	h.text(T(loc, item.Title))
	if item.Badge != "" {
		h.raw(` <span class="badge badge-sm badge-primary">`)
		h.text(T(loc, item.Badge))
		h.raw("</span>")
	}
	h.raw("</a>")
}
