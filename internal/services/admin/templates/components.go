package templates

import (
	"context"

	"github.com/a-h/templ"
)

// PageHeading holds header metadata for pages.
type PageHeading struct {
	// Title is the page heading.
	Title string
	// Subtitle renders under the heading when set.
	Subtitle string
}

// Flash is a one-shot status message shown above page content.
type Flash struct {
	Message string
	Error   bool
}

// Heading renders the page heading block.
func Heading(heading PageHeading) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) error {
		h.raw(`<header class="mb-4"><h1 class="text-2xl font-semibold">`)
		h.text(heading.Title)
		h.raw("</h1>")
		if heading.Subtitle != "" {
			h.raw(`<p class="text-base-content/70">`)
			h.text(heading.Subtitle)
			h.raw("</p>")
		}
		h.raw("</header>")
		return h.err
	})
}

// FlashMessage renders an alert when flash carries a message.
func FlashMessage(flash Flash) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) error {
		if flash.Message == "" {
			return nil
		}
		class := "alert alert-success"
		if flash.Error {
			class = "alert alert-error"
		}
		h.raw(`<div role="alert"`)
		h.attr("class", class)
		h.raw("><span>")
		h.text(flash.Message)
		h.raw("</span></div>")
		return h.err
	})
}

// LoadingSpinner renders the HTMX request indicator.
func LoadingSpinner() templ.Component {
	return render(func(_ context.Context, h *htmlWriter) error {
		h.raw(`<span class="htmx-indicator loading loading-ring loading-md" aria-hidden="true"></span>`)
		return h.err
	})
}
