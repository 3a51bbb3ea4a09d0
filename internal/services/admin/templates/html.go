package templates

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"
)

// render turns a markup function into a templ component with the same
// buffering as generated templates: the outermost component writes through
// a pooled runtime buffer and flushes it on return, nested components reuse
// it.
func render(f func(ctx context.Context, h *htmlWriter) error) templ.Component {
	return templruntime.GeneratedTemplate(func(input templruntime.GeneratedComponentInput) (err error) {
		ctx := input.Context
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		buffer, isBuffer := templruntime.GetBuffer(input.Writer)
		if !isBuffer {
			defer func() {
				bufErr := templruntime.ReleaseBuffer(buffer)
				if err == nil {
					err = bufErr
				}
			}()
		}
		h := &htmlWriter{w: buffer}
		if err := f(ctx, h); err != nil {
			return err
		}
		return h.err
	})
}

// htmlWriter writes markup and keeps the first write error.
type htmlWriter struct {
	w   *templruntime.Buffer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = h.w.WriteString(part)
	}
}

// text writes escaped element content.
func (h *htmlWriter) text(value string) {
	h.raw(templ.EscapeString(value))
}

// attr writes ` name="value"` with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// urlAttr writes a sanitized URL attribute.
func (h *htmlWriter) urlAttr(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

// boolAttr writes a bare attribute when on.
func (h *htmlWriter) boolAttr(name string, on bool) {
	if on {
		h.raw(" ", name)
	}
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// hiddenInputs writes one hidden input per query value, sorted by name.
func (h *htmlWriter) hiddenInputs(q url.Values) {
	names := make([]string, 0, len(q))
	for name := range q {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range q[name] {
			h.raw("<input type=\"hidden\"")
			h.attr("name", name)
			h.attr("value", value)
			h.raw(">")
		}
	}
}

// classes joins non-empty class names.
func classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			out = append(out, name)
		}
	}
	return strings.Join(out, " ")
}
