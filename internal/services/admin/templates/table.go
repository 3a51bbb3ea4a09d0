package templates

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/promptops/console/internal/services/admin/routepath"
)

// TableView is a computed table ready to render. Every link carries a full
// query so the table works both as an HTMX fragment and as a plain page.
type TableView struct {
	// ID is the element id swapped by HTMX requests.
	ID string
	// PartialURL serves the table fragment; PageURL serves the full page.
	PartialURL string
	PageURL    string
	// Query is the canonical state query of the current view.
	Query   url.Values
	Headers []HeaderView
	Rows    [][]string
	Toolbar ToolbarView
	Pager   PagerView
}

// HeaderView is one visible column header.
type HeaderView struct {
	ID       string
	Label    string
	Sortable bool
	// Direction is "asc", "desc", or empty when unsorted.
	Direction string
	// Priority is the 1-based position in a multi-column sort, 0 otherwise.
	Priority  int
	SortQuery url.Values
}

// ToolbarView holds the filter inputs and view controls.
type ToolbarView struct {
	TextFilters []TextFilterView
	Facets      []FacetView
	ShowReset   bool
	ResetQuery  url.Values
	Columns     []ColumnToggleView
}

// TextFilterView is a free-text filter input.
type TextFilterView struct {
	ColumnID string
	Label    string
	Value    string
	// Query holds the state carried by the filter form.
	Query url.Values
}

// FacetView is a multi-select filter with its options.
type FacetView struct {
	ColumnID   string
	Label      string
	Options    []FacetOptionView
	Selected   int
	ClearQuery url.Values
}

// FacetOptionView is one selectable facet value; Query toggles it.
type FacetOptionView struct {
	Value    string
	Label    string
	Count    int
	Selected bool
	Query    url.Values
}

// ColumnToggleView shows or hides one column.
type ColumnToggleView struct {
	ID      string
	Label   string
	Visible bool
	Query   url.Values
}

// PagerView holds pagination controls.
type PagerView struct {
	PageIndex int
	PageCount int
	// Total counts filtered rows, RawTotal all rows.
	Total      int
	RawTotal   int
	HasPrev    bool
	HasNext    bool
	FirstQuery url.Values
	PrevQuery  url.Values
	NextQuery  url.Values
	LastQuery  url.Values
	PageSize   int
	PageSizes  []int
	// SizeQuery holds the state carried by the page size form.
	SizeQuery url.Values
}

// Table renders the toolbar, grid, and pager of view.
func Table(view TableView, loc Localizer) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) error {
		h.raw("<section")
		h.attr("id", view.ID)
		h.raw(` class="space-y-3">`)
		tableToolbar(ctx, h, view, loc)
		tableGrid(h, view, loc)
		tablePager(h, view, loc)
		h.raw("</section>")
		return h.err
	})
}

// link writes the opening of an anchor that navigates to q on the page and
// swaps the table when HTMX is present.
func (v TableView) link(h *htmlWriter, q url.Values, class string) {
	h.raw("<a")
	h.urlAttr("href", routepath.WithQuery(v.PageURL, q))
	h.urlAttr("hx-get", routepath.WithQuery(v.PartialURL, q))
	h.attr("hx-target", "#"+v.ID)
	h.attr("hx-swap", "outerHTML")
	h.attr("hx-indicator", "#"+v.ID+"-spinner")
	if class != "" {
		h.attr("class", class)
	}
}

// form writes the opening of a GET form targeting the table.
func (v TableView) form(h *htmlWriter, class string) {
	h.raw(`<form method="get"`)
	h.urlAttr("action", v.PageURL)
	h.urlAttr("hx-get", v.PartialURL)
	h.attr("hx-target", "#"+v.ID)
	h.attr("hx-swap", "outerHTML")
	h.attr("hx-indicator", "#"+v.ID+"-spinner")
	h.attr("class", class)
	h.raw(">")
}

func tableToolbar(ctx context.Context, h *htmlWriter, view TableView, loc Localizer) {
	h.raw(`<div class="flex flex-wrap items-center gap-2">`)
	for _, filter := range view.Toolbar.TextFilters {
		view.form(h, "join")
		h.hiddenInputs(filter.Query)
		h.raw(`<input type="hidden" name="set_filter"`)
		h.attr("value", filter.ColumnID)
		h.raw(`><input type="search" name="value" class="input input-sm input-bordered join-item"`)
		h.attr("value", filter.Value)
		h.attr("placeholder", T(loc, "table.filter.placeholder", filter.Label))
		h.attr("aria-label", filter.Label)
		h.raw(`><button type="submit" class="btn btn-sm join-item">`)
		h.text(T(loc, "table.filter.apply"))
		h.raw("</button></form>")
	}
	for _, facet := range view.Toolbar.Facets {
		h.raw(`<div class="dropdown"><div tabindex="0" role="button" class="btn btn-sm btn-outline border-dashed">`)
		h.text(facet.Label)
		if facet.Selected > 0 {
			h.raw(` <span class="badge badge-sm badge-secondary">`)
			h.text(strconv.Itoa(facet.Selected))
			h.raw("</span>")
		}
		h.raw(`</div><ul tabindex="0" class="dropdown-content menu bg-base-100 rounded-box z-10 w-56 p-2 shadow">`)
		for _, option := range facet.Options {
			h.raw("<li>")
			view.link(h, option.Query, "")
			h.attr("data-facet", facet.ColumnID+":"+option.Value)
			h.raw(`><input type="checkbox" class="checkbox checkbox-xs" tabindex="-1"`)
			h.boolAttr("checked", option.Selected)
			h.raw("><span>")
			h.text(option.Label)
			h.raw(`</span><span class="badge badge-ghost ml-auto">`)
			h.text(T(loc, "table.facet.count", option.Count))
			h.raw("</span></a></li>")
		}
		if facet.Selected > 0 {
			h.raw(`<li class="border-t border-base-300 mt-1 pt-1">`)
			view.link(h, facet.ClearQuery, "justify-center")
			h.raw(">")
			h.text(T(loc, "table.reset"))
			h.raw("</a></li>")
		}
		h.raw("</ul></div>")
	}
	if view.Toolbar.ShowReset {
		view.link(h, view.Toolbar.ResetQuery, "btn btn-sm btn-ghost")
		h.raw(">")
		h.text(T(loc, "table.reset"))
		h.raw("</a>")
	}
	if len(view.Toolbar.Columns) > 0 {
		h.raw(`<div class="dropdown dropdown-end ml-auto"><div tabindex="0" role="button" class="btn btn-sm btn-outline"`)
		h.attr("title", T(loc, "table.view.toggle"))
		h.raw(">")
		h.text(T(loc, "table.view"))
		h.raw(`</div><ul tabindex="0" class="dropdown-content menu bg-base-100 rounded-box z-10 w-48 p-2 shadow">`)
		for _, column := range view.Toolbar.Columns {
			h.raw("<li>")
			view.link(h, column.Query, "")
			h.attr("data-column", column.ID)
			h.raw(`><input type="checkbox" class="checkbox checkbox-xs" tabindex="-1"`)
			h.boolAttr("checked", column.Visible)
			h.raw("><span>")
			h.text(column.Label)
			h.raw("</span></a></li>")
		}
		h.raw("</ul></div>")
	}
	h.raw("<span")
	h.attr("id", view.ID+"-spinner")
	h.raw(">")
	h.component(ctx, LoadingSpinner())
	h.raw("</span></div>")
}

func tableGrid(h *htmlWriter, view TableView, loc Localizer) {
	h.raw(`<div class="overflow-x-auto rounded-box border border-base-300"><table class="table table-zebra"><thead><tr>`)
	for _, header := range view.Headers {
		h.raw("<th")
		h.attr("data-column", header.ID)
		switch header.Direction {
		case "asc":
			h.attr("aria-sort", "ascending")
		case "desc":
			h.attr("aria-sort", "descending")
		}
		h.raw(">")
		if !header.Sortable {
			h.text(header.Label)
			h.raw("</th>")
			continue
		}
		view.link(h, header.SortQuery, "link link-hover inline-flex items-center gap-1")
		// Shift-click adds the column to the current sort.
		h.raw(` hx-vals='js:{"multi": event.shiftKey ? "1" : ""}'>`)
		h.text(header.Label)
		switch header.Direction {
		case "asc":
			h.raw(`<span aria-hidden="true">&#9650;</span><span class="sr-only">`)
			h.text(T(loc, "table.sort.asc"))
			h.raw("</span>")
		case "desc":
			h.raw(`<span aria-hidden="true">&#9660;</span><span class="sr-only">`)
			h.text(T(loc, "table.sort.desc"))
			h.raw("</span>")
		}
		if header.Priority > 0 {
			h.raw(`<sup class="text-xs">`)
			h.text(strconv.Itoa(header.Priority))
			h.raw("</sup>")
		}
		h.raw("</a></th>")
	}
	h.raw("</tr></thead><tbody>")
	if len(view.Rows) == 0 {
		h.raw(`<tr><td class="text-center text-base-content/60"`)
		h.attr("colspan", strconv.Itoa(max(len(view.Headers), 1)))
		h.raw(">")
		h.text(T(loc, "table.empty"))
		h.raw("</td></tr>")
	}
	for _, row := range view.Rows {
		h.raw("<tr>")
		for _, cell := range row {
			h.raw("<td>")
			h.text(cell)
			h.raw("</td>")
		}
		h.raw("</tr>")
	}
	h.raw("</tbody></table></div>")
}

func tablePager(h *htmlWriter, view TableView, loc Localizer) {
	pager := view.Pager
	h.raw(`<div class="flex flex-wrap items-center justify-between gap-2 text-sm"><span class="text-base-content/70">`)
	h.text(T(loc, "table.rows", pager.Total, pager.RawTotal))
	h.raw(`</span><div class="flex items-center gap-4">`)

	if len(pager.PageSizes) > 0 {
		view.form(h, "flex items-center gap-2")
		h.hiddenInputs(pager.SizeQuery)
		h.raw(`<label class="flex items-center gap-2"><span>`)
		h.text(T(loc, "table.rows_per_page"))
		h.raw(`</span><select name="set_page_size" class="select select-sm select-bordered" onchange="this.form.requestSubmit()">`)
		for _, size := range pager.PageSizes {
			h.raw("<option")
			h.attr("value", strconv.Itoa(size))
			h.boolAttr("selected", size == pager.PageSize)
			h.raw(">")
			h.text(strconv.Itoa(size))
			h.raw("</option>")
		}
		h.raw("</select></label></form>")
	}

	h.raw("<span>")
	h.text(T(loc, "table.page_of", pager.PageIndex+1, max(pager.PageCount, 1)))
	h.raw(`</span><div class="join">`)
	pagerButton(h, view, pager.FirstQuery, pager.HasPrev, T(loc, "table.first"), "&laquo;")
	pagerButton(h, view, pager.PrevQuery, pager.HasPrev, T(loc, "table.prev"), "&lsaquo;")
	pagerButton(h, view, pager.NextQuery, pager.HasNext, T(loc, "table.next"), "&rsaquo;")
	pagerButton(h, view, pager.LastQuery, pager.HasNext, T(loc, "table.last"), "&raquo;")
	h.raw("</div></div></div>")
}

func pagerButton(h *htmlWriter, view TableView, q url.Values, enabled bool, label, glyph string) {
	if !enabled {
		h.raw(`<button type="button" class="join-item btn btn-sm" disabled`)
		h.attr("aria-label", label)
		h.raw(">", glyph, "</button>")
		return
	}
	view.link(h, q, "join-item btn btn-sm")
	h.attr("aria-label", label)
	h.raw(">", glyph, "</a>")
}
