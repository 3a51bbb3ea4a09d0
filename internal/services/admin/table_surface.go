package admin

import (
	"fmt"
	"log"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/promptops/console/internal/platform/datatable"
	"github.com/promptops/console/internal/platform/datatable/urlstate"
	apperrors "github.com/promptops/console/internal/platform/errors"
	"github.com/promptops/console/internal/services/admin/routepath"
	"github.com/promptops/console/internal/services/admin/tables"
	"github.com/promptops/console/internal/services/admin/templates"
	"golang.org/x/text/message"
)

// Action parameters mutate the restored view state once. They never appear
// in canonical URLs.
const (
	paramSetFilter    = "set_filter"
	paramValue        = "value"
	paramReset        = "reset"
	paramSort         = "sort"
	paramMulti        = "multi"
	paramToggleColumn = "toggle_column"
	paramGo           = "go"
	paramSetPageSize  = "set_page_size"
)

var actionParams = []string{
	paramSetFilter,
	paramReset,
	paramSort,
	paramToggleColumn,
	paramGo,
	paramSetPageSize,
}

// defaultPageSizes are offered by the rows per page selector.
var defaultPageSizes = []int{10, 20, 30, 40, 50}

// hasAction reports whether q carries any action parameter.
func hasAction(q url.Values) bool {
	for _, name := range actionParams {
		if q.Has(name) {
			return true
		}
	}
	return false
}

// tableSurface renders one registry as an HTML data table.
type tableSurface[T any] struct {
	id         string
	pageURL    string
	partialURL string
	reg        *datatable.Registry[T]
	codec      *urlstate.Codec[T]
	pageSize   int
	// valueLabel localizes a raw cell or facet value; nil keeps it as is.
	valueLabel func(loc *message.Printer, columnID, value string) string
}

func newTableSurface[T any](id, pageURL, partialURL string, reg *datatable.Registry[T], pageSize int) (*tableSurface[T], error) {
	if pageSize <= 0 {
		pageSize = datatable.DefaultPageSize
	}
	codec, err := urlstate.New(reg, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%s table codec: %w", id, err)
	}
	return &tableSurface[T]{
		id:         id,
		pageURL:    pageURL,
		partialURL: partialURL,
		reg:        reg,
		codec:      codec,
		pageSize:   pageSize,
	}, nil
}

// tableRender is the outcome of one table request.
type tableRender struct {
	View templates.TableView
	// Canonical encodes the resulting state without action parameters.
	Canonical url.Values
	// Acted reports whether the request carried action parameters.
	Acted bool
}

// CanonicalURL is the page URL restoring the rendered view.
func (r tableRender) CanonicalURL(pageURL string) string {
	return routepath.WithQuery(pageURL, r.Canonical)
}

// render restores the view state from q, applies any action, and builds
// the table view over rows.
func (s *tableSurface[T]) render(q url.Values, rows []T, loc *message.Printer) (tableRender, error) {
	state, err := s.codec.Decode(q)
	if err != nil {
		log.Printf("%s table: ignored query parts: %v", s.id, err)
	}
	table, err := datatable.New(s.reg, datatable.WithPageSize(s.pageSize))
	if err != nil {
		return tableRender{}, apperrors.Wrap(apperrors.CodeTableConfigInvalid, "create "+s.id+" table", err)
	}
	table.Restore(state)
	result := table.Compute(rows)

	acted := hasAction(q)
	if acted {
		s.applyActions(table, q, result.Page.PageCount)
		result = table.Compute(rows)
	}

	canonical := s.codec.Encode(result.State)
	return tableRender{
		View:      s.view(table, result, rows, canonical, loc),
		Canonical: canonical,
		Acted:     acted,
	}, nil
}

// applyActions mutates table according to the action parameters in q.
func (s *tableSurface[T]) applyActions(table *datatable.Table[T], q url.Values, pageCount int) {
	if q.Get(paramReset) != "" {
		table.ClearFilters()
	}
	if columnID := q.Get(paramSetFilter); columnID != "" {
		table.SetFilter(columnID, datatable.TextFilter(strings.TrimSpace(q.Get(paramValue))))
	}
	if columnID := q.Get(paramSort); columnID != "" {
		table.ToggleSort(columnID, q.Get(paramMulti) == "1")
	}
	if columnID := q.Get(paramToggleColumn); columnID != "" {
		table.SetColumnVisibility(columnID, !table.State().Visible(columnID))
	}
	if raw := q.Get(paramSetPageSize); raw != "" {
		size, err := strconv.Atoi(raw)
		if err == nil {
			err = table.SetPageSize(size)
		}
		if err != nil {
			log.Printf("%s table: %v", s.id, apperrors.Wrap(apperrors.CodeTableConfigInvalid, "set page size "+strconv.Quote(raw), err))
		}
	}
	switch q.Get(paramGo) {
	case "first":
		table.SetPage(0)
	case "prev":
		table.PrevPage()
	case "next":
		table.NextPage()
	case "last":
		table.SetPage(pageCount - 1)
	}
}

func (s *tableSurface[T]) view(table *datatable.Table[T], result datatable.Result[T], rows []T, canonical url.Values, loc *message.Printer) templates.TableView {
	state := result.State
	view := templates.TableView{
		ID:         s.id,
		PartialURL: s.partialURL,
		PageURL:    s.pageURL,
		Query:      canonical,
	}

	for _, column := range result.Columns {
		header := templates.HeaderView{
			ID:       column.ID,
			Label:    templates.T(loc, column.Label()),
			Sortable: column.Sortable,
		}
		if direction, ok := state.Sort.Direction(column.ID); ok {
			header.Direction = direction.String()
			if len(state.Sort) > 1 {
				header.Priority = state.Sort.Index(column.ID) + 1
			}
		}
		if column.Sortable {
			header.SortQuery = withParam(canonical, paramSort, column.ID)
		}
		view.Headers = append(view.Headers, header)
	}

	view.Rows = make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		cells := make([]string, 0, len(result.Columns))
		for _, column := range result.Columns {
			cells = append(cells, s.label(loc, column.ID, tables.DisplayValue(column.Value(row))))
		}
		view.Rows = append(view.Rows, cells)
	}

	view.Toolbar = s.toolbar(table, state, rows, canonical, loc)
	view.Pager = s.pager(result, canonical)
	return view
}

func (s *tableSurface[T]) toolbar(table *datatable.Table[T], state datatable.ViewState, rows []T, canonical url.Values, loc *message.Printer) templates.ToolbarView {
	var toolbar templates.ToolbarView
	for _, column := range s.reg.List() {
		label := templates.T(loc, column.Label())
		toolbar.Columns = append(toolbar.Columns, templates.ColumnToggleView{
			ID:      column.ID,
			Label:   label,
			Visible: state.Visible(column.ID),
			Query:   withParam(canonical, paramToggleColumn, column.ID),
		})
		if !column.Filterable || !state.Visible(column.ID) {
			continue
		}
		switch column.FilterKind {
		case datatable.FilterText:
			toolbar.TextFilters = append(toolbar.TextFilters, templates.TextFilterView{
				ColumnID: column.ID,
				Label:    label,
				Value:    state.Filters[column.ID].Text,
				Query:    canonical,
			})
		case datatable.FilterMultiSelect:
			facet := templates.FacetView{
				ColumnID:   column.ID,
				Label:      label,
				Selected:   len(state.Filters[column.ID].Values),
				ClearQuery: s.encodeFilters(state, urlstate.RemoveFilter(state.Filters, column.ID)),
			}
			for _, option := range table.Facets(rows, column.ID) {
				facet.Options = append(facet.Options, templates.FacetOptionView{
					Value:    option.Value,
					Label:    s.label(loc, column.ID, option.Value),
					Count:    option.Count,
					Selected: option.Selected,
					Query:    s.encodeFilters(state, urlstate.WithFacetToggled(state.Filters, column.ID, option.Value)),
				})
			}
			toolbar.Facets = append(toolbar.Facets, facet)
		}
	}
	toolbar.ShowReset = state.Filtered()
	toolbar.ResetQuery = withParam(canonical, paramReset, "1")
	return toolbar
}

func (s *tableSurface[T]) pager(result datatable.Result[T], canonical url.Values) templates.PagerView {
	page := result.Page
	sizes := defaultPageSizes
	if !slices.Contains(sizes, page.PageSize) {
		sizes = append(slices.Clone(sizes), page.PageSize)
		slices.Sort(sizes)
	}
	return templates.PagerView{
		PageIndex:  page.PageIndex,
		PageCount:  page.PageCount,
		Total:      page.Total,
		RawTotal:   result.RawTotal,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		FirstQuery: withParam(canonical, paramGo, "first"),
		PrevQuery:  withParam(canonical, paramGo, "prev"),
		NextQuery:  withParam(canonical, paramGo, "next"),
		LastQuery:  withParam(canonical, paramGo, "last"),
		PageSize:   page.PageSize,
		PageSizes:  sizes,
		SizeQuery:  canonical,
	}
}

// encodeFilters encodes state with filters replaced and paging reset.
func (s *tableSurface[T]) encodeFilters(state datatable.ViewState, filters datatable.Filters) url.Values {
	next := state.Clone()
	next.Filters = filters
	next.PageIndex = 0
	return s.codec.Encode(next)
}

func (s *tableSurface[T]) label(loc *message.Printer, columnID, value string) string {
	if s.valueLabel == nil || value == "" {
		return value
	}
	return s.valueLabel(loc, columnID, value)
}

// withParam returns a copy of q with name set to value.
func withParam(q url.Values, name, value string) url.Values {
	out := make(url.Values, len(q)+1)
	for key, values := range q {
		out[key] = slices.Clone(values)
	}
	out.Set(name, value)
	return out
}
