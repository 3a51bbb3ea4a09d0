// Package urlstate maps table view state to and from URL query parameters.
//
// Filters are encoded as an AIP-160 filter expression, sort specs as an
// AIP-132 order_by string. Decoding is tolerant: parts that do not fit the
// column registry are dropped and reported together in the returned error
// while the rest of the state is kept.
package urlstate

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/promptops/console/internal/platform/datatable"
	"go.einride.tech/aip/filtering"
	"go.einride.tech/aip/ordering"
)

// Query parameter names.
const (
	ParamFilter   = "filter"
	ParamOrderBy  = "order_by"
	ParamHidden   = "hidden"
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Codec encodes view state for the columns of one registry.
type Codec[T any] struct {
	reg             *datatable.Registry[T]
	defaultPageSize int
	decls           *filtering.Declarations
}

// New returns a codec over reg. Page sizes equal to defaultPageSize are left
// out of encoded queries.
func New[T any](reg *datatable.Registry[T], defaultPageSize int) (*Codec[T], error) {
	if reg == nil {
		return nil, errors.New("column registry is required")
	}
	if defaultPageSize <= 0 {
		defaultPageSize = datatable.DefaultPageSize
	}
	decls, err := declarations(reg)
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	return &Codec[T]{reg: reg, defaultPageSize: defaultPageSize, decls: decls}, nil
}

func declarations[T any](reg *datatable.Registry[T]) (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for _, column := range reg.List() {
		if !column.Filterable || !identPattern.MatchString(column.ID) {
			continue
		}
		opts = append(opts, filtering.DeclareIdent(column.ID, filtering.TypeString))
	}
	return filtering.NewDeclarations(opts...)
}

// Encode returns the query parameters describing state. Default values are
// omitted so an untouched table encodes to an empty query.
func (c *Codec[T]) Encode(state datatable.ViewState) url.Values {
	q := url.Values{}
	if filter := c.EncodeFilter(state.Filters); filter != "" {
		q.Set(ParamFilter, filter)
	}
	if orderBy := EncodeOrderBy(state.Sort); orderBy != "" {
		q.Set(ParamOrderBy, orderBy)
	}
	if hidden, changed := c.hiddenColumns(state); changed {
		q.Set(ParamHidden, strings.Join(hidden, ","))
	}
	if state.PageIndex > 0 {
		q.Set(ParamPage, strconv.Itoa(state.PageIndex))
	}
	if state.PageSize > 0 && state.PageSize != c.defaultPageSize {
		q.Set(ParamPageSize, strconv.Itoa(state.PageSize))
	}
	return q
}

// hiddenColumns lists hidden column ids and reports whether visibility
// differs from the registry defaults.
func (c *Codec[T]) hiddenColumns(state datatable.ViewState) ([]string, bool) {
	hidden := []string{}
	changed := false
	for _, column := range c.reg.List() {
		visible := state.Visible(column.ID)
		if !visible {
			hidden = append(hidden, column.ID)
		}
		if visible == column.Hidden {
			changed = true
		}
	}
	return hidden, changed
}

// EncodeFilter renders filters as an AIP-160 expression. Text filters use
// the has operator, multi-select filters a disjunction of equalities.
func (c *Codec[T]) EncodeFilter(filters datatable.Filters) string {
	var terms []string
	for _, id := range filters.IDs() {
		value := filters[id]
		column, ok := c.reg.Get(id)
		if !ok || !column.Filterable || column.FilterKind != value.Kind || !value.Active() {
			continue
		}
		if !identPattern.MatchString(id) {
			continue
		}
		switch value.Kind {
		case datatable.FilterText:
			terms = append(terms, fmt.Sprintf("%s:%s", id, strconv.Quote(value.Text)))
		case datatable.FilterMultiSelect:
			equalities := make([]string, 0, len(value.Values))
			for _, v := range value.Values {
				equalities = append(equalities, fmt.Sprintf("%s = %s", id, strconv.Quote(v)))
			}
			if len(equalities) == 1 {
				terms = append(terms, equalities[0])
			} else {
				terms = append(terms, "("+strings.Join(equalities, " OR ")+")")
			}
		}
	}
	return strings.Join(terms, " AND ")
}

// EncodeOrderBy renders spec as an AIP-132 order_by string, the form
// ordering.OrderBy.UnmarshalString parses.
func EncodeOrderBy(spec datatable.SortSpec) string {
	if len(spec) == 0 {
		return ""
	}
	fields := make([]string, 0, len(spec))
	for _, key := range spec {
		if key.Direction == datatable.SortDesc {
			fields = append(fields, key.ColumnID+" desc")
			continue
		}
		fields = append(fields, key.ColumnID)
	}
	return strings.Join(fields, ", ")
}

// Decode reads view state from q. The returned state is always usable; the
// error, when non-nil, joins a description of every dropped part.
func (c *Codec[T]) Decode(q url.Values) (datatable.ViewState, error) {
	state := datatable.ViewState{
		Filters:          datatable.Filters{},
		ColumnVisibility: map[string]bool{},
		PageSize:         c.defaultPageSize,
	}
	var errs []error

	if raw := strings.TrimSpace(q.Get(ParamFilter)); raw != "" {
		filters, err := c.DecodeFilter(raw)
		if err != nil {
			errs = append(errs, err)
		}
		state.Filters = filters
	}

	if raw := strings.TrimSpace(q.Get(ParamOrderBy)); raw != "" {
		spec, err := c.DecodeOrderBy(raw)
		if err != nil {
			errs = append(errs, err)
		}
		state.Sort = spec
	}

	for _, column := range c.reg.List() {
		state.ColumnVisibility[column.ID] = !column.Hidden
	}
	if values, ok := q[ParamHidden]; ok {
		hidden := map[string]bool{}
		for _, value := range values {
			for _, id := range strings.Split(value, ",") {
				id = strings.TrimSpace(id)
				if id == "" {
					continue
				}
				if _, ok := c.reg.Get(id); !ok {
					errs = append(errs, fmt.Errorf("hidden: unknown column %q", id))
					continue
				}
				hidden[id] = true
			}
		}
		for id := range state.ColumnVisibility {
			state.ColumnVisibility[id] = !hidden[id]
		}
	}

	if raw := q.Get(ParamPage); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("page: %w", err))
		case page < 0:
			errs = append(errs, fmt.Errorf("page: must not be negative, got %d", page))
		default:
			state.PageIndex = page
		}
	}

	if raw := q.Get(ParamPageSize); raw != "" {
		size, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("page_size: %w", err))
		case size <= 0:
			errs = append(errs, fmt.Errorf("page_size: must be positive, got %d", size))
		default:
			state.PageSize = size
		}
	}

	return state, errors.Join(errs...)
}

// DecodeOrderBy parses an AIP-132 order_by string, keeping keys for
// sortable columns.
func (c *Codec[T]) DecodeOrderBy(raw string) (datatable.SortSpec, error) {
	var orderBy ordering.OrderBy
	if err := orderBy.UnmarshalString(raw); err != nil {
		return nil, fmt.Errorf("order_by: %w", err)
	}
	var (
		spec datatable.SortSpec
		errs []error
	)
	for _, field := range orderBy.Fields {
		column, ok := c.reg.Get(field.Path)
		if !ok || !column.Sortable {
			errs = append(errs, fmt.Errorf("order_by: column %q is not sortable", field.Path))
			continue
		}
		if spec.Index(field.Path) >= 0 {
			errs = append(errs, fmt.Errorf("order_by: column %q repeated", field.Path))
			continue
		}
		direction := datatable.SortAsc
		if field.Desc {
			direction = datatable.SortDesc
		}
		spec = append(spec, datatable.SortKey{ColumnID: field.Path, Direction: direction})
	}
	return spec, errors.Join(errs...)
}

// RemoveFilter returns filters without the filter of columnID. It is used to
// build links that clear a single facet.
func RemoveFilter(filters datatable.Filters, columnID string) datatable.Filters {
	out := filters.Clone()
	delete(out, columnID)
	return out
}

// WithFacetToggled returns filters with value added to or removed from the
// multi-select filter of columnID.
func WithFacetToggled(filters datatable.Filters, columnID, value string) datatable.Filters {
	out := filters.Clone()
	current := out[columnID]
	values := slices.Clone(current.Values)
	if i := slices.Index(values, value); i >= 0 {
		values = slices.Delete(values, i, i+1)
	} else {
		values = append(values, value)
	}
	if len(values) == 0 {
		delete(out, columnID)
		return out
	}
	out[columnID] = datatable.MultiSelectFilter(values...)
	return out
}
