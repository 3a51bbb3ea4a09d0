package datatable

import (
	"fmt"
	"reflect"
	"strings"
)

// FilterKind selects the predicate a filterable column accepts.
type FilterKind int

const (
	// FilterNone marks a column without a filter predicate.
	FilterNone FilterKind = iota
	// FilterText matches a case-insensitive substring of the cell value.
	FilterText
	// FilterMultiSelect keeps rows whose cell value is in a selected set.
	FilterMultiSelect
)

// String returns the string representation of a FilterKind.
func (k FilterKind) String() string {
	switch k {
	case FilterNone:
		return "none"
	case FilterText:
		return "text"
	case FilterMultiSelect:
		return "multiSelect"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Column declares how one field of T is displayed, sorted, and filtered.
//
// Accessor must be pure: the engines call it any number of times per row
// and rely on it returning the same value each time. A nil return is a null
// cell.
type Column[T any] struct {
	// ID is unique within a table and is the key used by filters, sort keys,
	// and visibility state.
	ID string
	// Header is the display label. Defaults to ID.
	Header string
	// Accessor projects a row onto the column value.
	Accessor func(T) any
	// Sortable allows the column in a SortSpec.
	Sortable bool
	// Filterable allows the column in Filters.
	Filterable bool
	// FilterKind is required when Filterable is set.
	FilterKind FilterKind
	// Options lists the facet values offered for a multiSelect filter.
	Options []string
	// Hidden sets the initial visibility of the column.
	Hidden bool
}

// Value returns the column value for row, or nil without an accessor. A
// typed nil (pointer, map, slice, func, chan, interface) is returned as nil.
func (c Column[T]) Value(row T) any {
	if c.Accessor == nil {
		return nil
	}
	value := c.Accessor(row)
	if isNil(value) {
		return nil
	}
	return value
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// Label returns the header text for the column.
func (c Column[T]) Label() string {
	if strings.TrimSpace(c.Header) != "" {
		return c.Header
	}
	return c.ID
}

// Registry holds the column declarations of one record type.
// It is immutable after construction.
type Registry[T any] struct {
	columns []Column[T]
	index   map[string]int
}

// NewRegistry validates columns and returns a registry preserving their order.
func NewRegistry[T any](columns ...Column[T]) (*Registry[T], error) {
	reg := &Registry[T]{
		columns: make([]Column[T], 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, column := range columns {
		if err := reg.register(column); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (r *Registry[T]) register(column Column[T]) error {
	id := column.ID
	if strings.TrimSpace(id) == "" {
		return configError("", "column id is required")
	}
	if _, exists := r.index[id]; exists {
		return configError(id, "duplicate column id")
	}
	if column.Accessor == nil && (column.Sortable || column.Filterable) {
		return configError(id, "sortable or filterable column requires an accessor")
	}
	if column.Filterable {
		switch column.FilterKind {
		case FilterText, FilterMultiSelect:
		default:
			return configError(id, "filterable column has filter kind %s", column.FilterKind)
		}
	} else {
		column.FilterKind = FilterNone
	}
	column.Options = append([]string(nil), column.Options...)

	r.index[id] = len(r.columns)
	r.columns = append(r.columns, column)
	return nil
}

// Get returns the column registered under id.
func (r *Registry[T]) Get(id string) (Column[T], bool) {
	if r == nil {
		return Column[T]{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return Column[T]{}, false
	}
	return r.columns[i], true
}

// List returns the columns in registration order.
func (r *Registry[T]) List() []Column[T] {
	if r == nil {
		return nil
	}
	out := make([]Column[T], len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of registered columns.
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.columns)
}

func (r *Registry[T]) sortable(id string) (Column[T], bool) {
	column, ok := r.Get(id)
	if !ok || !column.Sortable {
		return Column[T]{}, false
	}
	return column, true
}

func (r *Registry[T]) filterable(id string) (Column[T], bool) {
	column, ok := r.Get(id)
	if !ok || !column.Filterable {
		return Column[T]{}, false
	}
	return column, true
}
