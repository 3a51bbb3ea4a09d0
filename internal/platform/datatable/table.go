package datatable

import "slices"

type tableOptions struct {
	pageSize int
	sort     SortSpec
	filters  Filters
}

// Option configures a new Table.
type Option func(*tableOptions)

// WithPageSize sets the initial page size. New fails with a ConfigError for
// a non-positive size.
func WithPageSize(n int) Option {
	return func(o *tableOptions) {
		o.pageSize = n
	}
}

// WithSort sets the initial sort spec.
func WithSort(spec SortSpec) Option {
	return func(o *tableOptions) {
		o.sort = spec.Clone()
	}
}

// WithFilter sets an initial filter.
func WithFilter(columnID string, value FilterValue) Option {
	return func(o *tableOptions) {
		if o.filters == nil {
			o.filters = Filters{}
		}
		o.filters[columnID] = value
	}
}

// Table composes filtering, sorting, and paging over rows of T.
//
// The embedded Store carries the mutation methods. A Table is not safe for
// concurrent use; one instance serves one view.
type Table[T any] struct {
	*Store[T]
	reg *Registry[T]
}

// New returns a table over the columns of reg with default view state.
func New[T any](reg *Registry[T], opts ...Option) (*Table[T], error) {
	if reg == nil {
		return nil, configError("", "column registry is required")
	}
	options := tableOptions{pageSize: DefaultPageSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.pageSize <= 0 {
		return nil, configError("", "page size must be positive, got %d", options.pageSize)
	}

	store := newStore(reg, options.pageSize)
	for id, value := range options.filters {
		if column, ok := reg.filterable(id); ok && column.FilterKind == value.Kind && value.Active() {
			store.state.Filters[id] = value.clone()
		}
	}
	store.state.Sort = store.validSort(options.sort)
	return &Table[T]{Store: store, reg: reg}, nil
}

// NewFromColumns registers columns and returns a table over them.
func NewFromColumns[T any](columns []Column[T], opts ...Option) (*Table[T], error) {
	reg, err := NewRegistry(columns...)
	if err != nil {
		return nil, err
	}
	return New(reg, opts...)
}

// Registry returns the column registry of the table.
func (t *Table[T]) Registry() *Registry[T] {
	return t.reg
}

// Result is the derived view of one computation.
type Result[T any] struct {
	// Rows is the visible window, a copy owned by the caller.
	Rows []T
	// Columns lists the visible columns in registration order.
	Columns []Column[T]
	Page    PageInfo
	State   ViewState
	// RawTotal counts rows before filtering.
	RawTotal int
}

// Compute filters, sorts, and pages rows under the current state, in that
// order. Rows are read, never modified. The stored page index is clamped to
// the resulting page count.
func (t *Table[T]) Compute(rows []T) Result[T] {
	state := t.state
	filtered := ApplyFilters(rows, state.Filters, t.reg)
	sorted := ApplySort(filtered, state.Sort, t.reg)

	t.observe(len(sorted))
	p := Paginator{PageIndex: t.state.PageIndex, PageSize: state.PageSize, Total: len(sorted)}
	start, end := p.Bounds()

	return Result[T]{
		Rows:     slices.Clone(sorted[start:end]),
		Columns:  t.VisibleColumns(),
		Page:     p.Info(),
		State:    t.State(),
		RawTotal: len(rows),
	}
}

// VisibleColumns returns the shown columns in registration order.
func (t *Table[T]) VisibleColumns() []Column[T] {
	columns := t.reg.List()
	out := columns[:0]
	for _, column := range columns {
		if t.state.Visible(column.ID) {
			out = append(out, column)
		}
	}
	return out
}

// Facet is one distinct value of a column with its row count.
type Facet struct {
	Value    string
	Count    int
	Selected bool
}

// Facets counts the distinct values of columnID among rows that pass every
// filter except the column's own. Declared options come first in their
// declared order, followed by other values in collated order.
func (t *Table[T]) Facets(rows []T, columnID string) []Facet {
	column, ok := t.reg.filterable(columnID)
	if !ok {
		return nil
	}
	others := t.state.Filters.Clone()
	delete(others, columnID)
	candidates := ApplyFilters(rows, others, t.reg)

	counts := map[string]int{}
	for _, row := range candidates {
		switch value := column.Value(row).(type) {
		case nil:
		case []string:
			for _, item := range dedupe(value) {
				counts[item]++
			}
		default:
			counts[FormatValue(value)]++
		}
	}

	selected := map[string]bool{}
	if current, ok := t.state.Filters[columnID]; ok {
		for _, value := range current.Values {
			selected[value] = true
		}
	}

	facets := make([]Facet, 0, len(counts)+len(column.Options))
	declared := map[string]bool{}
	for _, option := range column.Options {
		if declared[option] {
			continue
		}
		declared[option] = true
		facets = append(facets, Facet{Value: option, Count: counts[option], Selected: selected[option]})
	}

	extra := make([]string, 0, len(counts))
	for value := range counts {
		if !declared[value] {
			extra = append(extra, value)
		}
	}
	for value := range selected {
		if _, counted := counts[value]; !counted && !declared[value] {
			extra = append(extra, value)
		}
	}
	collator := newCollator()
	slices.SortFunc(extra, func(a, b string) int {
		return compareText(a, b, collator)
	})
	for _, value := range extra {
		facets = append(facets, Facet{Value: value, Count: counts[value], Selected: selected[value]})
	}
	return facets
}
