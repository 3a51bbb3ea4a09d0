package datatable

import (
	"maps"
	"slices"
)

// ViewState is the complete filter, sort, visibility, and paging state of
// one table. Values returned by Store.State are copies.
type ViewState struct {
	Filters          Filters
	Sort             SortSpec
	ColumnVisibility map[string]bool
	PageIndex        int
	PageSize         int
}

// Clone returns a deep copy of s.
func (s ViewState) Clone() ViewState {
	out := s
	out.Filters = s.Filters.Clone()
	out.Sort = s.Sort.Clone()
	out.ColumnVisibility = maps.Clone(s.ColumnVisibility)
	if out.ColumnVisibility == nil {
		out.ColumnVisibility = map[string]bool{}
	}
	return out
}

// Visible reports whether columnID is shown. Columns absent from the
// visibility map are shown.
func (s ViewState) Visible(columnID string) bool {
	visible, ok := s.ColumnVisibility[columnID]
	return !ok || visible
}

// Filtered reports whether any filter is active.
func (s ViewState) Filtered() bool {
	for _, value := range s.Filters {
		if value.Active() {
			return true
		}
	}
	return false
}

// Listener receives a snapshot of the state after each mutation.
type Listener func(ViewState)

type subscription struct {
	id       int
	listener Listener
}

// Store owns the ViewState of one table and validates every mutation
// against the column registry. Invalid column ids are ignored rather than
// reported: they routinely appear while a view re-renders.
//
// Listeners run synchronously on the mutating goroutine. A listener must not
// mutate the store; callers that need follow-up mutations queue them until
// the triggering call returns.
type Store[T any] struct {
	reg       *Registry[T]
	state     ViewState
	total     int
	// pending holds a page requested before the row count was known; the
	// next Compute applies and clamps it. -1 means none.
	pending   int
	listeners []subscription
	nextID    int
}

func newStore[T any](reg *Registry[T], pageSize int) *Store[T] {
	visibility := make(map[string]bool, reg.Len())
	for _, column := range reg.List() {
		visibility[column.ID] = !column.Hidden
	}
	return &Store[T]{
		reg: reg,
		state: ViewState{
			Filters:          Filters{},
			ColumnVisibility: visibility,
			PageSize:         pageSize,
		},
		total:   -1,
		pending: -1,
	}
}

// State returns a copy of the current state.
func (s *Store[T]) State() ViewState {
	return s.state.Clone()
}

// Subscribe registers listener and returns a function removing it.
func (s *Store[T]) Subscribe(listener Listener) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, listener: listener})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// SetFilter sets the filter of columnID. An inactive value removes the
// filter. Unknown or non-filterable columns and mismatched kinds are ignored.
func (s *Store[T]) SetFilter(columnID string, value FilterValue) {
	column, ok := s.reg.filterable(columnID)
	if !ok || column.FilterKind != value.Kind {
		return
	}
	if value.Active() {
		s.state.Filters[columnID] = value.clone()
	} else {
		delete(s.state.Filters, columnID)
	}
	s.resetPage()
	s.notify()
}

// ClearFilters removes every filter.
func (s *Store[T]) ClearFilters() {
	s.state.Filters = Filters{}
	s.resetPage()
	s.notify()
}

// ToggleSort advances the sort state of columnID through
// unsorted, asc, desc, and back to unsorted.
//
// Without multi the resulting spec holds only columnID. With multi the key
// is edited in place, appended when new, and dropped when it returns to
// unsorted, leaving the other keys untouched.
func (s *Store[T]) ToggleSort(columnID string, multi bool) {
	if _, ok := s.reg.sortable(columnID); !ok {
		return
	}
	current, sorted := s.state.Sort.Direction(columnID)

	var next *SortKey
	switch {
	case !sorted:
		next = &SortKey{ColumnID: columnID, Direction: SortAsc}
	case current == SortAsc:
		next = &SortKey{ColumnID: columnID, Direction: SortDesc}
	}

	if !multi {
		s.state.Sort = nil
		if next != nil {
			s.state.Sort = SortSpec{*next}
		}
	} else {
		spec := s.state.Sort.Clone()
		i := spec.Index(columnID)
		switch {
		case next == nil:
			spec = slices.Delete(spec, i, i+1)
		case i >= 0:
			spec[i] = *next
		default:
			spec = append(spec, *next)
		}
		if len(spec) == 0 {
			spec = nil
		}
		s.state.Sort = spec
	}
	s.resetPage()
	s.notify()
}

// SetSort replaces the sort spec, dropping keys for unknown or non-sortable
// columns and repeated keys.
func (s *Store[T]) SetSort(spec SortSpec) {
	s.state.Sort = s.validSort(spec)
	s.resetPage()
	s.notify()
}

// SetColumnVisibility shows or hides columnID. Unknown columns are ignored.
func (s *Store[T]) SetColumnVisibility(columnID string, visible bool) {
	if _, ok := s.reg.Get(columnID); !ok {
		return
	}
	s.state.ColumnVisibility[columnID] = visible
	s.notify()
}

// SetPage moves to page n, clamped to the pages of the last computed row
// set. While the row count is unknown the state reports page 0 and the next
// Compute moves to n, clamped.
func (s *Store[T]) SetPage(n int) {
	s.requestPage(n)
	s.notify()
}

// NextPage advances one page.
func (s *Store[T]) NextPage() {
	s.SetPage(s.currentPage() + 1)
}

// PrevPage moves back one page.
func (s *Store[T]) PrevPage() {
	s.SetPage(s.currentPage() - 1)
}

// SetPageSize changes the page size and returns to the first page. A
// non-positive size is a ConfigError and leaves the state unchanged.
func (s *Store[T]) SetPageSize(n int) error {
	if n <= 0 {
		return configError("", "page size must be positive, got %d", n)
	}
	s.state.PageSize = n
	s.resetPage()
	s.notify()
	return nil
}

// Restore replaces the state with a snapshot, validating it the same way
// the individual mutations do, and notifies once. A non-positive page size
// keeps the current one.
func (s *Store[T]) Restore(snapshot ViewState) {
	filters := Filters{}
	for id, value := range snapshot.Filters {
		column, ok := s.reg.filterable(id)
		if !ok || column.FilterKind != value.Kind || !value.Active() {
			continue
		}
		filters[id] = value.clone()
	}

	visibility := make(map[string]bool, s.reg.Len())
	for _, column := range s.reg.List() {
		visible, ok := snapshot.ColumnVisibility[column.ID]
		if !ok {
			visible = s.state.Visible(column.ID)
		}
		visibility[column.ID] = visible
	}

	if snapshot.PageSize > 0 {
		s.state.PageSize = snapshot.PageSize
	}
	// The restored filters select a different row set; the next Compute
	// clamps the page index against it.
	s.total = -1
	s.state.Filters = filters
	s.state.Sort = s.validSort(snapshot.Sort)
	s.state.ColumnVisibility = visibility
	s.requestPage(snapshot.PageIndex)
	s.notify()
}

// observe records the size of a computed row set and clamps the page index
// to it without notifying.
func (s *Store[T]) observe(total int) {
	s.total = total
	page := s.state.PageIndex
	if s.pending >= 0 {
		page = s.pending
		s.pending = -1
	}
	s.state.PageIndex = s.clamp(page)
}

func (s *Store[T]) requestPage(n int) {
	if n < 0 {
		n = 0
	}
	if s.total < 0 {
		s.pending = n
		s.state.PageIndex = 0
		return
	}
	s.pending = -1
	s.state.PageIndex = s.clamp(n)
}

func (s *Store[T]) currentPage() int {
	if s.pending >= 0 {
		return s.pending
	}
	return s.state.PageIndex
}

func (s *Store[T]) resetPage() {
	s.pending = -1
	s.state.PageIndex = 0
}

func (s *Store[T]) clamp(n int) int {
	if n < 0 || s.total < 0 {
		return 0
	}
	p := Paginator{PageSize: s.state.PageSize, Total: s.total}
	return clampPage(n, p.PageCount())
}

func (s *Store[T]) validSort(spec SortSpec) SortSpec {
	var out SortSpec
	for _, key := range spec {
		if _, ok := s.reg.sortable(key.ColumnID); !ok {
			continue
		}
		if out.Index(key.ColumnID) >= 0 {
			continue
		}
		if key.Direction != SortDesc {
			key.Direction = SortAsc
		}
		out = append(out, key)
	}
	return out
}

func (s *Store[T]) notify() {
	if len(s.listeners) == 0 {
		return
	}
	for _, sub := range slices.Clone(s.listeners) {
		sub.listener(s.State())
	}
}
