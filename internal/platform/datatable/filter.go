package datatable

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// FilterValue is the predicate value of one column filter.
// Text is used by FilterText, Values by FilterMultiSelect.
type FilterValue struct {
	Kind   FilterKind
	Text   string
	Values []string
}

// TextFilter returns a substring predicate value.
func TextFilter(text string) FilterValue {
	return FilterValue{Kind: FilterText, Text: text}
}

// MultiSelectFilter returns a set-membership predicate value.
func MultiSelectFilter(values ...string) FilterValue {
	return FilterValue{Kind: FilterMultiSelect, Values: values}
}

// Active reports whether the value constrains anything. An empty text or an
// empty set is inactive.
func (v FilterValue) Active() bool {
	switch v.Kind {
	case FilterText:
		return v.Text != ""
	case FilterMultiSelect:
		return len(v.Values) > 0
	default:
		return false
	}
}

func (v FilterValue) clone() FilterValue {
	out := FilterValue{Kind: v.Kind, Text: v.Text}
	if len(v.Values) > 0 {
		out.Values = dedupe(v.Values)
	}
	return out
}

// Filters maps column ids to their active predicate values.
type Filters map[string]FilterValue

// Clone returns a deep copy of f.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for id, value := range f {
		out[id] = value.clone()
	}
	return out
}

// IDs returns the filtered column ids in sorted order.
func (f Filters) IDs() []string {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type rowPredicate[T any] func(T) bool

// ApplyFilters returns the rows of rows matching every active filter, in
// their input order. Entries naming unknown or non-filterable columns, or
// whose kind differs from the column's, are ignored.
func ApplyFilters[T any](rows []T, filters Filters, reg *Registry[T]) []T {
	predicates := compileFilters(filters, reg)
	if len(predicates) == 0 {
		return rows
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, predicates) {
			out = append(out, row)
		}
	}
	return out
}

func matchesAll[T any](row T, predicates []rowPredicate[T]) bool {
	for _, predicate := range predicates {
		if !predicate(row) {
			return false
		}
	}
	return true
}

func compileFilters[T any](filters Filters, reg *Registry[T]) []rowPredicate[T] {
	if len(filters) == 0 || reg == nil {
		return nil
	}
	predicates := make([]rowPredicate[T], 0, len(filters))
	for _, id := range filters.IDs() {
		value := filters[id]
		column, ok := reg.filterable(id)
		if !ok || column.FilterKind != value.Kind || !value.Active() {
			continue
		}
		switch value.Kind {
		case FilterText:
			predicates = append(predicates, textPredicate(column, value.Text))
		case FilterMultiSelect:
			predicates = append(predicates, setPredicate(column, value.Values))
		}
	}
	return predicates
}

func textPredicate[T any](column Column[T], text string) rowPredicate[T] {
	folder := cases.Fold()
	needle := folder.String(text)
	return func(row T) bool {
		value := column.Value(row)
		if value == nil {
			return false
		}
		return strings.Contains(folder.String(FormatValue(value)), needle)
	}
}

func setPredicate[T any](column Column[T], values []string) rowPredicate[T] {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return func(row T) bool {
		switch value := column.Value(row).(type) {
		case nil:
			return false
		case []string:
			for _, item := range value {
				if _, ok := set[item]; ok {
					return true
				}
			}
			return false
		default:
			_, ok := set[FormatValue(value)]
			return ok
		}
	}
}

// FormatValue renders a cell value as display text. Nil, including a typed
// nil, renders empty.
func FormatValue(value any) string {
	if isNil(value) {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	case []string:
		return strings.Join(v, ", ")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
