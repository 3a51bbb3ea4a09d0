package datatable

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the order of one sort key.
type Direction int

const (
	// SortAsc orders smaller values first.
	SortAsc Direction = iota
	// SortDesc orders larger values first.
	SortDesc
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", d)
	}
}

// ParseDirection parses "asc" or "desc", case-insensitively.
func ParseDirection(value string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asc":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	default:
		return SortAsc, false
	}
}

// SortKey orders rows by one column.
type SortKey struct {
	ColumnID  string
	Direction Direction
}

// SortSpec is an ordered list of sort keys; earlier keys take precedence.
// An empty spec keeps input order.
type SortSpec []SortKey

// Clone returns a copy of s.
func (s SortSpec) Clone() SortSpec {
	if len(s) == 0 {
		return nil
	}
	return append(SortSpec(nil), s...)
}

// Index returns the position of the key for columnID, or -1.
func (s SortSpec) Index(columnID string) int {
	for i, key := range s {
		if key.ColumnID == columnID {
			return i
		}
	}
	return -1
}

// Direction returns the direction of columnID and whether it is sorted.
func (s SortSpec) Direction(columnID string) (Direction, bool) {
	i := s.Index(columnID)
	if i < 0 {
		return SortAsc, false
	}
	return s[i].Direction, true
}

type boundKey[T any] struct {
	column Column[T]
	desc   bool
}

// ApplySort returns a stably sorted copy of rows. Keys naming unknown or
// non-sortable columns are skipped, as are repeated keys for one column.
func ApplySort[T any](rows []T, spec SortSpec, reg *Registry[T]) []T {
	keys := bindSortKeys(spec, reg)
	if len(keys) == 0 {
		return rows
	}

	out := slices.Clone(rows)
	collator := newCollator()
	slices.SortStableFunc(out, func(a, b T) int {
		for _, key := range keys {
			if c := compareKey(key, a, b, collator); c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

func bindSortKeys[T any](spec SortSpec, reg *Registry[T]) []boundKey[T] {
	if len(spec) == 0 || reg == nil {
		return nil
	}
	keys := make([]boundKey[T], 0, len(spec))
	seen := make(map[string]struct{}, len(spec))
	for _, key := range spec {
		if _, dup := seen[key.ColumnID]; dup {
			continue
		}
		column, ok := reg.sortable(key.ColumnID)
		if !ok {
			continue
		}
		seen[key.ColumnID] = struct{}{}
		keys = append(keys, boundKey[T]{column: column, desc: key.Direction == SortDesc})
	}
	return keys
}

// compareKey orders nil cells last in both directions; only the comparison
// of two non-nil values is negated for descending keys.
func compareKey[T any](key boundKey[T], a, b T, collator *collate.Collator) int {
	va := key.column.Value(a)
	vb := key.column.Value(b)
	switch {
	case va == nil && vb == nil:
		return 0
	case va == nil:
		return 1
	case vb == nil:
		return -1
	}
	c := CompareValues(va, vb, collator)
	if key.desc {
		return -c
	}
	return c
}

func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

// CompareValues compares two non-nil cell values. Numbers compare by value
// across integer and float kinds, times chronologically, booleans false
// before true, and everything else by collated display text. A nil collator
// falls back to byte order.
func CompareValues(a, b any, collator *collate.Collator) int {
	if ai, ok := asInt64(a); ok {
		if bi, ok := asInt64(b); ok {
			return cmp.Compare(ai, bi)
		}
	}
	if af, ok := asFloat64(a); ok {
		if bf, ok := asFloat64(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return compareBool(av, bv)
		}
	}
	return compareText(FormatValue(a), FormatValue(b), collator)
}

// compareText splits both strings into runs of ASCII digits and runs of
// everything else. Digit runs compare by numeric value, so "v0.1.10" sorts
// after "v0.1.2" and "v1.0.0" after both; other runs compare by collation.
// Byte order breaks remaining ties.
func compareText(a, b string, collator *collate.Collator) int {
	ra, rb := a, b
	for ra != "" && rb != "" {
		var ca, cb string
		ca, ra = nextRun(ra)
		cb, rb = nextRun(rb)
		var c int
		if isDigit(ca[0]) && isDigit(cb[0]) {
			c = compareDigits(ca, cb)
		} else if collator != nil {
			c = collator.CompareString(ca, cb)
		} else {
			c = strings.Compare(ca, cb)
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case ra == "" && rb != "":
		return -1
	case ra != "" && rb == "":
		return 1
	}
	return strings.Compare(a, b)
}

// nextRun splits the leading digit or non-digit run off s.
func nextRun(s string) (run, rest string) {
	digits := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares two runs of ASCII digits by value. Leading zeros
// are ignored here and left to the final byte-order tie break.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	default:
		return 0, false
	}
}

func asFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		if i, ok := asInt64(value); ok {
			return float64(i), true
		}
		return 0, false
	}
}
