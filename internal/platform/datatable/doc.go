// Package datatable implements column-configurable tabular presentation for
// arbitrary record types.
//
// A Table composes a column Registry, a filter pass, a stable multi-key sort,
// and page slicing into a single visible row window. View state (filters,
// sort, column visibility, paging) lives in a Store owned by the Table and is
// only changed through its mutation methods; subscribers are notified
// synchronously after every change.
//
// The package performs no I/O and holds no locks. Rows are borrowed from the
// caller for the duration of a Compute call and never modified.
package datatable
