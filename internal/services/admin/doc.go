// Package admin serves the prompt operations console.
//
// Pages list users and prompts in data tables whose view state (filters,
// sort, column visibility, and paging) lives in the URL, so every view can
// be bookmarked and restored. HTMX swaps the table in place and keeps the
// address bar in sync.
package admin
