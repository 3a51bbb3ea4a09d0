package templates

import "github.com/promptops/console/internal/services/admin/nav"

// PageContext provides shared layout context for admin pages.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	// Nav is the sidebar resolved against CurrentPath.
	Nav []nav.View
	// UserID is the authenticated user, empty when auth is disabled.
	UserID string
}
