// Package tables declares the columns of the admin console tables.
//
// Column headers are message keys of the admin catalog namespace.
package tables

import (
	"time"

	"github.com/promptops/console/internal/platform/datatable"
	"github.com/promptops/console/internal/services/admin/storage"
)

// Column ids shared by handlers and tests.
const (
	UserUsername  = "username"
	UserEmail     = "email"
	UserRole      = "role"
	UserCreatedAt = "created_at"

	PromptName          = "prompt_name"
	PromptLatestVersion = "latest_version"
	PromptLatestCommit  = "latest_commit"
	PromptOwner         = "owner"
	PromptUpdatedAt     = "updated_at"
)

// DefaultPromptVersions are offered as facets even before any prompt uses them.
var DefaultPromptVersions = []string{"v0.1.1", "v0.1.2", "v0.1.3"}

// Users returns the column registry of the users table.
func Users() (*datatable.Registry[storage.User], error) {
	roles := make([]string, 0, len(storage.Roles()))
	for _, role := range storage.Roles() {
		roles = append(roles, string(role))
	}
	return datatable.NewRegistry(
		datatable.Column[storage.User]{
			ID:         UserUsername,
			Header:     "column.username",
			Accessor:   func(u storage.User) any { return u.Username },
			Sortable:   true,
			Filterable: true,
			FilterKind: datatable.FilterText,
		},
		datatable.Column[storage.User]{
			ID:         UserEmail,
			Header:     "column.email",
			Accessor:   func(u storage.User) any { return u.Email },
			Sortable:   true,
			Filterable: true,
			FilterKind: datatable.FilterText,
		},
		datatable.Column[storage.User]{
			ID:         UserRole,
			Header:     "column.role",
			Accessor:   func(u storage.User) any { return string(u.Role) },
			Sortable:   true,
			Filterable: true,
			FilterKind: datatable.FilterMultiSelect,
			Options:    roles,
		},
		datatable.Column[storage.User]{
			ID:       UserCreatedAt,
			Header:   "column.created_at",
			Accessor: func(u storage.User) any { return timeOrNil(u.CreatedAt) },
			Sortable: true,
		},
	)
}

// Prompts returns the column registry of the prompts table.
func Prompts() (*datatable.Registry[storage.Prompt], error) {
	return datatable.NewRegistry(
		datatable.Column[storage.Prompt]{
			ID:         PromptName,
			Header:     "column.prompt_name",
			Accessor:   func(p storage.Prompt) any { return p.Name },
			Sortable:   true,
			Filterable: true,
			FilterKind: datatable.FilterText,
		},
		datatable.Column[storage.Prompt]{
			ID:         PromptLatestVersion,
			Header:     "column.latest_version",
			Accessor:   func(p storage.Prompt) any { return p.LatestVersion },
			Sortable:   true,
			Filterable: true,
			FilterKind: datatable.FilterMultiSelect,
			Options:    DefaultPromptVersions,
		},
		datatable.Column[storage.Prompt]{
			ID:       PromptLatestCommit,
			Header:   "column.latest_commit",
			Accessor: func(p storage.Prompt) any { return stringOrNil(p.LatestCommit) },
			Hidden:   true,
		},
		datatable.Column[storage.Prompt]{
			ID:         PromptOwner,
			Header:     "column.owner",
			Accessor:   func(p storage.Prompt) any { return stringOrNil(p.Owner) },
			Sortable:   true,
			Filterable: true,
			FilterKind: datatable.FilterText,
		},
		datatable.Column[storage.Prompt]{
			ID:       PromptUpdatedAt,
			Header:   "column.updated_at",
			Accessor: func(p storage.Prompt) any { return timeOrNil(p.UpdatedAt) },
			Sortable: true,
		},
	)
}

// DisplayValue renders a cell value for the table body. Nulls render empty.
func DisplayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.UTC().Format("2006-01-02 15:04")
	default:
		return datatable.FormatValue(v)
	}
}

func timeOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
