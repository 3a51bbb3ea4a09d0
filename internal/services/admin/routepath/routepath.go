// Package routepath names the admin console routes.
package routepath

import "net/url"

const (
	Root         = "/"
	StaticPrefix = "/static/"
	Health       = "/healthz"
)

const (
	Users       = "/users"
	UsersTable  = "/users/table"
	UsersCreate = "/users/create"
	UsersPrefix = "/users/"
)

const (
	Prompts       = "/prompts"
	PromptsTable  = "/prompts/table"
	PromptsCreate = "/prompts/create"
	PromptsPrefix = "/prompts/"
)

// WithQuery appends q to path, omitting the "?" when q is empty.
func WithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
