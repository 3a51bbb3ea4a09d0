// Package route holds request path helpers shared by HTTP services.
package route

import (
	"net/http"
	"strings"
)

// RedirectTrailingSlash canonicalizes request paths by stripping trailing "/" characters.
//
// The query string is kept so table links carrying view state survive the
// redirect. It returns true when a redirect was written; route handlers
// should stop further processing when true.
func RedirectTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	if w == nil || r == nil || r.URL == nil {
		return false
	}

	canonical := CanonicalPath(r.URL.Path)
	if canonical == r.URL.Path {
		return false
	}

	target := canonical
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	status := http.StatusMovedPermanently
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		// 308 keeps the method and body of form posts.
		status = http.StatusPermanentRedirect
	}
	http.Redirect(w, r, target, status)
	return true
}

// CanonicalPath trims trailing slashes, mapping an empty result to "/".
func CanonicalPath(path string) string {
	canonical := strings.TrimRight(path, "/")
	if canonical == "" {
		return "/"
	}
	return canonical
}
