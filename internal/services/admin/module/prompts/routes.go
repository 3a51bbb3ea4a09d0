// Package prompts mounts the prompts table routes.
package prompts

import (
	"net/http"

	routepath "github.com/promptops/console/internal/services/admin/routepath"
	sharedroute "github.com/promptops/console/internal/services/shared/route"
)

// Service defines prompt route handlers consumed by this route module.
type Service interface {
	HandlePromptsPage(w http.ResponseWriter, r *http.Request)
	HandlePromptsTable(w http.ResponseWriter, r *http.Request)
	HandlePromptCreate(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires prompt routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Prompts, service.HandlePromptsPage)
	mux.HandleFunc(routepath.PromptsTable, service.HandlePromptsTable)
	mux.HandleFunc(routepath.PromptsCreate, service.HandlePromptCreate)
	mux.HandleFunc(routepath.PromptsPrefix, func(w http.ResponseWriter, r *http.Request) {
		if sharedroute.RedirectTrailingSlash(w, r) {
			return
		}
		http.NotFound(w, r)
	})
}
