// Package users mounts the users table routes.
package users

import (
	"net/http"

	routepath "github.com/promptops/console/internal/services/admin/routepath"
	sharedroute "github.com/promptops/console/internal/services/shared/route"
)

// Service defines users route handlers consumed by this route module.
type Service interface {
	HandleUsersPage(w http.ResponseWriter, r *http.Request)
	HandleUsersTable(w http.ResponseWriter, r *http.Request)
	HandleUserCreate(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires user routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Users, service.HandleUsersPage)
	mux.HandleFunc(routepath.UsersTable, service.HandleUsersTable)
	mux.HandleFunc(routepath.UsersCreate, service.HandleUserCreate)
	mux.HandleFunc(routepath.UsersPrefix, handleUnknown)
}

// handleUnknown canonicalizes trailing slashes and rejects other subpaths.
func handleUnknown(w http.ResponseWriter, r *http.Request) {
	if sharedroute.RedirectTrailingSlash(w, r) {
		return
	}
	http.NotFound(w, r)
}
