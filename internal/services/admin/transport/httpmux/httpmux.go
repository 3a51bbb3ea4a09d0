// Package httpmux assembles the admin root mux.
package httpmux

import (
	"context"
	"io/fs"
	"log"
	"net/http"

	routepath "github.com/promptops/console/internal/services/admin/routepath"
)

// MountStatic wires static asset serving into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, wrap func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	if wrap != nil {
		staticHandler = wrap(staticHandler)
	}
	rootMux.Handle(routepath.StaticPrefix, staticHandler)
}

// MountHealth serves a plain-text readiness check. check may be nil.
func MountHealth(rootMux *http.ServeMux, check func(context.Context) error) {
	if rootMux == nil {
		return
	}
	rootMux.HandleFunc(routepath.Health, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if check != nil {
			if err := check(r.Context()); err != nil {
				log.Printf("health check: %v", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable\n"))
				return
			}
		}
		_, _ = w.Write([]byte("ok\n"))
	})
}

// MountAdminRoutes mounts admin application routes under root path.
func MountAdminRoutes(rootMux *http.ServeMux, adminHandler http.Handler) {
	if rootMux == nil || adminHandler == nil {
		return
	}
	rootMux.Handle(routepath.Root, adminHandler)
}
