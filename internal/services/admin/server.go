package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptops/console/internal/platform/timeouts"
	"github.com/promptops/console/internal/services/admin/static"
	adminsqlite "github.com/promptops/console/internal/services/admin/storage/sqlite"
	"github.com/promptops/console/internal/services/admin/transport/httpmux"
)

// Config defines the inputs for the admin console process.
type Config struct {
	HTTPAddr string
	// DBPath locates the SQLite database; parent directories are created.
	DBPath string
	// PageSize is the default rows per page of every table.
	PageSize int
	// AuthConfig enables token-based authentication when set.
	AuthConfig *AuthConfig
}

// Server hosts the admin console.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	adminStore *adminsqlite.Store
}

// NewServer opens the store and builds a configured admin server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	adminStore, err := openAdminStore(ctx, config.DBPath)
	if err != nil {
		return nil, err
	}

	handler, err := newRootHandler(adminStore, config)
	if err != nil {
		if closeErr := adminStore.Close(); closeErr != nil {
			log.Printf("close admin store: %v", closeErr)
		}
		return nil, err
	}

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		adminStore: adminStore,
	}, nil
}

// newRootHandler assembles static assets, the health check, and the console
// routes behind the optional auth and tracing middleware.
func newRootHandler(store *adminsqlite.Store, config Config) (http.Handler, error) {
	adminHandler, err := NewHandler(store, config.PageSize)
	if err != nil {
		return nil, err
	}

	rootMux := http.NewServeMux()
	httpmux.MountStatic(rootMux, static.FS, nil)
	httpmux.MountHealth(rootMux, store.Ping)
	httpmux.MountAdminRoutes(rootMux, adminHandler)

	var root http.Handler = rootMux
	if config.AuthConfig != nil {
		verifier, err := newTokenVerifier(*config.AuthConfig)
		if err != nil {
			return nil, fmt.Errorf("configure auth: %w", err)
		}
		root = requireAuth(root, verifier, config.AuthConfig.LoginURL)
	}
	return withTracing(root), nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("admin listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the store held by the server.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.adminStore != nil {
		if err := s.adminStore.Close(); err != nil {
			log.Printf("close admin store: %v", err)
		}
	}
}

func openAdminStore(ctx context.Context, path string) (*adminsqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "admin.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := adminsqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open admin sqlite store: %w", err)
	}
	return store, nil
}
