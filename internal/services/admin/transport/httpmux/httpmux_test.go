package httpmux

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func TestMountStaticServesAssets(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	staticFS := fstest.MapFS{
		"admin.css": &fstest.MapFile{Data: []byte("body{}")},
	}
	wrapped := false
	MountStatic(rootMux, staticFS, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped = true
			next.ServeHTTP(w, r)
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/static/admin.css", nil)
	rec := httptest.NewRecorder()
	rootMux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !wrapped {
		t.Fatal("expected static handler to be wrapped")
	}
}

func TestMountHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		check    func(context.Context) error
		wantCode int
	}{
		{name: "no check", wantCode: http.StatusOK},
		{name: "healthy", check: func(context.Context) error { return nil }, wantCode: http.StatusOK},
		{name: "unhealthy", check: func(context.Context) error { return errors.New("db closed") }, wantCode: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rootMux := http.NewServeMux()
			MountHealth(rootMux, tc.check)

			rec := httptest.NewRecorder()
			rootMux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}

func TestMountAdminRoutesMountsRoot(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("users"))
	})

	MountAdminRoutes(rootMux, adminMux)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	rootMux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "users" {
		t.Fatalf("body = %q, want %q", body, "users")
	}
}

func TestMountNoopsOnNilInputs(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	MountStatic(nil, fstest.MapFS{}, nil)
	MountStatic(rootMux, fs.FS(nil), nil)
	MountHealth(nil, nil)
	MountAdminRoutes(nil, http.NewServeMux())
	MountAdminRoutes(rootMux, nil)
}
