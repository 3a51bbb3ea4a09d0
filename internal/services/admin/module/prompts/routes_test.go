package prompts

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall string
}

func (f *fakeService) HandlePromptsPage(http.ResponseWriter, *http.Request) {
	f.lastCall = "prompts_page"
}

func (f *fakeService) HandlePromptsTable(http.ResponseWriter, *http.Request) {
	f.lastCall = "prompts_table"
}

func (f *fakeService) HandlePromptCreate(http.ResponseWriter, *http.Request) {
	f.lastCall = "prompts_create"
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		method   string
		wantCode int
		wantCall string
	}{
		{path: "/prompts", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "prompts_page"},
		{path: "/prompts/table", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "prompts_table"},
		{path: "/prompts/create", method: http.MethodPost, wantCode: http.StatusOK, wantCall: "prompts_create"},
		{path: "/prompts/", method: http.MethodGet, wantCode: http.StatusMovedPermanently},
		{path: "/prompts/p-1/versions", method: http.MethodGet, wantCode: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			svc := &fakeService{}
			mux := http.NewServeMux()
			RegisterRoutes(mux, svc)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if svc.lastCall != tc.wantCall {
				t.Fatalf("lastCall = %q, want %q", svc.lastCall, tc.wantCall)
			}
		})
	}
}
