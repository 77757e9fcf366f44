package resources_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/backoffice/internal/resources"
	"github.com/JaimeStill/backoffice/pkg/openapi"
	"github.com/JaimeStill/backoffice/pkg/pagination"
	"github.com/JaimeStill/backoffice/pkg/routes"
	"github.com/JaimeStill/backoffice/pkg/upstream"
)

func newMux(t *testing.T, content http.HandlerFunc) *http.ServeMux {
	t.Helper()

	srv := httptest.NewServer(content)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &upstream.Config{BaseURL: srv.URL + "/api"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	pg := pagination.Config{DefaultPageSize: 5, MaxPageSize: 100}
	h := resources.NewHandler(resources.New(logger, pg), upstream.New(cfg, logger), logger, pg)

	mux := http.NewServeMux()
	routes.Register(mux, "/api", openapi.NewSpec("test", "0"), h.Routes())
	return mux
}

func do(mux *http.ServeMux, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ListForwardsToken(t *testing.T) {
	var auth string
	mux := newMux(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data": [
			{"id": 1, "name": "Zed"},
			{"id": 2, "name": "amy"},
			{"id": 3, "name": "Bob"}
		]}`))
	})

	rec := do(mux, http.MethodGet, "/resources/contacts/records?sort=name&page_size=2", "",
		http.Header{"Authorization": {"Bearer tok"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if auth != "Bearer tok" {
		t.Errorf("upstream Authorization = %q", auth)
	}

	var view struct {
		Data       []map[string]any `json:"data"`
		Total      int              `json:"total"`
		TotalPages int              `json:"total_pages"`
		Sort       struct {
			Field     string `json:"field"`
			Direction string `json:"direction"`
		} `json:"sort"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if view.Total != 3 || view.TotalPages != 2 {
		t.Errorf("total = %d pages = %d, want 3/2", view.Total, view.TotalPages)
	}
	if len(view.Data) != 2 || view.Data[0]["name"] != "amy" || view.Data[1]["name"] != "Bob" {
		t.Errorf("data = %v", view.Data)
	}
	if view.Sort.Field != "name" || view.Sort.Direction != "asc" {
		t.Errorf("sort = %+v", view.Sort)
	}
}

func TestHandler_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode int
	}{
		{"unauthorized passes through", http.StatusUnauthorized, http.StatusUnauthorized},
		{"not found passes through", http.StatusNotFound, http.StatusNotFound},
		{"server error is bad gateway", http.StatusInternalServerError, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newMux(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message": "nope"}`))
			})

			rec := do(mux, http.MethodGet, "/resources/blogs/records", "", nil)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestHandler_UnknownResource(t *testing.T) {
	mux := newMux(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("content API should not be called")
	})

	if rec := do(mux, http.MethodGet, "/resources/widgets", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandler_DeleteAndToggle(t *testing.T) {
	var calls []string
	var bodies []string
	mux := newMux(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		w.Write([]byte(`{"success": true}`))
	})

	if rec := do(mux, http.MethodDelete, "/resources/blogs/records/4", "", nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := do(mux, http.MethodPost, "/resources/careers/records/8/toggle", `{"is_active": true}`, nil); rec.Code != http.StatusOK {
		t.Errorf("toggle status = %d, body = %s", rec.Code, rec.Body)
	}
	if rec := do(mux, http.MethodDelete, "/resources/about/records/1", "", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("unsupported delete status = %d", rec.Code)
	}

	want := []string{"POST /api/admin/blog/delete/4", "POST /api/admin/career/toggle-status/8"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
	if !strings.Contains(bodies[1], `"is_active":true`) {
		t.Errorf("toggle body = %q", bodies[1])
	}
}

func TestHandler_ToggleInvalidBody(t *testing.T) {
	mux := newMux(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := do(mux, http.MethodPost, "/resources/careers/records/8/toggle", `{bad`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandler_Count(t *testing.T) {
	mux := newMux(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"id": 1}, {"id": 2}], "count": 2}`))
	})

	rec := do(mux, http.MethodGet, "/resources/careers/count", "", nil)
	var body struct {
		Total int `json:"total"`
	}
	json.NewDecoder(rec.Body).Decode(&body)
	if rec.Code != http.StatusOK || body.Total != 2 {
		t.Errorf("status = %d total = %d", rec.Code, body.Total)
	}
}

func TestHandler_Resume(t *testing.T) {
	var path, auth string
	mux := newMux(t, func(w http.ResponseWriter, r *http.Request) {
		path, auth = r.URL.Path, r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="jane doe.pdf"`)
		w.Write([]byte("%PDF-1.4 resume"))
	})

	header := http.Header{"Authorization": {"Bearer tok"}}
	rec := do(mux, http.MethodGet, "/resources/careers/records/12/resume", "", header)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if path != "/api/admin/career/downloadResume/12" {
		t.Errorf("upstream path = %q", path)
	}
	if auth != "Bearer tok" {
		t.Errorf("Authorization = %q", auth)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="jane doe.pdf"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != "%PDF-1.4 resume" {
		t.Errorf("body = %q", rec.Body)
	}
}

func TestHandler_ResumeUnsupported(t *testing.T) {
	mux := newMux(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call %s", r.URL.Path)
	})

	rec := do(mux, http.MethodGet, "/resources/blogs/records/1/resume", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
