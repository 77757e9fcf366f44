package upstream_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/backoffice/pkg/upstream"
)

func newClient(t *testing.T, handler http.HandlerFunc) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &upstream.Config{BaseURL: srv.URL + "/api"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return upstream.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestList_DecodesEnvelope(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/admin/blog/get" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"data": [{"id": 1, "title": "a"}, {"id": 2, "title": "b"}]}`))
	})

	recs, err := c.List(context.Background(), "/admin/blog/get")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 2 || recs[1].String("title") != "b" {
		t.Errorf("List() = %v", recs)
	}
}

func TestList_MissingDataIsEmpty(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	})

	recs, err := c.List(context.Background(), "/admin/faq/get")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("List() = %v, want empty", recs)
	}
}

func TestWith_SendsBearerToken(t *testing.T) {
	var got string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"data": []}`))
	})

	if _, err := c.With("secret").List(context.Background(), "/x"); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer secret")
	}

	if _, err := c.List(context.Background(), "/x"); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got != "" {
		t.Errorf("Authorization = %q, want empty on original client", got)
	}
}

func TestStatusError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "title is required"}`))
	})

	_, err := c.Post(context.Background(), "/admin/faq/add", map[string]string{})
	if !errors.Is(err, upstream.ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}

	var serr *upstream.StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error %T is not *StatusError", err)
	}
	if serr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", serr.Status)
	}
	if serr.Message != "title is required" {
		t.Errorf("Message = %q, want %q", serr.Message, "title is required")
	}
}

func TestPostForm(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "multipart/form-data; boundary=xyz" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "payload" {
			t.Errorf("body = %q, want %q", body, "payload")
		}
		w.Write([]byte(`{"message": "created", "data": {"id": 7}}`))
	})

	out, err := c.PostForm(context.Background(), "/admin/blog/add", "multipart/form-data; boundary=xyz", []byte("payload"))
	if err != nil {
		t.Fatalf("PostForm() error = %v", err)
	}
	if out.String("message") != "created" {
		t.Errorf("message = %q, want %q", out.String("message"), "created")
	}
}

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name      string
		cfg       upstream.Config
		wantErr   bool
		wantAsset string
	}{
		{"defaults", upstream.Config{}, false, "http://localhost:5000"},
		{"explicit asset base", upstream.Config{BaseURL: "https://api.test/v1", AssetBaseURL: "https://cdn.test"}, false, "https://cdn.test"},
		{"bad scheme", upstream.Config{BaseURL: "ftp://api.test"}, true, ""},
		{"bad timeout", upstream.Config{Timeout: "soon"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.cfg.AssetBaseURL != tt.wantAsset {
				t.Errorf("AssetBaseURL = %q, want %q", tt.cfg.AssetBaseURL, tt.wantAsset)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := upstream.BearerToken(r); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestResponseSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"title":"` + strings.Repeat("x", 2048) + `"}]}`))
	}))
	t.Cleanup(srv.Close)

	cfg := &upstream.Config{BaseURL: srv.URL, MaxResponseSize: "1KB"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	c := upstream.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := c.List(context.Background(), "/admin/blog/get")
	if !errors.Is(err, upstream.ErrResponseTooLarge) {
		t.Fatalf("List() error = %v, want ErrResponseTooLarge", err)
	}
	if !errors.Is(err, upstream.ErrUpstream) {
		t.Errorf("List() error = %v, want ErrUpstream", err)
	}
}

func TestDownload(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		contentType string
		wantName    string
		wantType    string
	}{
		{"named pdf", `attachment; filename="cv-12.pdf"`, "application/pdf", "cv-12.pdf", "application/pdf"},
		{"no headers", "", "", "", "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/admin/career/downloadResume/12" {
					t.Errorf("path = %q", r.URL.Path)
				}
				if tt.disposition != "" {
					w.Header().Set("Content-Disposition", tt.disposition)
				}
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.Write([]byte("%PDF-1.4 resume"))
			})

			blob, err := c.Download(context.Background(), "/admin/career/downloadResume/12")
			if err != nil {
				t.Fatalf("Download() error = %v", err)
			}
			if blob.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", blob.Name, tt.wantName)
			}
			if blob.ContentType != tt.wantType {
				t.Errorf("ContentType = %q, want %q", blob.ContentType, tt.wantType)
			}
			if string(blob.Data) != "%PDF-1.4 resume" {
				t.Errorf("Data = %q", blob.Data)
			}
		})
	}
}

func TestDownload_StatusError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"resume not uploaded"}`))
	})

	_, err := c.Download(context.Background(), "/admin/career/downloadResume/9")
	var serr *upstream.StatusError
	if !errors.As(err, &serr) || serr.Status != http.StatusNotFound || serr.Message != "resume not uploaded" {
		t.Errorf("Download() error = %v, want 404 StatusError", err)
	}
}
