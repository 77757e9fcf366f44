package resources

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/backoffice/pkg/handlers"
	"github.com/JaimeStill/backoffice/pkg/pagination"
	"github.com/JaimeStill/backoffice/pkg/routes"
	"github.com/JaimeStill/backoffice/pkg/upstream"
)

// Handler provides HTTP endpoints for browsing and mutating content API records.
type Handler struct {
	sys        System
	client     *upstream.Client
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, client *upstream.Client, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		client:     client,
		logger:     logger.With("handler", "resources"),
		pagination: pagination,
	}
}

// Routes returns the resource endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/resources",
		Tags:        []string{"Resources"},
		Description: "Content API collections with search, sort and paging",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Catalog, OpenAPI: Spec.Catalog},
			{Method: "GET", Pattern: "/{resource}", Handler: h.Definition, OpenAPI: Spec.Definition},
			{Method: "GET", Pattern: "/{resource}/count", Handler: h.Count, OpenAPI: Spec.Count},
			{Method: "GET", Pattern: "/{resource}/records", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{resource}/records/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "DELETE", Pattern: "/{resource}/records/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: "POST", Pattern: "/{resource}/records/{id}/toggle", Handler: h.Toggle, OpenAPI: Spec.Toggle},
			{Method: "GET", Pattern: "/{resource}/records/{id}/resume", Handler: h.Resume, OpenAPI: Spec.Resume},
		},
	}
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Catalog())
}

func (h *Handler) Definition(w http.ResponseWriter, r *http.Request) {
	def, err := h.sys.Definition(r.PathValue("resource"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, def)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	if r.URL.Query().Get("page_size") == "" {
		page.PageSize = 0
	}

	view, err := h.sys.List(r.Context(), h.upstream(r), r.PathValue("resource"), page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("resource")

	n, err := h.sys.Count(r.Context(), h.upstream(r), name)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"resource": name, "total": n})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	rec, err := h.sys.Find(r.Context(), h.upstream(r), r.PathValue("resource"), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), h.upstream(r), r.PathValue("resource"), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleCommand sets the active flag explicitly. An empty body flips it.
type ToggleCommand struct {
	IsActive *bool `json:"is_active"`
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	var cmd ToggleCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidToggle)
		return
	}

	rec, err := h.sys.Toggle(r.Context(), h.upstream(r), r.PathValue("resource"), r.PathValue("id"), cmd.IsActive)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	blob, err := h.sys.Resume(r.Context(), h.client.With(upstream.BearerToken(r)), r.PathValue("resource"), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondFile(w, handlers.Attachment, handlers.File{
		Name:        blob.Name,
		ContentType: blob.ContentType,
		Data:        blob.Data,
	})
}

func (h *Handler) upstream(r *http.Request) Client {
	return h.client.With(upstream.BearerToken(r))
}
