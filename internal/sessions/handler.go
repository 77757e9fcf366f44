package sessions

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/JaimeStill/backoffice/pkg/handlers"
	"github.com/JaimeStill/backoffice/pkg/routes"
	"github.com/JaimeStill/backoffice/pkg/upstream"
)

// Handler provides HTTP endpoints for edit sessions.
type Handler struct {
	sys           System
	client        *upstream.Client
	logger        *slog.Logger
	maxUploadSize int64
}

func NewHandler(sys System, client *upstream.Client, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		client:        client,
		logger:        logger.With("handler", "sessions"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the session endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/sessions",
		Tags:        []string{"Sessions"},
		Description: "Edit forms with staged file uploads",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Open, OpenAPI: Spec.Open},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Discard, OpenAPI: Spec.Discard},
			{Method: "GET", Pattern: "/{id}/diff", Handler: h.Diff, OpenAPI: Spec.Diff},
			{Method: "POST", Pattern: "/{id}/submit", Handler: h.Submit, OpenAPI: Spec.Submit},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/slots/{slot}",
				Tags:   []string{"Sessions"},
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/files", Handler: h.AddFiles, OpenAPI: Spec.AddFiles},
					{Method: "DELETE", Pattern: "/existing", Handler: h.RemoveExisting, OpenAPI: Spec.RemoveExisting},
					{Method: "DELETE", Pattern: "/staged/{index}", Handler: h.RemoveStaged, OpenAPI: Spec.RemoveStaged},
				},
			},
		},
	}
}

func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var cmd OpenCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	view, err := h.sys.Open(r.Context(), h.upstream(r), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, view)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.sys.Find(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) AddFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if r.ContentLength > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	headers := r.MultipartForm.File["file"]
	uploads := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		u, err := h.readUpload(fh)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		uploads = append(uploads, u)
	}

	view, err := h.sys.AddFiles(r.Context(), id, r.PathValue("slot"), uploads)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) RemoveExisting(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("path query parameter required"))
		return
	}

	view, err := h.sys.RemoveExisting(r.Context(), id, r.PathValue("slot"), path)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) RemoveStaged(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	view, err := h.sys.RemoveStaged(r.Context(), id, r.PathValue("slot"), index)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	diff, err := h.sys.Diff(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, diff)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var cmd SubmitCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	resp, err := h.sys.Submit(r.Context(), h.upstream(r), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Discard(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) upstream(r *http.Request) Client {
	return h.client.With(upstream.BearerToken(r))
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return "", false
	}
	return id.String(), true
}

func (h *Handler) readUpload(fh *multipart.FileHeader) (Upload, error) {
	if fh.Size > h.maxUploadSize {
		return Upload{}, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return Upload{}, ErrInvalidFile
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Upload{}, ErrInvalidFile
	}

	u := Upload{
		Name:        fh.Filename,
		ContentType: detectContentType(fh.Header.Get("Content-Type"), data),
		Data:        data,
	}

	if u.ContentType == "application/pdf" {
		pc, err := extractPDFPageCount(data)
		if err != nil {
			h.logger.Warn("failed to extract pdf page count", "file", fh.Filename, "error", err)
		} else {
			u.PageCount = pc
		}
	}

	return u, nil
}

func detectContentType(header string, data []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(data []byte) (*int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	return &count, nil
}
