package previews

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/backoffice/pkg/handlers"
	"github.com/JaimeStill/backoffice/pkg/middleware"
	"github.com/JaimeStill/backoffice/pkg/module"
)

// Handler serves staged file bytes for live preview handles.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.With("handler", "previews"),
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	content, err := h.registry.Open(r.Context(), r.PathValue("handle"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	handlers.RespondFile(w, handlers.Inline, handlers.File{
		Name:        content.Name,
		ContentType: content.ContentType,
		Data:        content.Data,
	})
}

// NewModule mounts the preview handler at Prefix.
func NewModule(registry *Registry, logger *slog.Logger) *module.Module {
	h := NewHandler(registry, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{handle}", h.Serve)

	m := module.New(Prefix, mux)
	m.Use(middleware.Logger(logger))
	return m
}
