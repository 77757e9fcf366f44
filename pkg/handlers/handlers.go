// Package handlers writes the JSON and file responses shared by every module.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
)

// Content-Disposition types accepted by RespondFile.
const (
	Inline     = "inline"
	Attachment = "attachment"
)

// File is a body served as raw bytes rather than JSON.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes {"error": "<message>"}. Server faults log at error
// level and client faults at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, "handler error", "error", err, "status", status)

	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// RespondFile writes f with a 200 status. The content type is sniffed when
// f does not carry one; the filename is only advertised when f.Name is set.
func RespondFile(w http.ResponseWriter, disposition string, f File) {
	contentType := f.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(f.Data)
	}

	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(f.Data)))
	h.Set("X-Content-Type-Options", "nosniff")
	if f.Name != "" {
		h.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": f.Name}))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(f.Data)
}
