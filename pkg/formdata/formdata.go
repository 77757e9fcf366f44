// Package formdata builds the multipart payload submitted for a create or
// update form: scalar fields plus, for every asset field, the surviving
// existing paths and one part per staged file.
package formdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"slices"
	"strings"

	"github.com/JaimeStill/backoffice/pkg/assets"
)

// Format selects how surviving existing paths are written.
type Format string

const (
	FormatComma Format = "comma"
	FormatJSON  Format = "json"
)

// Slot names the multipart fields used by one asset field.
type Slot struct {
	// ExistingField receives the surviving existing paths. Empty when the
	// endpoint accepts no such field.
	ExistingField string `json:"existing_field,omitempty"`

	// FileField is repeated once per staged file.
	FileField string `json:"file_field"`

	Format Format `json:"format,omitempty"`
}

// Attachment pairs a slot with the diff produced for it.
type Attachment struct {
	Slot Slot
	Diff assets.Diff
}

// Source supplies the bytes of staged files.
type Source interface {
	Retrieve(ctx context.Context, key string) ([]byte, error)
}

// Body is an encoded multipart payload.
type Body struct {
	ContentType string
	Data        []byte
	FileParts   int
}

// Encoder writes form payloads.
type Encoder struct {
	source Source
	html   []string
}

// NewEncoder creates an Encoder reading staged files from source. Values of
// htmlFields are sanitized before they are written.
func NewEncoder(source Source, htmlFields ...string) *Encoder {
	return &Encoder{source: source, html: htmlFields}
}

// Encode writes fields in key order, skipping empty values, followed by the
// attachments. The existing-paths field of an attachment is written even
// when no paths survive so the receiver can tell that all were removed.
func (e *Encoder) Encode(ctx context.Context, fields map[string]string, attachments ...Attachment) (*Body, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		v := fields[k]
		if slices.Contains(e.html, k) {
			v = SanitizeHTML(v)
		}
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}

	files := 0
	for _, a := range attachments {
		if a.Slot.ExistingField != "" {
			value, err := serializePaths(a.Slot.Format, a.Diff.KeepExistingPaths)
			if err != nil {
				return nil, err
			}
			if err := w.WriteField(a.Slot.ExistingField, value); err != nil {
				return nil, fmt.Errorf("write field %s: %w", a.Slot.ExistingField, err)
			}
		}

		for _, f := range a.Diff.NewFiles {
			if err := e.writeFile(ctx, w, a.Slot.FileField, f); err != nil {
				return nil, err
			}
			files++
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	return &Body{
		ContentType: w.FormDataContentType(),
		Data:        buf.Bytes(),
		FileParts:   files,
	}, nil
}

func (e *Encoder) writeFile(ctx context.Context, w *multipart.Writer, field string, f assets.File) error {
	data, err := e.source.Retrieve(ctx, f.Key)
	if err != nil {
		return fmt.Errorf("retrieve %s: %w", f.Name, err)
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(field), escapeQuotes(f.Name)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", field, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write part %s: %w", field, err)
	}
	return nil
}

func serializePaths(format Format, paths []string) (string, error) {
	if format == FormatJSON {
		if paths == nil {
			paths = []string{}
		}
		b, err := json.Marshal(paths)
		if err != nil {
			return "", fmt.Errorf("marshal paths: %w", err)
		}
		return string(b), nil
	}
	return strings.Join(paths, ","), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
