package formdata_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/backoffice/pkg/assets"
	"github.com/JaimeStill/backoffice/pkg/formdata"
)

type memSource map[string][]byte

func (s memSource) Retrieve(ctx context.Context, key string) ([]byte, error) {
	data, ok := s[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

type part struct {
	Name     string
	Filename string
	Value    string
}

func readParts(t *testing.T, body *formdata.Body) []part {
	t.Helper()

	_, params, err := mime.ParseMediaType(body.ContentType)
	if err != nil {
		t.Fatalf("ParseMediaType() error = %v", err)
	}

	r := multipart.NewReader(bytes.NewReader(body.Data), params["boundary"])
	var parts []part
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart() error = %v", err)
		}
		data, _ := io.ReadAll(p)
		parts = append(parts, part{Name: p.FormName(), Filename: p.FileName(), Value: string(data)})
	}
	return parts
}

func TestEncode_FieldsAndAttachments(t *testing.T) {
	src := memSource{
		"staging/1/a.png": []byte("AAA"),
		"staging/1/b.png": []byte("BBB"),
	}
	enc := formdata.NewEncoder(src)

	body, err := enc.Encode(context.Background(),
		map[string]string{"title": "Launch", "category": "", "author": "ops"},
		formdata.Attachment{
			Slot: formdata.Slot{ExistingField: "existing_images", FileField: "image", Format: formdata.FormatComma},
			Diff: assets.Diff{
				KeepExistingPaths: []string{"uploads/x.png", "uploads/y.png"},
				NewFiles: []assets.File{
					{Key: "staging/1/a.png", Name: "a.png", ContentType: "image/png"},
					{Key: "staging/1/b.png", Name: "b.png", ContentType: "image/png"},
				},
			},
		},
	)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := []part{
		{Name: "author", Value: "ops"},
		{Name: "title", Value: "Launch"},
		{Name: "existing_images", Value: "uploads/x.png,uploads/y.png"},
		{Name: "image", Filename: "a.png", Value: "AAA"},
		{Name: "image", Filename: "b.png", Value: "BBB"},
	}
	if diff := cmp.Diff(want, readParts(t, body)); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
	if body.FileParts != 2 {
		t.Errorf("FileParts = %d, want 2", body.FileParts)
	}
}

func TestEncode_JSONPathsAndEmptyExisting(t *testing.T) {
	enc := formdata.NewEncoder(memSource{})

	body, err := enc.Encode(context.Background(), nil,
		formdata.Attachment{
			Slot: formdata.Slot{ExistingField: "old_images", FileField: "image", Format: formdata.FormatJSON},
			Diff: assets.Diff{KeepExistingPaths: []string{"a.png"}},
		},
		formdata.Attachment{
			Slot: formdata.Slot{ExistingField: "existing_videos", FileField: "video"},
			Diff: assets.Diff{},
		},
	)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := []part{
		{Name: "old_images", Value: `["a.png"]`},
		{Name: "existing_videos", Value: ""},
	}
	if diff := cmp.Diff(want, readParts(t, body)); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_NoExistingField(t *testing.T) {
	src := memSource{"k": []byte("svg")}
	enc := formdata.NewEncoder(src)

	body, err := enc.Encode(context.Background(), nil, formdata.Attachment{
		Slot: formdata.Slot{FileField: "icon"},
		Diff: assets.Diff{
			KeepExistingPaths: []string{"icons/old.svg"},
			NewFiles:          []assets.File{{Key: "k", Name: "new.svg"}},
		},
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := []part{{Name: "icon", Filename: "new.svg", Value: "svg"}}
	if diff := cmp.Diff(want, readParts(t, body)); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_SanitizesHTMLFields(t *testing.T) {
	enc := formdata.NewEncoder(memSource{}, "description")

	body, err := enc.Encode(context.Background(), map[string]string{
		"description": `<p onclick="x()">Hello<script>alert(1)</script></p>`,
		"title":       "<b>kept verbatim</b>",
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	parts := readParts(t, body)
	if len(parts) != 2 {
		t.Fatalf("len(parts) = %d, want 2", len(parts))
	}

	desc := parts[0].Value
	if strings.Contains(desc, "script") || strings.Contains(desc, "onclick") {
		t.Errorf("description not sanitized: %q", desc)
	}
	if !strings.Contains(desc, "Hello") {
		t.Errorf("description lost content: %q", desc)
	}
	if parts[1].Value != "<b>kept verbatim</b>" {
		t.Errorf("title = %q, want unchanged", parts[1].Value)
	}
}

func TestEncode_MissingFile(t *testing.T) {
	enc := formdata.NewEncoder(memSource{})

	_, err := enc.Encode(context.Background(), nil, formdata.Attachment{
		Slot: formdata.Slot{FileField: "image"},
		Diff: assets.Diff{NewFiles: []assets.File{{Key: "gone", Name: "gone.png"}}},
	})
	if err == nil {
		t.Fatal("Encode() error = nil, want error")
	}
}

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "  ", ""},
		{"plain", "text", "text"},
		{"script removed", "<script>x</script>ok", "ok"},
		{"paragraph kept", "<p>hi</p>", "<p>hi</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formdata.SanitizeHTML(tt.in); got != tt.want {
				t.Errorf("SanitizeHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
