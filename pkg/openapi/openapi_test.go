package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/backoffice/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Backoffice API", "0.1.0")
	spec.SetDescription("admin")
	spec.AddServer("")
	spec.AddServer("/api")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("OpenAPI = %q", spec.OpenAPI)
	}
	if spec.Info.Description != "admin" {
		t.Errorf("Description = %q", spec.Info.Description)
	}
	if len(spec.Servers) != 1 || spec.Servers[0].URL != "/api" {
		t.Errorf("Servers = %v", spec.Servers)
	}
	for _, name := range []string{"PageRequest", "Error"} {
		if spec.Components.Schemas[name] == nil {
			t.Errorf("missing schema %s", name)
		}
	}
}

func TestSpec_AddOperation(t *testing.T) {
	spec := openapi.NewSpec("t", "1")
	get := &openapi.Operation{Summary: "list"}
	del := &openapi.Operation{Summary: "delete"}

	spec.AddOperation("/api/resources/{resource}/records/{id}", http.MethodGet, get)
	spec.AddOperation("/api/resources/{resource}/records/{id}", http.MethodDelete, del)

	item := spec.Paths["/api/resources/{resource}/records/{id}"]
	if item == nil || item.Get != get || item.Delete != del || item.Post != nil {
		t.Errorf("path item = %+v", item)
	}
}

func TestComponents_AddSchemasKeepsExisting(t *testing.T) {
	c := openapi.NewComponents()
	original := c.Schemas["Error"]

	c.AddSchemas(map[string]*openapi.Schema{
		"Error":  {Type: "string"},
		"Record": {Type: "object"},
	})

	if c.Schemas["Error"] != original {
		t.Error("existing schema replaced")
	}
	if c.Schemas["Record"] == nil {
		t.Error("new schema not added")
	}
}

func TestHelpers(t *testing.T) {
	if ref := openapi.SchemaRef("View").Ref; ref != "#/components/schemas/View" {
		t.Errorf("SchemaRef = %q", ref)
	}
	if ref := openapi.ResponseRef("NotFound").Ref; ref != "#/components/responses/NotFound" {
		t.Errorf("ResponseRef = %q", ref)
	}

	p := openapi.UUIDPathParam("id", "session id")
	if p.In != "path" || !p.Required || p.Schema.Format != "uuid" {
		t.Errorf("UUIDPathParam = %+v", p)
	}

	q := openapi.QueryParam("page", "integer", "page", false)
	if q.In != "query" || q.Required || q.Schema.Type != "integer" {
		t.Errorf("QueryParam = %+v", q)
	}
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec("Backoffice API", "0.1.0")
	spec.AddOperation("/api/resources", http.MethodGet, &openapi.Operation{
		Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("ok", "ResourceDefinition")},
	})

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	w := httptest.NewRecorder()
	openapi.ServeSpec(data)(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	var doc struct {
		Info  openapi.Info `json:"info"`
		Paths map[string]struct {
			Get struct {
				Responses map[string]json.RawMessage `json:"responses"`
			} `json:"get"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode spec: %v", err)
	}
	if doc.Info.Title != "Backoffice API" {
		t.Errorf("title = %q", doc.Info.Title)
	}
	if _, ok := doc.Paths["/api/resources"].Get.Responses["200"]; !ok {
		t.Errorf("missing 200 response: %s", w.Body.String())
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Staging API")

	var c openapi.Config
	if err := c.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if c.Title != "Staging API" || c.Description == "" {
		t.Errorf("config = %+v", c)
	}
}

func TestConfig_Servers(t *testing.T) {
	t.Setenv("TEST_OPENAPI_SERVERS", "https://staging.example.com/api, ,https://preview.example.com/api")

	var c openapi.Config
	if err := c.Finalize(&openapi.ConfigEnv{Servers: "TEST_OPENAPI_SERVERS"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	spec := openapi.NewSpec(c.Title, "1")
	spec.AddServer("https://backoffice.example.com/api")
	c.Apply(spec)

	var got []string
	for _, s := range spec.Servers {
		got = append(got, s.URL)
	}
	want := []string{
		"https://backoffice.example.com/api",
		"https://staging.example.com/api",
		"https://preview.example.com/api",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("servers mismatch (-want +got):\n%s", diff)
	}
	if spec.Info.Description != c.Description {
		t.Errorf("description = %q", spec.Info.Description)
	}
}

func TestConfig_InvalidServer(t *testing.T) {
	c := openapi.Config{Servers: []string{"/relative/only"}}
	if err := c.Finalize(nil); err == nil {
		t.Error("Finalize() error = nil, want error")
	}
}
