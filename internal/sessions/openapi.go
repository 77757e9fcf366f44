package sessions

import "github.com/JaimeStill/backoffice/pkg/openapi"

type spec struct {
	Open           *openapi.Operation
	Find           *openapi.Operation
	Discard        *openapi.Operation
	Diff           *openapi.Operation
	Submit         *openapi.Operation
	AddFiles       *openapi.Operation
	RemoveExisting *openapi.Operation
	RemoveStaged   *openapi.Operation
}

var (
	idParam   = openapi.UUIDPathParam("id", "Session ID")
	slotParam = openapi.PathParam("slot", "Slot name, e.g. images")
)

var Spec = spec{
	Open: &openapi.Operation{
		Summary:     "Open session",
		Description: "Start an edit form. With record_id the record is fetched and its stored assets seeded into each slot.",
		RequestBody: openapi.RequestBodyJSON("OpenSessionCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Session opened", "Session"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			405: {Description: "Resource does not support add or update"},
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find session",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session state", "Session"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Discard: &openapi.Operation{
		Summary:     "Discard session",
		Description: "Revoke previews and delete staged files without submitting",
		Parameters:  []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Session discarded"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Diff: &openapi.Operation{
		Summary:     "Session diff",
		Description: "Per-slot existing paths to keep and staged files to upload",
		Parameters:  []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Diffs keyed by slot", "SessionDiff"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Submit: &openapi.Operation{
		Summary:     "Submit session",
		Description: "Send fields and staged files to the content API as multipart form data. The session closes only on success.",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("SubmitSessionCommand", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Content API response", "Record"),
			404: openapi.ResponseRef("NotFound"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	AddFiles: &openapi.Operation{
		Summary:     "Stage files",
		Description: "Stage one or more files in a slot. PDFs have page count extracted automatically.",
		Parameters:  []*openapi.Parameter{idParam, slotParam},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"file": {Type: "array", Items: &openapi.Schema{Type: "string", Format: "binary"}},
						},
						Required: []string{"file"},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session state", "Session"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: {Description: "File too large"},
		},
	},
	RemoveExisting: &openapi.Operation{
		Summary: "Remove existing asset",
		Parameters: []*openapi.Parameter{
			idParam,
			slotParam,
			openapi.QueryParam("path", "string", "Stored path or resolved URL of the asset", true),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session state", "Session"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	RemoveStaged: &openapi.Operation{
		Summary: "Remove staged file",
		Parameters: []*openapi.Parameter{
			idParam,
			slotParam,
			openapi.PathParam("index", "Zero-based position among staged files"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session state", "Session"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	file := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"key":          {Type: "string"},
			"name":         {Type: "string"},
			"content_type": {Type: "string"},
			"size":         {Type: "integer", Format: "int64"},
			"page_count":   {Type: "integer", Description: "Page count (PDFs only)"},
		},
	}

	return map[string]*openapi.Schema{
		"OpenSessionCommand": {
			Type:     "object",
			Required: []string{"resource"},
			Properties: map[string]*openapi.Schema{
				"resource":  {Type: "string"},
				"record_id": {Type: "string", Description: "Omit to create a new record"},
			},
		},
		"SubmitSessionCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"fields": {Type: "object", Description: "Scalar form fields"},
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"resource":   {Type: "string"},
				"record_id":  {Type: "string"},
				"record":     {Type: "object"},
				"slots":      {Type: "array", Items: openapi.SchemaRef("SessionSlot")},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"SessionSlot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":   {Type: "string"},
				"accept": {Type: "string"},
				"existing": {Type: "array", Items: &openapi.Schema{
					Type:       "object",
					Properties: map[string]*openapi.Schema{"path": {Type: "string"}},
				}},
				"staged": {Type: "array", Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"file":    file,
						"preview": {Type: "string"},
					},
				}},
				"previews": {Type: "array", Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"url":    {Type: "string"},
						"path":   {Type: "string"},
						"name":   {Type: "string"},
						"staged": {Type: "boolean"},
					},
				}},
			},
		},
		"SessionDiff": {
			Type:        "object",
			Description: "Map of slot name to diff",
		},
		"AssetDiff": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"keep_existing_paths": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"new_files":           {Type: "array", Items: file},
			},
		},
	}
}
