package resources

import "github.com/JaimeStill/backoffice/pkg/openapi"

type spec struct {
	Catalog    *openapi.Operation
	Definition *openapi.Operation
	Count      *openapi.Operation
	List       *openapi.Operation
	Find       *openapi.Operation
	Delete     *openapi.Operation
	Toggle     *openapi.Operation
	Resume     *openapi.Operation
}

var resourceParam = openapi.PathParam("resource", "Resource name, e.g. blogs")

var Spec = spec{
	Catalog: &openapi.Operation{
		Summary:     "List resources",
		Description: "List every content collection with its endpoints, search and sort fields",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Resource catalog",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("ResourceDefinition")}},
				},
			},
		},
	},
	Definition: &openapi.Operation{
		Summary:    "Find resource",
		Parameters: []*openapi.Parameter{resourceParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resource definition", "ResourceDefinition"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Count: &openapi.Operation{
		Summary:     "Count records",
		Description: "Total number of records held by the content API for the resource",
		Parameters:  []*openapi.Parameter{resourceParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Record count", "RecordCount"),
			404: openapi.ResponseRef("NotFound"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	List: &openapi.Operation{
		Summary:     "List records",
		Description: "Fetch the collection and return one page after search and sort",
		Parameters: []*openapi.Parameter{
			resourceParam,
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Case-insensitive substring over the search fields", false),
			openapi.QueryParam("sort", "string", "Sort field, \"-\" prefix for descending", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Record page", "RecordPage"),
			404: openapi.ResponseRef("NotFound"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find record",
		Parameters: []*openapi.Parameter{
			resourceParam,
			openapi.PathParam("id", "Record ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Record", "Record"),
			404: openapi.ResponseRef("NotFound"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	Delete: &openapi.Operation{
		Summary: "Delete record",
		Parameters: []*openapi.Parameter{
			resourceParam,
			openapi.PathParam("id", "Record ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Record deleted"},
			404: openapi.ResponseRef("NotFound"),
			405: {Description: "Resource does not support delete"},
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	Toggle: &openapi.Operation{
		Summary:     "Toggle record status",
		Description: "Set is_active, or flip it when the body is empty",
		Parameters: []*openapi.Parameter{
			resourceParam,
			openapi.PathParam("id", "Record ID"),
		},
		RequestBody: openapi.RequestBodyJSON("ToggleCommand", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Content API response", "Record"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			405: {Description: "Resource does not support toggling"},
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	Resume: &openapi.Operation{
		Summary:     "Download resume",
		Description: "Stream the resume attached to a career application",
		Parameters: []*openapi.Parameter{
			resourceParam,
			openapi.PathParam("id", "Application ID"),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Resume file",
				Content: map[string]*openapi.MediaType{
					"application/octet-stream": {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
				},
			},
			404: openapi.ResponseRef("NotFound"),
			405: {Description: "Resource has no resume download"},
			502: openapi.ResponseRef("BadGateway"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Record": {
			Type:        "object",
			Description: "Content API record; fields vary by resource",
		},
		"ResourceDefinition": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":          {Type: "string"},
				"title":         {Type: "string"},
				"endpoints":     {Type: "object"},
				"search_fields": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"sort_fields":   {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"columns":       {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"page_size":     {Type: "integer"},
				"slots":         {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"html_fields":   {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"RecordPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Record")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
				"search":      {Type: "string"},
				"sort": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"field":     {Type: "string"},
						"direction": {Type: "string", Enum: []string{"asc", "desc"}},
					},
				},
			},
		},
		"RecordCount": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"resource": {Type: "string"},
				"total":    {Type: "integer"},
			},
		},
		"ToggleCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"is_active": {Type: "boolean"},
			},
		},
	}
}
