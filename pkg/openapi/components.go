package openapi

// NewComponents returns components pre-populated with the shared
// pagination schema and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "1-based page number"},
					"page_size": {Type: "integer", Description: "Items per page"},
					"search":    {Type: "string", Description: "Case-insensitive search text"},
					"sort":      {Type: "string", Description: "Sort field, \"-\" prefix for descending"},
				},
			},
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {
				Description: "Invalid request",
				Content:     map[string]*MediaType{"application/json": {Schema: SchemaRef("Error")}},
			},
			"NotFound": {
				Description: "Resource not found",
				Content:     map[string]*MediaType{"application/json": {Schema: SchemaRef("Error")}},
			},
			"Conflict": {
				Description: "Resource state conflict",
				Content:     map[string]*MediaType{"application/json": {Schema: SchemaRef("Error")}},
			},
			"BadGateway": {
				Description: "Content API request failed",
				Content:     map[string]*MediaType{"application/json": {Schema: SchemaRef("Error")}},
			},
		},
	}
}

// AddSchemas merges schemas into the components; existing names are kept.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		if _, exists := c.Schemas[name]; !exists {
			c.Schemas[name] = schema
		}
	}
}

// AddResponses merges responses into the components; existing names are kept.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, response := range responses {
		if _, exists := c.Responses[name]; !exists {
			c.Responses[name] = response
		}
	}
}
