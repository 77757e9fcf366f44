package listing

// View is one computed page of a Controller. Its JSON form mirrors
// pagination.PageResult with the active query and sort attached.
type View[T any] struct {
	Rows       []T    `json:"data"`
	TotalCount int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
	Query      string `json:"search,omitempty"`
	Sort       Sort   `json:"sort"`
}

// MarshalText renders a Direction as "asc" or "desc".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses "asc" or "desc"; anything else is ascending.
func (d *Direction) UnmarshalText(text []byte) error {
	if string(text) == "desc" {
		*d = Descending
	} else {
		*d = Ascending
	}
	return nil
}
