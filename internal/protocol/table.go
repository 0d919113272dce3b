package protocol

type TableButtonRule struct {
	Button string `json:"button"`
	// Needs is "none", "one" or "one_or_more".
	Needs      string `json:"needs,omitempty"`
	Permission string `json:"permission,omitempty"`
	RowFlag    string `json:"row_flag,omitempty"`
}

// TableButtonsRequest carries a page's flat form fields, named
// page.view[row].field, together with the current selection.
type TableButtonsRequest struct {
	Page          string            `json:"page"`
	View          string            `json:"view"`
	SelectionMode string            `json:"selection_mode,omitempty"`
	Selected      []int             `json:"selected"`
	Fields        map[string]string `json:"fields"`
	// Permissions is the packed role hidden field, e.g. "config=true&media=false".
	Permissions string            `json:"permissions,omitempty"`
	Rules       []TableButtonRule `json:"rules"`
	// ValueField, when set, is collected from every selected row.
	ValueField string `json:"value_field,omitempty"`
}

type TableButtonsResponse struct {
	Buttons  map[string]bool `json:"buttons"`
	Selected []int           `json:"selected"`
	Values   []string        `json:"values,omitempty"`
	// Payload joins Values the way popups hand lists back to their opener.
	Payload string `json:"payload,omitempty"`
}
