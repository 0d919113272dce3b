package protocol

import "github.com/samqfs/samqfsui/internal/validate"

type ValidateRangeRequest struct {
	validate.Range
}

type ValidateRangeResponse struct {
	Result  string `json:"result"`
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	// Display is the value rendered with IEC units when it is a size.
	Display string `json:"display,omitempty"`
}

const (
	FieldKindInteger         = "integer"
	FieldKindPositiveInteger = "positive_integer"
	FieldKindIPv4            = "ipv4"
	FieldKindEmail           = "email"
	FieldKindToken           = "token"
	FieldKindCharacters      = "characters"
)

type ValidateFieldRequest struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	MaxLen int    `json:"max_len,omitempty"`
	Filter string `json:"filter,omitempty"`
}

type ValidateFieldResponse struct {
	Kind  string `json:"kind"`
	Valid bool   `json:"valid"`
}
