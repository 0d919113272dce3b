package server

import (
	"net/http"
	"strings"

	"github.com/samqfs/samqfsui/internal/protocol"
	"github.com/samqfs/samqfsui/internal/server/httpx"
	"github.com/samqfs/samqfsui/internal/validate"
)

func (s *consoleServer) validateRangeHandler(w http.ResponseWriter, r *http.Request) {
	var req protocol.ValidateRangeRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := validate.IsValidNumberInRange(req.Range)
	s.metrics.validations.WithLabelValues("range", result.String()).Inc()

	resp := protocol.ValidateRangeResponse{
		Result:  result.String(),
		Valid:   result == validate.Valid,
		Message: validate.Describe(result),
	}
	if unit, ok := validate.ParseUnit(req.ValueUnit); ok && result == validate.Valid {
		resp.Display = validate.FormatSize(req.Value, unit)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (s *consoleServer) validateFieldHandler(w http.ResponseWriter, r *http.Request) {
	var req protocol.ValidateFieldRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	var ok bool
	switch kind {
	case protocol.FieldKindInteger:
		ok = validate.IsInteger(req.Value)
	case protocol.FieldKindPositiveInteger:
		ok = validate.IsPositiveInteger(req.Value)
	case protocol.FieldKindIPv4:
		ok = validate.IsValidIPv4(req.Value)
	case protocol.FieldKindEmail:
		ok = validate.IsValidEmail(req.Value)
	case protocol.FieldKindToken:
		if req.MaxLen <= 0 {
			http.Error(w, "max_len is required for token fields", http.StatusBadRequest)
			return
		}
		ok = validate.IsValidToken(req.Value, req.MaxLen)
	case protocol.FieldKindCharacters:
		ok = validate.IsValidCharacterString(req.Value, req.Filter)
	default:
		http.Error(w, "unknown field kind", http.StatusBadRequest)
		return
	}

	result := "invalid"
	if ok {
		result = "valid"
	}
	s.metrics.validations.WithLabelValues(kind, result).Inc()
	httpx.WriteJSON(w, http.StatusOK, protocol.ValidateFieldResponse{Kind: kind, Valid: ok})
}
