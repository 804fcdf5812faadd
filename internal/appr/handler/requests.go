package handler

import (
	"strconv"
	"strings"

	"appr/internal/appr"
	dErrors "appr/pkg/domain-errors"
)

// BatchRequest is the HTTP request body for POST /appr/validate/batch.
// Per-item validation happens in the service so errors carry the item index.
type BatchRequest struct {
	Requests []appr.Request `json:"requests"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Requests) == 0 {
		return dErrors.Field("requests", "must contain at least one request")
	}
	return nil
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.Field("limit", "must be a non-negative integer")
	}
	return n, nil
}

func parseAirportCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", dErrors.Field("code", "airport code must be exactly 3 letters")
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return "", dErrors.Field("code", "airport code must be exactly 3 letters")
		}
	}
	return code, nil
}
