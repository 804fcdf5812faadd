package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Audit stores return these
// (optionally wrapped) so services can translate them into domain errors:
//   - ErrNotFound: no record for the requested validation id
//   - ErrUnavailable: backing store temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
