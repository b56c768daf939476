package models

import "encoding/json"

// CalculateRequest is the POST /api/v1/calculate payload. Project and
// climate arrive as raw documents and are parsed by the same loaders the
// CLI uses, so both entry points accept identical shapes.
type CalculateRequest struct {
	Project json.RawMessage `json:"project" binding:"required"`
	Climate json.RawMessage `json:"climate" binding:"required"`

	Options CalculateOptions `json:"options"`
}

// CalculateOptions tunes the response shape.
type CalculateOptions struct {
	// IncludeMonths returns the full monthly ledger per zone instead of
	// annual summaries only.
	IncludeMonths bool `json:"include_months"`
}
