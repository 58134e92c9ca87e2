package api

import (
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/store/sqlite"
)

// SimulationRequest is the body of a stateless simulation call.
type SimulationRequest struct {
	Draft      *domain.SimulationDraft `json:"draft"`
	Transforms []string                `json:"transforms,omitempty"` // name:key=value specs applied before simulating
}

// SimulateDraftRequest is the optional body of a stored draft simulation.
type SimulateDraftRequest struct {
	Transforms []string `json:"transforms,omitempty"`
}

// ImportResponse reports an applied import batch together with the updated draft.
type ImportResponse struct {
	Import domain.ImportSummary     `json:"import"`
	Draft  *domain.SimulationDraft `json:"draft"`
}

// DraftListResponse wraps the stored draft summaries.
type DraftListResponse struct {
	Drafts []sqlite.DraftSummary `json:"drafts"`
}

// RulesResponse lists the active rule catalog.
type RulesResponse struct {
	Rules domain.RuleCatalog `json:"rules"`
}

// HealthResponse is returned by the health probe.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
