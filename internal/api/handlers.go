/*
Package api exposes the simulation engine and the draft store over HTTP.

ENDPOINTS:

	POST   /api/simulations            Simulate a draft sent in the body (stateless)
	GET    /api/rules                  Active rule catalog
	GET    /api/drafts                 List stored drafts
	POST   /api/drafts                 Store a draft under a new id
	GET    /api/drafts/{id}            Get a stored draft
	PUT    /api/drafts/{id}            Create or replace a stored draft
	DELETE /api/drafts/{id}            Delete a stored draft
	POST   /api/drafts/{id}/imports    Merge an import batch into a stored draft
	POST   /api/drafts/{id}/simulate   Simulate a stored draft
	GET    /api/drafts/{id}/timeline   Months until each rule is met (min_months, max_months, rule)
	GET    /api/health                 Health probe

Drafts travel as JSON with RFC 3339 timestamps for dates
("2025-01-01T00:00:00Z"); a bare "2025-01-01" is rejected as an invalid body.
Draft files read by the CLI are YAML and accept bare dates. Competencies are
"YYYY-MM" strings in both.

Errors are returned as JSON: 400 for invalid input, 404 for unknown drafts,
500 for store failures. Simulation itself never fails; ineligibility is data.

There is no authentication layer. Drafts are keyed by the caller's session id.
*/
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/prevsim/internal/breakeven"
	"github.com/rgehrsitz/prevsim/internal/calculation"
	"github.com/rgehrsitz/prevsim/internal/config"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/store/sqlite"
	"github.com/rgehrsitz/prevsim/internal/transform"
)

// maxBodyBytes bounds request bodies; a full contribution history fits easily
const maxBodyBytes = 4 << 20

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      *sqlite.Store
	Engine     *calculation.SimulationEngine
	Parser     *config.InputParser
	Transforms *transform.TransformRegistry
	Planner    *breakeven.Solver
	Version    string

	now   func() time.Time
	newID func() string
}

// NewHandler creates a new handler with the given store and engine.
func NewHandler(store *sqlite.Store, engine *calculation.SimulationEngine) *Handler {
	return &Handler{
		Store:      store,
		Engine:     engine,
		Parser:     config.NewInputParser(),
		Transforms: transform.NewTransformRegistry(),
		Planner:    breakeven.NewDefaultSolver(engine),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: h.Version})
}

// ListRules returns the catalog the engine evaluates.
// GET /api/rules
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RulesResponse{Rules: h.Engine.Catalog})
}

// Simulate runs the engine over a draft sent in the body. Nothing is stored.
// POST /api/simulations
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Draft == nil {
		writeError(w, http.StatusBadRequest, "Draft is required", nil)
		return
	}
	if err := h.Parser.ValidateDraft(req.Draft); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid draft", err)
		return
	}

	h.simulate(w, req.Draft, req.Transforms)
}

// ListDrafts returns summaries of every stored draft.
// GET /api/drafts
func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.Store.ListDrafts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list drafts", err)
		return
	}
	writeJSON(w, http.StatusOK, DraftListResponse{Drafts: drafts})
}

// CreateDraft stores a draft under a freshly generated id.
// POST /api/drafts
func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var draft domain.SimulationDraft
	if err := decodeBody(w, r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	draft.ID = h.newID()
	h.saveDraft(w, r, &draft, http.StatusCreated)
}

// PutDraft creates or replaces the draft stored under the path id.
// PUT /api/drafts/{id}
func (h *Handler) PutDraft(w http.ResponseWriter, r *http.Request) {
	var draft domain.SimulationDraft
	if err := decodeBody(w, r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	draft.ID = chi.URLParam(r, "id")
	h.saveDraft(w, r, &draft, http.StatusOK)
}

// GetDraft returns a stored draft.
// GET /api/drafts/{id}
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadDraft(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// DeleteDraft removes a stored draft.
// DELETE /api/drafts/{id}
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteDraft(r.Context(), id); err != nil {
		if errors.Is(err, sqlite.ErrDraftNotFound) {
			writeError(w, http.StatusNotFound, "Draft not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportRecords merges an import batch into a stored draft.
// POST /api/drafts/{id}/imports
func (h *Handler) ImportRecords(w http.ResponseWriter, r *http.Request) {
	var batch domain.ImportBatch
	if err := decodeBody(w, r, &batch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Parser.ValidateImportBatch(&batch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid import batch", err)
		return
	}

	draft, ok := h.loadDraft(w, r)
	if !ok {
		return
	}

	summary := draft.ApplyImport(h.newID(), batch, h.now())
	if err := h.Store.SaveDraft(r.Context(), draft); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save draft", err)
		return
	}

	writeJSON(w, http.StatusCreated, ImportResponse{Import: summary, Draft: draft})
}

// SimulateDraft runs the engine over a stored draft. The body is optional.
// POST /api/drafts/{id}/simulate
func (h *Handler) SimulateDraft(w http.ResponseWriter, r *http.Request) {
	var req SimulateDraftRequest
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	draft, ok := h.loadDraft(w, r)
	if !ok {
		return
	}

	h.simulate(w, draft, req.Transforms)
}

// Timeline reports when each rule is first met if filing is postponed.
// GET /api/drafts/{id}/timeline
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	constraints := breakeven.DefaultConstraints()
	q := r.URL.Query()
	for name, dst := range map[string]*int{"min_months": &constraints.MinMonths, "max_months": &constraints.MaxMonths} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid "+name, err)
			return
		}
		*dst = n
	}
	constraints.RuleID = domain.RuleID(q.Get("rule"))

	draft, ok := h.loadDraft(w, r)
	if !ok {
		return
	}

	timeline, err := h.Planner.EligibilityTimeline(r.Context(), draft, constraints)
	if err != nil {
		var planErr *breakeven.BreakEvenError
		if errors.As(err, &planErr) {
			writeError(w, http.StatusBadRequest, "Invalid timeline request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to build timeline", err)
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}

func (h *Handler) simulate(w http.ResponseWriter, draft *domain.SimulationDraft, specs []string) {
	transforms, err := h.Transforms.ParseTransformSpecs(specs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transform", err)
		return
	}
	modified, err := transform.ApplyTransforms(draft, transforms)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to apply transforms", err)
		return
	}

	writeJSON(w, http.StatusOK, h.Engine.Simulate(modified))
}

func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request, draft *domain.SimulationDraft, status int) {
	if err := h.Parser.ValidateDraft(draft); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid draft", err)
		return
	}
	draft.Touch(h.now())

	if err := h.Store.SaveDraft(r.Context(), draft); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save draft", err)
		return
	}
	writeJSON(w, status, draft)
}

func (h *Handler) loadDraft(w http.ResponseWriter, r *http.Request) (*domain.SimulationDraft, bool) {
	id := chi.URLParam(r, "id")
	draft, err := h.Store.GetDraft(r.Context(), id)
	if errors.Is(err, sqlite.ErrDraftNotFound) {
		writeError(w, http.StatusNotFound, "Draft not found", fmt.Errorf("no draft with id %s", id))
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load draft", err)
		return nil, false
	}
	return draft, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
