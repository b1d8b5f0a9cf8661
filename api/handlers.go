/*
handlers.go - HTTP API handlers for the simulation engine

PURPOSE:
  Exposes the simulation engine via REST. Handles HTTP request and
  response concerns, JSON serialization, and delegates everything else
  to the engine, the scenario codec and the scenario store.

ENDPOINTS:
  Simulation:
    POST   /api/simulate               Run a simulation from inline params

  Scenarios:
    GET    /api/scenarios              Built-in presets + saved scenarios
    POST   /api/scenarios              Save a named scenario
    GET    /api/scenarios/{id}         Get one scenario
    DELETE /api/scenarios/{id}         Delete a saved scenario
    POST   /api/scenarios/{id}/run     Load a scenario and simulate it

  Rates:
    GET    /api/rates/tiers            Profit-share and commission tables

  Health:
    GET    /api/health

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Parameter validation failures (engine.ErrInvalidParameter)
  - 404: Unknown scenario
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stakeflow/compound-engine/engine"
	"github.com/stakeflow/compound-engine/scenario"
	"github.com/stakeflow/compound-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Log   zerolog.Logger
}

// NewHandler creates a handler backed by the given scenario store.
func NewHandler(store *sqlite.Store, log zerolog.Logger) *Handler {
	return &Handler{Store: store, Log: log}
}

// =============================================================================
// SIMULATION
// =============================================================================

// RunSimulation runs the engine on inline parameters.
// POST /api/simulate
func (h *Handler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	var pj scenario.ParamsJSON
	if err := json.NewDecoder(r.Body).Decode(&pj); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	h.simulate(w, pj)
}

func (h *Handler) simulate(w http.ResponseWriter, pj scenario.ParamsJSON) {
	params, err := pj.ToParams()
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	years, err := engine.Simulate(params)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.Log.Debug().
		Int("years", len(years)).
		Str("start", params.StartDate.ISO()).
		Msg("simulation complete")

	h.writeJSON(w, http.StatusOK, toSimulationResponse(years))
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ListScenarios returns built-in presets followed by saved scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	out := make([]ScenarioDTO, 0)
	for _, p := range scenario.Presets() {
		out = append(out, presetToDTO(p))
	}

	saved, err := h.Store.ListScenarios(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, sc := range saved {
		dto, err := savedToDTO(sc)
		if err != nil {
			h.Log.Warn().Str("scenario_id", sc.ID).Err(err).Msg("skipping unreadable scenario")
			continue
		}
		out = append(out, dto)
	}

	h.writeJSON(w, http.StatusOK, out)
}

// SaveScenario persists a named parameter set.
// POST /api/scenarios
func (h *Handler) SaveScenario(w http.ResponseWriter, r *http.Request) {
	var req SaveScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "scenario name is required")
		return
	}

	// Validate the params before they go anywhere near the store.
	if _, err := req.Params.ToParams(); err != nil {
		h.writeEngineError(w, err)
		return
	}

	raw, err := json.Marshal(req.Params)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	saved, err := h.Store.SaveScenario(r.Context(), sqlite.Scenario{
		Name:        req.Name,
		Description: req.Description,
		ParamsJSON:  string(raw),
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dto, err := savedToDTO(saved)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, dto)
}

// GetScenario returns one preset or saved scenario.
// GET /api/scenarios/{id}
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if preset, ok := scenario.FindPreset(id); ok {
		h.writeJSON(w, http.StatusOK, presetToDTO(preset))
		return
	}

	sc, err := h.Store.GetScenario(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	dto, err := savedToDTO(*sc)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, dto)
}

// DeleteScenario removes a saved scenario. Presets cannot be deleted.
// DELETE /api/scenarios/{id}
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := scenario.FindPreset(id); ok {
		h.writeError(w, http.StatusBadRequest, "built-in scenarios cannot be deleted")
		return
	}

	if err := h.Store.DeleteScenario(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunScenario loads a scenario (preset or saved) and simulates it.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if preset, ok := scenario.FindPreset(id); ok {
		h.simulate(w, scenario.FromParams(preset.Params))
		return
	}

	sc, err := h.Store.GetScenario(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	var pj scenario.ParamsJSON
	if err := unmarshalParams(sc.ParamsJSON, &pj); err != nil {
		h.writeError(w, http.StatusInternalServerError, "stored scenario is unreadable: "+err.Error())
		return
	}
	h.simulate(w, pj)
}

// =============================================================================
// RATES AND HEALTH
// =============================================================================

// GetRateTiers returns the tier tables for display collaborators.
// GET /api/rates/tiers
func (h *Handler) GetRateTiers(w http.ResponseWriter, r *http.Request) {
	resp := RateTiersResponse{}
	for _, t := range engine.ProfitShareTiers() {
		resp.ProfitShare = append(resp.ProfitShare, ProfitTierDTO{
			MinStake: t.MinStake.Float64(),
			Share:    t.Share.InexactFloat64(),
		})
	}
	for _, t := range engine.CommissionRateTiers() {
		resp.Commission = append(resp.Commission, CommissionTierDTO{
			MinStake: t.MinStake.Float64(),
			L1:       t.Rate.L1.InexactFloat64(),
			L2:       t.Rate.L2.InexactFloat64(),
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func unmarshalParams(raw string, pj *scenario.ParamsJSON) error {
	return json.Unmarshal([]byte(raw), pj)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// writeEngineError maps engine validation failures to 400.
func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, engine.ErrInvalidParameter) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

// writeStoreError maps store lookups to 404/500.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, sqlite.ErrScenarioNotFound) {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeError(w, http.StatusInternalServerError, err.Error())
}
