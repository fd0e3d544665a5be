package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/iwvelando/carbon-forecast/internal/forecast"
	"github.com/iwvelando/carbon-forecast/internal/scenario"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// scenarioRequest saves one calculated scenario. Scenario names the
// configured scenario whose results are stored; it defaults to the first
// active one.
type scenarioRequest struct {
	Name     string                 `json:"name"`
	Scenario string                 `json:"scenario,omitempty"`
	Config   map[string]interface{} `json:"config"`
}

type scenarioResponse struct {
	Scenario scenario.Scenario `json:"scenario"`
	Warnings []string          `json:"warnings,omitempty"`
	Notes    []string          `json:"notes,omitempty"`
}

func (h *handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListScenarios"
	scenarios, err := h.store.List(r.Context(), r.PathValue("projectID"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"scenarios": scenarios})
}

func (h *handler) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetScenario"
	s, err := h.store.Get(r.Context(), r.PathValue("projectID"), r.PathValue("scenarioID"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, scenarioResponse{Scenario: s})
}

func (h *handler) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSaveScenario"
	s, calc, err := h.buildScenario(w, r)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	saved, err := h.store.Save(r.Context(), r.PathValue("projectID"), s.scenario)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.logger.Info("scenario saved",
		zap.String("op", op),
		zap.String("projectID", saved.ProjectID),
		zap.String("scenarioID", saved.ID),
	)
	h.writeJSON(w, http.StatusCreated, scenarioResponse{Scenario: saved, Warnings: calc.warnings, Notes: s.notes})
}

func (h *handler) handleUpdateScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpdateScenario"
	s, calc, err := h.buildScenario(w, r)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	updated, err := h.store.Update(r.Context(), r.PathValue("projectID"), r.PathValue("scenarioID"), s.scenario)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, scenarioResponse{Scenario: updated, Warnings: calc.warnings, Notes: s.notes})
}

func (h *handler) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteScenario"
	if err := h.store.Delete(r.Context(), r.PathValue("projectID"), r.PathValue("scenarioID")); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleDuplicateScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDuplicateScenario"
	var body struct {
		Name string `json:"name"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&body); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return
		}
	}

	copied, err := scenario.Duplicate(r.Context(), h.store, r.PathValue("projectID"), r.PathValue("scenarioID"), body.Name)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, scenarioResponse{Scenario: copied})
}

type builtScenario struct {
	scenario scenario.Scenario
	notes    []string
}

// buildScenario calculates the configuration in the request body and
// returns the scenario to store.
func (h *handler) buildScenario(w http.ResponseWriter, r *http.Request) (builtScenario, *calculation, error) {
	var req scenarioRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&req); err != nil {
		return builtScenario{}, nil, badRequest("failed to decode request: %v", err)
	}
	if req.Config == nil {
		return builtScenario{}, nil, badRequest("missing config")
	}

	configBytes, err := yaml.Marshal(req.Config)
	if err != nil {
		return builtScenario{}, nil, badRequest("failed to encode configuration: %v", err)
	}
	calc, err := h.calculate(r, configBytes, forecastOptions{})
	if err != nil {
		return builtScenario{}, nil, err
	}

	selected, err := selectForecast(calc.forecasts, req.Scenario)
	if err != nil {
		return builtScenario{}, nil, err
	}

	payload, err := json.Marshal(req.Config)
	if err != nil {
		return builtScenario{}, nil, badRequest("failed to encode configuration: %v", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = selected.Name
	}
	return builtScenario{
		scenario: scenario.Scenario{
			Name:    name,
			Payload: payload,
			Results: selected.Results,
		},
		notes: selected.Notes,
	}, calc, nil
}

func selectForecast(forecasts []forecast.Forecast, name string) (forecast.Forecast, error) {
	if len(forecasts) == 0 {
		return forecast.Forecast{}, badRequest("configuration has no active scenarios")
	}
	if name == "" {
		return forecasts[0], nil
	}
	for _, fc := range forecasts {
		if fc.Name == name {
			return fc, nil
		}
	}
	return forecast.Forecast{}, badRequest("scenario %q is not an active scenario of the configuration", name)
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		h.respondError(w, http.StatusNotFound, err.Error(), op)
	case errors.Is(err, scenario.ErrMissingProject):
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
	}
}
