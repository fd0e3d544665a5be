// Package server exposes the forecast engine and the scenario store over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/carbon-forecast/internal/config"
	"github.com/iwvelando/carbon-forecast/internal/forecast"
	"github.com/iwvelando/carbon-forecast/internal/optimizer"
	"github.com/iwvelando/carbon-forecast/internal/scenario"
	"github.com/iwvelando/carbon-forecast/pkg/constants"
	"github.com/iwvelando/carbon-forecast/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	store         scenario.Store
}

type forecastOptions struct {
	Optimize bool
}

// NewHandler constructs the HTTP handler that serves the forecast and
// scenario APIs. A nil store keeps scenarios in memory.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, store scenario.Store) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if store == nil {
		store = scenario.NewMemoryStore()
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, store: store}

	mux := http.NewServeMux()

	// Forecast API endpoint (file upload)
	mux.HandleFunc("POST /api/forecast", h.handleForecast)

	// Forecast API endpoint for JSON payloads
	mux.HandleFunc("POST /api/calculate", h.handleCalculate)

	// Workbook download of a calculation
	mux.HandleFunc("POST /api/export", h.handleExport)

	// Config serialization endpoint for downloads
	mux.HandleFunc("POST /api/config/export", h.handleConfigExport)

	mux.HandleFunc("GET /api/version", h.handleVersion)

	// Saved scenarios
	mux.HandleFunc("GET /api/projects/{projectID}/scenarios", h.handleListScenarios)
	mux.HandleFunc("POST /api/projects/{projectID}/scenarios", h.handleSaveScenario)
	mux.HandleFunc("GET /api/projects/{projectID}/scenarios/{scenarioID}", h.handleGetScenario)
	mux.HandleFunc("PUT /api/projects/{projectID}/scenarios/{scenarioID}", h.handleUpdateScenario)
	mux.HandleFunc("DELETE /api/projects/{projectID}/scenarios/{scenarioID}", h.handleDeleteScenario)
	mux.HandleFunc("POST /api/projects/{projectID}/scenarios/{scenarioID}/duplicate", h.handleDuplicateScenario)

	return mux
}

type forecastResponse struct {
	Scenarios  []forecast.Forecast    `json:"scenarios"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

// calculation is the outcome of running one configuration through the
// engine.
type calculation struct {
	forecasts []forecast.Forecast
	warnings  []string
}

// requestError carries the status code a failed calculation maps to.
type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(format string, args ...interface{}) error {
	return &requestError{status: http.StatusBadRequest, err: fmt.Errorf(format, args...)}
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"
	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	options := forecastOptions{Optimize: coerceBool(r.FormValue("optimize"))}
	h.runForecast(w, r, configBytes, configMap, start, op, options)
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	configBytes, configMap, options, err := h.decodeEditorPayload(w, r)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}
	h.runForecast(w, r, configBytes, configMap, start, op, options)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	configBytes, _, options, err := h.decodeEditorPayload(w, r)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}
	calc, err := h.calculate(r, configBytes, options)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	var buf bytes.Buffer
	if err := output.XLSXFormat(&buf, calc.forecasts); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build workbook: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="carbon-forecast.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write workbook", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"

	var payload map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// decodeEditorPayload reads a JSON body that is either a configuration
// object or {"config": {...}, "options": {...}} and returns it as YAML.
func (h *handler) decodeEditorPayload(w http.ResponseWriter, r *http.Request) ([]byte, map[string]interface{}, forecastOptions, error) {
	var payload map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, nil, forecastOptions{}, &requestError{
				status: http.StatusRequestEntityTooLarge,
				err:    fmt.Errorf("payload exceeds limit of %d bytes", h.maxUploadSize),
			}
		}
		return nil, nil, forecastOptions{}, badRequest("failed to decode configuration: %v", err)
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			return nil, nil, forecastOptions{}, badRequest("invalid config payload: expected object")
		}
		configPayload = cfgMap
	}

	options := forecastOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			return nil, nil, forecastOptions{}, badRequest("invalid options payload: expected object")
		}
		if optimizeVal, ok := optsMap["optimize"]; ok {
			options.Optimize = coerceBool(optimizeVal)
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		return nil, nil, forecastOptions{}, badRequest("failed to encode configuration: %v", err)
	}
	return configBytes, configPayload, options, nil
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"common", "scenarios", "customTypes", "products", "logging", "output"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

// calculate loads, validates and runs a configuration. Errors caused by the
// request are returned as *requestError.
func (h *handler) calculate(r *http.Request, configBytes []byte, opts forecastOptions) (*calculation, error) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		return nil, badRequest("%v", err)
	}

	warnings := cfg.ValidateConfiguration()
	inputs, productNotes, err := cfg.Inputs()
	if err != nil {
		return nil, badRequest("invalid configuration: %v", err)
	}

	var optimizationResult *optimizer.Result
	if opts.Optimize {
		runner, err := optimizer.NewRunner(h.logger, cfg, &config.OptimizerConfig{})
		if err != nil {
			return nil, badRequest("failed to initialize optimizer: %v", err)
		}
		optimizationResult, err = runner.Run(r.Context())
		if err != nil {
			return nil, badRequest("optimizer execution failed: %v", err)
		}
	}

	results, err := forecast.GetForecast(r.Context(), h.logger, inputs)
	if err != nil {
		if errors.Is(err, forecast.ErrInvalidYears) || errors.Is(err, forecast.ErrMissingParameters) {
			return nil, badRequest("%v", err)
		}
		return nil, fmt.Errorf("failed to compute forecast: %w", err)
	}
	forecast.AttachNotes(results, productNotes)
	if optimizationResult != nil && !optimizationResult.Empty() {
		optimizationResult.Apply(results)
	}

	return &calculation{forecasts: results, warnings: warnings}, nil
}

func (h *handler) runForecast(w http.ResponseWriter, r *http.Request, configBytes []byte, configMap map[string]interface{}, start time.Time, op string, opts forecastOptions) {
	calc, err := h.calculate(r, configBytes, opts)
	if err != nil {
		h.respondCalculationError(w, err, op)
		return
	}

	var csvBuf bytes.Buffer
	if err := output.CsvFormat(&csvBuf, calc.forecasts); err != nil {
		h.logger.Warn("failed to render CSV",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := forecastResponse{
		Scenarios:  calc.forecasts,
		CSV:        csvBuf.String(),
		Warnings:   calc.warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("warnings", len(response.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondCalculationError(w http.ResponseWriter, err error, op string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		h.respondError(w, reqErr.status, reqErr.Error(), op)
		return
	}
	h.respondError(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return false
}
