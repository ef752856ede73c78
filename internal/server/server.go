package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/config"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/forecast"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/history"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/optimizer"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/calculator"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/optimization"
	"go.uber.org/zap"
)

// HistoryStore is the subset of the history store used by the API.
type HistoryStore interface {
	Record(ctx context.Context, name string, in calculator.Input, summary calculator.Summary) (history.Entry, error)
	List(ctx context.Context, limit int) ([]history.Entry, error)
	Get(ctx context.Context, id string) (history.Entry, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	history     HistoryStore
	metrics     *metrics
}

type metrics struct {
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "savingscalc",
			Name:      "calculations_total",
			Help:      "Calculator requests by calculator and outcome.",
		}, []string{"calculator", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "savingscalc",
			Name:      "request_duration_seconds",
			Help:      "Time spent handling API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// NewHandler constructs the HTTP handler that serves the calculator API.
// store may be nil, in which case nothing is recorded and the history
// endpoints report that history is disabled.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string, store HistoryStore) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		history:     store,
		metrics:     newMetrics(registry),
	}

	mux := http.NewServeMux()

	// Calculator endpoints
	mux.HandleFunc("/api/compound", h.timed("compound", h.handleCompound))
	mux.HandleFunc("/api/savings", h.timed("savings", h.handleSavings))
	mux.HandleFunc("/api/balance", h.timed("balance", h.handleBalance))

	// Goal seek and whole-configuration runs
	mux.HandleFunc("/api/goal", h.timed("goal", h.handleGoal))
	mux.HandleFunc("/api/scenarios", h.timed("scenarios", h.handleScenarios))

	mux.HandleFunc("/api/history", h.timed("history", h.handleHistory))
	mux.HandleFunc("/api/history/{id}", h.timed("history_entry", h.handleHistoryEntry))

	mux.HandleFunc("/api/version", h.handleVersion)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return mux
}

func (h *handler) timed(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		h.metrics.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

type calculationResponse struct {
	Result    *calculator.Result `json:"result"`
	HistoryID string             `json:"historyId,omitempty"`
	Duration  string             `json:"duration"`
}

func (h *handler) handleCompound(w http.ResponseWriter, r *http.Request) {
	var in calculator.CompoundInput
	h.calculate(w, r, "server.handleCompound", &in, func() calculator.Input { return in })
}

func (h *handler) handleSavings(w http.ResponseWriter, r *http.Request) {
	var in calculator.SavingsInput
	h.calculate(w, r, "server.handleSavings", &in, func() calculator.Input { return in })
}

func (h *handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	var in calculator.BalanceInput
	h.calculate(w, r, "server.handleBalance", &in, func() calculator.Input { return in })
}

// calculate decodes the request body into dst, runs the calculator on the
// decoded input and records the outcome. An optional ?name= labels the
// history entry.
func (h *handler) calculate(w http.ResponseWriter, r *http.Request, op string, dst interface{}, input func() calculator.Input) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if status, err := h.decodeJSON(w, r, dst); err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	in := input()
	result, err := calculator.Run(h.logger, in)
	if err != nil {
		h.metrics.calculations.WithLabelValues(in.Calculator(), "invalid").Inc()
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	h.metrics.calculations.WithLabelValues(in.Calculator(), "ok").Inc()

	resp := calculationResponse{Result: result}
	if h.history != nil {
		entry, err := h.history.Record(r.Context(), strings.TrimSpace(r.URL.Query().Get("name")), in, result.Summary)
		if err != nil {
			h.logger.Warn("failed to record calculation",
				zap.String("op", op),
				zap.Error(err),
			)
		} else {
			resp.HistoryID = entry.ID
		}
	}
	resp.Duration = time.Since(start).String()

	h.writeJSON(w, http.StatusOK, resp)
}

type goalRequest struct {
	Name       string          `json:"name,omitempty"`
	Calculator string          `json:"calculator"`
	Input      json.RawMessage `json:"input"`
	Goal       optimizer.Goal  `json:"goal"`
}

type goalResponse struct {
	Goal     optimization.Summary `json:"goal"`
	Input    calculator.Input     `json:"input"`
	Result   *calculator.Result   `json:"result"`
	Duration string               `json:"duration"`
}

func (h *handler) handleGoal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGoal"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req goalRequest
	if status, err := h.decodeJSON(w, r, &req); err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	in, err := decodeInput(req.Calculator, req.Input)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	name := req.Name
	if name == "" {
		name = in.Calculator()
	}
	summary, adjusted, err := optimizer.NewRunner(h.logger).Run(name, in, req.Goal)
	if err != nil {
		h.metrics.calculations.WithLabelValues(in.Calculator(), "invalid").Inc()
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	result, err := calculator.Run(h.logger, adjusted)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	h.metrics.calculations.WithLabelValues(in.Calculator(), "ok").Inc()

	h.writeJSON(w, http.StatusOK, goalResponse{
		Goal:     summary,
		Input:    adjusted,
		Result:   result,
		Duration: time.Since(start).String(),
	})
}

func decodeInput(name string, raw json.RawMessage) (calculator.Input, error) {
	if len(raw) == 0 {
		return nil, errors.New("input is required")
	}

	var target interface{}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case constants.CalculatorCompound:
		target = &calculator.CompoundInput{}
	case constants.CalculatorSavings:
		target = &calculator.SavingsInput{}
	case constants.CalculatorBalance:
		target = &calculator.BalanceInput{}
	default:
		return nil, fmt.Errorf("unknown calculator %q", name)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	switch v := target.(type) {
	case *calculator.CompoundInput:
		return *v, nil
	case *calculator.SavingsInput:
		return *v, nil
	default:
		return *target.(*calculator.BalanceInput), nil
	}
}

type scenariosResponse struct {
	Forecasts []forecast.Forecast `json:"forecasts"`
	Warnings  []string            `json:"warnings,omitempty"`
	Duration  string              `json:"duration"`
}

// handleScenarios runs a whole YAML configuration, the same document the
// CLI reads from disk.
func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarios"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	conf, err := config.LoadConfigurationFromReader(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), op)
		return
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		h.logger.Warn(warning, zap.String("op", op))
	}

	results, err := forecast.GetForecast(r.Context(), h.logger, *conf)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to compute scenarios: %v", err), op)
		return
	}
	for _, result := range results {
		h.metrics.calculations.WithLabelValues(result.Calculator, "ok").Inc()
	}

	h.writeJSON(w, http.StatusOK, scenariosResponse{
		Forecasts: results,
		Warnings:  warnings,
		Duration:  time.Since(start).String(),
	})
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleHistory"
	if h.history == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "history is disabled", op)
		return
	}

	switch r.Method {
	case http.MethodGet:
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw), op)
				return
			}
			limit = parsed
		}
		entries, err := h.history.List(r.Context(), limit)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		if entries == nil {
			entries = []history.Entry{}
		}
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
	case http.MethodDelete:
		deleted, err := h.history.Clear(r.Context())
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleHistoryEntry"
	if h.history == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "history is disabled", op)
		return
	}

	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		entry, err := h.history.Get(r.Context(), id)
		if err != nil {
			h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
			return
		}
		h.writeJSON(w, http.StatusOK, entry)
	case http.MethodDelete:
		if err := h.history.Delete(r.Context(), id); err != nil {
			h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// decodeJSON reads a single JSON document into dst, rejecting unknown
// fields. The returned status is only meaningful when err is non-nil.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds limit of %d bytes", h.maxBodySize)
		}
		return http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err)
	}
	return http.StatusOK, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, calculator.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, history.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	level := h.logger.Error
	if status < http.StatusInternalServerError {
		level = h.logger.Warn
	}
	level("request failed",
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
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
