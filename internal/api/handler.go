package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/eugenenazirov/knapsack-solver/internal/history"
	"github.com/eugenenazirov/knapsack-solver/internal/output"
	"github.com/eugenenazirov/knapsack-solver/internal/solver"
	"github.com/eugenenazirov/knapsack-solver/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const maxHistoryLimit = 100

// Recorder persists solve outcomes. Implemented by *history.Store.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// Handler wires solver bounds storage and the optional history recorder into
// HTTP handlers.
type Handler struct {
	storage  storage.Storage
	recorder Recorder

	clock func() time.Time

	mu              sync.RWMutex
	boundsUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithRecorder enables solve history recording.
func WithRecorder(recorder Recorder) HandlerOption {
	return func(h *Handler) {
		h.recorder = recorder
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.boundsUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetBounds(w http.ResponseWriter, r *http.Request) {
	_ = r
	bounds, err := h.storage.GetBounds()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := boundsResponse{
		MaxItems:    bounds.MaxItems,
		MaxCapacity: bounds.MaxCapacity,
		UpdatedAt:   h.currentBoundsUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutBounds(w http.ResponseWriter, r *http.Request) {
	var req boundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	bounds := solver.Bounds{MaxItems: req.MaxItems, MaxCapacity: req.MaxCapacity}
	if err := h.storage.SetBounds(bounds); err != nil {
		if errors.Is(err, storage.ErrInvalidBounds) {
			writeError(w, http.StatusBadRequest, "Invalid bounds", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markBoundsUpdated()

	resp := boundsResponse{
		MaxItems:    bounds.MaxItems,
		MaxCapacity: bounds.MaxCapacity,
		UpdatedAt:   h.currentBoundsUpdatedAt(),
		Message:     "Bounds updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	bounds, err := h.storage.GetBounds()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	start := time.Now()
	result, solveErr := solver.NewWithBounds(bounds).Solve(req.Items, req.Capacity)
	elapsed := time.Since(start)

	if solveErr != nil {
		h.recordSolve(r.Context(), req, output.Code(solveErr), solver.Solution{}, elapsed)

		code := output.Code(solveErr)
		switch {
		case errors.Is(solveErr, solver.ErrNoItems),
			errors.Is(solveErr, solver.ErrInvalidItem),
			errors.Is(solveErr, solver.ErrInvalidCapacity),
			errors.Is(solveErr, solver.ErrTooManyItems):
			writeErrorCode(w, http.StatusBadRequest, "Invalid request", solveErr.Error(), code)
		case errors.Is(solveErr, solver.ErrIntOverflow),
			errors.Is(solveErr, solver.ErrDimensionOverflow):
			suggestion := "Reduce item values or the problem dimensions"
			writeErrorCode(w, http.StatusUnprocessableEntity, "Problem too large", solveErr.Error(), code, suggestion)
		default:
			writeInternalError(w, solveErr)
		}
		return
	}

	h.recordSolve(r.Context(), req, "ok", result, elapsed)

	indices := result.SelectedIndices
	if indices == nil {
		indices = []int{}
	}
	resp := solveResponse{
		Capacity:          req.Capacity,
		OptimalValue:      result.OptimalValue,
		SelectedIndices:   indices,
		SelectedCount:     len(indices),
		TotalWeight:       result.TotalWeight(req.Items),
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if h.recorder == nil {
		writeError(w, http.StatusNotFound, "History disabled", "no history database is configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxHistoryLimit {
			writeError(w, http.StatusBadRequest, "Invalid request",
				fmt.Sprintf("limit must be an integer between 1 and %d", maxHistoryLimit))
			return
		}
		limit = parsed
	}

	entries, err := h.recorder.Recent(r.Context(), limit)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{Entries: entries})
}

// recordSolve is best-effort: a history failure never affects the response.
func (h *Handler) recordSolve(ctx context.Context, req solveRequest, status string, result solver.Solution, elapsed time.Duration) {
	if h.recorder == nil {
		return
	}
	_ = h.recorder.Record(ctx, history.Entry{
		CreatedAt:     h.clock(),
		Capacity:      req.Capacity,
		ItemCount:     len(req.Items),
		Status:        status,
		OptimalValue:  result.OptimalValue,
		SelectedCount: len(result.SelectedIndices),
		DurationMs:    elapsed.Milliseconds(),
	})
}

func (h *Handler) currentBoundsUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.boundsUpdatedAt
}

func (h *Handler) markBoundsUpdated() {
	h.mu.Lock()
	h.boundsUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type boundsRequest struct {
	MaxItems    int `json:"maxItems"`
	MaxCapacity int `json:"maxCapacity"`
}

type solveRequest struct {
	Capacity int           `json:"capacity"`
	Items    []solver.Item `json:"items"`
}

type solveResponse struct {
	Capacity          int   `json:"capacity"`
	OptimalValue      int   `json:"optimalValue"`
	SelectedIndices   []int `json:"selectedIndices"`
	SelectedCount     int   `json:"selectedCount"`
	TotalWeight       int   `json:"totalWeight"`
	CalculationTimeMs int64 `json:"calculationTimeMs"`
}

type boundsResponse struct {
	MaxItems    int       `json:"maxItems"`
	MaxCapacity int       `json:"maxCapacity"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Message     string    `json:"message,omitempty"`
}

type historyResponse struct {
	Entries []history.Entry `json:"entries"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Code       string `json:"code,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeErrorCode(w http.ResponseWriter, status int, message, details, code string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
