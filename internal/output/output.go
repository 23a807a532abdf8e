// Package output renders solver results for the CLI boundary, either as
// human-readable text or as a single JSON object. Error rendering maps each
// solver failure to a stable snake_case code.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eugenenazirov/knapsack-solver/internal/solver"
)

// CodeParse identifies failures that happened before the solver ran.
const CodeParse = "parse"

// Code maps an error to its stable identifier for the JSON boundary.
func Code(err error) string {
	switch {
	case errors.Is(err, solver.ErrNoItems):
		return "no_items"
	case errors.Is(err, solver.ErrTooManyItems):
		return "too_many_items"
	case errors.Is(err, solver.ErrInvalidCapacity):
		return "invalid_capacity"
	case errors.Is(err, solver.ErrInvalidItem):
		return "invalid_item"
	case errors.Is(err, solver.ErrDimensionOverflow):
		return "dimension_overflow"
	case errors.Is(err, solver.ErrIntOverflow):
		return "int_overflow"
	case errors.Is(err, solver.ErrAlloc):
		return "alloc"
	default:
		return "internal"
	}
}

// WriteText renders a solution as two lines of plain text.
func WriteText(w io.Writer, result solver.Solution) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Optimal value: %d\n", result.OptimalValue)
	fmt.Fprintf(&b, "Selected indices (%d):", len(result.SelectedIndices))
	for _, idx := range result.SelectedIndices {
		fmt.Fprintf(&b, " %d", idx)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

type jsonSolution struct {
	Status          string `json:"status"`
	OptimalValue    int    `json:"optimal_value"`
	SelectedIndices []int  `json:"selected_indices"`
}

type jsonError struct {
	Status string `json:"status"`
	Code   string `json:"code"`
}

// WriteJSON renders a solution as a single JSON object.
func WriteJSON(w io.Writer, result solver.Solution) error {
	indices := result.SelectedIndices
	if indices == nil {
		indices = []int{}
	}
	return json.NewEncoder(w).Encode(jsonSolution{
		Status:          "ok",
		OptimalValue:    result.OptimalValue,
		SelectedIndices: indices,
	})
}

// WriteJSONError renders a failure as a JSON object carrying the given code.
func WriteJSONError(w io.Writer, code string) error {
	return json.NewEncoder(w).Encode(jsonError{Status: "error", Code: code})
}
