package solver

import (
	"fmt"
	"math"
)

// maxWorkspaceCells caps the take-matrix allocation. Unreachable under
// DefaultBounds; it only bites when callers widen the bounds.
const maxWorkspaceCells = 1 << 30

type dpSolver struct {
	bounds Bounds
}

// New creates a Solver based on dynamic programming, using DefaultBounds.
func New() Solver {
	return NewWithBounds(DefaultBounds())
}

// NewWithBounds creates a Solver that accepts problems up to the given ceilings.
func NewWithBounds(bounds Bounds) Solver {
	return &dpSolver{bounds: bounds}
}

// TrySolve is a convenience wrapper that collapses every failure into ok ==
// false, for callers that do not care which check rejected the input.
func TrySolve(items []Item, capacity int) (Solution, bool) {
	result, err := New().Solve(items, capacity)
	return result, err == nil
}

func (s *dpSolver) Solve(items []Item, capacity int) (Solution, error) {
	if err := s.validate(items, capacity); err != nil {
		return Solution{}, err
	}

	width, takeSize, err := tableDimensions(len(items), capacity)
	if err != nil {
		return Solution{}, err
	}

	ws := newWorkspace(width, takeSize)
	if err := ws.run(items); err != nil {
		return Solution{}, err
	}

	bestCap := ws.selectBest()
	return ws.reconstruct(items, bestCap), nil
}

func (s *dpSolver) validate(items []Item, capacity int) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	if len(items) > s.bounds.MaxItems {
		return fmt.Errorf("%d items: %w", len(items), ErrTooManyItems)
	}
	if capacity < 0 || capacity > s.bounds.MaxCapacity {
		return fmt.Errorf("capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	for i, item := range items {
		if item.Weight <= 0 || item.Value < 0 {
			return fmt.Errorf("item %d (weight %d, value %d): %w", i, item.Weight, item.Value, ErrInvalidItem)
		}
	}
	return nil
}

// tableDimensions computes the DP row width and take-matrix size with
// overflow-checked arithmetic. The bounds cap count and capacity individually,
// but their product must also be addressable.
func tableDimensions(count, capacity int) (width, takeSize int, err error) {
	if capacity == math.MaxInt {
		return 0, 0, ErrDimensionOverflow
	}
	width = capacity + 1
	if width > math.MaxInt/count {
		return 0, 0, ErrDimensionOverflow
	}
	takeSize = width * count
	if takeSize == 0 {
		return 0, 0, ErrDimensionOverflow
	}
	if takeSize > maxWorkspaceCells {
		return 0, 0, ErrAlloc
	}
	return width, takeSize, nil
}

// cell tracks the best value achievable at a residual capacity together with
// the minimal total weight achieving that value. Weight is the secondary key
// of the lexicographic tie-break.
type cell struct {
	value  int
	weight int
}

type workspace struct {
	width int
	prev  []cell
	curr  []cell
	take  []bool
}

func newWorkspace(width, takeSize int) *workspace {
	return &workspace{
		width: width,
		prev:  make([]cell, width),
		curr:  make([]cell, width),
		take:  make([]bool, takeSize),
	}
}

// run fills the take matrix row by row, keeping only two living rows and
// swapping them after each item instead of copying.
func (ws *workspace) run(items []Item) error {
	for i, item := range items {
		// Capacities below the item weight inherit from the previous row.
		copy(ws.curr, ws.prev)

		row := ws.take[i*ws.width : (i+1)*ws.width]
		for cap := item.Weight; cap < ws.width; cap++ {
			from := ws.prev[cap-item.Weight]
			candidateValue, ok := addChecked(from.value, item.Value)
			if !ok {
				return ErrIntOverflow
			}
			candidateWeight := from.weight + item.Weight

			current := ws.curr[cap]
			if candidateValue > current.value ||
				(candidateValue == current.value && candidateWeight < current.weight) {
				ws.curr[cap] = cell{value: candidateValue, weight: candidateWeight}
				row[cap] = true
			}
		}

		ws.prev, ws.curr = ws.curr, ws.prev
	}
	return nil
}

// selectBest scans the final row for the lexicographically best cell (value
// descending, weight ascending). Remaining ties resolve to the smallest
// capacity index because the scan is ascending and strict.
func (ws *workspace) selectBest() int {
	bestCap := 0
	best := ws.prev[0]
	for cap := 1; cap < ws.width; cap++ {
		candidate := ws.prev[cap]
		if candidate.value > best.value ||
			(candidate.value == best.value && candidate.weight < best.weight) {
			best = candidate
			bestCap = cap
		}
	}
	return bestCap
}

// reconstruct walks the take matrix from the last item down. Indices are
// written into a pre-sized buffer from the end so the result comes out
// ascending without a sort.
func (ws *workspace) reconstruct(items []Item, bestCap int) Solution {
	selected := 0
	cap := bestCap
	for i := len(items) - 1; i >= 0; i-- {
		if ws.take[i*ws.width+cap] {
			selected++
			cap -= items[i].Weight
		}
	}

	result := Solution{OptimalValue: ws.prev[bestCap].value}
	if selected == 0 {
		return result
	}

	indices := make([]int, selected)
	write := selected
	cap = bestCap
	for i := len(items) - 1; i >= 0; i-- {
		if ws.take[i*ws.width+cap] {
			write--
			indices[write] = i
			cap -= items[i].Weight
		}
	}

	result.SelectedIndices = indices
	return result
}

// addChecked adds two non-negative ints, reporting whether the sum stays in
// range.
func addChecked(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}
