package solver

// Item is a single knapsack candidate. Weight must be strictly positive and
// Value non-negative for Solve to accept it.
type Item struct {
	Weight int `json:"weight"`
	Value  int `json:"value"`
}

// Solution holds the outcome of a successful solve. SelectedIndices is
// strictly ascending and indexes into the item slice passed to Solve.
type Solution struct {
	OptimalValue    int
	SelectedIndices []int
}

// Reset zeroes the solution. Idempotent and safe on a zero Solution.
func (s *Solution) Reset() {
	if s == nil {
		return
	}
	s.OptimalValue = 0
	s.SelectedIndices = nil
}

// TotalWeight sums the weights of the selected items. The items slice must be
// the one the solution was computed from.
func (s Solution) TotalWeight(items []Item) int {
	total := 0
	for _, idx := range s.SelectedIndices {
		total += items[idx].Weight
	}
	return total
}

// Bounds caps the accepted problem dimensions. The ceilings are configuration,
// not algorithm parameters: the DP itself works for any positive sizes that fit
// in memory.
type Bounds struct {
	MaxItems    int
	MaxCapacity int
}

const (
	defaultMaxItems    = 100
	defaultMaxCapacity = 100000
)

// DefaultBounds returns the compiled-in problem size ceilings.
func DefaultBounds() Bounds {
	return Bounds{
		MaxItems:    defaultMaxItems,
		MaxCapacity: defaultMaxCapacity,
	}
}

// Solver describes the behaviour required from a knapsack solver.
type Solver interface {
	Solve(items []Item, capacity int) (Solution, error)
}
