package storage

import (
	"errors"
	"sync"

	"github.com/eugenenazirov/knapsack-solver/internal/solver"
)

// Hard ceilings for tunable bounds. Bounds can be lowered freely but never
// raised past these, keeping worst-case solve cost predictable.
const (
	hardMaxItems    = 10000
	hardMaxCapacity = 10000000
)

var (
	// ErrInvalidBounds indicates the provided bounds violate validation rules.
	ErrInvalidBounds = errors.New("bounds must be positive and within the hard ceilings")
)

// Storage provides access to the solver bounds used when solving requests.
type Storage interface {
	GetBounds() (solver.Bounds, error)
	SetBounds(bounds solver.Bounds) error
}

// MemoryStorage keeps the active bounds in-memory and guards access with a
// RWMutex.
type MemoryStorage struct {
	mu     sync.RWMutex
	bounds solver.Bounds
}

// NewMemoryStorage initialises storage with the solver's default bounds.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		bounds: solver.DefaultBounds(),
	}
}

// GetBounds returns the currently configured bounds.
func (s *MemoryStorage) GetBounds() (solver.Bounds, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bounds, nil
}

// SetBounds validates and stores the provided bounds.
func (s *MemoryStorage) SetBounds(bounds solver.Bounds) error {
	if err := validateBounds(bounds); err != nil {
		return err
	}

	s.mu.Lock()
	s.bounds = bounds
	s.mu.Unlock()

	return nil
}

func validateBounds(bounds solver.Bounds) error {
	if bounds.MaxItems <= 0 || bounds.MaxItems > hardMaxItems {
		return ErrInvalidBounds
	}
	if bounds.MaxCapacity <= 0 || bounds.MaxCapacity > hardMaxCapacity {
		return ErrInvalidBounds
	}
	return nil
}
