package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/eugenenazirov/knapsack-solver/internal/solver"
)

func TestNewMemoryStorageReturnsDefaultBounds(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()

	got, err := store.GetBounds()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := solver.DefaultBounds(); got != want {
		t.Fatalf("expected default bounds %+v, got %+v", want, got)
	}
}

func TestSetBoundsUpdatesState(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	want := solver.Bounds{MaxItems: 50, MaxCapacity: 5000}
	if err := store.SetBounds(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetBounds()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSetBoundsRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	testCases := []solver.Bounds{
		{},
		{MaxItems: 0, MaxCapacity: 100},
		{MaxItems: -1, MaxCapacity: 100},
		{MaxItems: 10, MaxCapacity: 0},
		{MaxItems: 10, MaxCapacity: -5},
		{MaxItems: hardMaxItems + 1, MaxCapacity: 100},
		{MaxItems: 10, MaxCapacity: hardMaxCapacity + 1},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("case_%d", idx), func(t *testing.T) {
			store := NewMemoryStorage()
			if err := store.SetBounds(tc); !errors.Is(err, ErrInvalidBounds) {
				t.Fatalf("expected ErrInvalidBounds for %+v, got %v", tc, err)
			}
		})
	}
}

func TestMemoryStorageConcurrentAccess(t *testing.T) {
	store := NewMemoryStorage()
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(offset int) {
			defer wg.Done()
			bounds := solver.Bounds{MaxItems: 10 + offset, MaxCapacity: 1000 + offset}
			if err := store.SetBounds(bounds); err != nil {
				t.Errorf("SetBounds failed: %v", err)
			}
		}(i)

		go func() {
			defer wg.Done()
			if _, err := store.GetBounds(); err != nil {
				t.Errorf("GetBounds failed: %v", err)
			}
		}()
	}

	wg.Wait()

	// final read should succeed
	if _, err := store.GetBounds(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
