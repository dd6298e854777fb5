package affinity

import (
	"time"

	"github.com/google/uuid"
)

// Table is an immutable snapshot of per-product affinity weights in [0,1].
// It is built in batch and swapped in atomically; readers never observe a
// partially rebuilt table.
type Table struct {
	weights map[uuid.UUID]float64
	builtAt time.Time
}

func NewTable(weights map[uuid.UUID]float64, builtAt time.Time) *Table {
	if weights == nil {
		weights = map[uuid.UUID]float64{}
	}
	return &Table{weights: weights, builtAt: builtAt}
}

// Affinity returns the product's weight, 0 for unknown ids. Cold start is
// neutral: never an error, never negative.
func (t *Table) Affinity(productID uuid.UUID) float64 {
	if t == nil {
		return 0
	}
	return t.weights[productID]
}

func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	return len(t.weights)
}

func (t *Table) BuiltAt() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.builtAt
}
