package affinity

import (
	"context"
	"sync/atomic"
	"time"

	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/repository/specification"
	"foodiebot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Builder derives the collaborative signal from the interaction event log.
// Rebuild is a batch operation; staleness between rebuilds is an accepted
// trade-off, not a correctness defect.
type Builder struct {
	uowFactory unitofwork.RepositoryFactory

	// shownWeight discounts a shown-but-not-chosen impression relative to a
	// choice; shrinkage suppresses sample-size skew on low-count items.
	shownWeight float64
	shrinkage   float64

	current atomic.Pointer[Table]
}

func NewBuilder(uowFactory unitofwork.RepositoryFactory, shownWeight, shrinkage float64) *Builder {
	if shownWeight <= 0 {
		shownWeight = 0.1
	}
	if shrinkage <= 0 {
		shrinkage = 5
	}
	b := &Builder{
		uowFactory:  uowFactory,
		shownWeight: shownWeight,
		shrinkage:   shrinkage,
	}
	b.current.Store(NewTable(nil, time.Time{}))
	return b
}

// Affinity reads the current snapshot; safe under concurrent Rebuild.
func (b *Builder) Affinity(productID uuid.UUID) float64 {
	return b.current.Load().Affinity(productID)
}

// Table returns the current snapshot for inspection.
func (b *Builder) Table() *Table {
	return b.current.Load()
}

// Rebuild aggregates chosen and shown events into normalized weights and
// swaps the snapshot in atomically. Chosen events are de-duplicated per
// (session, product), so repeated recordChoice calls for the same pair
// never double-count.
func (b *Builder) Rebuild(ctx context.Context) (*Table, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)

	events, err := uow.InteractionEventRepository().FindAll(ctx,
		specification.ByEventTypes{Types: []string{
			entity.EventTypeProductShown,
			entity.EventTypeProductChosen,
		}},
	)
	if err != nil {
		return nil, err
	}

	table := buildTable(events, b.shownWeight, b.shrinkage)
	b.current.Store(table)
	return table, nil
}

func buildTable(events []*entity.InteractionEvent, shownWeight, shrinkage float64) *Table {
	chosenSeen := map[string]bool{}
	chosen := map[uuid.UUID]int{}
	shown := map[uuid.UUID]int{}

	for _, e := range events {
		if e == nil || e.ProductId == nil {
			continue
		}
		pid := *e.ProductId
		switch e.EventType {
		case entity.EventTypeProductChosen:
			key := e.SessionId + "|" + pid.String()
			if chosenSeen[key] {
				continue
			}
			chosenSeen[key] = true
			chosen[pid]++
		case entity.EventTypeProductShown:
			shown[pid]++
		}
	}

	raw := map[uuid.UUID]float64{}
	maxWeight := 0.0
	for pid := range shown {
		raw[pid] = weightFor(chosen[pid], shown[pid], shownWeight, shrinkage)
	}
	for pid := range chosen {
		if _, ok := raw[pid]; !ok {
			raw[pid] = weightFor(chosen[pid], 0, shownWeight, shrinkage)
		}
	}
	for _, w := range raw {
		if w > maxWeight {
			maxWeight = w
		}
	}

	weights := make(map[uuid.UUID]float64, len(raw))
	if maxWeight > 0 {
		for pid, w := range raw {
			weights[pid] = w / maxWeight
		}
	}
	return NewTable(weights, time.Now())
}

// weightFor blends choices and impressions, shrunk toward zero for items
// with few observations so one lucky click cannot dominate the catalog.
func weightFor(chosen, shown int, shownWeight, shrinkage float64) float64 {
	n := float64(chosen + shown)
	if n == 0 {
		return 0
	}
	rawScore := float64(chosen) + shownWeight*float64(shown)
	return rawScore * (n / (n + shrinkage))
}
