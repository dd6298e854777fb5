package affinity

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic rebuilds on a cron spec (e.g. "@every 5m").
// The hot scoring path never waits on a rebuild: it keeps reading the
// previous snapshot until the swap.
type Scheduler struct {
	builder *Builder
	spec    string
	cron    *cron.Cron
}

func NewScheduler(builder *Builder, spec string) *Scheduler {
	if spec == "" {
		spec = "@every 5m"
	}
	return &Scheduler{
		builder: builder,
		spec:    spec,
		cron:    cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	// Warm the first snapshot immediately instead of waiting a full period.
	go s.runOnce()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	table, err := s.builder.Rebuild(ctx)
	if err != nil {
		log.Printf("[WARN] Affinity rebuild failed, keeping previous snapshot: %v", err)
		return
	}
	log.Printf("[INFO] Affinity table rebuilt: %d products", table.Size())
}
