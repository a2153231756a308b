package jobs

import (
	"context"
	"log"
	"time"
)

type sweeper interface {
	SweepEligibleOrders(ctx context.Context) error
	ConfirmPendingSweeps(ctx context.Context) error
}

// SweepJob periodically forwards settled deposits to cold storage and
// finalizes sweeps broadcast on earlier passes.
type SweepJob struct {
	usecase  sweeper
	interval time.Duration
	stop     chan struct{}
}

func NewSweepJob(usecase sweeper, interval time.Duration) *SweepJob {
	return &SweepJob{
		usecase:  usecase,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *SweepJob) Start(ctx context.Context) {
	log.Println("🕐 Starting cold-storage sweep job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Sweep job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Sweep job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *SweepJob) Stop() {
	close(j.stop)
}

func (j *SweepJob) runOnce(ctx context.Context) {
	// confirm first so a sweep broadcast last pass settles before new work
	if err := j.usecase.ConfirmPendingSweeps(ctx); err != nil {
		log.Printf("❌ Error confirming pending sweeps: %v", err)
	}
	if err := j.usecase.SweepEligibleOrders(ctx); err != nil {
		log.Printf("❌ Error sweeping eligible orders: %v", err)
	}
}
