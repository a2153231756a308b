package jobs

import (
	"context"
	"log"
	"time"
)

type orderExpirer interface {
	ExpireStaleOrders(ctx context.Context) (int64, error)
}

// OrderExpiryJob moves PENDING deposit orders past their quote window to
// EXPIRED so listings stay honest even when nobody polls the order.
type OrderExpiryJob struct {
	usecase  orderExpirer
	interval time.Duration
	stop     chan struct{}
}

func NewOrderExpiryJob(usecase orderExpirer) *OrderExpiryJob {
	return &OrderExpiryJob{
		usecase:  usecase,
		interval: 30 * time.Second,
		stop:     make(chan struct{}),
	}
}

func (j *OrderExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting deposit order expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Order expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Order expiry job stopped")
			return
		case <-ticker.C:
			if n, err := j.usecase.ExpireStaleOrders(ctx); err != nil {
				log.Printf("❌ Error expiring deposit orders: %v", err)
			} else if n > 0 {
				log.Printf("✅ Expired %d deposit orders", n)
			}
		}
	}
}

func (j *OrderExpiryJob) Stop() {
	close(j.stop)
}
