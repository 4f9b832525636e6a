package notification

import (
	"context"
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"warehouse-twin-backend/config"
	"warehouse-twin-backend/internal/store"
)

// Service periodically dispatches warranty scans for every warehouse that
// has at least one push subscription.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *WorkerPool
}

// NewService creates and initializes the warranty notifier service.
func NewService(cfg *config.Config, s store.Store) *Service {
	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	return &Service{
		cfg:        cfg,
		store:      s,
		workerPool: NewWorkerPool(cfg.WorkerPool.Size, s, &webpushOptions, cfg.Notifier.DaysThreshold),
	}
}

// Run starts the periodic scan loop. It blocks until the context is
// cancelled and is meant to be launched as a goroutine from main.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Notifier.Enabled {
		log.Println("Warranty notifier is disabled. Not starting.")
		return
	}
	if s.cfg.Push.PublicKey == "" || s.cfg.Push.PrivateKey == "" {
		log.Println("VAPID keys are not configured. Warranty notifier not starting.")
		return
	}

	log.Println("Starting warranty notifier service...")
	s.workerPool.Start(ctx)

	ticker := time.NewTicker(s.cfg.Notifier.Interval)
	defer ticker.Stop()

	// Run one pass immediately, then on every tick.
	s.dispatchAll(ctx)
	for {
		select {
		case <-ticker.C:
			s.dispatchAll(ctx)
		case <-ctx.Done():
			log.Println("Warranty notifier stopping.")
			return
		}
	}
}

func (s *Service) dispatchAll(ctx context.Context) {
	warehouseIDs, err := s.store.SubscribedWarehouseIDs(ctx)
	if err != nil {
		log.Printf("Error listing subscribed warehouses: %v", err)
		return
	}
	for _, id := range warehouseIDs {
		s.workerPool.Dispatch(id)
	}
}
