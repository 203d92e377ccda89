package scheduler

import (
	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/internal/queue"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const DefaultLowStockSpec = "0 8 * * *"

// LowStockScheduler periodically sweeps variants below the delivery
// low-stock threshold and hands the list to the worker.
type LowStockScheduler struct {
	cron      *cron.Cron
	spec      string
	threshold int
	inventory service.InventoryService
	queue     *queue.Client
}

// NewLowStockScheduler builds the scheduler. A disabled queue client means
// the report is only logged.
func NewLowStockScheduler(spec string, threshold int, inventory service.InventoryService, client *queue.Client) *LowStockScheduler {
	if spec == "" {
		spec = DefaultLowStockSpec
	}
	return &LowStockScheduler{
		cron:      cron.New(),
		spec:      spec,
		threshold: threshold,
		inventory: inventory,
		queue:     client,
	}
}

func (s *LowStockScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.Sweep(); err != nil {
			logger.Error("Scheduled low stock sweep failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for low stock sweep", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Low stock scheduler started", map[string]interface{}{
		"spec":      s.spec,
		"threshold": s.threshold,
	})
	return nil
}

// Sweep runs one pass and returns the ids of the low-stock variants.
func (s *LowStockScheduler) Sweep() ([]uint, error) {
	variants, err := s.inventory.ListLowStock(s.threshold)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, v.ID)
	}
	if len(ids) == 0 {
		logger.Debug("Low stock sweep found nothing")
		return ids, nil
	}

	if !s.queue.Enabled() {
		logger.Warn("Low stock variants found", map[string]interface{}{
			"threshold":   s.threshold,
			"variant_ids": ids,
		})
		return ids, nil
	}

	payload := queue.LowStockReportPayload{Threshold: s.threshold, VariantIDs: ids}
	if err := s.queue.EnqueueLowStockReport(payload); err != nil {
		return ids, err
	}
	logger.Info("Low stock report enqueued", map[string]interface{}{
		"count": len(ids),
	})
	return ids, nil
}

func (s *LowStockScheduler) Stop() {
	logger.Info("Stopping low stock scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Low stock scheduler stopped")
}
