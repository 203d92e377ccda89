package worker

import (
	"errors"

	"github.com/brightbuy/brightbuy-backend/config"
	"github.com/brightbuy/brightbuy-backend/internal/queue"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"github.com/hibiken/asynq"
)

var ErrQueueDisabled = errors.New("queue disabled")

// Service runs the asynq server in-process next to the HTTP server.
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrQueueDisabled
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}

	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	return &Service{
		server: asynq.NewServer(opt, serverCfg),
		mux:    mux,
	}, nil
}

// Start returns once the server is processing; tasks run on asynq's goroutines.
func (s *Service) Start() error {
	if err := s.server.Start(s.mux); err != nil {
		logger.Error("Failed to start worker", err)
		return err
	}
	logger.Info("Worker started")
	return nil
}

func (s *Service) Stop() {
	logger.Info("Stopping worker...")
	s.server.Shutdown()
	logger.Info("Worker stopped")
}
