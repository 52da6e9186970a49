package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"empire-service/internal/config"
	"empire-service/internal/messaging/notifier"
	"empire-service/internal/repository"
	"empire-service/internal/service"
)

func Run(cfg config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := &sync.WaitGroup{}

	delayedCtx, infraCancel := context.WithCancel(ctx)
	delayedWg := &sync.WaitGroup{}

	repo, err := repository.NewMongoRepository(delayedCtx, logger, delayedWg, cfg.MongoDB)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	notif := notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka)

	service.RunServices(ctx, logger, wg, cfg, repo, notif)

	wg.Wait()
	logger.Info("shutting down")

	logger.Info("shutting down delayed services")
	infraCancel()
	delayedWg.Wait()
}
