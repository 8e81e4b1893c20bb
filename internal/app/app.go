package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"chat-service/internal/auth"
	"chat-service/internal/authz"
	"chat-service/internal/config"
	"chat-service/internal/gateway"
	"chat-service/internal/notifier"
	"chat-service/internal/presence"
	"chat-service/internal/repository"
	"chat-service/internal/service"
	"go.uber.org/zap"
)

func Run(cfg *config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}

	// The repository, notifier and redis client outlive the servers so in-flight requests can finish.
	delayedCtx, repoCancel := context.WithCancel(context.Background())
	delayedWg := &sync.WaitGroup{}

	repo, err := repository.NewMongoRepository(delayedCtx, logger, delayedWg, cfg.MongoDB)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	notif := notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka)

	tracker := newTracker(delayedCtx, logger, delayedWg, cfg)

	reporter, err := presence.NewReporter(logger, tracker, cfg.Presence.ReportSchedule)
	if err != nil {
		logger.Fatalw("failed to create presence reporter", "error", err)
	}
	reporter.Start(ctx, wg)

	resolver := authz.NewResolver(repo)
	verifier := auth.NewVerifier(cfg.JWTSecret)
	hub := gateway.NewHub(logger, verifier, tracker, notif, resolver, repo)
	svc := service.NewServerService(logger, repo, notif, resolver, hub, tracker)

	service.RunServices(ctx, logger, wg, cfg, svc, verifier, hub)

	<-ctx.Done()
	wg.Wait()
	logger.Info("shutting down")

	logger.Info("shutting down delayed services")
	repoCancel()
	delayedWg.Wait()
}

func newTracker(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg *config.Config) presence.Tracker {
	if cfg.Presence.Backend != config.PresenceBackendRedis {
		logger.Infow("using in-memory presence")
		return presence.NewMemoryTracker()
	}

	rdb, err := presence.NewRedisClient(ctx, logger, wg, cfg.Redis)
	if err != nil {
		logger.Fatalw("failed to create redis client", "error", err)
	}
	logger.Infow("using redis presence", "address", cfg.Redis.Address)
	return presence.NewRedisTracker(rdb)
}
