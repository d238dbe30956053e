package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-events/config"
	"go-gin-events/internal/auth"
	"go-gin-events/internal/database"
	"go-gin-events/internal/flash"
	"go-gin-events/internal/notify"
	"go-gin-events/internal/queue"
	"go-gin-events/internal/realtime"
	"go-gin-events/internal/repository"
	"go-gin-events/internal/router"
	"go-gin-events/internal/service"
	"go-gin-events/internal/worker"
	"go-gin-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.SetLevel(cfg.Server.LogLevel)
	defer logger.L.Sync()

	gin.SetMode(gin.ReleaseMode)

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	notifications, err := newNotificationQueue(cfg, rdb)
	if err != nil {
		log.Fatalf("Failed to initialize notification queue: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub()
	go hub.Run()

	// worker 跟著 ctx 結束，先於 hub 關閉
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	if err := worker.NewNotificationWorker(hub, notifications).Start(workerCtx); err != nil {
		log.Fatalf("Failed to start notification worker: %v", err)
	}

	users := repository.NewUserRepository(pool)
	eventService := service.NewEventService(
		repository.NewEventRepository(pool),
		repository.NewJoinRepository(pool),
		notify.NewQueueNotifier(notifications),
	)

	srv := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: router.New(router.Dependencies{
			Config:       cfg,
			EventService: eventService,
			Users:        users,
			Tokens:       auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
			FlashStore:   flash.NewRedisStore(rdb, cfg.Flash.TTL),
			Hub:          hub,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	srvLog := logger.WithComponent("server")
	go func() {
		srvLog.Info("HTTP server listening", zap.String("addr", srv.Addr), zap.String("notify_backend", string(cfg.Notify.Backend)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	srvLog.Info("Shutting down")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		srvLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := hub.Shutdown(5 * time.Second); err != nil {
		srvLog.Error("Hub shutdown failed", zap.Error(err))
	}
	srvLog.Info("Server stopped")
}

func newNotificationQueue(cfg *config.Config, rdb *redis.Client) (queue.NotificationQueue, error) {
	if cfg.Notify.Backend == config.NotifyBackendMemory {
		return queue.NewNotificationQueue(cfg.Notify.BufferSize), nil
	}
	hostname, _ := os.Hostname()
	return queue.NewRedisStreamNotificationQueue(rdb, hostname, nil)
}
