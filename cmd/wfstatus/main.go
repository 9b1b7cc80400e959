package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/davicafu/wfstatus/internal/config"
	sharedEvents "github.com/davicafu/wfstatus/internal/shared/infra/events"
	"github.com/davicafu/wfstatus/internal/shared/infra/queues"
	chQueue "github.com/davicafu/wfstatus/internal/shared/infra/queues/clickhouse"
	kafkaQueue "github.com/davicafu/wfstatus/internal/shared/infra/queues/kafka"
	memQueue "github.com/davicafu/wfstatus/internal/shared/infra/queues/memory"
	outboxQueue "github.com/davicafu/wfstatus/internal/shared/infra/queues/outbox"
	redisQueue "github.com/davicafu/wfstatus/internal/shared/infra/queues/redis"
	"github.com/davicafu/wfstatus/internal/shared/infra/relayer"
	wfApp "github.com/davicafu/wfstatus/internal/workflow/application"
	wfDomain "github.com/davicafu/wfstatus/internal/workflow/domain"
	wfEvents "github.com/davicafu/wfstatus/internal/workflow/infra/inbound/events"
	wfHttp "github.com/davicafu/wfstatus/internal/workflow/infra/inbound/http"
	"github.com/davicafu/wfstatus/pkg/logger"
)

// ---------------- Main ----------------
func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.LogLevel) // inicializa zap
	log := logger.Logger()    // obtiene logger estructurado
	defer log.Sync()          // flush buffers al salir

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Transports ----------------
	kafkaWriter := newKafkaWriter(cfg)
	defer kafkaWriter.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if cfg.QueueBackend == redisQueue.QueueType || cfg.OutboxTarget == redisQueue.QueueType {
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("⚠️ Redis no disponible", zap.Error(err))
		} else {
			log.Info("✅ Redis conectado")
		}
	}

	providers := map[string]queues.Provider{
		memQueue.QueueType:   memQueue.NewProvider(),
		kafkaQueue.QueueType: kafkaQueue.NewProvider(kafkaWriter, log),
		redisQueue.QueueType: redisQueue.NewProvider(rdb, log),
	}

	// ---------------- Outbox ----------------
	var outboxWorker *relayer.Worker
	if cfg.QueueBackend == outboxQueue.QueueType {
		repo, closeRepo, err := openOutboxRepository(ctx, cfg, log)
		if err != nil {
			log.Fatal("failed to open outbox store", zap.Error(err))
		}
		defer closeRepo()

		providers[outboxQueue.QueueType] = outboxQueue.NewProvider(repo, log)

		targetProvider, err := pickProvider(cfg.OutboxTarget, providers)
		if err != nil || cfg.OutboxTarget == outboxQueue.QueueType {
			log.Fatal("invalid outbox target", zap.String("target", cfg.OutboxTarget), zap.Error(err))
		}
		target, err := targetProvider.Queue(wfDomain.ExchangeName)
		if err != nil {
			log.Fatal("failed to build outbox target", zap.Error(err))
		}
		outboxWorker = relayer.NewOutboxWorker(repo, target, cfg.OutboxPeriod, cfg.OutboxLimit, log)
	}

	// ---------------- Archive ----------------
	var archive queues.Provider
	if cfg.ClickHouseAddr != "" {
		chDB, err := chQueue.Open(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, archivo deshabilitado", zap.Error(err))
		} else {
			defer chDB.Close()
			if err := chQueue.NewArchiveQueue(wfDomain.ExchangeName, chDB, log).InitSchema(ctx); err != nil {
				log.Fatal("failed to initialize ClickHouse", zap.Error(err))
			}
			archiveProvider := chQueue.NewProvider(chDB, log)
			providers[chQueue.QueueType] = archiveProvider
			archive = archiveProvider
			log.Info("✅ Archivo de estados en ClickHouse")
		}
	}

	// ---------------- Registry ----------------
	backend, err := pickProvider(cfg.QueueBackend, providers)
	if err != nil {
		log.Fatal("invalid status queue backend", zap.String("backend", cfg.QueueBackend), zap.Error(err))
	}

	eventQueues := queues.NewEventQueues(log)
	for _, p := range providers {
		eventQueues.Register(p.QueueType(), p)
	}
	eventQueues.Register(wfDomain.QueueType, newStatusQueueProvider(backend, archive, log))

	// ---------------- Listener ----------------
	listener, err := wfApp.NewStatusListener(cfg.ListenerType, eventQueues, log)
	if err != nil {
		log.Fatal("failed to create status listener", zap.Error(err))
	}
	log.Info("📣 Workflow status listener",
		zap.String("type", cfg.ListenerType),
		zap.String("backend", cfg.QueueBackend),
	)

	if outboxWorker != nil {
		go outboxWorker.Start(ctx)
	}

	// ---------------- Events ----------------
	var consumerDone <-chan struct{}
	if cfg.ConsumeLifecycle {
		log.Info("🚀 Usando Kafka para eventos de ciclo de vida")
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.KafkaLifecycleTopic,
			GroupID:  cfg.KafkaGroupID,
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		defer reader.Close()

		lifecycleConsumer := wfEvents.NewLifecycleConsumer(listener, 0, log)
		consumerDone = sharedEvents.NewConsumerAdapter(reader, lifecycleConsumer, log).Start(ctx)
	}

	// ---------------- HTTP ----------------
	statusHandler := wfHttp.NewStatusHandler(listener, log)
	router := gin.Default()
	wfHttp.RegisterStatusRoutes(router, statusHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("🚀 Server running",
			zap.String("url", "http://localhost:"+cfg.HTTPPort),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", zap.Error(err))
	}
	if consumerDone != nil {
		<-consumerDone
	}
}
