package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/davicafu/wfstatus/internal/config"
	sharedDomain "github.com/davicafu/wfstatus/internal/shared/domain"
	"github.com/davicafu/wfstatus/internal/shared/infra/platform/db/mongodb"
	"github.com/davicafu/wfstatus/internal/shared/infra/platform/db/postgres"
	"github.com/davicafu/wfstatus/internal/shared/infra/platform/db/sqlite"
	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
	"github.com/davicafu/wfstatus/internal/shared/infra/queues"
	wfDomain "github.com/davicafu/wfstatus/internal/workflow/domain"
	"github.com/davicafu/wfstatus/pkg/utils"
)

// newKafkaWriter crea el writer compartido por las colas Kafka.
// No lleva topic fijo: cada mensaje usa el exchange como topic.
func newKafkaWriter(cfg *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.KafkaBatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// newStatusQueueProvider atiende el tipo amqp_exchange con el backend elegido.
// Si hay archivo configurado, cada handle publica también en él.
func newStatusQueueProvider(backend queues.Provider, archive queues.Provider, log *zap.Logger) queues.Provider {
	return queues.ProviderFunc{
		Type: wfDomain.QueueType,
		Build: func(name string) (sharedQueue.Queue, error) {
			primary, err := backend.Queue(name)
			if err != nil {
				return nil, err
			}
			if archive == nil {
				return primary, nil
			}
			secondary, err := archive.Queue(name)
			if err != nil {
				return nil, err
			}
			return queues.NewTeeQueue(log, primary, secondary), nil
		},
	}
}

// pickProvider devuelve el provider registrado para el backend indicado.
func pickProvider(backend string, providers map[string]queues.Provider) (queues.Provider, error) {
	p, ok := providers[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %s", queues.ErrUnknownQueueType, backend)
	}
	return p, nil
}

// openOutboxRepository abre el almacén del outbox y prepara su esquema.
// El closer devuelto libera la conexión.
func openOutboxRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (sharedDomain.OutboxRepository, func(), error) {
	switch cfg.OutboxStore {
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open SQLite: %w", err)
		}
		// SQLite no admite escrituras concurrentes
		db.SetMaxOpenConns(1)
		repo := sqlite.NewOutboxRepoSQLite(db)
		if err := repo.InitSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		log.Info("✅ Outbox en SQLite", zap.String("path", cfg.SQLitePath))
		return repo, func() { db.Close() }, nil

	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open Postgres: %w", err)
		}
		// Postgres puede tardar en arrancar junto al servicio
		if err := utils.Retry(ctx, 5, 500*time.Millisecond, func() error { return db.PingContext(ctx) }); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping Postgres: %w", err)
		}
		repo := postgres.NewOutboxRepoPostgres(db)
		if err := repo.InitSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("✅ Outbox en Postgres")
		return repo, func() { db.Close() }, nil

	case "mongodb":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect MongoDB: %w", err)
		}
		if err := utils.Retry(ctx, 5, 500*time.Millisecond, func() error { return client.Ping(ctx, nil) }); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
		}
		repo := mongodb.NewOutboxRepoMongoDB(client, cfg.MongoDB)
		if err := repo.InitIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
		}
		log.Info("✅ Outbox en MongoDB", zap.String("db", cfg.MongoDB))
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown outbox store %q", cfg.OutboxStore)
	}
}
