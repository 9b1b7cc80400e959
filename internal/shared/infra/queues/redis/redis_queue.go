package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

const QueueType = "redis"

// Publisher es el subconjunto de *redis.Client que usamos.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Envelope es lo que se escribe en el canal: Redis no tiene cabeceras.
type Envelope struct {
	ID         string `json:"id"`
	Exchange   string `json:"exchange"`
	RoutingKey string `json:"routingKey"`
	Payload    string `json:"payload"`
}

// RedisQueue publica con PUBLISH en el canal "<exchange>:<routingKey>", así los
// consumidores pueden usar PSUBSCRIBE "<exchange>:*".
type RedisQueue struct {
	name   string
	client Publisher
	log    *zap.Logger
}

func NewRedisQueue(name string, client Publisher, log *zap.Logger) *RedisQueue {
	return &RedisQueue{name: name, client: client, log: log}
}

func (q *RedisQueue) Name() string { return QueueType + ":" + q.name }

func Channel(exchange, routingKey string) string {
	return exchange + ":" + routingKey
}

func (q *RedisQueue) Publish(ctx context.Context, msg sharedQueue.Message, exchange, routingKey string) error {
	data, err := json.Marshal(Envelope{
		ID:         msg.ID,
		Exchange:   exchange,
		RoutingKey: routingKey,
		Payload:    msg.Payload,
	})
	if err != nil {
		return err
	}

	channel := Channel(exchange, routingKey)
	receivers, err := q.client.Publish(ctx, channel, data).Result()
	if err != nil {
		q.log.Error("Error publishing to Redis", zap.String("channel", channel), zap.Error(err))
		return fmt.Errorf("redis publish to %s: %w", channel, err)
	}

	if receivers == 0 {
		q.log.Debug("Message published with no subscribers", zap.String("channel", channel), zap.String("id", msg.ID))
	}
	return nil
}

type Provider struct {
	client Publisher
	log    *zap.Logger
}

func NewProvider(client Publisher, log *zap.Logger) *Provider {
	return &Provider{client: client, log: log}
}

func (p *Provider) QueueType() string { return QueueType }

func (p *Provider) Queue(name string) (sharedQueue.Queue, error) {
	return NewRedisQueue(name, p.client, p.log), nil
}

// Verificación estática
var (
	_ sharedQueue.Queue = (*RedisQueue)(nil)
	_ Publisher         = (*redis.Client)(nil)
)
