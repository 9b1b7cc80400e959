package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

const QueueType = "kafka"

// Cabeceras que acompañan a cada mensaje publicado.
const (
	HeaderEventID    = "event_id"
	HeaderEventType  = "event_type"
	HeaderExchange   = "exchange"
	HeaderRoutingKey = "routing_key"
)

// MessageWriter es el subconjunto de *kafka.Writer que necesitamos.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaQueue publica en Kafka. El exchange se usa como topic y la routing key
// viaja en cabeceras, de modo que los consumidores pueden filtrar por ella.
// El writer NO debe tener un Topic fijo.
type KafkaQueue struct {
	name   string
	writer MessageWriter
	log    *zap.Logger
}

func NewKafkaQueue(name string, writer MessageWriter, log *zap.Logger) *KafkaQueue {
	return &KafkaQueue{name: name, writer: writer, log: log}
}

func (q *KafkaQueue) Name() string { return QueueType + ":" + q.name }

func (q *KafkaQueue) Publish(ctx context.Context, msg sharedQueue.Message, exchange, routingKey string) error {
	headers := []kafka.Header{
		{Key: HeaderEventID, Value: []byte(msg.ID)},
		{Key: HeaderEventType, Value: []byte(routingKey)},
		{Key: HeaderExchange, Value: []byte(exchange)},
		{Key: HeaderRoutingKey, Value: []byte(routingKey)},
	}
	headers = injectTraceHeaders(ctx, headers)

	kMsg := kafka.Message{
		Topic:   exchange,
		Key:     []byte(msg.ID),
		Value:   []byte(msg.Payload),
		Headers: headers,
	}

	if err := q.writer.WriteMessages(ctx, kMsg); err != nil {
		q.log.Error("Error publishing to Kafka",
			zap.String("topic", exchange),
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
		return fmt.Errorf("kafka publish to %s: %w", exchange, err)
	}

	q.log.Debug("Message published to Kafka", zap.String("id", msg.ID), zap.String("topic", exchange))
	return nil
}

// HeaderValue devuelve el valor de una cabecera o "".
func HeaderValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// injectTraceHeaders añade el contexto de traza W3C con el propagador global.
func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.headers
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string { return HeaderValue(c.headers, key) }

func (c *headerCarrier) Set(key, value string) {
	for i, h := range c.headers {
		if h.Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

// Provider comparte un único writer entre todas las colas Kafka.
type Provider struct {
	writer MessageWriter
	log    *zap.Logger
}

func NewProvider(writer MessageWriter, log *zap.Logger) *Provider {
	return &Provider{writer: writer, log: log}
}

func (p *Provider) QueueType() string { return QueueType }

func (p *Provider) Queue(name string) (sharedQueue.Queue, error) {
	return NewKafkaQueue(name, p.writer, p.log), nil
}

// Verificación estática
var _ sharedQueue.Queue = (*KafkaQueue)(nil)
