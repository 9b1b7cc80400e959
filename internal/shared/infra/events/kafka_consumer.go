package events

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// MessageHandler define la interfaz que debe cumplir cualquier consumidor de eventos.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}

// MessageReader es el subconjunto de *kafka.Reader que usa el adapter.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Config() kafka.ReaderConfig
}

// ConsumerAdapter es el "oído" que escucha en Kafka.
type ConsumerAdapter struct {
	reader  MessageReader
	handler MessageHandler
	log     *zap.Logger
}

func NewConsumerAdapter(reader MessageReader, handler MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{
		reader:  reader,
		handler: handler,
		log:     log,
	}
}

// Start inicia el bucle de consumo en una goroutine. El canal devuelto se cierra al parar.
func (c *ConsumerAdapter) Start(ctx context.Context) <-chan struct{} {
	cfg := c.reader.Config()
	c.log.Info("🎧 Starting Kafka consumer",
		zap.String("topic", cfg.Topic),
		zap.Strings("brokers", cfg.Brokers),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			// ReadMessage es una llamada bloqueante.
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				// Si el contexto se cancela, el error es normal y salimos limpiamente.
				if ctx.Err() != nil {
					c.log.Info("Kafka consumer stopped", zap.String("topic", cfg.Topic))
					return
				}
				c.log.Error("Error reading Kafka message", zap.Error(err))
				continue
			}

			// Continuamos la traza del productor, si la trae
			msgCtx := ExtractTraceContext(ctx, msg)
			c.handler.HandleMessage(msgCtx, string(msg.Key), msg.Value)
		}
	}()
	return done
}

// ExtractTraceContext devuelve ctx enriquecido con el contexto de traza W3C
// (y baggage) de las cabeceras del mensaje, usando el propagador global.
func ExtractTraceContext(ctx context.Context, msg kafka.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, &headerCarrier{headers: msg.Headers})
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
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

var (
	_ MessageReader              = (*kafka.Reader)(nil)
	_ propagation.TextMapCarrier = (*headerCarrier)(nil)
)
