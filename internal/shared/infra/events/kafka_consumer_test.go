package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs chan kafka.Message
	errs chan error
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case err := <-r.errs:
		return kafka.Message{}, err
	case m := <-r.msgs:
		return m, nil
	}
}

func (r *fakeReader) Config() kafka.ReaderConfig {
	return kafka.ReaderConfig{Topic: "workflow.lifecycle", Brokers: []string{"localhost:9092"}}
}

type recordingHandler struct {
	mu   sync.Mutex
	keys []string
	got  chan struct{}
}

func (h *recordingHandler) HandleMessage(ctx context.Context, key string, payload []byte) {
	h.mu.Lock()
	h.keys = append(h.keys, key)
	h.mu.Unlock()
	h.got <- struct{}{}
}

func TestConsumerAdapter_DeliversAndStops(t *testing.T) {
	reader := &fakeReader{msgs: make(chan kafka.Message, 2), errs: make(chan error, 1)}
	handler := &recordingHandler{got: make(chan struct{}, 2)}

	ctx, cancel := context.WithCancel(context.Background())
	done := NewConsumerAdapter(reader, handler, zap.NewNop()).Start(ctx)

	// Un error de lectura no detiene el bucle
	reader.errs <- errors.New("rebalance in progress")
	reader.msgs <- kafka.Message{Key: []byte("wf-1"), Value: []byte("{}")}
	reader.msgs <- kafka.Message{Key: []byte("wf-2"), Value: []byte("{}")}

	for i := 0; i < 2; i++ {
		select {
		case <-handler.got:
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Equal(t, []string{"wf-1", "wf-2"}, handler.keys)
}

type contextHandler struct {
	ctxs chan context.Context
}

func (h *contextHandler) HandleMessage(ctx context.Context, key string, payload []byte) {
	h.ctxs <- ctx
}

func TestConsumerAdapter_PropagatesTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.Baggage{})
	defer otel.SetTextMapPropagator(prev)

	reader := &fakeReader{msgs: make(chan kafka.Message, 1), errs: make(chan error)}
	handler := &contextHandler{ctxs: make(chan context.Context, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	done := NewConsumerAdapter(reader, handler, zap.NewNop()).Start(ctx)
	defer func() {
		cancel()
		<-done
	}()

	reader.msgs <- kafka.Message{
		Key:     []byte("wf-1"),
		Value:   []byte("{}"),
		Headers: []kafka.Header{{Key: "baggage", Value: []byte("tenant=acme")}},
	}

	select {
	case got := <-handler.ctxs:
		require.NotNil(t, got)
		assert.Equal(t, "acme", baggage.FromContext(got).Member("tenant").Value())
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestExtractTraceContext_NoHeaders(t *testing.T) {
	ctx := ExtractTraceContext(context.Background(), kafka.Message{})
	assert.Equal(t, 0, baggage.FromContext(ctx).Len())
}
