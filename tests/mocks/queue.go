package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

// MockQueue simula un handle de cola
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockQueue) Publish(ctx context.Context, msg sharedQueue.Message, exchange, routingKey string) error {
	args := m.Called(ctx, msg, exchange, routingKey)
	return args.Error(0)
}

// MockRegistry simula el registro de colas
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Resolve(name string) (sharedQueue.Queue, error) {
	args := m.Called(name)
	q, _ := args.Get(0).(sharedQueue.Queue)
	return q, args.Error(1)
}

// Publication es una llamada a Publish capturada por RecordingQueue.
type Publication struct {
	Message    sharedQueue.Message
	Exchange   string
	RoutingKey string
}

// RecordingQueue guarda cada publicación; segura para uso concurrente.
type RecordingQueue struct {
	QueueName string
	Err       error

	mu   sync.Mutex
	pubs []Publication
}

func NewRecordingQueue(name string) *RecordingQueue {
	return &RecordingQueue{QueueName: name}
}

func (q *RecordingQueue) Name() string { return q.QueueName }

func (q *RecordingQueue) Publish(ctx context.Context, msg sharedQueue.Message, exchange, routingKey string) error {
	if q.Err != nil {
		return q.Err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pubs = append(q.pubs, Publication{Message: msg, Exchange: exchange, RoutingKey: routingKey})
	return nil
}

func (q *RecordingQueue) Publications() []Publication {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Publication, len(q.pubs))
	copy(out, q.pubs)
	return out
}

// StaticRegistry devuelve siempre la misma cola.
type StaticRegistry struct {
	Queue sharedQueue.Queue
	Err   error
}

func (r StaticRegistry) Resolve(name string) (sharedQueue.Queue, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Queue, nil
}

// Verificación estática de que los mocks cumplen las interfaces.
var (
	_ sharedQueue.Queue    = (*MockQueue)(nil)
	_ sharedQueue.Queue    = (*RecordingQueue)(nil)
	_ sharedQueue.Registry = (*MockRegistry)(nil)
	_ sharedQueue.Registry = StaticRegistry{}
)
