package queues

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

var (
	ErrInvalidQueueName = errors.New("invalid queue name")
	ErrUnknownQueueType = errors.New("unknown queue type")
)

// Provider construye handles de cola para un tipo concreto (kafka, redis, ...).
type Provider interface {
	QueueType() string
	Queue(name string) (sharedQueue.Queue, error)
}

// EventQueues resuelve nombres "tipo:nombre" usando el Provider registrado para el tipo.
// Los handles se cachean durante toda la vida del proceso.
type EventQueues struct {
	providers map[string]Provider
	queues    map[string]sharedQueue.Queue
	mu        sync.RWMutex
	log       *zap.Logger
}

func NewEventQueues(log *zap.Logger, providers ...Provider) *EventQueues {
	r := &EventQueues{
		providers: make(map[string]Provider, len(providers)),
		queues:    make(map[string]sharedQueue.Queue),
		log:       log,
	}
	for _, p := range providers {
		r.providers[p.QueueType()] = p
	}
	return r
}

// Register añade (o reemplaza) el provider de un tipo de cola.
// Los handles ya cacheados para ese tipo no se invalidan.
func (r *EventQueues) Register(queueType string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[queueType] = p
}

func (r *EventQueues) Resolve(name string) (sharedQueue.Queue, error) {
	queueType, queueName, err := ParseQueueName(name)
	if err != nil {
		return nil, err
	}

	// Camino rápido: el handle ya está cacheado
	r.mu.RLock()
	q, ok := r.queues[name]
	r.mu.RUnlock()
	if ok {
		return q, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if q, ok := r.queues[name]; ok {
		return q, nil
	}

	p, ok := r.providers[queueType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueueType, queueType)
	}

	q, err = p.Queue(queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to build queue %s: %w", name, err)
	}

	r.queues[name] = q
	r.log.Info("Queue resolved", zap.String("queue", name), zap.String("handle", q.Name()))
	return q, nil
}

// ParseQueueName separa "tipo:nombre". Solo se corta en el primer ':'.
func ParseQueueName(name string) (string, string, error) {
	queueType, queueName, ok := strings.Cut(name, ":")
	if !ok || queueType == "" || queueName == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidQueueName, name)
	}
	return queueType, queueName, nil
}

// ProviderFunc adapta una función a Provider.
type ProviderFunc struct {
	Type  string
	Build func(name string) (sharedQueue.Queue, error)
}

func (f ProviderFunc) QueueType() string { return f.Type }

func (f ProviderFunc) Queue(name string) (sharedQueue.Queue, error) { return f.Build(name) }

// Verificación estática
var _ sharedQueue.Registry = (*EventQueues)(nil)
