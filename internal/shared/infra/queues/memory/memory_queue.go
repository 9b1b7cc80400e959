package memory

import (
	"context"
	"path"
	"sync"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
)

const QueueType = "memory"

// Delivery es lo que recibe un suscriptor del bus en memoria.
type Delivery struct {
	Exchange   string
	RoutingKey string
	Message    sharedQueue.Message
}

type subscriber struct {
	pattern string
	ch      chan Delivery
}

// InMemoryQueue implementa una cola para UN solo nombre lógico, con suscriptores
// filtrados por patrón de routing key (path.Match, ej. "workflow.status.*").
type InMemoryQueue struct {
	name        string
	subscribers []subscriber
	mu          sync.RWMutex
}

// Verifica en tiempo de compilación que cumple la interfaz
var _ sharedQueue.Queue = (*InMemoryQueue)(nil)

func NewInMemoryQueue(name string) *InMemoryQueue {
	return &InMemoryQueue{
		name:        name,
		subscribers: make([]subscriber, 0),
	}
}

func (q *InMemoryQueue) Name() string { return QueueType + ":" + q.name }

// Publish entrega el mensaje a todos los suscriptores cuyo patrón coincide.
// Si el buffer de un suscriptor está lleno, el mensaje se descarta para ese suscriptor.
func (q *InMemoryQueue) Publish(ctx context.Context, msg sharedQueue.Message, exchange, routingKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	d := Delivery{Exchange: exchange, RoutingKey: routingKey, Message: msg}
	for _, sub := range q.subscribers {
		if ok, _ := path.Match(sub.pattern, routingKey); !ok {
			continue
		}
		select {
		case sub.ch <- d:
		default:
		}
	}
	return nil
}

// Subscribe registra un nuevo oyente. pattern "" equivale a "*" (todo).
func (q *InMemoryQueue) Subscribe(pattern string, bufferSize int) <-chan Delivery {
	q.mu.Lock()
	defer q.mu.Unlock()

	if pattern == "" {
		pattern = "*"
	}
	ch := make(chan Delivery, bufferSize)
	q.subscribers = append(q.subscribers, subscriber{pattern: pattern, ch: ch})
	return ch
}

// Provider crea (y recuerda) una InMemoryQueue por nombre, para que los
// suscriptores y el publisher compartan la misma instancia.
type Provider struct {
	mu     sync.Mutex
	queues map[string]*InMemoryQueue
}

func NewProvider() *Provider {
	return &Provider{queues: make(map[string]*InMemoryQueue)}
}

func (p *Provider) QueueType() string { return QueueType }

func (p *Provider) Queue(name string) (sharedQueue.Queue, error) {
	return p.Get(name), nil
}

// Get devuelve la cola concreta, útil para suscribirse.
func (p *Provider) Get(name string) *InMemoryQueue {
	p.mu.Lock()
	defer p.mu.Unlock()

	q, ok := p.queues[name]
	if !ok {
		q = NewInMemoryQueue(name)
		p.queues[name] = q
	}
	return q
}
