package queue

import "context"

// Message es la unidad que se publica en una cola.
type Message struct {
	ID      string `json:"id"`
	Payload string `json:"payload"`
	// Receipt solo tiene sentido en el lado consumidor; al publicar va vacío.
	Receipt string `json:"receipt,omitempty"`
}

// Queue es un handle vivo capaz de publicar mensajes.
// La semántica de exchange/routing key la decide cada adapter.
type Queue interface {
	Name() string
	Publish(ctx context.Context, msg Message, exchange, routingKey string) error
}

// Registry resuelve un nombre lógico ("tipo:nombre") a una Queue.
// Las implementaciones deben ser seguras para uso concurrente.
type Registry interface {
	Resolve(name string) (Queue, error)
}
