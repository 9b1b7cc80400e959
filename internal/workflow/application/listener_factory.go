package application

import (
	"fmt"

	"go.uber.org/zap"

	sharedQueue "github.com/davicafu/wfstatus/internal/shared/infra/platform/queue"
	wfDomain "github.com/davicafu/wfstatus/internal/workflow/domain"
)

const (
	ListenerTypeStub                = "stub"
	ListenerTypeEventQueuePublisher = "event_queue_publisher"
)

// NewStatusListener elige la implementación del listener según la configuración.
// El registro de colas solo se usa con event_queue_publisher.
func NewStatusListener(listenerType string, queues sharedQueue.Registry, log *zap.Logger) (wfDomain.StatusListener, error) {
	switch listenerType {
	case "", ListenerTypeStub:
		return NewStubListener(log), nil
	case ListenerTypeEventQueuePublisher:
		if queues == nil {
			return nil, fmt.Errorf("%s listener requires a queue registry", listenerType)
		}
		return NewStatusPublisher(queues, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", wfDomain.ErrUnknownListenerType, listenerType)
	}
}
