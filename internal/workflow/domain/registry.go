package domain

// Destino fijo de las notificaciones de estado. Estos valores forman parte del
// contrato con los consumidores existentes: no cambiarlos.
const (
	QueueType    = "amqp_exchange"
	ExchangeName = "workflow-status-listener"
	QueueName    = QueueType + ":" + ExchangeName

	CompletedRoutingKey  = "workflow.status.completed"
	TerminatedRoutingKey = "workflow.status.terminated"
)

// Tipos de eventos de ciclo de vida que emite el motor.
const (
	WorkflowCompletedEvent  = "workflow.completed"
	WorkflowTerminatedEvent = "workflow.terminated"
)
