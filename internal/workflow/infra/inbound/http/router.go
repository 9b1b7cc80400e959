package http

import "github.com/gin-gonic/gin"

// RegisterStatusRoutes registra las rutas por las que el motor notifica transiciones terminales.
func RegisterStatusRoutes(r *gin.Engine, handler *StatusHandler) {
	status := r.Group("/workflows/status")
	{
		status.POST("/completed", handler.WorkflowCompleted)
		status.POST("/terminated", handler.WorkflowTerminated)
	}
}
