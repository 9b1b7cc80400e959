package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse define la estructura estándar para las respuestas de error.
type ErrorResponse struct {
	Message    string `json:"message"`
	WorkflowID string `json:"workflowId,omitempty"`
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message, workflowID string) {
	c.JSON(statusCode, gin.H{
		"error": ErrorResponse{
			Message:    message,
			WorkflowID: workflowID,
		},
	})
}

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message, "")
}

// SendUnprocessable se usa cuando el payload no se pudo serializar.
func SendUnprocessable(c *gin.Context, message, workflowID string) {
	SendError(c, http.StatusUnprocessableEntity, message, workflowID)
}

// SendBadGateway se usa cuando falla la cola o su resolución.
func SendBadGateway(c *gin.Context, message, workflowID string) {
	SendError(c, http.StatusBadGateway, message, workflowID)
}
