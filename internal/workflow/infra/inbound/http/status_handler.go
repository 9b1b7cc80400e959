package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	wfDomain "github.com/davicafu/wfstatus/internal/workflow/domain"
	"github.com/davicafu/wfstatus/pkg/utils"
)

// StatusHandler expone el StatusListener por HTTP.
type StatusHandler struct {
	listener wfDomain.StatusListener
	log      *zap.Logger
}

func NewStatusHandler(listener wfDomain.StatusListener, log *zap.Logger) *StatusHandler {
	return &StatusHandler{listener: listener, log: log}
}

type notifyFunc func(ctx context.Context, l wfDomain.StatusListener, w *wfDomain.Workflow) (bool, error)

// WorkflowCompleted endpoint POST /workflows/status/completed
func (h *StatusHandler) WorkflowCompleted(c *gin.Context) {
	h.handle(c, wfDomain.NotifyCompleted)
}

// WorkflowTerminated endpoint POST /workflows/status/terminated
func (h *StatusHandler) WorkflowTerminated(c *gin.Context) {
	h.handle(c, wfDomain.NotifyTerminated)
}

func (h *StatusHandler) handle(c *gin.Context, notify notifyFunc) {
	var wf wfDomain.Workflow
	if err := c.ShouldBindJSON(&wf); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if wf.WorkflowID == "" {
		utils.SendBadRequest(c, wfDomain.ErrMissingWorkflowID.Error())
		return
	}

	published, err := notify(c.Request.Context(), h.listener, &wf)
	if err != nil {
		var serErr *wfDomain.SerializationError
		if errors.As(err, &serErr) {
			utils.SendUnprocessable(c, err.Error(), wf.WorkflowID)
			return
		}
		h.log.Warn("Status listener failed", zap.String("workflow_id", wf.WorkflowID), zap.Error(err))
		utils.SendBadGateway(c, err.Error(), wf.WorkflowID)
		return
	}

	if !published {
		c.JSON(http.StatusOK, gin.H{"published": false})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"published": true, "workflowId": wf.WorkflowID})
}
