package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sleepstars/fakeopenai/internal/metrics"
	"github.com/sleepstars/fakeopenai/internal/models"
)

// createChatCompletion handles POST /v1/chat/completions. Validation
// failures are reported as 422 with a per-field detail body and leave
// the running-request counter untouched.
func (s *Server) createChatCompletion(c *gin.Context) {
	var req models.ChatCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Warn("Rejected undecodable request body: %v", err)
		c.JSON(http.StatusUnprocessableEntity, models.ValidationError{
			Fields: []models.FieldError{
				{Loc: []string{"body"}, Msg: err.Error(), Type: "json_invalid"},
			},
		})
		return
	}
	if verr := req.Validate(); verr != nil {
		s.logger.Warn("Rejected invalid request: %v", verr)
		c.JSON(http.StatusUnprocessableEntity, verr)
		return
	}

	c.JSON(http.StatusOK, s.svc.BuildResponse(&req))
}

// listModels handles GET /v1/models
func (s *Server) listModels(c *gin.Context) {
	c.JSON(http.StatusOK, models.ModelList{
		Object: "list",
		Data: []models.ModelInfo{
			{
				ID:      s.svc.ModelName(),
				Object:  "model",
				Created: time.Now().Unix(),
				OwnedBy: "vllm",
			},
		},
	})
}

// isSleeping handles GET /is_sleeping; the fixture never sleeps
func (s *Server) isSleeping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"is_sleeping": false})
}

// metrics handles GET /metrics with a plain-text exposition
func (s *Server) metrics(c *gin.Context) {
	c.String(http.StatusOK, metrics.Render(s.svc.ModelName(), s.svc.RunningRequests()))
}
