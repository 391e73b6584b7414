package completion

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sleepstars/fakeopenai/internal/logger"
	"github.com/sleepstars/fakeopenai/internal/models"
)

const (
	requestIDPrefix = "chatcmpl-"

	// Token accounting is fixed: the fixture never tokenizes anything.
	fixedPromptTokens    = 64
	maxCompletionTokens  = 30
	chatCompletionObject = "chat.completion"
)

// Service synthesizes chat completion responses. The running-request
// counter is its only cross-request mutable state.
type Service struct {
	modelName string
	maxTokens int
	running   atomic.Int64
	generate  func([]models.ChatMessage) string
	logger    *logger.Logger
}

// NewService creates a completion service for the configured model
func NewService(modelName string, maxTokens int) *Service {
	return &Service{
		modelName: modelName,
		maxTokens: maxTokens,
		generate:  GenerateContent,
		logger:    logger.GetLogger().WithComponent("completion"),
	}
}

// ModelName returns the configured model name
func (s *Service) ModelName() string {
	return s.modelName
}

// RunningRequests returns the number of completion requests currently
// inside their handling window. The value is advisory telemetry; a
// reader may see it change before it renders.
func (s *Service) RunningRequests() int64 {
	return s.running.Load()
}

// BuildResponse assembles the full completion envelope for a validated
// request. The running-request counter is incremented for the duration
// of content generation and released on every exit path, panics
// included.
func (s *Service) BuildResponse(req *models.ChatCompletionRequest) *models.ChatCompletionResponse {
	requestID := requestIDPrefix + uuid.NewString()
	s.logger.Info("Received request with id: %s", requestID)

	modelName := req.Model
	if modelName == "" {
		modelName = s.modelName
	}
	maxTokens := s.maxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	start := time.Now()
	s.running.Add(1)
	defer func() {
		s.running.Add(-1)
		s.logger.Info("Finished request with id: %s, elapsed time: %.3fs", requestID, time.Since(start).Seconds())
	}()

	content := s.generate(req.Messages)

	completionTokens := maxCompletionTokens
	if maxTokens < completionTokens {
		completionTokens = maxTokens
	}

	return &models.ChatCompletionResponse{
		ID:      requestID,
		Object:  chatCompletionObject,
		Created: time.Now().Unix(),
		Model:   modelName,
		Choices: []models.Choice{
			{
				Index: 0,
				Message: models.AssistantMessage{
					Role:      models.RoleAssistant,
					Content:   content,
					ToolCalls: []interface{}{},
				},
				FinishReason: "stop",
			},
		},
		Usage: models.Usage{
			PromptTokens:     fixedPromptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      fixedPromptTokens + completionTokens,
		},
	}
}
