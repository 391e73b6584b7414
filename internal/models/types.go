package models

import "fmt"

// Role identifies the author of a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the accepted values
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// ChatMessage represents a single message in the conversation history.
// Content is a pointer so an absent field can be told apart from an
// explicit empty string: {"content": ""} is a valid message, while a
// message without a content field is rejected.
type ChatMessage struct {
	Role    Role    `json:"role"`
	Content *string `json:"content"`
}

// Text returns the message content, or "" when the field was absent
func (m ChatMessage) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// ChatCompletionRequest represents an incoming chat completion request.
// Unknown fields in the request body are silently ignored.
type ChatCompletionRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Model       string        `json:"model"`
	MaxTokens   *int          `json:"max_tokens"`
	Temperature *float64      `json:"temperature"`
	User        string        `json:"user"`
	Stream      bool          `json:"stream"`
}

// FieldError describes a single invalid field in a request body
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError aggregates every invalid field found in a request.
// Its JSON form is the HTTP 422 response body.
type ValidationError struct {
	Fields []FieldError `json:"detail"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request validation failed: %d invalid field(s)", len(e.Fields))
}

// Validate checks the request against the completion API contract.
// It returns nil when the request is acceptable, otherwise a
// ValidationError listing every offending field.
func (r *ChatCompletionRequest) Validate() *ValidationError {
	var fields []FieldError

	if len(r.Messages) == 0 {
		fields = append(fields, FieldError{
			Loc:  []string{"body", "messages"},
			Msg:  "messages must contain at least 1 item",
			Type: "too_short",
		})
	}
	for i, msg := range r.Messages {
		if !msg.Role.Valid() {
			fields = append(fields, FieldError{
				Loc:  []string{"body", "messages", fmt.Sprint(i), "role"},
				Msg:  fmt.Sprintf("role must be one of %q, %q or %q", RoleSystem, RoleUser, RoleAssistant),
				Type: "enum",
			})
		}
		if msg.Content == nil {
			fields = append(fields, FieldError{
				Loc:  []string{"body", "messages", fmt.Sprint(i), "content"},
				Msg:  "field required",
				Type: "missing",
			})
		}
	}
	if r.Temperature != nil && (*r.Temperature < 0.0 || *r.Temperature > 2.0) {
		fields = append(fields, FieldError{
			Loc:  []string{"body", "temperature"},
			Msg:  "temperature must be between 0.0 and 2.0",
			Type: "range_error",
		})
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// AssistantMessage is the message part of a completion choice. The
// nil-valued fields are part of the wire contract and always render
// as JSON null.
type AssistantMessage struct {
	Role             Role          `json:"role"`
	Content          string        `json:"content"`
	Refusal          interface{}   `json:"refusal"`
	Annotations      interface{}   `json:"annotations"`
	Audio            interface{}   `json:"audio"`
	FunctionCall     interface{}   `json:"function_call"`
	ToolCalls        []interface{} `json:"tool_calls"`
	ReasoningContent interface{}   `json:"reasoning_content"`
}

// Choice represents a completion choice; exactly one is ever produced
type Choice struct {
	Index        int              `json:"index"`
	Message      AssistantMessage `json:"message"`
	FinishReason string           `json:"finish_reason"`
	Logprobs     interface{}      `json:"logprobs"`
	StopReason   interface{}      `json:"stop_reason"`
}

// Usage carries the fixed token accounting of the fake server
type Usage struct {
	PromptTokens            int         `json:"prompt_tokens"`
	CompletionTokens        int         `json:"completion_tokens"`
	TotalTokens             int         `json:"total_tokens"`
	CompletionTokensDetails interface{} `json:"completion_tokens_details"`
	PromptTokensDetails     interface{} `json:"prompt_tokens_details"`
}

// ChatCompletionResponse represents the response from the chat completion API
type ChatCompletionResponse struct {
	ID                string      `json:"id"`
	Object            string      `json:"object"`
	Created           int64       `json:"created"`
	Model             string      `json:"model"`
	Choices           []Choice    `json:"choices"`
	Usage             Usage       `json:"usage"`
	ServiceTier       interface{} `json:"service_tier"`
	SystemFingerprint interface{} `json:"system_fingerprint"`
	PromptLogprobs    interface{} `json:"prompt_logprobs"`
	KVTransferParams  interface{} `json:"kv_transfer_params"`
}

// ModelInfo describes a single served model in the model list
type ModelInfo struct {
	ID      string      `json:"id"`
	Object  string      `json:"object"`
	Created int64       `json:"created"`
	OwnedBy string      `json:"owned_by"`
	Root    interface{} `json:"root"`
	Parent  interface{} `json:"parent"`
}

// ModelList is the response body of the model listing endpoint
type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}
