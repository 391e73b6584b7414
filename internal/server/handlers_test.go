package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sleepstars/fakeopenai/internal/completion"
	"github.com/sleepstars/fakeopenai/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() (*Server, *completion.Service) {
	svc := completion.NewService("fake_model_name", 256)
	return New(svc), svc
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestCreateChatCompletion(t *testing.T) {
	srv, _ := newTestServer()

	body := `{
		"model": "fake_model_name",
		"messages": [{"role": "user", "content": "Hello, what's the capital of Bangladesh?"}]
	}`
	w := doRequest(srv, http.MethodPost, "/v1/chat/completions", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatCompletionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, strings.HasPrefix(resp.ID, "chatcmpl-"))
	assert.Equal(t, "chat.completion", resp.Object)
	assert.Equal(t, "fake_model_name", resp.Model)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, 0, resp.Choices[0].Index)
	assert.Equal(t, "stop", resp.Choices[0].FinishReason)
	assert.Equal(t, "As for the capital of Bangladesh, it's Dhaka.", resp.Choices[0].Message.Content)
	assert.Equal(t, 64, resp.Usage.PromptTokens)
	assert.Equal(t, 30, resp.Usage.CompletionTokens)
	assert.Equal(t, 94, resp.Usage.TotalTokens)

	// Nullable compatibility fields are explicit nulls on the wire.
	raw := w.Body.String()
	assert.Contains(t, raw, `"service_tier":null`)
	assert.Contains(t, raw, `"kv_transfer_params":null`)
	assert.Contains(t, raw, `"tool_calls":[]`)
}

func TestCreateChatCompletionIgnoresUnknownFields(t *testing.T) {
	srv, _ := newTestServer()

	body := `{
		"model": "fake_model_name",
		"messages": [{"role": "user", "content": "hello"}],
		"n": 3,
		"logit_bias": {"50256": -100}
	}`
	w := doRequest(srv, http.MethodPost, "/v1/chat/completions", body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateChatCompletionValidation(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "Empty message list",
			body: `{"model": "m", "messages": []}`,
		},
		{
			name: "Missing messages",
			body: `{"model": "m"}`,
		},
		{
			name: "Unknown role",
			body: `{"model": "m", "messages": [{"role": "operator", "content": "hi"}]}`,
		},
		{
			name: "Missing content",
			body: `{"model": "m", "messages": [{"role": "user"}]}`,
		},
		{
			name: "Temperature out of range",
			body: `{"model": "m", "messages": [{"role": "user", "content": "hi"}], "temperature": 2.5}`,
		},
		{
			name: "Malformed JSON",
			body: `{"model": "m", "messages": [`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, svc := newTestServer()
			w := doRequest(srv, http.MethodPost, "/v1/chat/completions", tc.body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), `"detail"`)
			assert.Equal(t, int64(0), svc.RunningRequests(), "rejected requests must not touch the counter")
		})
	}
}

func TestListModels(t *testing.T) {
	srv, _ := newTestServer()

	w := doRequest(srv, http.MethodGet, "/v1/models", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list models.ModelList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, "list", list.Object)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "fake_model_name", list.Data[0].ID)
	assert.Equal(t, "model", list.Data[0].Object)
	assert.Equal(t, "vllm", list.Data[0].OwnedBy)
	assert.Greater(t, list.Data[0].Created, int64(0))

	assert.Contains(t, w.Body.String(), `"root":null`)
	assert.Contains(t, w.Body.String(), `"parent":null`)
}

func TestListModelsIdempotent(t *testing.T) {
	srv, _ := newTestServer()

	var first, second models.ModelList
	require.NoError(t, json.Unmarshal(doRequest(srv, http.MethodGet, "/v1/models", "").Body.Bytes(), &first))
	require.NoError(t, json.Unmarshal(doRequest(srv, http.MethodGet, "/v1/models", "").Body.Bytes(), &second))

	// Identical modulo the created timestamp.
	first.Data[0].Created = 0
	second.Data[0].Created = 0
	assert.Equal(t, first, second)
}

func TestIsSleeping(t *testing.T) {
	srv, _ := newTestServer()

	for i := 0; i < 3; i++ {
		w := doRequest(srv, http.MethodGet, "/is_sleeping", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"is_sleeping": false}`, w.Body.String())
	}
}

func TestMetrics(t *testing.T) {
	srv, _ := newTestServer()

	w := doRequest(srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	body := w.Body.String()
	assert.Contains(t, body, `num_requests_running{model_name="fake_model_name"} 0`)
	assert.Contains(t, body, `num_requests_swapped{model_name="fake_model_name"} 0.0`)
	assert.Contains(t, body, `num_requests_waiting{model_name="fake_model_name"} 0.0`)
}

func TestMetricsAfterCompletions(t *testing.T) {
	srv, svc := newTestServer()

	body := `{"model": "m", "messages": [{"role": "user", "content": "hi"}]}`
	for i := 0; i < 5; i++ {
		w := doRequest(srv, http.MethodPost, "/v1/chat/completions", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, int64(0), svc.RunningRequests())
	w := doRequest(srv, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(), `num_requests_running{model_name="fake_model_name"} 0`)
}
