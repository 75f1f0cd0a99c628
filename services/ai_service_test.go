package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIService_Chat(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `[{"question":"Q?","answer":"A."}]`}},
			},
		})
	}))
	defer server.Close()

	ai := NewAIService("test-key", server.URL, "test-model")
	content, err := ai.Chat("system prompt", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user prompt", gotReq.Messages[1].Content)
	assert.Equal(t, `[{"question":"Q?","answer":"A."}]`, content)
}

func TestAIService_ChatAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "model overloaded"},
		})
	}))
	defer server.Close()

	ai := NewAIService("test-key", server.URL, "test-model")
	_, err := ai.Chat("s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestAIService_ChatHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	ai := NewAIService("test-key", server.URL, "test-model")
	_, err := ai.Chat("s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAIService_NotConfigured(t *testing.T) {
	ai := NewAIService("", "http://unused", "m")
	assert.False(t, ai.IsAvailable())
	_, err := ai.Chat("s", "u")
	require.Error(t, err)
}

func TestAIService_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	ai := NewAIService("test-key", server.URL, "test-model")
	_, err := ai.Chat("s", "u")
	require.Error(t, err)
}
