package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAITTS speaks through an OpenAI-compatible /audio/speech endpoint and
// returns the raw mp3 bytes.
type OpenAITTS struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	voice      string
}

func NewOpenAITTS(apiKey, baseURL, model, voice string) *OpenAITTS {
	if model == "" {
		model = "tts-1"
	}
	if voice == "" {
		voice = "alloy"
	}
	return &OpenAITTS{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		voice:      voice,
	}
}

func (t *OpenAITTS) IsAvailable() bool {
	return t.apiKey != ""
}

type ttsRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

func (t *OpenAITTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if !t.IsAvailable() {
		return nil, fmt.Errorf("text-to-speech is not configured")
	}

	jsonBody, err := json.Marshal(ttsRequest{Model: t.model, Input: text, Voice: t.voice})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.baseURL+"/audio/speech", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
