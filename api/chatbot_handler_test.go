package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yunanda/portfolio-backend/services"
)

type stubGenerator struct {
	reply string
	err   error
}

func (s stubGenerator) GenerateReply(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func TestChat_ScriptedReply(t *testing.T) {
	env := newTestEnv(t, stubGenerator{err: errors.New("should not be called")})

	recorder := env.request(t, http.MethodPost, "/api/chatbot", map[string]any{
		"message": "What are Haris's skills?",
	}, false)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body ChatbotResponse
	decodeResponse(t, recorder, &body)
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Message)
}

func TestChat_GeneratedReply(t *testing.T) {
	env := newTestEnv(t, stubGenerator{reply: "A generated answer."})

	recorder := env.request(t, http.MethodPost, "/api/chatbot", map[string]any{
		"message": "Summarize the theory of relativity",
	}, false)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body ChatbotResponse
	decodeResponse(t, recorder, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "A generated answer.", body.Message)
}

func TestChat_UpstreamFailureReturnsFallback(t *testing.T) {
	env := newTestEnv(t, stubGenerator{err: errors.New("upstream exploded")})

	recorder := env.request(t, http.MethodPost, "/api/chatbot", map[string]any{
		"message": "Summarize the theory of relativity",
	}, false)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body ChatbotResponse
	decodeResponse(t, recorder, &body)
	assert.False(t, body.Success)
	assert.Equal(t, services.ChatbotFallbackMessage, body.Message)
}

func TestChat_ValidationFailure(t *testing.T) {
	env := newTestEnv(t, nil)

	recorder := env.request(t, http.MethodPost, "/api/chatbot", map[string]any{
		"message": "",
	}, false)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}
