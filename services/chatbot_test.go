package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunanda/portfolio-backend/errs"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (s *stubGenerator) GenerateReply(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestChatbot_ScriptedReplySkipsGenerator(t *testing.T) {
	gen := &stubGenerator{reply: "should not be used"}
	bot := NewChatbotWithGenerator(gen, time.Second, zerolog.Nop())

	reply, err := bot.Reply(context.Background(), "What are Haris's skills?")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	assert.Equal(t, 0, gen.calls)
}

func TestChatbot_FallsThroughToGenerator(t *testing.T) {
	gen := &stubGenerator{reply: "Generated answer."}
	bot := NewChatbotWithGenerator(gen, time.Second, zerolog.Nop())

	reply, err := bot.Reply(context.Background(), "Tell me something unusual about quantum computing")
	require.NoError(t, err)
	assert.Equal(t, "Generated answer.", reply)
	assert.Equal(t, 1, gen.calls)
}

func TestChatbot_MissingGenerator(t *testing.T) {
	bot := NewChatbotWithGenerator(nil, time.Second, zerolog.Nop())

	_, err := bot.Reply(context.Background(), "Tell me something unusual about quantum computing")
	require.Error(t, err)
	assert.True(t, errs.IsMissingAPIKeyError(err))
}

func TestChatbot_GeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	bot := NewChatbotWithGenerator(gen, time.Second, zerolog.Nop())

	_, err := bot.Reply(context.Background(), "Tell me something unusual about quantum computing")
	require.Error(t, err)
	assert.True(t, errs.IsUpstreamError(err))
}

func TestChatbot_GeneratorTimeout(t *testing.T) {
	gen := &stubGenerator{err: context.DeadlineExceeded}
	bot := NewChatbotWithGenerator(gen, time.Second, zerolog.Nop())

	_, err := bot.Reply(context.Background(), "Tell me something unusual about quantum computing")
	require.Error(t, err)
	assert.True(t, errs.IsUpstreamTimeoutError(err))
}

func TestChatbot_EmptyCompletion(t *testing.T) {
	gen := &stubGenerator{reply: "   "}
	bot := NewChatbotWithGenerator(gen, time.Second, zerolog.Nop())

	_, err := bot.Reply(context.Background(), "Tell me something unusual about quantum computing")
	require.Error(t, err)
	assert.True(t, errs.IsUpstreamError(err))
}
