package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/yunanda/portfolio-backend/config"
	"github.com/yunanda/portfolio-backend/errs"
)

// ChatbotFallbackMessage is shown to visitors whenever the generative
// backend cannot produce a reply.
const ChatbotFallbackMessage = "Sorry, I'm having some technical trouble right now. Please try again later!"

const defaultChatbotModel = "gemini-2.0-flash"
const defaultChatbotTimeout = 10 * time.Second

const chatbotContextPrompt = `You are the assistant on Haris Yunanda's portfolio website. ` +
	`Haris is a full-stack developer from Medan, North Sumatra, working on web development ` +
	`(PHP, JavaScript, Python, SQL) and machine learning (TensorFlow, PyTorch, scikit-learn). ` +
	`Answer the visitor's question briefly and in a friendly tone. If the question is not ` +
	`about Haris or his work, politely steer the conversation back to the portfolio. ` +
	`Visitor's question: `

// ReplyGenerator produces a free-form answer for messages the scripted
// table does not cover.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

type Chatbot struct {
	generator ReplyGenerator
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewChatbot builds a chatbot from environment configuration. When
// GEMINI_API_KEY is unset the chatbot still serves scripted replies and
// reports an error for anything that needs the generative backend.
func NewChatbot(ctx context.Context, cfg map[string]string, logger zerolog.Logger) (*Chatbot, error) {
	timeout := config.GetSeconds(cfg, "CHATBOT_TIMEOUT_SECONDS", 10)

	apiKey := config.GetString(cfg, "GEMINI_API_KEY", "")
	if apiKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, chatbot limited to scripted replies")
		return &Chatbot{timeout: timeout, logger: logger}, nil
	}

	model := config.GetString(cfg, "CHATBOT_MODEL", defaultChatbotModel)

	client, err := googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(model))
	if err != nil {
		return nil, errs.NewUpstreamError("googleai", err)
	}

	return &Chatbot{
		generator: &googleAIGenerator{client: client},
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// NewChatbotWithGenerator wires an explicit generator, used by tests.
func NewChatbotWithGenerator(generator ReplyGenerator, timeout time.Duration, logger zerolog.Logger) *Chatbot {
	if timeout <= 0 {
		timeout = defaultChatbotTimeout
	}
	return &Chatbot{generator: generator, timeout: timeout, logger: logger}
}

// Reply answers a visitor message. Scripted replies never touch the
// generative backend and never fail.
func (c *Chatbot) Reply(ctx context.Context, message string) (string, error) {
	if reply, ok := ScriptedReply(message); ok {
		return reply, nil
	}

	if c.generator == nil {
		return "", errs.NewMissingAPIKeyError("googleai")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.generator.GenerateReply(ctx, chatbotContextPrompt+message)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Error().Err(err).Msg("chatbot completion timed out")
			return "", errs.NewUpstreamTimeoutError("googleai", c.timeout)
		}
		c.logger.Error().Err(err).Msg("chatbot completion failed")
		return "", errs.NewUpstreamError("googleai", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", errs.NewEmptyCompletionError("googleai")
	}
	return reply, nil
}

type googleAIGenerator struct {
	client *googleai.GoogleAI
}

func (g *googleAIGenerator) GenerateReply(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.client, prompt)
}
