package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yunanda/portfolio-backend/services"
)

type chatbotHandler struct {
	responder Responder
	logger    zerolog.Logger
	chatbot   *services.Chatbot
}

func newChatbotHandler(chatbot *services.Chatbot) chatbotHandler {
	logger := log.With().Str("handlerName", "chatbotHandler").Logger()

	return chatbotHandler{
		responder: NewResponder(logger),
		logger:    logger,
		chatbot:   chatbot,
	}
}

// ChatbotResponse is the chat widget payload. The widget only looks
// at success and message, so upstream failures keep the same shape
// with the fallback text.
type ChatbotResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h chatbotHandler) chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatbotRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		reply, err := h.chatbot.Reply(r.Context(), req.Message)
		if err != nil {
			h.logger.Error().Err(err).Msg("chatbot reply failed")
			w.WriteHeader(http.StatusInternalServerError)
			h.responder.WriteJSON(w, ChatbotResponse{
				Success: false,
				Message: services.ChatbotFallbackMessage,
			})
			return
		}

		h.responder.WriteJSON(w, ChatbotResponse{Success: true, Message: reply})
	}
}
