package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yunanda/portfolio-backend/database"
	"github.com/yunanda/portfolio-backend/errs"
	"github.com/yunanda/portfolio-backend/models"
)

const adminContactPageSize = 10

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactRepo
}

func newContactHandler(contactRepo *database.ContactRepo) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
	}
}

// AdminContactListResponse is one page of the admin inbox.
type AdminContactListResponse struct {
	Contacts []models.Contact `json:"contacts"`
	Meta     PageMeta         `json:"meta"`
}

// submitContact accepts a message from the public contact form.
// Validation failures are reported to the visitor, but a persistence
// failure degrades to a friendly error body rather than a server
// error page.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		contact := models.Contact{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		}
		if req.Subject != "" {
			contact.Subject = &req.Subject
		}

		if err := h.contactRepo.Add(&contact); err != nil {
			h.logger.Error().Err(err).Msg("failed to store contact message")
			h.responder.WriteJSON(w, map[string]any{
				"success": false,
				"message": "Sorry, your message could not be sent right now. Please try again later.",
			})
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"message": "Thanks for reaching out! I'll get back to you soon.",
		})
	}
}

// listContacts serves the admin inbox, newest first.
func (h contactHandler) listContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		filter := database.ContactFilter{
			Search:  r.URL.Query().Get("search"),
			Page:    page,
			PerPage: adminContactPageSize,
		}

		contacts, total, err := h.contactRepo.List(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "contacts", err))
			return
		}

		h.responder.WriteJSON(w, AdminContactListResponse{
			Contacts: contacts,
			Meta:     newPageMeta(page, adminContactPageSize, total),
		})
	}
}

// contactStats serves the inbox header counters.
func (h contactHandler) contactStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.contactRepo.Stats(time.Now())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "contact stats", err))
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}

func (h contactHandler) getContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contact, ok := h.findContactParam(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, contact)
	}
}

func (h contactHandler) deleteContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contact, ok := h.findContactParam(w, r)
		if !ok {
			return
		}

		if err := h.contactRepo.Delete(contact.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "contact", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"status": "deleted"})
	}
}

func (h contactHandler) findContactParam(w http.ResponseWriter, r *http.Request) (*models.Contact, bool) {
	contactIDStr := chi.URLParam(r, "contactID")
	if contactIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing contactID"))
		return nil, false
	}

	contactID, err := uuid.Parse(contactIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid contactID"))
		return nil, false
	}

	contact, err := h.contactRepo.FindByID(contactID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "contact", err))
		return nil, false
	}
	return contact, true
}
