package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yunanda/portfolio-backend/assets"
	"github.com/yunanda/portfolio-backend/database"
	"github.com/yunanda/portfolio-backend/errs"
	"github.com/yunanda/portfolio-backend/models"
)

const (
	featuredSkillLimit  = 8
	skillAssetNamespace = "skills"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
	store     *assets.Store
}

func newSkillHandler(skillRepo *database.SkillRepo, store *assets.Store) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
		store:     store,
	}
}

type decodedSkillForm struct {
	req     SkillRequest
	logo    *assets.File
	cleanup func()
}

func (h skillHandler) decodeSkillForm(r *http.Request) (decodedSkillForm, error) {
	form := decodedSkillForm{cleanup: func() {}}

	if !isMultipart(r) {
		if err := decodeJSONBody(r, &form.req); err != nil {
			return form, err
		}
		return form, nil
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return form, errs.NewMalformedPayloadError("multipart form", err)
	}

	form.req = SkillRequest{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		LogoURL:     r.FormValue("logo_url"),
		Description: r.FormValue("description"),
		SortOrder:   formInt(r.FormValue("sort_order")),
		IsFeatured:  formBool(r.FormValue("is_featured")),
		IsActive:    formBool(r.FormValue("is_active")),
	}

	logo, opened, err := formFile(r, "logo_file")
	if err != nil {
		return form, err
	}
	form.logo = logo
	if opened != nil {
		form.cleanup = func() { opened.Close() }
	}
	return form, nil
}

// applySkillRequest copies the writable fields. The logo is handled
// by the caller because it is bound to the asset lifecycle.
func applySkillRequest(skill *models.Skill, req SkillRequest) {
	skill.Name = req.Name
	skill.Category = req.Category
	skill.SortOrder = req.SortOrder
	skill.IsFeatured = req.IsFeatured
	skill.IsActive = req.IsActive
	skill.Description = nil
	if req.Description != "" {
		skill.Description = &req.Description
	}
}

// listPublicSkills serves active skills grouped by category. Group
// order follows the fixed catalog so the frontend renders a stable
// layout.
func (h skillHandler) listPublicSkills() http.HandlerFunc {
	type skillGroup struct {
		Category string         `json:"category"`
		Skills   []models.Skill `json:"skills"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		grouped, err := h.skillRepo.ActiveByCategory()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "skills", err))
			return
		}

		groups := make([]skillGroup, 0, len(grouped))
		for _, category := range models.SkillCategories {
			if skills, ok := grouped[category]; ok {
				groups = append(groups, skillGroup{Category: category, Skills: skills})
			}
		}

		h.responder.WriteJSON(w, map[string]any{"groups": groups})
	}
}

func (h skillHandler) listFeaturedSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.Featured(featuredSkillLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "featured skills", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"skills": skills})
	}
}

// listSkills serves the full admin skill table.
func (h skillHandler) listSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "skills", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"skills": skills})
	}
}

// createSkill creates a skill, storing the uploaded logo when one is
// part of the form. A plain logo_url field carries an external logo.
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := h.decodeSkillForm(r)
		defer form.cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := form.req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		var skill models.Skill
		applySkillRequest(&skill, form.req)
		if form.req.LogoURL != "" {
			skill.LogoURL = &form.req.LogoURL
		}

		ctx := r.Context()
		if form.logo != nil {
			path, err := h.store.Save(ctx, skillAssetNamespace, form.logo.Name, form.logo.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			skill.LogoURL = &path
		}

		if err := h.skillRepo.Add(&skill); err != nil {
			if form.logo != nil && skill.LogoURL != nil {
				h.store.Release(ctx, *skill.LogoURL)
			}
			h.responder.WriteError(w, wrapDatabaseError("create", "skill", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, skill)
	}
}

// updateSkill updates a skill. A new logo upload replaces the stored
// one; switching to an external URL releases the old local file;
// leaving both inputs absent keeps the current logo.
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skill, ok := h.findSkillParam(w, r)
		if !ok {
			return
		}

		form, err := h.decodeSkillForm(r)
		defer form.cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := form.req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		updated := *skill
		applySkillRequest(&updated, form.req)

		ctx := r.Context()
		switch {
		case form.logo != nil:
			oldPath := ""
			if skill.LogoURL != nil {
				oldPath = *skill.LogoURL
			}
			path, err := h.store.Replace(ctx, oldPath, skillAssetNamespace, form.logo.Name, form.logo.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			updated.LogoURL = &path
		case form.req.LogoURL != "":
			logoURL := form.req.LogoURL
			if skill.LogoURL != nil && *skill.LogoURL != logoURL {
				h.store.Release(ctx, *skill.LogoURL)
			}
			updated.LogoURL = &logoURL
		default:
			updated.LogoURL = skill.LogoURL
		}

		if err := h.skillRepo.Update(&updated); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}
		h.responder.WriteJSON(w, updated)
	}
}

func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skill, ok := h.findSkillParam(w, r)
		if !ok {
			return
		}

		if err := h.skillRepo.Delete(skill.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "skill", err))
			return
		}
		if skill.LogoURL != nil {
			h.store.Release(r.Context(), *skill.LogoURL)
		}
		h.responder.WriteJSON(w, map[string]any{"status": "deleted"})
	}
}

func (h skillHandler) toggleFeatured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skill, ok := h.findSkillParam(w, r)
		if !ok {
			return
		}

		skill.IsFeatured = !skill.IsFeatured
		if err := h.skillRepo.Update(skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}
		h.responder.WriteJSON(w, skill)
	}
}

func (h skillHandler) toggleActive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skill, ok := h.findSkillParam(w, r)
		if !ok {
			return
		}

		skill.IsActive = !skill.IsActive
		if err := h.skillRepo.Update(skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}
		h.responder.WriteJSON(w, skill)
	}
}

func (h skillHandler) findSkillParam(w http.ResponseWriter, r *http.Request) (*models.Skill, bool) {
	skillIDStr := chi.URLParam(r, "skillID")
	if skillIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing skillID"))
		return nil, false
	}

	skillID, err := uuid.Parse(skillIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
		return nil, false
	}

	skill, err := h.skillRepo.FindByID(skillID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
		return nil, false
	}
	return skill, true
}
