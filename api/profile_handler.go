package api

import (
	"io"
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

const profileAssetNamespace = "profiles"

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	store       *assets.Store
}

func newProfileHandler(profileRepo *database.ProfileRepo, store *assets.Store) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		store:       store,
	}
}

type decodedProfileForm struct {
	req     ProfileRequest
	avatar  *assets.File
	cv      *assets.File
	cleanup func()
}

func (h profileHandler) decodeProfileForm(r *http.Request) (decodedProfileForm, error) {
	form := decodedProfileForm{cleanup: func() {}}

	if !isMultipart(r) {
		if err := decodeJSONBody(r, &form.req); err != nil {
			return form, err
		}
		return form, nil
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return form, errs.NewMalformedPayloadError("multipart form", err)
	}

	form.req = ProfileRequest{
		Name:         r.FormValue("name"),
		Title:        r.FormValue("title"),
		Bio:          r.FormValue("bio"),
		Description:  r.FormValue("description"),
		Email:        r.FormValue("email"),
		Phone:        r.FormValue("phone"),
		Location:     r.FormValue("location"),
		GithubURL:    r.FormValue("github_url"),
		LinkedinURL:  r.FormValue("linkedin_url"),
		TwitterURL:   r.FormValue("twitter_url"),
		InstagramURL: r.FormValue("instagram_url"),
		WebsiteURL:   r.FormValue("website_url"),
	}

	avatar, openedAvatar, err := formFile(r, "avatar")
	if err != nil {
		return form, err
	}
	cv, openedCV, err := formFile(r, "cv_file")
	if err != nil {
		if openedAvatar != nil {
			openedAvatar.Close()
		}
		return form, err
	}

	form.avatar = avatar
	form.cv = cv
	form.cleanup = func() {
		if openedAvatar != nil {
			openedAvatar.Close()
		}
		if openedCV != nil {
			openedCV.Close()
		}
	}
	return form, nil
}

func applyProfileRequest(profile *models.Profile, req ProfileRequest) {
	profile.Name = req.Name
	profile.Title = req.Title
	profile.Bio = req.Bio
	profile.Description = req.Description
	profile.Email = req.Email

	setOptional := func(target **string, value string) {
		*target = nil
		if value != "" {
			v := value
			*target = &v
		}
	}
	setOptional(&profile.Phone, req.Phone)
	setOptional(&profile.Location, req.Location)
	setOptional(&profile.GithubURL, req.GithubURL)
	setOptional(&profile.LinkedinURL, req.LinkedinURL)
	setOptional(&profile.TwitterURL, req.TwitterURL)
	setOptional(&profile.InstagramURL, req.InstagramURL)
	setOptional(&profile.WebsiteURL, req.WebsiteURL)
}

// getPublicProfile serves the active profile for the public site.
func (h profileHandler) getPublicProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profileRepo.GetActive()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		h.responder.WriteJSON(w, toPublicProfile(*profile))
	}
}

// previewCV streams the active profile's CV inline as a PDF.
func (h profileHandler) previewCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profileRepo.GetActive()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if profile.CVFile == nil || *profile.CVFile == "" {
			h.responder.WriteError(w, errs.NewNotFoundError("no CV on file"))
			return
		}

		file, err := h.store.Open(*profile.CVFile)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer file.Close()

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="cv.pdf"`)
		if _, err := io.Copy(w, file); err != nil {
			h.logger.Error().Err(err).Msg("error streaming CV")
		}
	}
}

// listProfiles serves every profile for the admin screen, active
// first.
func (h profileHandler) listProfiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := h.profileRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "profiles", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"profiles": profiles})
	}
}

// createProfile creates a new profile and makes it the active one,
// deactivating any previous profile in the same transaction.
func (h profileHandler) createProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := h.decodeProfileForm(r)
		defer form.cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := form.req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		var profile models.Profile
		applyProfileRequest(&profile, form.req)

		ctx := r.Context()
		if form.avatar != nil {
			path, err := h.store.Save(ctx, profileAssetNamespace, form.avatar.Name, form.avatar.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			profile.Avatar = &path
		}
		if form.cv != nil {
			path, err := h.store.Save(ctx, profileAssetNamespace, form.cv.Name, form.cv.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			profile.CVFile = &path
		}

		if err := h.profileRepo.AddActive(&profile); err != nil {
			h.store.ReleaseAll(ctx, profileAssets(profile))
			h.responder.WriteError(w, errs.NewTransactionFailedError("profile activation", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, profile)
	}
}

// updateProfile updates a profile. Avatar and CV change only when a
// new file arrives; the replaced file is removed from storage.
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, ok := h.findProfileParam(w, r)
		if !ok {
			return
		}

		form, err := h.decodeProfileForm(r)
		defer form.cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := form.req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		updated := *existing
		applyProfileRequest(&updated, form.req)

		ctx := r.Context()
		if form.avatar != nil {
			oldPath := ""
			if existing.Avatar != nil {
				oldPath = *existing.Avatar
			}
			path, err := h.store.Replace(ctx, oldPath, profileAssetNamespace, form.avatar.Name, form.avatar.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			updated.Avatar = &path
		}
		if form.cv != nil {
			oldPath := ""
			if existing.CVFile != nil {
				oldPath = *existing.CVFile
			}
			path, err := h.store.Replace(ctx, oldPath, profileAssetNamespace, form.cv.Name, form.cv.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			updated.CVFile = &path
		}

		if err := h.profileRepo.Update(&updated); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "profile", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// activateProfile makes the given profile the single active one.
func (h profileHandler) activateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := h.findProfileParam(w, r)
		if !ok {
			return
		}

		if err := h.profileRepo.SetActive(profile.ID); err != nil {
			h.responder.WriteError(w, errs.NewTransactionFailedError("profile activation", err))
			return
		}

		profile.IsActive = true
		h.responder.WriteJSON(w, profile)
	}
}

// removeAvatar deletes the stored avatar file and clears the field.
func (h profileHandler) removeAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := h.findProfileParam(w, r)
		if !ok {
			return
		}

		if profile.Avatar != nil {
			h.store.Release(r.Context(), *profile.Avatar)
		}
		if err := h.profileRepo.ClearAvatar(profile.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "profile", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"status": "removed"})
	}
}

// removeCV deletes the stored CV file and clears the field.
func (h profileHandler) removeCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := h.findProfileParam(w, r)
		if !ok {
			return
		}

		if profile.CVFile != nil {
			h.store.Release(r.Context(), *profile.CVFile)
		}
		if err := h.profileRepo.ClearCV(profile.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "profile", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"status": "removed"})
	}
}

// deleteProfile removes a profile and its stored files.
func (h profileHandler) deleteProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := h.findProfileParam(w, r)
		if !ok {
			return
		}

		if err := h.profileRepo.Delete(profile.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "profile", err))
			return
		}

		h.store.ReleaseAll(r.Context(), profileAssets(*profile))

		h.responder.WriteJSON(w, map[string]any{"status": "deleted"})
	}
}

func profileAssets(profile models.Profile) []string {
	var paths []string
	if profile.Avatar != nil && *profile.Avatar != "" {
		paths = append(paths, *profile.Avatar)
	}
	if profile.CVFile != nil && *profile.CVFile != "" {
		paths = append(paths, *profile.CVFile)
	}
	return paths
}

func (h profileHandler) findProfileParam(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	profileIDStr := chi.URLParam(r, "profileID")
	if profileIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing profileID"))
		return nil, false
	}

	profileID, err := uuid.Parse(profileIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid profileID"))
		return nil, false
	}

	profile, err := h.profileRepo.FindByID(profileID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
		return nil, false
	}
	return profile, true
}
