package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yunanda/portfolio-backend/assets"
	"github.com/yunanda/portfolio-backend/database"
	"github.com/yunanda/portfolio-backend/errs"
	"github.com/yunanda/portfolio-backend/models"
	"github.com/yunanda/portfolio-backend/services"
)

const (
	adminProjectPageSize  = 12
	featuredProjectLimit  = 6
	projectAssetNamespace = "projects"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	store       *assets.Store
}

func newProjectHandler(projectRepo *database.ProjectRepo, store *assets.Store) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		store:       store,
	}
}

// AdminProjectListResponse is one page of the admin project table.
type AdminProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Meta     PageMeta         `json:"meta"`
}

type decodedProjectForm struct {
	req     ProjectRequest
	image   *assets.File
	gallery []assets.File
	cleanup func()
}

func (h projectHandler) decodeProjectForm(r *http.Request) (decodedProjectForm, error) {
	form := decodedProjectForm{cleanup: func() {}}

	if !isMultipart(r) {
		if err := decodeJSONBody(r, &form.req); err != nil {
			return form, err
		}
		return form, nil
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return form, errs.NewMalformedPayloadError("multipart form", err)
	}

	form.req = ProjectRequest{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Features:     r.FormValue("features"),
		Technologies: formValues(r, "technologies"),
		DemoURL:      r.FormValue("demo_url"),
		GithubURL:    r.FormValue("github_url"),
		Category:     r.FormValue("category"),
		IsFeatured:   formBool(r.FormValue("is_featured")),
		IsActive:     formBool(r.FormValue("is_active")),
		CompletedAt:  r.FormValue("completed_at"),
		SortOrder:    formInt(r.FormValue("sort_order")),
	}

	image, openedImage, err := formFile(r, "image")
	if err != nil {
		return form, err
	}
	gallery, openedGallery, err := formFiles(r, "gallery")
	if err != nil {
		if openedImage != nil {
			openedImage.Close()
		}
		return form, err
	}

	form.image = image
	form.gallery = gallery
	form.cleanup = func() {
		if openedImage != nil {
			openedImage.Close()
		}
		closeAll(openedGallery)
	}
	return form, nil
}

func applyProjectRequest(project *models.Project, req ProjectRequest, completedAt time.Time) {
	project.Title = req.Title
	project.Description = req.Description
	project.Technologies = req.Technologies
	project.Category = req.Category
	project.IsFeatured = req.IsFeatured
	project.IsActive = req.IsActive
	project.CompletedAt = completedAt
	project.SortOrder = req.SortOrder
	project.Features = nil
	if req.Features != "" {
		project.Features = &req.Features
	}
	project.DemoURL = nil
	if req.DemoURL != "" {
		project.DemoURL = &req.DemoURL
	}
	project.GithubURL = nil
	if req.GithubURL != "" {
		project.GithubURL = &req.GithubURL
	}
}

func (h projectHandler) addWithSlugRetry(project *models.Project) error {
	err := h.projectRepo.Add(project)
	if err == nil || !errs.IsUniqueViolation(err) {
		return err
	}
	project.Slug = services.NextSuffix(project.Slug)
	return h.projectRepo.Add(project)
}

func (h projectHandler) saveWithSlugRetry(project *models.Project) error {
	err := h.projectRepo.Update(project)
	if err == nil || !errs.IsUniqueViolation(err) {
		return err
	}
	project.Slug = services.NextSuffix(project.Slug)
	return h.projectRepo.Update(project)
}

// listPublicProjects serves the public portfolio grid, active
// projects only.
func (h projectHandler) listPublicProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := true
		filter := database.ProjectFilter{
			Category: r.URL.Query().Get("category"),
			Active:   &active,
		}

		projects, _, err := h.projectRepo.List(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"projects": toPublicProjects(projects)})
	}
}

// listFeaturedProjects serves the landing page rail.
func (h projectHandler) listFeaturedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.Featured(featuredProjectLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "featured projects", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"projects": toPublicProjects(projects)})
	}
}

// listProjectCategories serves the category filter chips.
func (h projectHandler) listProjectCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.projectRepo.Categories()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "project categories", err))
			return
		}
		if categories == nil {
			categories = []string{}
		}
		h.responder.WriteJSON(w, map[string]any{"categories": categories})
	}
}

// showPublicProject serves the public project detail page.
func (h projectHandler) showPublicProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		project, err := h.projectRepo.FindBySlugActive(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, toPublicProject(*project))
	}
}

// listProjects serves the admin project table.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page := queryInt(r, "page", 1)
		filter := database.ProjectFilter{
			Category: query.Get("category"),
			Search:   query.Get("search"),
			Page:     page,
			PerPage:  adminProjectPageSize,
		}

		projects, total, err := h.projectRepo.List(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, AdminProjectListResponse{
			Projects: projects,
			Meta:     newPageMeta(page, adminProjectPageSize, total),
		})
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.findProjectParam(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project from the admin form, storing
// the cover image and gallery uploads when present.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := h.decodeProjectForm(r)
		defer form.cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := form.req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		parsedCompletedAt, err := parseTimestamp(form.req.CompletedAt)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		// Omitted completion dates default to the creation time.
		completedAt := time.Now()
		if parsedCompletedAt != nil {
			completedAt = *parsedCompletedAt
		}

		var project models.Project
		applyProjectRequest(&project, form.req, completedAt)

		slug, err := services.GenerateUniqueSlug(project.Title, uuid.Nil, h.projectRepo)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("prepare", "project", err))
			return
		}
		project.Slug = slug

		ctx := r.Context()
		if form.image != nil {
			path, err := h.store.Save(ctx, projectAssetNamespace, form.image.Name, form.image.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			project.Image = &path
		}
		if len(form.gallery) > 0 {
			paths, err := h.store.ReplaceAll(ctx, nil, projectAssetNamespace, form.gallery)
			if err != nil {
				h.store.ReleaseAll(ctx, paths)
				if project.Image != nil {
					h.store.Release(ctx, *project.Image)
				}
				h.responder.WriteError(w, err)
				return
			}
			project.Gallery = paths
		}

		if err := h.addWithSlugRetry(&project); err != nil {
			h.store.ReleaseAll(ctx, project.LocalAssetPaths())
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject updates a project. The cover image is swapped only
// when a new file arrives; a gallery upload replaces the whole old
// set.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, ok := h.findProjectParam(w, r)
		if !ok {
			return
		}

		form, err := h.decodeProjectForm(r)
		defer form.cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := form.req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		parsedCompletedAt, err := parseTimestamp(form.req.CompletedAt)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		completedAt := existing.CompletedAt
		if parsedCompletedAt != nil {
			completedAt = *parsedCompletedAt
		}

		updated := *existing
		applyProjectRequest(&updated, form.req, completedAt)

		if updated.Title != existing.Title {
			slug, err := services.GenerateUniqueSlug(updated.Title, updated.ID, h.projectRepo)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("prepare", "project", err))
				return
			}
			updated.Slug = slug
		}

		ctx := r.Context()
		if form.image != nil {
			oldPath := ""
			if existing.Image != nil {
				oldPath = *existing.Image
			}
			path, err := h.store.Replace(ctx, oldPath, projectAssetNamespace, form.image.Name, form.image.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			updated.Image = &path
		}
		if len(form.gallery) > 0 {
			paths, err := h.store.ReplaceAll(ctx, existing.Gallery, projectAssetNamespace, form.gallery)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			updated.Gallery = paths
		}

		if err := h.saveWithSlugRetry(&updated); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject removes a project and every asset it owns.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.findProjectParam(w, r)
		if !ok {
			return
		}

		if err := h.projectRepo.Delete(project.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.store.ReleaseAll(r.Context(), project.LocalAssetPaths())

		h.responder.WriteJSON(w, map[string]any{"status": "deleted"})
	}
}

func (h projectHandler) toggleFeatured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.findProjectParam(w, r)
		if !ok {
			return
		}

		project.IsFeatured = !project.IsFeatured
		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) toggleActive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.findProjectParam(w, r)
		if !ok {
			return
		}

		project.IsActive = !project.IsActive
		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) findProjectParam(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
		return nil, false
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
		return nil, false
	}

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
		return nil, false
	}
	return project, true
}
