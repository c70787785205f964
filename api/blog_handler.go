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
	publicBlogPageSize = 4
	adminBlogPageSize  = 12
	relatedBlogLimit   = 3
	popularTagLimit    = 10
	blogAssetNamespace = "blogs"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogRepo  *database.BlogRepo
	store     *assets.Store
}

func newBlogHandler(blogRepo *database.BlogRepo, store *assets.Store) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogRepo:  blogRepo,
		store:     store,
	}
}

// BlogDetailResponse is the public article page payload: the article
// itself plus the rails around it.
type BlogDetailResponse struct {
	Blog     PublicBlog   `json:"blog"`
	Related  []PublicBlog `json:"related"`
	Next     *PublicBlog  `json:"next,omitempty"`
	Previous *PublicBlog  `json:"previous,omitempty"`
}

// BlogListResponse is one page of public articles.
type BlogListResponse struct {
	Blogs []PublicBlog `json:"blogs"`
	Meta  PageMeta     `json:"meta"`
}

// AdminBlogListResponse is one page of the admin article table.
type AdminBlogListResponse struct {
	Blogs []models.Blog `json:"blogs"`
	Meta  PageMeta      `json:"meta"`
}

// decodeBlogRequest reads the article form from either a multipart
// upload or a JSON body. The featured image only arrives via
// multipart.
func (h blogHandler) decodeBlogRequest(r *http.Request) (BlogRequest, *assets.File, func(), error) {
	noop := func() {}
	if !isMultipart(r) {
		var req BlogRequest
		if err := decodeJSONBody(r, &req); err != nil {
			return BlogRequest{}, nil, noop, err
		}
		return req, nil, noop, nil
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return BlogRequest{}, nil, noop, errs.NewMalformedPayloadError("multipart form", err)
	}

	req := BlogRequest{
		Title:           r.FormValue("title"),
		Excerpt:         r.FormValue("excerpt"),
		Content:         r.FormValue("content"),
		Category:        r.FormValue("category"),
		Status:          r.FormValue("status"),
		Tags:            formValues(r, "tags"),
		MetaTitle:       r.FormValue("meta_title"),
		MetaDescription: r.FormValue("meta_description"),
		MetaKeywords:    formValues(r, "meta_keywords"),
		IsFeatured:      formBool(r.FormValue("is_featured")),
		SortOrder:       formInt(r.FormValue("sort_order")),
		PublishedAt:     r.FormValue("published_at"),
	}

	file, opened, err := formFile(r, "featured_image")
	if err != nil {
		return BlogRequest{}, nil, noop, err
	}
	cleanup := noop
	if opened != nil {
		cleanup = func() { opened.Close() }
	}
	return req, file, cleanup, nil
}

// applyBlogRequest copies the writable fields onto a model.
func applyBlogRequest(blog *models.Blog, req BlogRequest) {
	blog.Title = req.Title
	blog.Excerpt = req.Excerpt
	blog.Content = req.Content
	blog.Category = req.Category
	blog.Status = req.Status
	blog.Tags = req.Tags
	blog.IsFeatured = req.IsFeatured
	blog.SortOrder = req.SortOrder
	blog.MetaKeywords = req.MetaKeywords
	blog.MetaTitle = nil
	if req.MetaTitle != "" {
		blog.MetaTitle = &req.MetaTitle
	}
	blog.MetaDescription = nil
	if req.MetaDescription != "" {
		blog.MetaDescription = &req.MetaDescription
	}
}

// addWithSlugRetry inserts an article and, when the slug lost a race
// to a concurrent insert, bumps the suffix once and tries again.
func (h blogHandler) addWithSlugRetry(blog *models.Blog) error {
	err := h.blogRepo.Add(blog)
	if err == nil || !errs.IsUniqueViolation(err) {
		return err
	}
	blog.Slug = services.NextSuffix(blog.Slug)
	return h.blogRepo.Add(blog)
}

func (h blogHandler) saveWithSlugRetry(blog *models.Blog) error {
	err := h.blogRepo.Update(blog)
	if err == nil || !errs.IsUniqueViolation(err) {
		return err
	}
	blog.Slug = services.NextSuffix(blog.Slug)
	return h.blogRepo.Update(blog)
}

// listPublicBlogs serves the public article listing, visible articles
// only, newest first.
func (h blogHandler) listPublicBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		filter := database.BlogFilter{
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("search"),
			Page:     page,
			PerPage:  publicBlogPageSize,
		}

		blogs, total, err := h.blogRepo.ListPublished(filter, time.Now())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "blogs", err))
			return
		}

		h.responder.WriteJSON(w, BlogListResponse{
			Blogs: toPublicBlogs(blogs),
			Meta:  newPageMeta(page, publicBlogPageSize, total),
		})
	}
}

// listFeaturedBlogs serves the landing page rail of featured articles.
func (h blogHandler) listFeaturedBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured := true
		filter := database.BlogFilter{
			Featured: &featured,
			Page:     1,
			PerPage:  publicBlogPageSize,
		}

		blogs, _, err := h.blogRepo.ListPublished(filter, time.Now())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "featured blogs", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"blogs": toPublicBlogs(blogs)})
	}
}

// listPopularTags serves the tag cloud of the public blog sidebar.
func (h blogHandler) listPopularTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.blogRepo.PopularTags(popularTagLimit, time.Now())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "blog tags", err))
			return
		}
		if tags == nil {
			tags = []string{}
		}
		h.responder.WriteJSON(w, map[string]any{"tags": tags})
	}
}

// showPublicBlog serves the article page: the article, its related
// rail and prev/next navigation. Each hit bumps the view counter.
func (h blogHandler) showPublicBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		now := time.Now()
		blog, err := h.blogRepo.FindBySlugPublished(slug, now)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}

		if err := h.blogRepo.IncrementViews(blog.ID); err != nil {
			// A lost view count never blocks the page.
			h.logger.Warn().Err(err).Str("slug", slug).Msg("failed to increment views")
		} else {
			blog.ViewsCount++
		}

		related, err := h.blogRepo.Related(*blog, relatedBlogLimit, now)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "related blogs", err))
			return
		}

		response := BlogDetailResponse{
			Blog:    toPublicBlog(*blog, true),
			Related: toPublicBlogs(related),
		}

		if blog.PublishedAt != nil {
			next, err := h.blogRepo.NextAfter(*blog.PublishedAt, now)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "next blog", err))
				return
			}
			if next != nil {
				view := toPublicBlog(*next, false)
				response.Next = &view
			}

			previous, err := h.blogRepo.PreviousBefore(*blog.PublishedAt, now)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "previous blog", err))
				return
			}
			if previous != nil {
				view := toPublicBlog(*previous, false)
				response.Previous = &view
			}
		}

		h.responder.WriteJSON(w, response)
	}
}

// listBlogs serves the admin article table with filtering and sorting.
func (h blogHandler) listBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page := queryInt(r, "page", 1)
		filter := database.BlogFilter{
			Status:    query.Get("status"),
			Category:  query.Get("category"),
			Search:    query.Get("search"),
			SortBy:    query.Get("sort_by"),
			SortOrder: query.Get("sort_order"),
			Page:      page,
			PerPage:   adminBlogPageSize,
		}

		blogs, total, err := h.blogRepo.List(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "blogs", err))
			return
		}

		h.responder.WriteJSON(w, AdminBlogListResponse{
			Blogs: blogs,
			Meta:  newPageMeta(page, adminBlogPageSize, total),
		})
	}
}

func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, ok := h.findBlogParam(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, blog)
	}
}

// createBlog creates a new article from the admin form.
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, file, cleanup, err := h.decodeBlogRequest(r)
		defer cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		var blog models.Blog
		applyBlogRequest(&blog, req)

		publishedAt, err := parseTimestamp(req.PublishedAt)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		blog.PublishedAt = publishedAt

		if err := services.PrepareBlogCreate(&blog, h.blogRepo, time.Now()); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("prepare", "blog", err))
			return
		}

		if file != nil {
			path, err := h.store.Save(r.Context(), blogAssetNamespace, file.Name, file.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			blog.FeaturedImage = &path
		}

		if err := h.addWithSlugRetry(&blog); err != nil {
			if blog.FeaturedImage != nil {
				h.store.Release(r.Context(), *blog.FeaturedImage)
			}
			h.responder.WriteError(w, wrapDatabaseError("create", "blog", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, blog)
	}
}

// updateBlog updates an article. The featured image is only replaced
// when a new file arrives with the form; the old file is removed from
// storage after a successful swap.
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, ok := h.findBlogParam(w, r)
		if !ok {
			return
		}

		req, file, cleanup, err := h.decodeBlogRequest(r)
		defer cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteValidationError(w, err)
			return
		}

		updated := *existing
		applyBlogRequest(&updated, req)

		publishedAtOverride, err := parseTimestamp(req.PublishedAt)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := services.PrepareBlogUpdate(*existing, &updated, publishedAtOverride, h.blogRepo, time.Now()); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("prepare", "blog", err))
			return
		}

		if file != nil {
			oldPath := ""
			if existing.FeaturedImage != nil {
				oldPath = *existing.FeaturedImage
			}
			path, err := h.store.Replace(r.Context(), oldPath, blogAssetNamespace, file.Name, file.Reader)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			updated.FeaturedImage = &path
		}

		if err := h.saveWithSlugRetry(&updated); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteBlog removes an article and its stored featured image.
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, ok := h.findBlogParam(w, r)
		if !ok {
			return
		}

		if err := h.blogRepo.Delete(blog.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog", err))
			return
		}

		if blog.FeaturedImage != nil {
			h.store.Release(r.Context(), *blog.FeaturedImage)
		}

		h.responder.WriteJSON(w, map[string]any{"status": "deleted"})
	}
}

// toggleFeatured flips the featured flag on an article.
func (h blogHandler) toggleFeatured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, ok := h.findBlogParam(w, r)
		if !ok {
			return
		}

		blog.IsFeatured = !blog.IsFeatured
		if err := h.blogRepo.Update(blog); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		h.responder.WriteJSON(w, blog)
	}
}

// changeStatus moves an article to a new status. Moving into
// published for the first time stamps the publish timestamp.
func (h blogHandler) changeStatus() http.HandlerFunc {
	type statusRequest struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		blog, ok := h.findBlogParam(w, r)
		if !ok {
			return
		}

		var req statusRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !models.ValidBlogStatus(req.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		blog.Status = req.Status
		services.StampPublished(blog, time.Now())

		if err := h.blogRepo.Update(blog); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		h.responder.WriteJSON(w, blog)
	}
}

// duplicateBlog clones an article into a fresh draft.
func (h blogHandler) duplicateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, ok := h.findBlogParam(w, r)
		if !ok {
			return
		}

		duplicate, err := services.DuplicateBlog(*blog, h.blogRepo)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("duplicate", "blog", err))
			return
		}

		if err := h.addWithSlugRetry(&duplicate); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, duplicate)
	}
}

// blogStats serves the admin dashboard counters.
func (h blogHandler) blogStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.blogRepo.Stats()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "blog stats", err))
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}

// findBlogParam resolves the {blogID} path parameter to an article,
// writing the error response itself when that fails.
func (h blogHandler) findBlogParam(w http.ResponseWriter, r *http.Request) (*models.Blog, bool) {
	blogIDStr := chi.URLParam(r, "blogID")
	if blogIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing blogID"))
		return nil, false
	}

	blogID, err := uuid.Parse(blogIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
		return nil, false
	}

	blog, err := h.blogRepo.FindByID(blogID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
		return nil, false
	}
	return blog, true
}
