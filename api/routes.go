package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public site surface and the password-guarded
// admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, storageDir string) {
	// Public endpoints
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/api/blogs", handlers.blogHandler.listPublicBlogs())
		r.Get("/api/blogs/featured", handlers.blogHandler.listFeaturedBlogs())
		r.Get("/api/blogs/tags/popular", handlers.blogHandler.listPopularTags())
		r.Get("/api/blogs/{slug}", handlers.blogHandler.showPublicBlog())

		r.Get("/api/projects", handlers.projectHandler.listPublicProjects())
		r.Get("/api/projects/featured", handlers.projectHandler.listFeaturedProjects())
		r.Get("/api/projects/categories", handlers.projectHandler.listProjectCategories())
		r.Get("/api/projects/{slug}", handlers.projectHandler.showPublicProject())

		r.Get("/api/skills", handlers.skillHandler.listPublicSkills())
		r.Get("/api/skills/featured", handlers.skillHandler.listFeaturedSkills())

		r.Get("/api/profile", handlers.profileHandler.getPublicProfile())
		r.Get("/api/profile/preview-cv", handlers.profileHandler.previewCV())

		r.Post("/api/contact", handlers.contactHandler.submitContact())
		r.Post("/api/chatbot", handlers.chatbotHandler.chat())
	})

	// Uploaded assets
	fileServer := http.StripPrefix("/storage/", http.FileServer(http.Dir(storageDir)))
	r.Get("/storage/*", fileServer.ServeHTTP)

	// Admin endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", handlers.blogHandler.listBlogs())
			r.Post("/", handlers.blogHandler.createBlog())
			r.Get("/stats", handlers.blogHandler.blogStats())
			r.Get("/{blogID}", handlers.blogHandler.getBlog())
			r.Put("/{blogID}", handlers.blogHandler.updateBlog())
			r.Delete("/{blogID}", handlers.blogHandler.deleteBlog())
			r.Patch("/{blogID}/toggle-featured", handlers.blogHandler.toggleFeatured())
			r.Patch("/{blogID}/change-status", handlers.blogHandler.changeStatus())
			r.Post("/{blogID}/duplicate", handlers.blogHandler.duplicateBlog())
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.listProjects())
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/{projectID}", handlers.projectHandler.getProject())
			r.Put("/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
			r.Patch("/{projectID}/toggle-featured", handlers.projectHandler.toggleFeatured())
			r.Patch("/{projectID}/toggle-active", handlers.projectHandler.toggleActive())
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", handlers.skillHandler.listSkills())
			r.Post("/", handlers.skillHandler.createSkill())
			r.Put("/{skillID}", handlers.skillHandler.updateSkill())
			r.Delete("/{skillID}", handlers.skillHandler.deleteSkill())
			r.Patch("/{skillID}/toggle-featured", handlers.skillHandler.toggleFeatured())
			r.Patch("/{skillID}/toggle-active", handlers.skillHandler.toggleActive())
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", handlers.profileHandler.listProfiles())
			r.Post("/", handlers.profileHandler.createProfile())
			r.Put("/{profileID}", handlers.profileHandler.updateProfile())
			r.Delete("/{profileID}", handlers.profileHandler.deleteProfile())
			r.Post("/{profileID}/activate", handlers.profileHandler.activateProfile())
			r.Delete("/{profileID}/avatar", handlers.profileHandler.removeAvatar())
			r.Delete("/{profileID}/cv", handlers.profileHandler.removeCV())
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", handlers.contactHandler.listContacts())
			r.Get("/stats", handlers.contactHandler.contactStats())
			r.Get("/{contactID}", handlers.contactHandler.getContact())
			r.Delete("/{contactID}", handlers.contactHandler.deleteContact())
		})
	})
}
