package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/yunanda/portfolio-backend/assets"
	"github.com/yunanda/portfolio-backend/models"
)

func isExternal(path string) bool {
	return assets.IsExternalURL(path)
}

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler    blogHandler
	projectHandler projectHandler
	skillHandler   skillHandler
	profileHandler profileHandler
	contactHandler contactHandler
	chatbotHandler chatbotHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// PageMeta carries pagination bookkeeping for list responses.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func newPageMeta(page, perPage int, total int64) PageMeta {
	if page < 1 {
		page = 1
	}
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return PageMeta{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

const (
	defaultBlogImage   = "/images/default-blog.jpg"
	defaultProjectImg  = "/images/default-project.jpg"
	defaultAvatarImage = "/images/default-avatar.png"
)

// assetURL maps a stored asset path to the URL the frontend should
// load. External URLs pass through untouched; local paths are served
// under /storage/.
func assetURL(path *string, fallback string) string {
	if path == nil || *path == "" {
		return fallback
	}
	if isExternal(*path) {
		return *path
	}
	return "/storage/" + *path
}

func assetURLs(paths []string) []string {
	urls := make([]string, 0, len(paths))
	for _, p := range paths {
		path := p
		urls = append(urls, assetURL(&path, ""))
	}
	return urls
}

// PublicBlog is the article projection served to the public site.
type PublicBlog struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content,omitempty"`
	FeaturedImage string    `json:"featuredImage"`
	Tags          []string  `json:"tags"`
	Category      string    `json:"category"`
	IsFeatured    bool      `json:"isFeatured"`
	ReadTime      int       `json:"readTime"`
	ViewsCount    int       `json:"viewsCount"`
	StatusLabel   string    `json:"statusLabel"`
	PublishedAt   string    `json:"publishedAt"`
	MetaTitle     string    `json:"metaTitle,omitempty"`
	MetaDesc      string    `json:"metaDescription,omitempty"`
	MetaKeywords  []string  `json:"metaKeywords,omitempty"`
}

func toPublicBlog(blog models.Blog, includeContent bool) PublicBlog {
	view := PublicBlog{
		ID:            blog.ID,
		Title:         blog.Title,
		Slug:          blog.Slug,
		Excerpt:       blog.Excerpt,
		FeaturedImage: assetURL(blog.FeaturedImage, defaultBlogImage),
		Tags:          blog.Tags,
		Category:      blog.Category,
		IsFeatured:    blog.IsFeatured,
		ReadTime:      blog.ReadTime,
		ViewsCount:    blog.ViewsCount,
		StatusLabel:   blog.StatusLabel(),
		MetaKeywords:  blog.MetaKeywords,
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}
	if blog.PublishedAt != nil {
		view.PublishedAt = blog.PublishedAt.Format(time.RFC3339)
	}
	if blog.MetaTitle != nil {
		view.MetaTitle = *blog.MetaTitle
	}
	if blog.MetaDescription != nil {
		view.MetaDesc = *blog.MetaDescription
	}
	if includeContent {
		view.Content = blog.Content
	}
	return view
}

func toPublicBlogs(blogs []models.Blog) []PublicBlog {
	views := make([]PublicBlog, 0, len(blogs))
	for _, blog := range blogs {
		views = append(views, toPublicBlog(blog, false))
	}
	return views
}

// PublicProject is the project projection served to the public site.
type PublicProject struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Features     string    `json:"features,omitempty"`
	Image        string    `json:"image"`
	Gallery      []string  `json:"gallery"`
	Technologies []string  `json:"technologies"`
	DemoURL      string    `json:"demoUrl,omitempty"`
	GithubURL    string    `json:"githubUrl,omitempty"`
	Category     string    `json:"category"`
	IsFeatured   bool      `json:"isFeatured"`
	CompletedAt  string    `json:"completedAt"`
}

func toPublicProject(project models.Project) PublicProject {
	view := PublicProject{
		ID:           project.ID,
		Title:        project.Title,
		Slug:         project.Slug,
		Description:  project.Description,
		Image:        assetURL(project.Image, defaultProjectImg),
		Gallery:      assetURLs(project.Gallery),
		Technologies: project.Technologies,
		Category:     project.Category,
		IsFeatured:   project.IsFeatured,
		CompletedAt:  project.CompletedAt.Format("2006-01-02"),
	}
	if view.Technologies == nil {
		view.Technologies = []string{}
	}
	if project.Features != nil {
		view.Features = *project.Features
	}
	if project.DemoURL != nil {
		view.DemoURL = *project.DemoURL
	}
	if project.GithubURL != nil {
		view.GithubURL = *project.GithubURL
	}
	return view
}

func toPublicProjects(projects []models.Project) []PublicProject {
	views := make([]PublicProject, 0, len(projects))
	for _, project := range projects {
		views = append(views, toPublicProject(project))
	}
	return views
}

// PublicProfile is the owner profile projection for the public site.
type PublicProfile struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Bio          string `json:"bio"`
	Description  string `json:"description"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	Avatar       string `json:"avatar"`
	HasCV        bool   `json:"hasCv"`
	GithubURL    string `json:"githubUrl,omitempty"`
	LinkedinURL  string `json:"linkedinUrl,omitempty"`
	TwitterURL   string `json:"twitterUrl,omitempty"`
	InstagramURL string `json:"instagramUrl,omitempty"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`
}

func toPublicProfile(profile models.Profile) PublicProfile {
	view := PublicProfile{
		Name:        profile.Name,
		Title:       profile.Title,
		Bio:         profile.Bio,
		Description: profile.Description,
		Email:       profile.Email,
		Avatar:      assetURL(profile.Avatar, defaultAvatarImage),
		HasCV:       profile.CVFile != nil && *profile.CVFile != "",
	}
	if profile.Phone != nil {
		view.Phone = *profile.Phone
	}
	if profile.Location != nil {
		view.Location = *profile.Location
	}
	if profile.GithubURL != nil {
		view.GithubURL = *profile.GithubURL
	}
	if profile.LinkedinURL != nil {
		view.LinkedinURL = *profile.LinkedinURL
	}
	if profile.TwitterURL != nil {
		view.TwitterURL = *profile.TwitterURL
	}
	if profile.InstagramURL != nil {
		view.InstagramURL = *profile.InstagramURL
	}
	if profile.WebsiteURL != nil {
		view.WebsiteURL = *profile.WebsiteURL
	}
	return view
}
