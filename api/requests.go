package api

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/yunanda/portfolio-backend/models"
)

// knownCategory adapts a catalog membership check into a validation
// rule. Empty values are left to the Required rule.
func knownCategory(valid func(string) bool) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" || valid(s) {
			return nil
		}
		return errors.New("must be a valid category")
	}
}

// BlogRequest carries the writable article fields from a create or
// update form.
type BlogRequest struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	Category        string   `json:"category"`
	Status          string   `json:"status"`
	Tags            []string `json:"tags"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	MetaKeywords    []string `json:"metaKeywords"`
	IsFeatured      bool     `json:"isFeatured"`
	SortOrder       int      `json:"sortOrder"`
	PublishedAt     string   `json:"publishedAt"`
}

func (r BlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Excerpt, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Category, validation.Required, validation.By(knownCategory(models.ValidBlogCategory))),
		validation.Field(&r.Status, validation.Required, validation.In(models.StatusDraft, models.StatusPublished, models.StatusArchived)),
		validation.Field(&r.MetaTitle, validation.Length(0, 255)),
		validation.Field(&r.MetaDescription, validation.Length(0, 500)),
	)
}

// ProjectRequest carries the writable project fields.
type ProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Features     string   `json:"features"`
	Technologies []string `json:"technologies"`
	DemoURL      string   `json:"demoUrl"`
	GithubURL    string   `json:"githubUrl"`
	Category     string   `json:"category"`
	IsFeatured   bool     `json:"isFeatured"`
	IsActive     bool     `json:"isActive"`
	CompletedAt  string   `json:"completedAt"`
	SortOrder    int      `json:"sortOrder"`
}

func (r ProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Category, validation.Required, validation.By(knownCategory(models.ValidProjectCategory))),
		validation.Field(&r.DemoURL, is.URL),
		validation.Field(&r.GithubURL, is.URL),
		validation.Field(&r.CompletedAt, validation.Date("2006-01-02")),
	)
}

// SkillRequest carries the writable skill fields.
type SkillRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	LogoURL     string `json:"logoUrl"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
	IsFeatured  bool   `json:"isFeatured"`
	IsActive    bool   `json:"isActive"`
}

func (r SkillRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Category, validation.Required, validation.By(knownCategory(models.ValidSkillCategory))),
		// The logo is either an external URL or a stored upload path,
		// so a plain URL rule would reject round-tripped entities.
		validation.Field(&r.LogoURL, validation.Length(0, 500)),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}

// ProfileRequest carries the writable profile fields.
type ProfileRequest struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Bio          string `json:"bio"`
	Description  string `json:"description"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	GithubURL    string `json:"githubUrl"`
	LinkedinURL  string `json:"linkedinUrl"`
	TwitterURL   string `json:"twitterUrl"`
	InstagramURL string `json:"instagramUrl"`
	WebsiteURL   string `json:"websiteUrl"`
}

func (r ProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 150)),
		validation.Field(&r.Bio, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.GithubURL, is.URL),
		validation.Field(&r.LinkedinURL, is.URL),
		validation.Field(&r.TwitterURL, is.URL),
		validation.Field(&r.InstagramURL, is.URL),
		validation.Field(&r.WebsiteURL, is.URL),
	)
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Subject, validation.Length(0, 200)),
		validation.Field(&r.Message, validation.Required, validation.Length(1, 2000)),
	)
}

// ChatbotRequest is the public chatbot payload.
type ChatbotRequest struct {
	Message string `json:"message"`
}

func (r ChatbotRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required, validation.Length(1, 500)),
	)
}
