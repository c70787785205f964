package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a portfolio entry with its media and links
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug         string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_projects_slug"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Features     *string                     `json:"features,omitempty" db:"features" gorm:"type:text"`
	Image        *string                     `json:"image,omitempty" db:"image" gorm:"type:text"`
	Gallery      datatypes.JSONSlice[string] `json:"gallery,omitempty" db:"gallery"`
	Technologies datatypes.JSONSlice[string] `json:"technologies,omitempty" db:"technologies"`
	DemoURL      *string                     `json:"demoUrl,omitempty" db:"demo_url" gorm:"type:text"`
	GithubURL    *string                     `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	Category     string                      `json:"category" db:"category" gorm:"type:text;not null;index"`
	IsFeatured   bool                        `json:"isFeatured" db:"is_featured" gorm:"not null;default:false"`
	IsActive     bool                        `json:"isActive" db:"is_active" gorm:"not null;default:true;index"`
	CompletedAt  time.Time                   `json:"completedAt" db:"completed_at" gorm:"type:timestamp;not null"`
	SortOrder    int                         `json:"sortOrder" db:"sort_order" gorm:"type:integer;not null;default:0"`
	CreatedAt    time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time                   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// ProjectCategories is the fixed category catalog for projects.
var ProjectCategories = []string{
	"Web Application",
	"Mobile App",
	"Machine Learning",
	"Data Analysis",
	"API Development",
	"E-commerce",
	"Portfolio/Landing",
	"Other",
}

// ValidProjectCategory reports whether category is in the fixed catalog.
func ValidProjectCategory(category string) bool {
	for _, c := range ProjectCategories {
		if c == category {
			return true
		}
	}
	return false
}

// LocalAssetPaths returns every asset path owned by the project,
// image first then the gallery in order. External URLs are included;
// the asset store skips them on release.
func (p Project) LocalAssetPaths() []string {
	paths := make([]string, 0, len(p.Gallery)+1)
	if p.Image != nil && *p.Image != "" {
		paths = append(paths, *p.Image)
	}
	paths = append(paths, p.Gallery...)
	return paths
}
