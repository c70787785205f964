package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Blog publication statuses. There is no enforced transition graph:
// the admin can move an article between any two statuses. The only
// automatic side effect is stamping PublishedAt on the first
// transition into published.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Blog represents one article with its taxonomy and SEO metadata
type Blog struct {
	ID              uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title           string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug            string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_blogs_slug"`
	Excerpt         string                      `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	Content         string                      `json:"content" db:"content" gorm:"type:text;not null"`
	FeaturedImage   *string                     `json:"featuredImage,omitempty" db:"featured_image" gorm:"type:text"`
	Tags            datatypes.JSONSlice[string] `json:"tags,omitempty" db:"tags"`
	Category        string                      `json:"category" db:"category" gorm:"type:text;not null;default:General;index:idx_blogs_category_status,priority:1"`
	Status          string                      `json:"status" db:"status" gorm:"type:text;not null;default:draft;index:idx_blogs_status_published,priority:1;index:idx_blogs_category_status,priority:2;index:idx_blogs_featured_status,priority:2"`
	IsFeatured      bool                        `json:"isFeatured" db:"is_featured" gorm:"not null;default:false;index:idx_blogs_featured_status,priority:1"`
	ReadTime        int                         `json:"readTime" db:"read_time" gorm:"type:integer;not null;default:1"`
	ViewsCount      int                         `json:"viewsCount" db:"views_count" gorm:"type:integer;not null;default:0"`
	PublishedAt     *time.Time                  `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamp;index:idx_blogs_status_published,priority:2"`
	MetaTitle       *string                     `json:"metaTitle,omitempty" db:"meta_title" gorm:"type:text"`
	MetaDescription *string                     `json:"metaDescription,omitempty" db:"meta_description" gorm:"type:text"`
	MetaKeywords    datatypes.JSONSlice[string] `json:"metaKeywords,omitempty" db:"meta_keywords"`
	SortOrder       int                         `json:"sortOrder" db:"sort_order" gorm:"type:integer;not null;default:0"`
	CreatedAt       time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time                   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// BlogCategories is the fixed category catalog for articles.
var BlogCategories = []string{
	"Technology",
	"Web Development",
	"Mobile Development",
	"Machine Learning",
	"Data Science",
	"DevOps",
	"Programming",
	"Tutorial",
	"Review",
	"News",
	"Personal",
	"General",
}

// BlogStatuses maps each status value to its display label.
var BlogStatuses = map[string]string{
	StatusDraft:     "Draft",
	StatusPublished: "Published",
	StatusArchived:  "Archived",
}

// StatusLabel returns the display label for the article's status.
func (b Blog) StatusLabel() string {
	if label, ok := BlogStatuses[b.Status]; ok {
		return label
	}
	return "Unknown"
}

// HasTag reports whether the article carries the given tag.
func (b Blog) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharesTagWith reports whether two articles share at least one tag.
func (b Blog) SharesTagWith(other Blog) bool {
	for _, t := range b.Tags {
		if other.HasTag(t) {
			return true
		}
	}
	return false
}

// ValidBlogCategory reports whether category is in the fixed catalog.
func ValidBlogCategory(category string) bool {
	for _, c := range BlogCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidBlogStatus reports whether status is a known status value.
func ValidBlogStatus(status string) bool {
	_, ok := BlogStatuses[status]
	return ok
}
