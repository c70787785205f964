package models

import (
	"time"

	"github.com/google/uuid"
)

// Skill represents a technology/skill tag shown on the public site
type Skill struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Category    string    `json:"category" db:"category" gorm:"type:text;not null;index"`
	LogoURL     *string   `json:"logoUrl,omitempty" db:"logo_url" gorm:"type:text"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	SortOrder   int       `json:"sortOrder" db:"sort_order" gorm:"type:integer;not null;default:0"`
	IsFeatured  bool      `json:"isFeatured" db:"is_featured" gorm:"not null;default:false"`
	IsActive    bool      `json:"isActive" db:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// SkillCategories is the fixed 8-value category catalog for skills.
var SkillCategories = []string{
	"Frontend",
	"Backend",
	"Database",
	"Machine Learning",
	"DevOps",
	"Mobile",
	"Tools",
	"Other",
}

// ValidSkillCategory reports whether category is in the fixed catalog.
func ValidSkillCategory(category string) bool {
	for _, c := range SkillCategories {
		if c == category {
			return true
		}
	}
	return false
}
