package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the site owner's identity, contact fields and social
// links. Multiple rows may exist historically but at most one carries
// IsActive=true at any time; the repository enforces that invariant
// inside a single transaction.
type Profile struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Title        string    `json:"title" db:"title" gorm:"type:text;not null"`
	Bio          string    `json:"bio" db:"bio" gorm:"type:text;not null"`
	Description  string    `json:"description" db:"description" gorm:"type:text;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null"`
	Phone        *string   `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Location     *string   `json:"location,omitempty" db:"location" gorm:"type:text"`
	Avatar       *string   `json:"avatar,omitempty" db:"avatar" gorm:"type:text"`
	CVFile       *string   `json:"cvFile,omitempty" db:"cv_file" gorm:"type:text"`
	GithubURL    *string   `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	LinkedinURL  *string   `json:"linkedinUrl,omitempty" db:"linkedin_url" gorm:"type:text"`
	TwitterURL   *string   `json:"twitterUrl,omitempty" db:"twitter_url" gorm:"type:text"`
	InstagramURL *string   `json:"instagramUrl,omitempty" db:"instagram_url" gorm:"type:text"`
	WebsiteURL   *string   `json:"websiteUrl,omitempty" db:"website_url" gorm:"type:text"`
	IsActive     bool      `json:"isActive" db:"is_active" gorm:"not null;default:false;index"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
