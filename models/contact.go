package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an inbound message from the public contact form.
// Immutable after creation except for deletion.
type Contact struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Subject   *string   `json:"subject,omitempty" db:"subject" gorm:"type:text"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index"`
}
