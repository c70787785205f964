package database

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yunanda/portfolio-backend/models"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// ContactFilter narrows the admin inbox listing.
type ContactFilter struct {
	Search  string
	Page    int
	PerPage int
}

// ContactStats counts inbound messages over the recent windows shown
// in the admin inbox header.
type ContactStats struct {
	Total     int64 `json:"total"`
	Today     int64 `json:"today"`
	ThisWeek  int64 `json:"thisWeek"`
	ThisMonth int64 `json:"thisMonth"`
}

// Add inserts a new contact message into the database
func (r *ContactRepo) Add(contact *models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	return r.db.Create(contact).Error
}

// FindByID returns a contact message by its ID
func (r *ContactRepo) FindByID(id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Delete removes a contact message by id
func (r *ContactRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Contact{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns one page of messages, newest first, plus the total row
// count. Search spans name, email, subject and message body.
func (r *ContactRepo) List(filter ContactFilter) ([]models.Contact, int64, error) {
	query := r.db.Model(&models.Contact{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ? OR LOWER(message) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PerPage).Limit(filter.PerPage)
	}

	var contacts []models.Contact
	if err := query.Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// Stats counts messages received today, this ISO week and this month.
func (r *ContactRepo) Stats(now time.Time) (ContactStats, error) {
	var stats ContactStats

	if err := r.db.Model(&models.Contact{}).Count(&stats.Total).Error; err != nil {
		return ContactStats{}, err
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	startOfWeek := startOfDay.AddDate(0, 0, -(weekday - 1))

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	windows := []struct {
		since  time.Time
		target *int64
	}{
		{startOfDay, &stats.Today},
		{startOfWeek, &stats.ThisWeek},
		{startOfMonth, &stats.ThisMonth},
	}
	for _, window := range windows {
		err := r.db.Model(&models.Contact{}).
			Where("created_at >= ?", window.since).
			Count(window.target).Error
		if err != nil {
			return ContactStats{}, err
		}
	}

	return stats, nil
}
