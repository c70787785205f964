package database

import (
	"github.com/google/uuid"
	"github.com/yunanda/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// GetActive returns the profile currently shown on the public site.
func (r *ProfileRepo) GetActive() (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("is_active = ?", true).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByID returns a profile by its ID
func (r *ProfileRepo) FindByID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindAll returns every profile, active first then newest first.
func (r *ProfileRepo) FindAll() ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.
		Order("is_active DESC").Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

// AddActive inserts a new profile and makes it the single active one.
// Deactivating the previous profile and creating the new one happen in
// one transaction so there is never a moment with two active rows.
func (r *ProfileRepo) AddActive(profile *models.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.IsActive = true
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Profile{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Create(profile).Error
	})
}

// SetActive switches the active profile to the given id inside one
// transaction.
func (r *ProfileRepo) SetActive(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.First(&profile, id).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Profile{}).
			Where("is_active = ?", true).
			Where("id <> ?", id).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.Profile{}).
			Where("id = ?", id).
			Update("is_active", true).Error
	})
}

// Update saves an existing profile back to the database
func (r *ProfileRepo) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// ClearAvatar nulls the avatar column for a profile.
func (r *ProfileRepo) ClearAvatar(id uuid.UUID) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", id).
		Update("avatar", nil).Error
}

// ClearCV nulls the cv_file column for a profile.
func (r *ProfileRepo) ClearCV(id uuid.UUID) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", id).
		Update("cv_file", nil).Error
}

// Delete removes a profile by id
func (r *ProfileRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Profile{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
