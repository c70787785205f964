package database

import (
	"github.com/google/uuid"
	"github.com/yunanda/portfolio-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// Add inserts a new skill into the database
func (r *SkillRepo) Add(skill *models.Skill) error {
	if skill.ID == uuid.Nil {
		skill.ID = uuid.New()
	}
	return r.db.Create(skill).Error
}

// Update saves an existing skill back to the database
func (r *SkillRepo) Update(skill *models.Skill) error {
	return r.db.Save(skill).Error
}

// Delete removes a skill by id
func (r *SkillRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Skill{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID returns a skill by its ID
func (r *SkillRepo) FindByID(id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.First(&skill, id).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// FindAll returns every skill ordered for the admin listing.
func (r *SkillRepo) FindAll() ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.
		Order("category ASC").Order("sort_order ASC").Order("name ASC").
		Find(&skills).Error
	return skills, err
}

// ActiveByCategory returns active skills grouped by category, each
// group ordered by sort_order then name. Group keys follow the fixed
// category catalog so the public site renders them in a stable order.
func (r *SkillRepo) ActiveByCategory() (map[string][]models.Skill, error) {
	var skills []models.Skill
	err := r.db.
		Where("is_active = ?", true).
		Order("sort_order ASC").Order("name ASC").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Skill)
	for _, skill := range skills {
		grouped[skill.Category] = append(grouped[skill.Category], skill)
	}
	return grouped, nil
}

// Featured returns active featured skills for the landing page.
func (r *SkillRepo) Featured(limit int) ([]models.Skill, error) {
	var skills []models.Skill
	query := r.db.
		Where("is_active = ?", true).
		Where("is_featured = ?", true).
		Order("sort_order ASC").Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&skills).Error
	return skills, err
}
