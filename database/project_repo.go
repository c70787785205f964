package database

import (
	"strings"

	"github.com/google/uuid"
	"github.com/yunanda/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	Category string
	Search   string
	Featured *bool
	Active   *bool
	Page     int
	PerPage  int
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.db.Create(project).Error
}

// Update saves an existing project back to the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlugActive returns an active project by slug.
func (r *ProjectRepo) FindBySlugActive(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Where("slug = ?", slug).
		Where("is_active = ?", true).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugExists reports whether another project already owns the slug.
func (r *ProjectRepo) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.Model(&models.Project{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of projects plus the total row count, ordered
// by sort_order then newest completion date.
func (r *ProjectRepo) List(filter ProjectFilter) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("sort_order ASC").Order("completed_at DESC")
	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PerPage).Limit(filter.PerPage)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Featured returns up to limit active featured projects for the
// public landing page.
func (r *ProjectRepo) Featured(limit int) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.
		Where("is_active = ?", true).
		Where("is_featured = ?", true).
		Order("sort_order ASC").Order("completed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&projects).Error
	return projects, err
}

// Categories returns the distinct categories of active projects.
func (r *ProjectRepo) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Project{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}
