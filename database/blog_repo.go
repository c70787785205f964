package database

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yunanda/portfolio-backend/models"
	"gorm.io/gorm"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogRepo) GetDB() *gorm.DB {
	return r.db
}

// BlogFilter narrows and orders an article listing. Zero values mean
// "no constraint"; SortBy falls back to created_at desc.
type BlogFilter struct {
	Status    string
	Category  string
	Search    string
	Featured  *bool
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// BlogStats aggregates the numbers shown on the admin dashboard.
type BlogStats struct {
	Total      int64         `json:"total"`
	Published  int64         `json:"published"`
	Draft      int64         `json:"draft"`
	Archived   int64         `json:"archived"`
	TotalViews int64         `json:"totalViews"`
	Recent     []models.Blog `json:"recent"`
	Popular    []models.Blog `json:"popular"`
}

var blogSortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"published_at": true,
	"title":        true,
	"views_count":  true,
	"read_time":    true,
	"sort_order":   true,
}

// Add inserts a new article into the database
func (r *BlogRepo) Add(blog *models.Blog) error {
	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	return r.db.Create(blog).Error
}

// Update saves an existing article back to the database
func (r *BlogRepo) Update(blog *models.Blog) error {
	return r.db.Save(blog).Error
}

// Delete removes an article by id
func (r *BlogRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Blog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID returns an article by its ID
func (r *BlogRepo) FindByID(id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.First(&blog, id).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindBySlugPublished returns an article by slug, restricted to the
// published window. Articles scheduled in the future are not found.
func (r *BlogRepo) FindBySlugPublished(slug string, now time.Time) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.
		Where("slug = ?", slug).
		Where("status = ?", models.StatusPublished).
		Where("published_at IS NOT NULL AND published_at <= ?", now).
		First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// SlugExists reports whether another article already owns the slug.
// excludeID skips the article being edited so it can keep its own slug.
func (r *BlogRepo) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.Model(&models.Blog{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of articles plus the total row count for the
// same filter.
func (r *BlogRepo) List(filter BlogFilter) ([]models.Blog, int64, error) {
	query := r.db.Model(&models.Blog{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(blogOrderClause(filter.SortBy, filter.SortOrder))

	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PerPage).Limit(filter.PerPage)
	}

	var blogs []models.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ListPublished returns one page of publicly visible articles.
func (r *BlogRepo) ListPublished(filter BlogFilter, now time.Time) ([]models.Blog, int64, error) {
	query := r.db.Model(&models.Blog{}).
		Where("status = ?", models.StatusPublished).
		Where("published_at IS NOT NULL AND published_at <= ?", now)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("published_at DESC")
	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PerPage).Limit(filter.PerPage)
	}

	var blogs []models.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// IncrementViews bumps the view counter atomically so concurrent
// readers never lose counts.
func (r *BlogRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// Related returns up to limit published articles related to blog:
// same-category first (newest-first), then articles from other
// categories that share at least one tag.
func (r *BlogRepo) Related(blog models.Blog, limit int, now time.Time) ([]models.Blog, error) {
	if limit <= 0 {
		return nil, nil
	}

	var related []models.Blog
	err := r.db.
		Where("id <> ?", blog.ID).
		Where("status = ?", models.StatusPublished).
		Where("published_at IS NOT NULL AND published_at <= ?", now).
		Where("category = ?", blog.Category).
		Order("published_at DESC").
		Limit(limit).
		Find(&related).Error
	if err != nil {
		return nil, err
	}
	if len(related) >= limit || len(blog.Tags) == 0 {
		return related, nil
	}

	// Fill the remainder with tag matches from other categories. Tags
	// live in a JSON column so the overlap check happens here rather
	// than in SQL.
	var candidates []models.Blog
	err = r.db.
		Where("id <> ?", blog.ID).
		Where("status = ?", models.StatusPublished).
		Where("published_at IS NOT NULL AND published_at <= ?", now).
		Where("category <> ?", blog.Category).
		Order("published_at DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	for _, candidate := range candidates {
		if len(related) >= limit {
			break
		}
		if candidate.SharesTagWith(blog) {
			related = append(related, candidate)
		}
	}
	return related, nil
}

// PopularTags returns the most used tag names across published
// articles, most frequent first. Ties keep first-seen order.
func (r *BlogRepo) PopularTags(limit int, now time.Time) ([]string, error) {
	var blogs []models.Blog
	err := r.db.
		Select("tags").
		Where("status = ?", models.StatusPublished).
		Where("published_at IS NOT NULL AND published_at <= ?", now).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0
	for _, blog := range blogs {
		for _, tag := range blog.Tags {
			if _, seen := counts[tag]; !seen {
				firstSeen[tag] = order
				order++
			}
			counts[tag]++
		}
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.SliceStable(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return firstSeen[tags[i]] < firstSeen[tags[j]]
	})

	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

// NextAfter returns the next published article after publishedAt, or
// nil when the given article is the newest.
func (r *BlogRepo) NextAfter(publishedAt time.Time, now time.Time) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.
		Where("status = ?", models.StatusPublished).
		Where("published_at IS NOT NULL AND published_at <= ?", now).
		Where("published_at > ?", publishedAt).
		Order("published_at ASC").
		First(&blog).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// PreviousBefore returns the published article preceding publishedAt,
// or nil when the given article is the oldest.
func (r *BlogRepo) PreviousBefore(publishedAt time.Time, now time.Time) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.
		Where("status = ?", models.StatusPublished).
		Where("published_at IS NOT NULL AND published_at <= ?", now).
		Where("published_at < ?", publishedAt).
		Order("published_at DESC").
		First(&blog).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// Stats aggregates the admin dashboard counters plus the five newest
// and five most viewed articles.
func (r *BlogRepo) Stats() (BlogStats, error) {
	var stats BlogStats

	counters := []struct {
		status string
		target *int64
	}{
		{"", &stats.Total},
		{models.StatusPublished, &stats.Published},
		{models.StatusDraft, &stats.Draft},
		{models.StatusArchived, &stats.Archived},
	}
	for _, counter := range counters {
		query := r.db.Model(&models.Blog{})
		if counter.status != "" {
			query = query.Where("status = ?", counter.status)
		}
		if err := query.Count(counter.target).Error; err != nil {
			return BlogStats{}, err
		}
	}

	err := r.db.Model(&models.Blog{}).
		Select("COALESCE(SUM(views_count), 0)").
		Scan(&stats.TotalViews).Error
	if err != nil {
		return BlogStats{}, err
	}

	err = r.db.Order("created_at DESC").Limit(5).Find(&stats.Recent).Error
	if err != nil {
		return BlogStats{}, err
	}

	err = r.db.
		Where("status = ?", models.StatusPublished).
		Order("views_count DESC").
		Limit(5).
		Find(&stats.Popular).Error
	if err != nil {
		return BlogStats{}, err
	}

	return stats, nil
}

// blogOrderClause builds the ORDER BY fragment for an admin listing.
// published_at sorts are pushed NULLS LAST so drafts trail whatever
// the direction is.
func blogOrderClause(sortBy, sortOrder string) string {
	if !blogSortColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	if sortBy == "published_at" {
		return "published_at IS NULL, published_at " + direction
	}
	return sortBy + " " + direction
}
