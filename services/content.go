package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/yunanda/portfolio-backend/models"
)

// Pre-persistence transformation steps for articles. The write path
// calls these explicitly before handing the entity to the repository,
// so the derivation order (slug, then read time, then publish stamp)
// is a visible contract rather than a hidden persistence hook.

// PrepareBlogCreate fills the derived fields of a new article: slug
// from the title when absent, read time from the content when absent,
// and the publish timestamp when the article is born published.
func PrepareBlogCreate(blog *models.Blog, checker SlugChecker, now time.Time) error {
	if blog.Slug == "" {
		slug, err := GenerateUniqueSlug(blog.Title, uuid.Nil, checker)
		if err != nil {
			return err
		}
		blog.Slug = slug
	}

	if blog.ReadTime == 0 {
		blog.ReadTime = EstimateReadTime(blog.Content)
	}

	StampPublished(blog, now)
	return nil
}

// PrepareBlogUpdate recomputes derived fields on an edit: the slug is
// regenerated only when the title changed (excluding the article
// itself from the uniqueness check), the read time only when the
// content changed. PublishedAt carries over from the stored row
// unless the caller supplied an explicit override; a previously
// published article keeps its original first-publish time.
func PrepareBlogUpdate(existing models.Blog, blog *models.Blog, publishedAtOverride *time.Time, checker SlugChecker, now time.Time) error {
	if blog.Title != existing.Title {
		slug, err := GenerateUniqueSlug(blog.Title, existing.ID, checker)
		if err != nil {
			return err
		}
		blog.Slug = slug
	} else {
		blog.Slug = existing.Slug
	}

	if blog.Content != existing.Content {
		blog.ReadTime = EstimateReadTime(blog.Content)
	} else {
		blog.ReadTime = existing.ReadTime
	}

	if publishedAtOverride != nil {
		blog.PublishedAt = publishedAtOverride
	} else {
		blog.PublishedAt = existing.PublishedAt
	}

	StampPublished(blog, now)
	return nil
}

// StampPublished sets the publish timestamp on the first transition
// into published. It fires at most once per article: a later edit or
// un-publish never clears or moves the stamp.
func StampPublished(blog *models.Blog, now time.Time) {
	if blog.Status == models.StatusPublished && blog.PublishedAt == nil {
		t := now
		blog.PublishedAt = &t
	}
}

// DuplicateBlog builds a fresh draft copy of an article: new slug
// derived from the copy title, counters reset, publish history
// cleared. The featured image path is carried over as-is, matching
// how a copied article keeps pointing at the same media.
func DuplicateBlog(src models.Blog, checker SlugChecker) (models.Blog, error) {
	copyTitle := src.Title + " (Copy)"
	slug, err := GenerateUniqueSlug(copyTitle, uuid.Nil, checker)
	if err != nil {
		return models.Blog{}, err
	}

	dup := src
	dup.ID = uuid.Nil
	dup.Title = copyTitle
	dup.Slug = slug
	dup.Status = models.StatusDraft
	dup.IsFeatured = false
	dup.PublishedAt = nil
	dup.ViewsCount = 0
	dup.CreatedAt = time.Time{}
	dup.UpdatedAt = time.Time{}
	return dup, nil
}
