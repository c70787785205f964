package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// slugPlaceholder stands in for titles that normalize to nothing
// (e.g. all-punctuation input) so the collision loop has a base to
// append counters to.
const slugPlaceholder = "post"

// SlugChecker probes the persistence layer for slug collisions.
// excludeID lets a record keep its own slug across unrelated edits.
type SlugChecker interface {
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
}

// Slugify normalizes a title into a URL-safe lowercase hyphenated
// token: runs of non-alphanumerics collapse to a single hyphen and
// edge hyphens are trimmed. Pure function, no uniqueness guarantee.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + 32)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// GenerateUniqueSlug derives a slug from title that does not collide
// with any existing record, excluding excludeID from the check. On
// collision it appends -1, -2, ... until a free slug is found.
func GenerateUniqueSlug(title string, excludeID uuid.UUID, checker SlugChecker) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = slugPlaceholder
	}

	slug := base
	for counter := 1; ; counter++ {
		exists, err := checker.SlugExists(slug, excludeID)
		if err != nil {
			return "", fmt.Errorf("slug existence check: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// NextSuffix returns the next slug in the counter sequence, used to
// retry a write that hit the unique index despite the pre-check
// (the check-then-insert window is not atomic). "my-post" becomes
// "my-post-1", "my-post-3" becomes "my-post-4".
func NextSuffix(slug string) string {
	if idx := strings.LastIndex(slug, "-"); idx >= 0 && idx < len(slug)-1 {
		if n, err := strconv.Atoi(slug[idx+1:]); err == nil {
			return fmt.Sprintf("%s-%d", slug[:idx], n+1)
		}
	}
	return slug + "-1"
}
