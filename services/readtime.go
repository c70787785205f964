package services

import (
	"regexp"
	"strings"
)

// wordsPerMinute is the assumed average reading speed.
const wordsPerMinute = 200

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// EstimateReadTime estimates how many minutes an article takes to
// read: markup is stripped, whitespace-delimited words are counted
// and divided by the reading speed, rounded up. Never below 1, even
// for empty content.
func EstimateReadTime(content string) int {
	plain := markupPattern.ReplaceAllString(content, " ")
	words := len(strings.Fields(plain))

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
