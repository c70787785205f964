package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateReadTime(t *testing.T) {
	assert.Equal(t, 1, EstimateReadTime(""))
	assert.Equal(t, 1, EstimateReadTime("a short sentence"))

	// 200 words per minute, rounded up.
	assert.Equal(t, 1, EstimateReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, EstimateReadTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 2, EstimateReadTime(strings.Repeat("word ", 400)))
	assert.Equal(t, 3, EstimateReadTime(strings.Repeat("word ", 401)))
}

func TestEstimateReadTime_StripsMarkup(t *testing.T) {
	plain := strings.Repeat("word ", 250)
	marked := "<article><p>" + strings.Repeat("<strong>word</strong> ", 250) + "</p></article>"

	assert.Equal(t, EstimateReadTime(plain), EstimateReadTime(marked))
}

func TestEstimateReadTime_TagsAreNotWords(t *testing.T) {
	assert.Equal(t, 1, EstimateReadTime("<div><br/><img src=\"x.png\"/></div>"))
}
