package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// sanitizeText strips markup and surrounding whitespace from free-form input.
// Entities escaped by the policy are decoded again so "Tom & Jerry" survives.
func sanitizeText(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = textPolicy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(input))
}
