package service

import (
	"regexp"
	"strings"
)

// All input validations should be added here.

var multiSpace = regexp.MustCompile(`\s{2,}`)

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(multiSpace.ReplaceAllString(title, " "))
	if len(title) == 0 {
		return "", validationError("title", "Title is required")
	}
	return title, nil
}

func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return "", validationError("content", "Content is required")
	}
	return content, nil
}

// cleanTags trims tags and drops empties, preserving order without
// duplicates.
func cleanTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	cleaned := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if len(tag) == 0 || seen[tag] {
			continue
		}
		seen[tag] = true
		cleaned = append(cleaned, tag)
	}
	return cleaned
}
