package library

import (
	"strings"
	"time"

	"github.com/artefact/buzz-dashboard/internal/models"
)

// predicate is one independent check a comment must pass
type predicate func(c models.Comment) bool

// predicates returns the checks enabled by the criteria, evaluated against now
func (c Criteria) predicates(now time.Time) []predicate {
	var checks []predicate

	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		checks = append(checks, func(m models.Comment) bool {
			return strings.Contains(strings.ToLower(m.Content), needle) ||
				strings.Contains(strings.ToLower(m.User), needle)
		})
	}

	if enabled(c.Game) {
		game := c.Game
		checks = append(checks, func(m models.Comment) bool { return m.Game == game })
	}

	if enabled(c.Platform) {
		platform := c.Platform
		checks = append(checks, func(m models.Comment) bool { return m.Platform == platform })
	}

	if enabled(c.Theme) {
		theme := c.Theme
		checks = append(checks, func(m models.Comment) bool {
			for _, t := range m.TagDetails {
				if t.Theme == theme && len(t.Tags) > 0 {
					return true
				}
			}
			return false
		})
	}

	if enabled(c.Tag) {
		tag := c.Tag
		checks = append(checks, func(m models.Comment) bool {
			return anyTag(m, func(t models.TagAnnotation) bool { return t.Name == tag })
		})
	}

	if enabled(c.Sentiment) {
		sentiment := c.Sentiment
		checks = append(checks, func(m models.Comment) bool {
			return anyTag(m, func(t models.TagAnnotation) bool { return t.Metrics.SentimentLabel == sentiment })
		})
	}

	if cutoff, ok := c.Cutoff(now); ok {
		checks = append(checks, func(m models.Comment) bool { return !m.PublishAt.Before(cutoff) })
	}

	return checks
}

// Matches reports whether a comment passes every active filter in criteria
func Matches(comment models.Comment, criteria Criteria, now time.Time) bool {
	return matchAll(comment, criteria.predicates(now))
}

// Filter returns the comments matching criteria, in their original order.
// The input slice is not modified.
func Filter(comments []models.Comment, criteria Criteria, now time.Time) []models.Comment {
	checks := criteria.predicates(now)
	result := make([]models.Comment, 0, len(comments))

	for _, comment := range comments {
		if matchAll(comment, checks) {
			result = append(result, comment)
		}
	}

	return result
}

func matchAll(comment models.Comment, checks []predicate) bool {
	for _, check := range checks {
		if !check(comment) {
			return false
		}
	}
	return true
}

func anyTag(comment models.Comment, fn func(models.TagAnnotation) bool) bool {
	for _, theme := range comment.TagDetails {
		for _, tag := range theme.Tags {
			if fn(tag) {
				return true
			}
		}
	}
	return false
}

func enabled(value string) bool {
	return value != "" && value != All
}
