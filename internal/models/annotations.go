package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ThemeAnnotations is the theme -> tag -> metrics tree of a comment.
//
// It also decodes the legacy map shape, where each theme maps to a flat list of tags:
//
//	{"ux": [{"tag_name": "#HitRegistration", "sentiment_score": 0.4, "sentiment_label": "Mixed", "keywords": [...]}]}
//
// Themes keep the order they have in the legacy object.
type ThemeAnnotations []ThemeAnnotation

// legacyTag is a tag entry in the legacy map shape
type legacyTag struct {
	TagName string `json:"tag_name"`
	Metrics
}

func (a *ThemeAnnotations) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = nil
		return nil
	}

	if trimmed[0] != '{' {
		var tree []ThemeAnnotation
		if err := json.Unmarshal(trimmed, &tree); err != nil {
			return err
		}
		*a = tree
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return err
	}

	var tree []ThemeAnnotation
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return err
		}
		theme, ok := key.(string)
		if !ok {
			return fmt.Errorf("legacy tag_details: unexpected key %v", key)
		}

		var tags []legacyTag
		if err := dec.Decode(&tags); err != nil {
			return fmt.Errorf("legacy tag_details %q: %w", theme, err)
		}

		annotation := ThemeAnnotation{Theme: theme, Tags: make([]TagAnnotation, 0, len(tags))}
		for _, t := range tags {
			annotation.Tags = append(annotation.Tags, TagAnnotation{Name: t.TagName, Metrics: t.Metrics})
		}
		tree = append(tree, annotation)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = tree
	return nil
}
