// Package fixtures carries the static data the dashboard ships with.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/artefact/buzz-dashboard/internal/models"
)

//go:embed data/*.json
var embedded embed.FS

// FS returns the embedded fixture directory with comments.json at its root
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// SummaryRows returns the dashboard overview table
func SummaryRows() ([]models.SummaryRow, error) {
	var rows []models.SummaryRow
	if err := decode("data/data.json", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// TagBreakdowns returns the per-game tag tree for the dashboard drawer
func TagBreakdowns() ([]models.TagBreakdown, error) {
	var tags []models.TagBreakdown
	if err := decode("data/tags.json", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func decode(name string, v interface{}) error {
	data, err := embedded.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
