package storage

import (
	"fmt"

	"github.com/artefact/buzz-dashboard/internal/config"
	"github.com/artefact/buzz-dashboard/internal/fixtures"
)

// FromConfig builds the storage named by cfg.FixtureSource
func FromConfig(cfg *config.Config) (StorageInterface, error) {
	var (
		store StorageInterface
		err   error
	)

	switch cfg.FixtureSource {
	case "", "embedded":
		store = NewFSStorage(fixtures.FS(), "embedded")
	case "file":
		store, err = NewDirStorage(cfg.FixtureDir)
	case "http":
		store, err = NewHTTPStorage(cfg.FixtureBaseURL)
	case "azure":
		store, err = NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
	default:
		err = fmt.Errorf("unsupported fixture source %q", cfg.FixtureSource)
	}

	if err != nil {
		return nil, err
	}
	return store, nil
}
