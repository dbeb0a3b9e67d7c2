package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the requested fixture does not exist
var ErrNotFound = errors.New("fixture not found")

// StorageInterface defines the contract for reading fixtures
type StorageInterface interface {
	Retrieve(ctx context.Context, name string) ([]byte, error)
	Name() string
}
