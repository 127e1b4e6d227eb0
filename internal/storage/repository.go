package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// CatalogRepository is the SQLite mirror of the legacy catalog tables.
type CatalogRepository interface {
	ReplaceCatalog(ctx context.Context, in CatalogSnapshot) error
	ListSpecies(ctx context.Context) ([]Species, error)
	ListObservers(ctx context.Context) ([]Observer, error)
	ListVessels(ctx context.Context) ([]Vessel, error)
	LastSync(ctx context.Context) (SyncRecord, error)
}
