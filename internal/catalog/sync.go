package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/mareas/internal/model"
	"github.com/sandeepkv93/mareas/internal/storage"
)

type SyncReport struct {
	Source    string
	Species   int
	Observers int
	Vessels   int
	SyncedAt  time.Time
}

// Sync copies the provider's catalogs into repo, replacing what it held.
func Sync(ctx context.Context, p *Provider, repo storage.CatalogRepository, now time.Time) (SyncReport, error) {
	cat := p.Load(ctx)
	if err := ctx.Err(); err != nil {
		return SyncReport{}, err
	}
	snap := snapshotOf(cat)
	snap.Source = p.SourceName()
	snap.SyncedAt = now
	if err := repo.ReplaceCatalog(ctx, snap); err != nil {
		return SyncReport{}, fmt.Errorf("catalog sync: %w", err)
	}
	return SyncReport{
		Source:    snap.Source,
		Species:   len(snap.Species),
		Observers: len(snap.Observers),
		Vessels:   len(snap.Vessels),
		SyncedAt:  now,
	}, nil
}

func snapshotOf(cat model.Catalog) storage.CatalogSnapshot {
	snap := storage.CatalogSnapshot{
		Species:   make([]storage.Species, 0, len(cat.Species)),
		Observers: make([]storage.Observer, 0, len(cat.Observers)),
		Vessels:   make([]storage.Vessel, 0, len(cat.Vessels)),
	}
	for _, s := range cat.Species {
		snap.Species = append(snap.Species, storage.Species{
			ID: s.ID, CommonName: s.CommonName, ScientificName: s.ScientificName,
		})
	}
	for _, o := range cat.Observers {
		snap.Observers = append(snap.Observers, storage.Observer{
			ID: o.ID, Surname: o.Surname, GivenName: o.GivenName,
		})
	}
	for _, v := range cat.Vessels {
		snap.Vessels = append(snap.Vessels, storage.Vessel{
			Name: v.Name, Code: v.Code, FleetType: v.FleetType, Fleet: v.Fleet,
			Length: v.Length, Horsepower: v.Horsepower, Registration: v.Registration,
		})
	}
	return snap
}
