package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandeepkv93/mareas/internal/storage"
)

// StorageSource serves rows from the SQLite mirror under the legacy column
// names, so the same row rules apply to both backends.
type StorageSource struct {
	repo storage.CatalogRepository
}

var _ Source = (*StorageSource)(nil)

func NewStorageSource(repo storage.CatalogRepository) *StorageSource {
	return &StorageSource{repo: repo}
}

func (s *StorageSource) Name() string { return "sqlite" }

func (s *StorageSource) Rows(ctx context.Context, table Table) ([]Record, error) {
	switch table {
	case TableSpecies:
		rows, err := s.repo.ListSpecies(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(rows))
		for _, r := range rows {
			out = append(out, Record{
				ColSpeciesID:         r.ID,
				ColSpeciesCommon:     r.CommonName,
				ColSpeciesScientific: r.ScientificName,
			})
		}
		return out, nil
	case TableObservers:
		rows, err := s.repo.ListObservers(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(rows))
		for _, r := range rows {
			out = append(out, Record{
				ColObserverID:      r.ID,
				ColObserverSurname: r.Surname,
				ColObserverGiven:   r.GivenName,
			})
		}
		return out, nil
	case TableVessels:
		rows, err := s.repo.ListVessels(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(rows))
		for _, r := range rows {
			out = append(out, Record{
				ColVesselName:         r.Name,
				ColVesselCode:         r.Code,
				ColVesselFleetType:    r.FleetType,
				ColVesselFleet:        r.Fleet,
				ColVesselLength:       strconv.FormatFloat(r.Length, 'f', -1, 64),
				ColVesselHorsepower:   strconv.Itoa(r.Horsepower),
				ColVesselRegistration: r.Registration,
			})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("catalog: unknown table %q", table)
	}
}
