package catalog

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/mareas/internal/logging"
	"github.com/sandeepkv93/mareas/internal/model"
)

// Provider turns source rows into sorted catalog entries. Bad rows and failing
// sources are logged; callers always get a list, possibly empty.
type Provider struct {
	source Source
	logger *log.Logger
}

func NewProvider(source Source, logger *log.Logger) *Provider {
	return &Provider{
		source: source,
		logger: logging.OrDiscard(logger).WithPrefix("catalog"),
	}
}

func (p *Provider) SourceName() string { return p.source.Name() }

// Load reads all three catalogs.
func (p *Provider) Load(ctx context.Context) model.Catalog {
	return model.Catalog{
		Species:   p.ListSpecies(ctx),
		Observers: p.ListObservers(ctx),
		Vessels:   p.ListVessels(ctx),
	}
}

// ListSpecies returns species sorted by common name.
func (p *Provider) ListSpecies(ctx context.Context) []model.Species {
	rows := p.rows(ctx, TableSpecies)
	out := make([]model.Species, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for i, r := range rows {
		id, err1 := r.Get(ColSpeciesID)
		common, err2 := r.Get(ColSpeciesCommon)
		scientific, err3 := r.Get(ColSpeciesScientific)
		if err := firstErr(err1, err2, err3); err != nil {
			p.logger.Warn("skipping species row", "row", i, "err", err)
			continue
		}
		if id == "" || common == "" || scientific == "" {
			continue
		}
		if !p.firstSeen(seen, TableSpecies, id) {
			continue
		}
		out = append(out, model.Species{ID: id, CommonName: common, ScientificName: scientific})
	}
	slices.SortStableFunc(out, func(a, b model.Species) int {
		return strings.Compare(a.CommonName, b.CommonName)
	})
	return out
}

// ListObservers returns observers sorted by surname.
func (p *Provider) ListObservers(ctx context.Context) []model.Observer {
	rows := p.rows(ctx, TableObservers)
	out := make([]model.Observer, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for i, r := range rows {
		id, err1 := r.Get(ColObserverID)
		surname, err2 := r.Get(ColObserverSurname)
		given, err3 := r.Get(ColObserverGiven)
		if err := firstErr(err1, err2, err3); err != nil {
			p.logger.Warn("skipping observer row", "row", i, "err", err)
			continue
		}
		if id == "" || surname == "" {
			continue
		}
		if !p.firstSeen(seen, TableObservers, id) {
			continue
		}
		out = append(out, model.Observer{ID: id, Surname: surname, GivenName: given})
	}
	slices.SortStableFunc(out, func(a, b model.Observer) int {
		return strings.Compare(a.Surname, b.Surname)
	})
	return out
}

// ListVessels returns vessels sorted by name.
func (p *Provider) ListVessels(ctx context.Context) []model.Vessel {
	rows := p.rows(ctx, TableVessels)
	out := make([]model.Vessel, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for i, r := range rows {
		v, err := vesselFrom(r)
		if err != nil {
			p.logger.Warn("skipping vessel row", "row", i, "err", err)
			continue
		}
		if v.Name == "" {
			continue
		}
		if !p.firstSeen(seen, TableVessels, v.Name) {
			continue
		}
		out = append(out, v)
	}
	slices.SortStableFunc(out, func(a, b model.Vessel) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func (p *Provider) rows(ctx context.Context, table Table) []Record {
	rows, err := p.source.Rows(ctx, table)
	if err != nil {
		p.logger.Error("cannot read catalog", "table", table, "source", p.source.Name(), "err", err)
		return nil
	}
	p.logger.Debug("read catalog", "table", table, "rows", len(rows))
	return rows
}

func (p *Provider) firstSeen(seen map[string]struct{}, table Table, key string) bool {
	if _, dup := seen[key]; dup {
		p.logger.Warn("duplicate catalog key, keeping first", "table", table, "key", key)
		return false
	}
	seen[key] = struct{}{}
	return true
}

func vesselFrom(r Record) (model.Vessel, error) {
	var (
		v                model.Vessel
		rawLength, rawHP string
		errs             [7]error
	)
	v.Name, errs[0] = r.Get(ColVesselName)
	v.Code, errs[1] = r.Get(ColVesselCode)
	v.FleetType, errs[2] = r.Get(ColVesselFleetType)
	v.Fleet, errs[3] = r.Get(ColVesselFleet)
	rawLength, errs[4] = r.Get(ColVesselLength)
	rawHP, errs[5] = r.Get(ColVesselHorsepower)
	v.Registration, errs[6] = r.Get(ColVesselRegistration)
	if err := firstErr(errs[:]...); err != nil {
		return model.Vessel{}, err
	}
	if v.Name == "" {
		return v, nil
	}

	length, err := parseFloat(rawLength)
	if err != nil {
		return model.Vessel{}, fmt.Errorf("vessel %q: eslora %q: %w", v.Name, rawLength, err)
	}
	hp, err := parseInt(rawHP)
	if err != nil {
		return model.Vessel{}, fmt.Errorf("vessel %q: pothp %q: %w", v.Name, rawHP, err)
	}
	v.Length = length
	v.Horsepower = hp
	return v, nil
}

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
}

// parseInt accepts "900" and numeric-field renderings like "900.00".
func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
