// Package catalog loads the species, observer and vessel reference lists
// from the legacy tables or from their SQLite mirror.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrFieldMissing = errors.New("catalog: field missing")

type Table string

const (
	TableSpecies   Table = "species"
	TableObservers Table = "observers"
	TableVessels   Table = "vessels"
)

// Legacy column names, as they appear in the FoxPro tables.
const (
	ColSpeciesID         = "CODINIDEP"
	ColSpeciesCommon     = "NOMVULCAS"
	ColSpeciesScientific = "NOMCIENT"

	ColObserverID      = "OBSNRO"
	ColObserverSurname = "OBSER"
	ColObserverGiven   = "OBSNOM"

	ColVesselName         = "BUQUE"
	ColVesselCode         = "BUQUECOD"
	ColVesselFleetType    = "TIPO_FLTA"
	ColVesselFleet        = "FLOTA"
	ColVesselLength       = "ESLORA"
	ColVesselHorsepower   = "POTHP"
	ColVesselRegistration = "MATBUQ"
)

// Record is one source row keyed by upper-cased column name.
type Record map[string]string

// Get returns the trimmed value of col.
func (r Record) Get(col string) (string, error) {
	v, ok := r[strings.ToUpper(col)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrFieldMissing, strings.ToUpper(col))
	}
	return strings.TrimSpace(v), nil
}

// Source yields the raw rows of one catalog table.
type Source interface {
	Name() string
	Rows(ctx context.Context, table Table) ([]Record, error)
}
