package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDisplayMode = errors.New("model: invalid species display mode")

type DisplayMode string

const (
	DisplayCommonFirst     DisplayMode = "common_first"
	DisplayScientificFirst DisplayMode = "scientific_first"
)

func (d DisplayMode) IsValid() bool {
	switch d {
	case DisplayCommonFirst, DisplayScientificFirst:
		return true
	default:
		return false
	}
}

// Toggle returns the other presentation order.
func (d DisplayMode) Toggle() DisplayMode {
	if d == DisplayScientificFirst {
		return DisplayCommonFirst
	}
	return DisplayScientificFirst
}

func ParseDisplayMode(raw string) (DisplayMode, error) {
	mode := DisplayMode(strings.ToLower(strings.TrimSpace(raw)))
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDisplayMode, raw)
	}
	return mode, nil
}

// Species is a catalog entry keyed by its INIDEP code.
type Species struct {
	ID             string
	CommonName     string
	ScientificName string
}

func (s Species) DisplayName(mode DisplayMode) string {
	if mode == DisplayScientificFirst {
		return fmt.Sprintf("%s (%s)", s.ScientificName, s.CommonName)
	}
	return fmt.Sprintf("%s (%s)", s.CommonName, s.ScientificName)
}

type Observer struct {
	ID        string
	Surname   string
	GivenName string
}

func (o Observer) DisplayName() string {
	if o.GivenName == "" {
		return o.Surname
	}
	return o.Surname + ", " + o.GivenName
}

// Vessel keys on Name; legacy codes are not unique across fleets.
type Vessel struct {
	Name         string
	Code         string
	FleetType    string
	Fleet        string
	Length       float64
	Horsepower   int
	Registration string
}

func (v Vessel) DisplayName() string { return v.Name }

// Catalog holds the three sorted reference lists loaded at startup.
type Catalog struct {
	Species   []Species
	Observers []Observer
	Vessels   []Vessel
}

func (c Catalog) FindSpecies(id string) (Species, bool) {
	for _, s := range c.Species {
		if s.ID == id {
			return s, true
		}
	}
	return Species{}, false
}

func (c Catalog) FindObserver(id string) (Observer, bool) {
	for _, o := range c.Observers {
		if o.ID == id {
			return o, true
		}
	}
	return Observer{}, false
}

// FindVessel matches the vessel name first. The legacy code is only a
// fallback for older state files, since codes repeat across fleets.
func (c Catalog) FindVessel(key string) (Vessel, bool) {
	if key == "" {
		return Vessel{}, false
	}
	for _, v := range c.Vessels {
		if v.Name == key {
			return v, true
		}
	}
	for _, v := range c.Vessels {
		if v.Code == key {
			return v, true
		}
	}
	return Vessel{}, false
}
