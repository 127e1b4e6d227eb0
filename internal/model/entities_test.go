package model

import (
	"errors"
	"testing"
)

func TestSpeciesDisplayNameFollowsMode(t *testing.T) {
	s := Species{ID: "1", CommonName: "Anchoita", ScientificName: "Engraulis anchoita"}
	if got := s.DisplayName(DisplayCommonFirst); got != "Anchoita (Engraulis anchoita)" {
		t.Fatalf("unexpected common-first name: %q", got)
	}
	if got := s.DisplayName(DisplayScientificFirst); got != "Engraulis anchoita (Anchoita)" {
		t.Fatalf("unexpected scientific-first name: %q", got)
	}
}

func TestDisplayModeToggleAndParse(t *testing.T) {
	if DisplayCommonFirst.Toggle() != DisplayScientificFirst || DisplayScientificFirst.Toggle() != DisplayCommonFirst {
		t.Fatal("toggle should flip between the two modes")
	}
	mode, err := ParseDisplayMode(" Scientific_First ")
	if err != nil || mode != DisplayScientificFirst {
		t.Fatalf("parse display mode = %q, %v", mode, err)
	}
	if _, err := ParseDisplayMode("latin"); !errors.Is(err, ErrInvalidDisplayMode) {
		t.Fatalf("expected ErrInvalidDisplayMode, got %v", err)
	}
}

func TestObserverDisplayName(t *testing.T) {
	if got := (Observer{ID: "1", Surname: "Perez", GivenName: "Juan"}).DisplayName(); got != "Perez, Juan" {
		t.Fatalf("unexpected observer name: %q", got)
	}
	if got := (Observer{ID: "2", Surname: "Gomez"}).DisplayName(); got != "Gomez" {
		t.Fatalf("unexpected observer name without given name: %q", got)
	}
}

func TestCatalogLookups(t *testing.T) {
	c := Catalog{
		Species:   []Species{{ID: "3", CommonName: "Merluza", ScientificName: "Merluccius hubbsi"}},
		Observers: []Observer{{ID: "1", Surname: "Perez"}},
		Vessels: []Vessel{
			{Name: "Barco 1", Code: "123"},
			{Name: "Sin Codigo"},
		},
	}
	if s, ok := c.FindSpecies("3"); !ok || s.CommonName != "Merluza" {
		t.Fatalf("expected Merluza, got %+v %v", s, ok)
	}
	if _, ok := c.FindSpecies("999"); ok {
		t.Fatal("unexpected species match")
	}
	if o, ok := c.FindObserver("1"); !ok || o.Surname != "Perez" {
		t.Fatalf("expected Perez, got %+v %v", o, ok)
	}
	if v, ok := c.FindVessel("123"); !ok || v.Name != "Barco 1" {
		t.Fatalf("expected vessel by code, got %+v %v", v, ok)
	}
	if v, ok := c.FindVessel("Sin Codigo"); !ok || v.Code != "" {
		t.Fatalf("expected vessel by name fallback, got %+v %v", v, ok)
	}
	if _, ok := c.FindVessel(""); ok {
		t.Fatal("empty key must not match a vessel without code")
	}
}

func TestFindVesselPrefersNameOverSharedCode(t *testing.T) {
	c := Catalog{Vessels: []Vessel{
		{Name: "Alfa", Code: "123"},
		{Name: "Bravo", Code: "123"},
		{Name: "123", Code: "900"},
	}}
	if v, ok := c.FindVessel("Bravo"); !ok || v.Name != "Bravo" {
		t.Fatalf("expected Bravo, got %+v %v", v, ok)
	}
	if v, ok := c.FindVessel("123"); !ok || v.Name != "123" {
		t.Fatalf("name match must win over code match, got %+v %v", v, ok)
	}
}
