package storage

import "time"

type Species struct {
	ID             string
	CommonName     string
	ScientificName string
}

type Observer struct {
	ID        string
	Surname   string
	GivenName string
}

type Vessel struct {
	Name         string
	Code         string
	FleetType    string
	Fleet        string
	Length       float64
	Horsepower   int
	Registration string
}

// CatalogSnapshot is the full content written by one sync.
type CatalogSnapshot struct {
	Source    string
	Species   []Species
	Observers []Observer
	Vessels   []Vessel
	SyncedAt  time.Time
}

type SyncRecord struct {
	ID            int64
	Source        string
	SpeciesCount  int
	ObserverCount int
	VesselCount   int
	SyncedAt      time.Time
}
