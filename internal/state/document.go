package state

// Document is the persisted form state. Key names match the files written by
// the previous desktop tool so existing state keeps loading.
type Document struct {
	TripNumber string          `json:"num_marea"`
	TripYear   string          `json:"anio_marea,omitempty"`
	ObserverID *string         `json:"observador_cod"`
	VesselKey  *string         `json:"buque_cod"`
	Stages     []StageDocument `json:"etapas"`
	SpeciesIDs []string        `json:"especies"`
}

// StageDocument holds ISO (yyyy-mm-dd) bounds.
type StageDocument struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// StringRef returns a pointer to s, or nil when s is empty.
func StringRef(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
