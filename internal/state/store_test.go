package state

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"
)

func sampleDocument() Document {
	return Document{
		TripNumber: "789",
		TripYear:   "2024",
		ObserverID: StringRef("1"),
		VesselKey:  StringRef("123"),
		Stages:     []StageDocument{{Start: "2024-03-01", End: "2024-03-05"}},
		SpeciesIDs: []string{"3"},
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	store := NewStore(path, nil).WithFallback(nil, "")

	want := sampleDocument()
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := store.Load()
	if got == nil {
		t.Fatal("expected document, got nil")
	}
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", *got, want)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be renamed away, stat err: %v", err)
	}
}

func TestSaveWritesLegacyKeysAndNulls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewStore(path, nil)
	if err := store.Save(Document{TripYear: "2026"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "{\n    \"num_marea\": \"\",\n    \"anio_marea\": \"2026\",\n    \"observador_cod\": null,\n    \"buque_cod\": null,\n    \"etapas\": [],\n    \"especies\": []\n}\n"
	if string(raw) != want {
		t.Fatalf("unexpected document:\n%s", raw)
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"), nil).WithFallback(nil, "")
	if doc := store.Load(); doc != nil {
		t.Fatalf("expected no state, got %#v", doc)
	}
}

func TestLoadCorruptReturnsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("this is not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewStore(path, nil).WithFallback(fstest.MapFS{}, "default.json")
	if doc := store.Load(); doc != nil {
		t.Fatalf("expected no state for corrupt file, got %#v", doc)
	}
}

func TestLoadFallsBackToBundledDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fallback := fstest.MapFS{
		"default.json": &fstest.MapFile{Data: []byte(`{"num_marea":"001","especies":["2"]}`)},
	}
	doc := NewStore(path, nil).WithFallback(fallback, "default.json").Load()
	if doc == nil {
		t.Fatal("expected bundled default")
	}
	if doc.TripNumber != "001" || !reflect.DeepEqual(doc.SpeciesIDs, []string{"2"}) {
		t.Fatalf("unexpected fallback document: %#v", doc)
	}
}

func TestLoadTreatsNullLocalAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("null\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fallback := fstest.MapFS{
		"default.json": &fstest.MapFile{Data: []byte(`{"num_marea":"001"}`)},
	}
	doc := NewStore(path, nil).WithFallback(fallback, "default.json").Load()
	if doc == nil || doc.TripNumber != "001" {
		t.Fatalf("expected bundled default for a null local file, got %#v", doc)
	}

	if doc := NewStore(path, nil).WithFallback(nil, "").Load(); doc != nil {
		t.Fatalf("expected no state for a null local file, got %#v", doc)
	}
}

func TestLoadUsesEmbeddedDefaultOnFirstRun(t *testing.T) {
	doc := NewStore(filepath.Join(t.TempDir(), "config.json"), nil).Load()
	if doc == nil {
		t.Fatal("expected embedded default document")
	}
	if doc.TripNumber != "" || doc.TripYear != "" || doc.ObserverID != nil || len(doc.Stages) != 0 {
		t.Fatalf("embedded default should be blank, got %#v", doc)
	}
}

func TestLoadCorruptBundledReturnsNil(t *testing.T) {
	fallback := fstest.MapFS{"default.json": &fstest.MapFile{Data: []byte("nope")}}
	doc := NewStore("", nil).WithFallback(fallback, "default.json").Load()
	if doc != nil {
		t.Fatalf("expected nil for corrupt bundled default, got %#v", doc)
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewStore(path, nil)
	if err := store.Save(sampleDocument()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear should be a no-op: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err: %v", err)
	}
}

func TestSaveRemovesTempFileWhenReplaceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.MkdirAll(filepath.Join(path, "occupied"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := NewStore(path, nil).Save(sampleDocument()); err == nil {
		t.Fatal("expected save over a directory to fail")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, stat err = %v", err)
	}
}

func TestSaveWithoutPathFails(t *testing.T) {
	if err := NewStore("  ", nil).Save(sampleDocument()); err == nil {
		t.Fatal("expected error without path")
	}
}
