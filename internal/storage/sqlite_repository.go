package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

var _ CatalogRepository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the mirror at path and brings its schema up to date.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ReplaceCatalog swaps the three tables for in and records the sync, all in
// one transaction.
func (r *SQLiteRepository) ReplaceCatalog(ctx context.Context, in CatalogSnapshot) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"species", "observers", "vessels"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, s := range in.Species {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO species (id, common_name, scientific_name) VALUES (?, ?, ?)`,
			s.ID, s.CommonName, s.ScientificName,
		); err != nil {
			return fmt.Errorf("insert species %s: %w", s.ID, err)
		}
	}
	for _, o := range in.Observers {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO observers (id, surname, given_name) VALUES (?, ?, ?)`,
			o.ID, o.Surname, o.GivenName,
		); err != nil {
			return fmt.Errorf("insert observer %s: %w", o.ID, err)
		}
	}
	for _, v := range in.Vessels {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO vessels (name, code, fleet_type, fleet, length, horsepower, registration)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			v.Name, v.Code, v.FleetType, v.Fleet, v.Length, v.Horsepower, v.Registration,
		); err != nil {
			return fmt.Errorf("insert vessel %s: %w", v.Name, err)
		}
	}

	syncedAt := in.SyncedAt
	if syncedAt.IsZero() {
		syncedAt = time.Now()
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO catalog_sync (source, species_count, observer_count, vessel_count, synced_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.Source, len(in.Species), len(in.Observers), len(in.Vessels), mustTime(syncedAt),
	); err != nil {
		return fmt.Errorf("record sync: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListSpecies returns rows in insertion order, which is the order the
// provider wrote them in.
func (r *SQLiteRepository) ListSpecies(ctx context.Context) ([]Species, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, common_name, scientific_name FROM species ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Species
	for rows.Next() {
		var s Species
		if err := rows.Scan(&s.ID, &s.CommonName, &s.ScientificName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListObservers(ctx context.Context) ([]Observer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, surname, given_name FROM observers ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Observer
	for rows.Next() {
		var o Observer
		if err := rows.Scan(&o.ID, &o.Surname, &o.GivenName); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListVessels(ctx context.Context) ([]Vessel, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, code, fleet_type, fleet, length, horsepower, registration
		FROM vessels ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vessel
	for rows.Next() {
		v, err := scanVessel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) LastSync(ctx context.Context) (SyncRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, source, species_count, observer_count, vessel_count, synced_at
		FROM catalog_sync ORDER BY id DESC LIMIT 1`)
	var (
		rec      SyncRecord
		syncedAt string
	)
	if err := row.Scan(&rec.ID, &rec.Source, &rec.SpeciesCount, &rec.ObserverCount, &rec.VesselCount, &syncedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SyncRecord{}, ErrNotFound
		}
		return SyncRecord{}, err
	}
	t, err := time.Parse(sqliteTimeLayout, syncedAt)
	if err != nil {
		return SyncRecord{}, fmt.Errorf("parse synced_at: %w", err)
	}
	rec.SyncedAt = t
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVessel(s scanner) (Vessel, error) {
	var v Vessel
	err := s.Scan(&v.Name, &v.Code, &v.FleetType, &v.Fleet, &v.Length, &v.Horsepower, &v.Registration)
	return v, err
}

func mustTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}
