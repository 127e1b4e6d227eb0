package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/mareas/internal/catalog"
	"github.com/sandeepkv93/mareas/internal/storage"
)

func catalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and mirror the reference catalogs",
	}
	cmd.AddCommand(catalogListCmd(a))
	cmd.AddCommand(catalogSyncCmd(a))
	cmd.AddCommand(catalogStatusCmd(a))
	return cmd
}

func catalogListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "list <species|observers|vessels>",
		Short:     "Print one catalog as the form sees it",
		Example:   "  mareas catalog list species\n  mareas catalog list vessels --catalog-dir ./bases",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(catalog.TableSpecies), string(catalog.TableObservers), string(catalog.TableVessels)},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closer, err := a.provider()
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch catalog.Table(strings.ToLower(args[0])) {
			case catalog.TableSpecies:
				var rows [][]string
				for _, s := range p.ListSpecies(ctx) {
					rows = append(rows, []string{s.ID, s.CommonName, s.ScientificName})
				}
				return writeTable(out, []string{"ID", "COMÚN", "CIENTÍFICO"}, rows)
			case catalog.TableObservers:
				var rows [][]string
				for _, o := range p.ListObservers(ctx) {
					rows = append(rows, []string{o.ID, o.Surname, o.GivenName})
				}
				return writeTable(out, []string{"ID", "APELLIDO", "NOMBRE"}, rows)
			case catalog.TableVessels:
				var rows [][]string
				for _, v := range p.ListVessels(ctx) {
					rows = append(rows, []string{
						v.Name, v.Code, v.FleetType, v.Fleet,
						strconv.FormatFloat(v.Length, 'f', -1, 64), strconv.Itoa(v.Horsepower), v.Registration,
					})
				}
				return writeTable(out, []string{"BUQUE", "CÓDIGO", "TIPO", "FLOTA", "ESLORA", "HP", "MATRÍCULA"}, rows)
			default:
				return fmt.Errorf("unknown catalog %q (want species, observers or vessels)", args[0])
			}
		},
	}
}

func catalogSyncCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the .dbf catalogs into the SQLite mirror",
		Long:  "Read the three legacy tables from --catalog-dir and replace the contents of the SQLite mirror in one transaction. Set catalog.backend to sqlite to run the form from the mirror.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = a.cfg.Catalog.Database
			}
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return fmt.Errorf("create mirror dir: %w", err)
			}
			repo, err := storage.OpenSQLite(dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			p := catalog.NewProvider(catalog.NewDBFSource(a.cfg.Catalog.Dir, a.cfg.Catalog.Codepage), a.logger)
			report, err := catalog.Sync(cmd.Context(), p, repo, time.Now())
			if err != nil {
				return err
			}
			a.logger.Info("catalog synced", "db", dbPath, "species", report.Species, "observers", report.Observers, "vessels", report.Vessels)
			fmt.Fprintf(cmd.OutOrStdout(), "synced %s into %s: %d species, %d observers, %d vessels\n",
				report.Source, dbPath, report.Species, report.Observers, report.Vessels)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite mirror path (default catalog.database)")
	return cmd
}

func catalogStatusCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the last sync recorded in the mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := dbPath
			if path == "" {
				path = a.cfg.Catalog.Database
			}
			repo, err := storage.OpenSQLite(path)
			if err != nil {
				return err
			}
			defer repo.Close()

			rec, err := repo.LastSync(cmd.Context())
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has never been synced\n", path)
				return nil
			}
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), []string{"SOURCE", "SPECIES", "OBSERVERS", "VESSELS", "SYNCED"}, [][]string{{
				rec.Source, strconv.Itoa(rec.SpeciesCount), strconv.Itoa(rec.ObserverCount),
				strconv.Itoa(rec.VesselCount), rec.SyncedAt.Local().Format(time.DateTime),
			}})
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite mirror path (default catalog.database)")
	return cmd
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
