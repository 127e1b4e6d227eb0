package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/mareas/internal/catalog"
	"github.com/sandeepkv93/mareas/internal/config"
	"github.com/sandeepkv93/mareas/internal/form"
	"github.com/sandeepkv93/mareas/internal/logging"
	"github.com/sandeepkv93/mareas/internal/state"
	"github.com/sandeepkv93/mareas/internal/storage"
	"github.com/sandeepkv93/mareas/internal/update"
)

// Set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" {
		return version
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	catalogDir string
	statePath  string
	logLevel   string

	cfg       config.Config
	logger    *log.Logger
	logCloser io.Closer
}

func main() {
	os.Exit(execute(context.Background(), &app{}, os.Args[1:], os.Stderr))
}

// execute runs the command tree and returns the process exit code. The log
// file is closed on every path, including failed runs where cobra skips its
// post-run hooks.
func execute(ctx context.Context, a *app, args []string, stderr io.Writer) int {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	a.teardown()
	if err != nil {
		fmt.Fprintf(stderr, "mareas failed: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mareas",
		Short: "Formulario de mareas de observadores a bordo",
		Long:  "Edit the trip header (number, year, observer, vessel, stages and target species) against the legacy FoxPro catalogs. The form autosaves after every change.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	rootCmd.Version = buildVersion()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file (default mareas.yaml beside the executable)")
	flags.StringVar(&a.catalogDir, "catalog-dir", "", "Directory holding the legacy .dbf catalogs")
	flags.StringVar(&a.statePath, "state", "", "Form state file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(catalogCmd(a))
	rootCmd.AddCommand(stateCmd(a))
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	base := config.DefaultConfig(baseDir())
	path := a.configPath
	if path == "" {
		path = filepath.Join(baseDir(), "mareas.yaml")
	}
	cfg, err := config.Load(path, base)
	if err != nil {
		return err
	}
	cfg = config.FromEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("catalog-dir") {
		cfg.Catalog.Dir = a.catalogDir
	}
	if flags.Changed("state") {
		cfg.State.Path = a.statePath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logCloser = closer
	a.logger.Debug("config resolved", "backend", cfg.Catalog.Backend, "state", cfg.State.Path)
	return nil
}

func (a *app) teardown() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

// baseDir is the executable's directory, where the legacy tool kept its
// config.json. It falls back to the working directory.
func baseDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// provider opens the configured catalog backend. The closer is nil for the
// dbf backend.
func (a *app) provider() (*catalog.Provider, io.Closer, error) {
	switch a.cfg.Catalog.Backend {
	case config.BackendSQLite:
		repo, err := storage.OpenSQLite(a.cfg.Catalog.Database)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewProvider(catalog.NewStorageSource(repo), a.logger), repo, nil
	default:
		src := catalog.NewDBFSource(a.cfg.Catalog.Dir, a.cfg.Catalog.Codepage)
		return catalog.NewProvider(src, a.logger), nil, nil
	}
}

func (a *app) runTUI(ctx context.Context) error {
	p, closer, err := a.provider()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	cat := p.Load(ctx)
	a.logger.Info("catalogs loaded", "species", len(cat.Species), "observers", len(cat.Observers), "vessels", len(cat.Vessels))

	store := state.NewStore(a.cfg.State.Path, a.logger)
	mgr := form.NewManager(store, a.logger, form.WithDisplayMode(a.cfg.DisplayMode()))
	mgr.Restore(store.Load(), cat)

	program := tea.NewProgram(update.NewModel(mgr, cat), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "mareas "+buildVersion())
		},
	}
}
