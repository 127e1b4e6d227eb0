package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/mareas/internal/form"
	"github.com/sandeepkv93/mareas/internal/state"
)

func stateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or clear the saved form",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the document the form will restore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := state.NewStore(a.cfg.State.Path, a.logger).Load()
			if doc == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved state")
				return nil
			}
			payload, err := json.MarshalIndent(doc, "", "    ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear every field and save the empty form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := state.NewStore(a.cfg.State.Path, a.logger)
			mgr := form.NewManager(store, a.logger)
			mgr.ResetAll()
			if err := mgr.LastPersistError(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "state reset: %s\n", store.Path())
			return nil
		},
	})
	return cmd
}
