package main

import (
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store the sample boards if the database has none",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.migrate(); err != nil {
			return err
		}
		if err := a.kanban.Load(cmd.Context()); err != nil {
			return err
		}
		seeded, err := a.kanban.Seed(cmd.Context())
		if err != nil {
			return err
		}
		if !seeded {
			a.log.Info("Boards already exist, nothing seeded")
		}
		return nil
	},
}
