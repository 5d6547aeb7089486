package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/wavelength/internal/db"
)

func newMigrateCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and print their status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, closeDatabase, err := state.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			states, err := db.MigrationStatus(database)
			if err != nil {
				return fmt.Errorf("read migration status: %w", err)
			}

			out := cmd.OutOrStdout()
			applied := color.New(color.FgGreen)
			pending := color.New(color.FgYellow)
			for _, migration := range states {
				status := applied.Sprint("applied")
				if !migration.Applied {
					status = pending.Sprint("pending")
				}
				fmt.Fprintf(out, "%s  %-32s %s\n", migration.Version, migration.Name, status)
			}
			return nil
		},
	}
}
