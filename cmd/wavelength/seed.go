package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/wavelength/internal/db"
)

func newSeedCommand(state *cliState) *cobra.Command {
	var withSampleJournal bool

	command := &cobra.Command{
		Use:   "seed",
		Short: "Load the reference fixtures into empty tables",
		Long: `Load layers, phases, curriculum and strategies from the embedded fixtures.
Tables that already contain rows are skipped, so seeding twice is harmless.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, closeDatabase, err := state.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			result, err := db.SeedReferenceData(database, state.logger)
			if err != nil {
				return fmt.Errorf("seed reference data: %w", err)
			}
			if withSampleJournal {
				journal, err := db.SeedSampleJournal(database, state.logger)
				if err != nil {
					return fmt.Errorf("seed sample journal: %w", err)
				}
				result.Journal = journal.Journal
			}

			printSeedResult(cmd, result)
			return nil
		},
	}
	command.Flags().BoolVar(&withSampleJournal, "with-sample-journal", false, "also load the sample journal entries")
	return command
}

func printSeedResult(cmd *cobra.Command, result db.SeedResult) {
	out := cmd.OutOrStdout()
	if result.Total() == 0 {
		fmt.Fprintln(out, color.New(color.Faint).Sprint("Nothing to seed, every table already has rows."))
		return
	}

	bold := color.New(color.Bold)
	rows := []struct {
		name  string
		count int
	}{
		{"layers", result.Layers},
		{"phases", result.Phases},
		{"curriculum", result.Curriculum},
		{"strategies", result.Strategies},
		{"journal", result.Journal},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%-12s %s\n", row.name, bold.Sprint(row.count))
	}
}
