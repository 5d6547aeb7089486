package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/services"
)

func newOverviewCommand(state *cliState) *cobra.Command {
	var userID uint
	var start string
	var end string

	command := &cobra.Command{
		Use:   "overview",
		Short: "Print the analytics overview of one user",
		Long: `Print the analytics overview of one user over a window.

The window ends at --end (default now) and starts at --start (default 30 days
before the end). Both accept RFC 3339 timestamps or YYYY-MM-DD dates.

EXAMPLES:

  wavelength overview --user-id 1
  wavelength overview --user-id 1 --start 2025-09-01 --end 2025-09-30`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := services.AnalyticsQuery{UserID: userID}
			var err error
			if query.Start, err = parseWindowFlag("start", start); err != nil {
				return err
			}
			if query.End, err = parseWindowFlag("end", end); err != nil {
				return err
			}

			database, closeDatabase, err := state.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			registry := services.NewRegistry(db.NewRepositories(database), nil, nil, state.logger)
			overview, err := registry.Analytics.Overview(cmd.Context(), query)
			if errors.Is(err, services.ErrNoJournalEntries) {
				fmt.Fprintln(cmd.OutOrStdout(), color.New(color.Faint).Sprintf("No journal entries for user %d in this window.", userID))
				return nil
			}
			if err != nil {
				return err
			}

			printOverview(cmd.OutOrStdout(), userID, overview)
			return nil
		},
	}
	command.Flags().UintVar(&userID, "user-id", 0, "journal owner id")
	command.Flags().StringVar(&start, "start", "", "window start")
	command.Flags().StringVar(&end, "end", "", "window end")
	_ = command.MarkFlagRequired("user-id")
	return command
}

func parseWindowFlag(name string, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := services.ParseTimestamp(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &parsed, nil
}

func printOverview(out io.Writer, userID uint, overview services.AnalyticsOverview) {
	title := color.New(color.Bold, color.FgCyan)
	faint := color.New(color.Faint)

	fmt.Fprintln(out, title.Sprintf("Overview for user %d", userID))
	fmt.Fprintf(out, "  entries            %d\n", overview.TotalEntries)
	fmt.Fprintf(out, "  current streak     %d days\n", overview.CurrentStreak)
	fmt.Fprintf(out, "  longest streak     %d days\n", overview.LongestStreak)
	fmt.Fprintf(out, "  avg per day        %.2f\n", overview.AvgFrequency)
	fmt.Fprintf(out, "  medicinal ratio    %.1f%%  %s\n", overview.MedicinalRatio, trendLabel(overview.MedicinalTrend))
	fmt.Fprintf(out, "  unique emotions    %d\n", overview.UniqueEmotions)
	fmt.Fprintf(out, "  strategies used    %d\n", overview.StrategiesUsed)
	fmt.Fprintf(out, "  with secondary     %.1f%%\n", overview.SecondaryEmotionsPct)
	fmt.Fprintf(out, "  dominant layer     %s\n", optionalID(overview.DominantLayerID))
	fmt.Fprintf(out, "  dominant phase     %s\n", optionalID(overview.DominantPhaseID))
	if overview.LastCheckIn != nil {
		fmt.Fprintf(out, "  last check-in      %s\n", faint.Sprint(overview.LastCheckIn.Format("2006-01-02 15:04 MST")))
	}
}

func trendLabel(trend float64) string {
	switch {
	case trend > 0:
		return color.New(color.FgGreen).Sprintf("+%.1f", trend)
	case trend < 0:
		return color.New(color.FgRed).Sprintf("%.1f", trend)
	default:
		return color.New(color.Faint).Sprint("±0")
	}
}

func optionalID(id *uint) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(*id)
}
