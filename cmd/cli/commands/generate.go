package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/services"
)

const (
	viewShifts = "shifts"
	viewNurses = "nurses"

	formatTable = "table"
	formatYAML  = "yaml"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <year> <month>",
		Short: "Generate the shift schedule for a month",
		Long: `Generate the Morning/Afternoon/Night schedule for every day of a month.

Flags override the matching config values for this run only.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := parsePeriod(args[0], args[1])
			if err != nil {
				return err
			}

			view, _ := cmd.Flags().GetString("view")
			if view != viewShifts && view != viewNurses {
				return fmt.Errorf("view must be %q or %q, got: %s", viewShifts, viewNurses, view)
			}
			format, _ := cmd.Flags().GetString("format")
			if format != formatTable && format != formatYAML {
				return fmt.Errorf("format must be %q or %q, got: %s", formatTable, formatYAML, format)
			}
			noColor, _ := cmd.Flags().GetBool("no-color")

			opts, err := generateOptionsFromFlags(cmd)
			if err != nil {
				return err
			}
			opts.Period = period

			app.Logger.Info("generate command",
				zap.String("period", period.String()),
				zap.String("view", view),
				zap.String("format", format))

			result, err := services.GenerateSchedule(app.Ctx, app.NurseClient, app.Cfg, app.Logger, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatYAML {
				return writeYAML(out, result, view)
			}

			if view == viewNurses {
				renderNurseView(out, result, !noColor)
			} else {
				renderShiftView(out, result, !noColor)
			}
			renderSummary(out, result, !noColor)
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().String("view", viewShifts, "Table layout: shifts (day by shift) or nurses (nurse by day)")
	cmd.Flags().String("format", formatTable, "Output format: table or yaml")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().String("tie-break", "", "Candidate ordering: rosterOrder, leastLoaded or random")
	cmd.Flags().String("preference-model", "", "Preference model: dayShift or singleShift")
	cmd.Flags().Int("target-size", 0, "Nurses per shift")
	cmd.Flags().Bool("backfill", false, "Top up under-staffed shifts after the main pass")
	cmd.Flags().Int("max-shifts-per-day", 0, "Cap on shifts per nurse per day in the main pass (0 = no cap)")
	cmd.Flags().Int64("seed", 0, "Seed for the random tie-break (0 = time based)")

	return cmd
}

// generateOptionsFromFlags returns options carrying only the flags set on the command line
func generateOptionsFromFlags(cmd *cobra.Command) (services.GenerateScheduleOptions, error) {
	var opts services.GenerateScheduleOptions
	flags := cmd.Flags()

	if flags.Changed("tie-break") {
		value, err := flags.GetString("tie-break")
		if err != nil {
			return opts, err
		}
		opts.TieBreak = &value
	}
	if flags.Changed("preference-model") {
		value, err := flags.GetString("preference-model")
		if err != nil {
			return opts, err
		}
		opts.PreferenceModel = &value
	}
	if flags.Changed("target-size") {
		value, err := flags.GetInt("target-size")
		if err != nil {
			return opts, err
		}
		if value < 1 {
			return opts, fmt.Errorf("target-size must be at least 1, got: %d", value)
		}
		opts.TargetSize = &value
	}
	if flags.Changed("backfill") {
		value, err := flags.GetBool("backfill")
		if err != nil {
			return opts, err
		}
		opts.Backfill = &value
	}
	if flags.Changed("max-shifts-per-day") {
		value, err := flags.GetInt("max-shifts-per-day")
		if err != nil {
			return opts, err
		}
		opts.MaxShiftsPerDay = &value
	}
	if flags.Changed("seed") {
		value, err := flags.GetInt64("seed")
		if err != nil {
			return opts, err
		}
		opts.Seed = &value
	}

	return opts, nil
}
