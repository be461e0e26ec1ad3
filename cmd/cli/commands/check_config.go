package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/services"
)

// CheckConfigCmd creates the checkConfig command
func CheckConfigCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkConfig",
		Short: "Validate the config and roster file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.CheckConfig(app.NurseClient, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Config is valid\n\n")
			fmt.Fprintf(out, "Roster file:       %s\n", app.Cfg.RosterFile)
			fmt.Fprintf(out, "Nurses:            %d\n", result.NurseCount)
			fmt.Fprintf(out, "With preferences:  %d\n", result.NursesWithPreferences)
			fmt.Fprintf(out, "With recurring:    %d\n", result.NursesWithRRules)
			fmt.Fprintf(out, "Blackouts:         %d\n", result.BlackoutCount)
			fmt.Fprintf(out, "Policy:            tie-break %s, %d per shift, preferences %s\n",
				app.Cfg.TieBreak, app.Cfg.TargetSize, app.Cfg.PreferenceModel)

			if len(result.UnknownBlackoutNurses) > 0 {
				fmt.Fprintf(out, "\n⚠️  Blackouts name %d nurses not on the roster:\n", len(result.UnknownBlackoutNurses))
				for _, id := range result.UnknownBlackoutNurses {
					fmt.Fprintf(out, "  ✗ %s\n", id)
				}
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
