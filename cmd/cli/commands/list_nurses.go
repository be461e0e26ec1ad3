package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

// ListNursesCmd creates the listNurses command
func ListNursesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listNurses",
		Short: "List all nurses from the roster file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nurses, err := app.NurseClient.ListNurses()
			if err != nil {
				return fmt.Errorf("failed to list nurses: %w", err)
			}

			app.Logger.Info("Nurses fetched successfully", zap.Int("count", len(nurses)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nFound %d nurses in %s:\n\n", len(nurses), app.NurseClient.Path())
			for _, nurse := range nurses {
				fmt.Fprintln(out, describeNurse(nurse))
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}

// describeNurse renders one roster entry as a single line
func describeNurse(nurse model.Nurse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- %s (%s)", nurse.DisplayName, nurse.ID)

	if nurse.FullName() != nurse.DisplayName && nurse.FullName() != nurse.ID {
		fmt.Fprintf(&b, " [%s]", nurse.FullName())
	}
	if len(nurse.UnavailableDays) > 0 {
		days := lo.Map(nurse.UnavailableDays, func(day int, _ int) string { return strconv.Itoa(day) })
		fmt.Fprintf(&b, " - unavailable days: %s", strings.Join(days, ","))
	}
	if len(nurse.UnavailableRRules) > 0 {
		fmt.Fprintf(&b, " - recurring: %s", strings.Join(nurse.UnavailableRRules, "; "))
	}
	if nurse.PreferredShift != nil {
		fmt.Fprintf(&b, " - prefers %s", *nurse.PreferredShift)
	}
	if len(nurse.Preferences) > 0 {
		prefs := lo.Map(nurse.Preferences, func(pref model.DayShift, _ int) string {
			return fmt.Sprintf("%d %s", pref.Day, pref.Shift)
		})
		fmt.Fprintf(&b, " - preferences: %s", strings.Join(prefs, ", "))
	}

	return b.String()
}
