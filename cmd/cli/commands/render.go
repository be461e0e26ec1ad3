package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// palette holds the color codes in use; every field is empty when color is off
type palette struct {
	reset, green, red, yellow, dim string
}

func newPalette(useColor bool) palette {
	if !useColor {
		return palette{}
	}
	return palette{reset: colorReset, green: colorGreen, red: colorRed, yellow: colorYellow, dim: colorDim}
}

// displayNames maps nurse ID -> display name for the result's roster
func displayNames(result *services.GenerateScheduleResult) map[string]string {
	names := make(map[string]string, len(result.Nurses))
	for _, nurse := range result.Nurses {
		name := nurse.DisplayName
		if name == "" {
			name = nurse.ID
		}
		names[nurse.ID] = name
	}
	return names
}

func namesFor(ids []string, names map[string]string) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := names[id]; ok {
			result[i] = name
		} else {
			result[i] = id
		}
	}
	return result
}

// renderShiftView prints the day-then-shift table; under-staffed cells are highlighted
func renderShiftView(w io.Writer, result *services.GenerateScheduleResult, useColor bool) {
	c := newPalette(useColor)
	table := result.Outcome.Table
	names := displayNames(result)

	fmt.Fprintf(w, "\nSchedule for %s (%d days, %d nurses per shift)\n\n", result.Period, table.DayCount(), table.TargetSize())

	// Calculate column widths
	cellWidth := len("Afternoon")
	for _, assignment := range table.Assignments() {
		cell := strings.Join(namesFor(assignment.Nurses, names), ", ")
		if len(cell) > cellWidth {
			cellWidth = len(cell)
		}
	}
	cellWidth += 2
	dateWidth := 14

	// Print header
	fmt.Fprintf(w, "%-*s", dateWidth, "Date")
	for _, shift := range model.ShiftKinds() {
		fmt.Fprintf(w, "%-*s", cellWidth, shift)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", dateWidth+cellWidth*len(model.ShiftKinds())))

	// Print each day
	for _, day := range table.Days() {
		fmt.Fprintf(w, "%-*s", dateWidth, result.Period.Date(day.Day).Format("Mon 02 Jan"))
		for _, assignment := range day.Assignments {
			cell := strings.Join(namesFor(assignment.Nurses, names), ", ")
			switch {
			case assignment.Size() == 0:
				fmt.Fprintf(w, "%s%-*s%s", c.red, cellWidth, "(none)", c.reset)
			case assignment.Size() < table.TargetSize():
				fmt.Fprintf(w, "%s%-*s%s", c.yellow, cellWidth, cell, c.reset)
			default:
				fmt.Fprintf(w, "%-*s", cellWidth, cell)
			}
		}
		fmt.Fprintln(w)
	}
}

// shiftLetters abbreviates a day's shifts as e.g. "MN" for Morning and Night
func shiftLetters(shifts []model.ShiftKind) string {
	var b strings.Builder
	for _, shift := range shifts {
		b.WriteByte(shift.String()[0])
	}
	return b.String()
}

// renderNurseView prints the nurse-then-day grid: one row per nurse, one column per day
func renderNurseView(w io.Writer, result *services.GenerateScheduleResult, useColor bool) {
	c := newPalette(useColor)
	table := result.Outcome.Table
	byNurse := table.ByNurse()

	fmt.Fprintf(w, "\nSchedule for %s by nurse (M = Morning, A = Afternoon, N = Night, x = unavailable)\n\n", result.Period)

	nameWidth := 12
	for _, nurse := range result.Nurses {
		if len(nurse.DisplayName) > nameWidth {
			nameWidth = len(nurse.DisplayName)
		}
	}
	nameWidth += 2
	dayWidth := 4

	// Print header
	fmt.Fprintf(w, "%-*s%-7s", nameWidth, "Nurse", "Total")
	for day := 1; day <= table.DayCount(); day++ {
		fmt.Fprintf(w, "%-*d", dayWidth, day)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", nameWidth+7+dayWidth*table.DayCount()))

	for _, nurse := range result.Nurses {
		unavailable := make(map[int]bool)
		for _, day := range result.Unavailability[nurse.ID] {
			unavailable[day] = true
		}

		name := nurse.DisplayName
		if name == "" {
			name = nurse.ID
		}
		fmt.Fprintf(w, "%-*s%-7d", nameWidth, name, result.Outcome.Loads.Get(nurse.ID))

		for day := 1; day <= table.DayCount(); day++ {
			shifts := byNurse[nurse.ID][day]
			switch {
			case unavailable[day]:
				fmt.Fprintf(w, "%s%-*s%s", c.dim, dayWidth, "x", c.reset)
			case len(shifts) == 0:
				fmt.Fprintf(w, "%-*s", dayWidth, ".")
			default:
				fmt.Fprintf(w, "%s%-*s%s", c.green, dayWidth, shiftLetters(shifts), c.reset)
			}
		}
		fmt.Fprintln(w)
	}
}

// renderSummary prints the under-staffed shifts, check failures and load statistics
func renderSummary(w io.Writer, result *services.GenerateScheduleResult, useColor bool) {
	c := newPalette(useColor)
	outcome := result.Outcome

	fmt.Fprintln(w)
	if len(outcome.Understaffed) == 0 {
		fmt.Fprintf(w, "%s✓ Every shift has %d nurses%s\n", c.green, outcome.Table.TargetSize(), c.reset)
	} else {
		fmt.Fprintf(w, "%s⚠️  %d shifts are understaffed:%s\n", c.yellow, len(outcome.Understaffed), c.reset)
		for _, understaffed := range outcome.Understaffed {
			assignment, _ := outcome.Table.Assignment(understaffed.Day, understaffed.Shift)
			fmt.Fprintf(w, "  ✗ %s %-9s %d/%d\n",
				result.Period.Date(understaffed.Day).Format("Mon 02 Jan"),
				understaffed.Shift,
				assignment.Size(),
				outcome.Table.TargetSize())
		}
	}

	// Coverage failures are already listed above
	var otherErrors []string
	for _, validationErr := range outcome.ValidationErrors {
		if validationErr.CheckName != "Coverage" {
			otherErrors = append(otherErrors, validationErr.String())
		}
	}
	if len(otherErrors) > 0 {
		fmt.Fprintf(w, "\n%sValidation errors:%s\n", c.red, c.reset)
		for _, line := range otherErrors {
			fmt.Fprintf(w, "  ✗ %s\n", line)
		}
	}

	summary := outcome.Summary
	fmt.Fprintf(w, "\nLoad: %d shifts, mean %.2f, std dev %.2f, min %d, max %d (spread %d)\n",
		summary.Total, summary.Mean, summary.StdDev, summary.Min, summary.Max, summary.Spread)
	if outcome.BackfilledSlots > 0 {
		fmt.Fprintf(w, "Backfilled %d places\n", outcome.BackfilledSlots)
	}
	fmt.Fprintf(w, "%sRun %s (tie-break %s, seed %d, preferences %s)%s\n",
		c.dim, outcome.RunID, outcome.Policy.TieBreak, outcome.Policy.Seed, result.PreferenceModel, c.reset)
}

type scheduleReport struct {
	RunID           string        `yaml:"runId"`
	Period          string        `yaml:"period"`
	PreferenceModel string        `yaml:"preferenceModel"`
	TieBreak        string        `yaml:"tieBreak"`
	TargetSize      int           `yaml:"targetSize"`
	Seed            int64         `yaml:"seed"`
	Days            []dayReport   `yaml:"days,omitempty"`
	Nurses          []nurseReport `yaml:"nurses,omitempty"`
	Understaffed    []gapReport   `yaml:"understaffed"`
	Summary         loadReport    `yaml:"summary"`
	Success         bool          `yaml:"success"`
}

type dayReport struct {
	Day       int      `yaml:"day"`
	Date      string   `yaml:"date"`
	Morning   []string `yaml:"morning"`
	Afternoon []string `yaml:"afternoon"`
	Night     []string `yaml:"night"`
}

type nurseReport struct {
	ID     string           `yaml:"id"`
	Name   string           `yaml:"name"`
	Total  int              `yaml:"total"`
	Shifts []nurseDayReport `yaml:"shifts"`
}

type nurseDayReport struct {
	Day    int               `yaml:"day"`
	Shifts []model.ShiftKind `yaml:"shifts,flow"`
}

type gapReport struct {
	Day      int             `yaml:"day"`
	Shift    model.ShiftKind `yaml:"shift"`
	Assigned int             `yaml:"assigned"`
}

type loadReport struct {
	Total  int     `yaml:"total"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stdDev"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
	Spread int     `yaml:"spread"`
}

// buildReport converts a result into its YAML shape for the chosen view
func buildReport(result *services.GenerateScheduleResult, view string) scheduleReport {
	outcome := result.Outcome
	table := outcome.Table

	report := scheduleReport{
		RunID:           outcome.RunID,
		Period:          result.Period.String(),
		PreferenceModel: result.PreferenceModel,
		TieBreak:        string(outcome.Policy.TieBreak),
		TargetSize:      table.TargetSize(),
		Seed:            outcome.Policy.Seed,
		Understaffed:    []gapReport{},
		Summary: loadReport{
			Total:  outcome.Summary.Total,
			Mean:   outcome.Summary.Mean,
			StdDev: outcome.Summary.StdDev,
			Min:    outcome.Summary.Min,
			Max:    outcome.Summary.Max,
			Spread: outcome.Summary.Spread,
		},
		Success: outcome.Success,
	}

	for _, understaffed := range outcome.Understaffed {
		assignment, _ := table.Assignment(understaffed.Day, understaffed.Shift)
		report.Understaffed = append(report.Understaffed, gapReport{
			Day:      understaffed.Day,
			Shift:    understaffed.Shift,
			Assigned: assignment.Size(),
		})
	}

	if view == viewNurses {
		byNurse := table.ByNurse()
		names := displayNames(result)
		for _, nurse := range result.Nurses {
			entry := nurseReport{
				ID:     nurse.ID,
				Name:   names[nurse.ID],
				Total:  outcome.Loads.Get(nurse.ID),
				Shifts: []nurseDayReport{},
			}
			days := make([]int, 0, len(byNurse[nurse.ID]))
			for day := range byNurse[nurse.ID] {
				days = append(days, day)
			}
			sort.Ints(days)
			for _, day := range days {
				entry.Shifts = append(entry.Shifts, nurseDayReport{Day: day, Shifts: byNurse[nurse.ID][day]})
			}
			report.Nurses = append(report.Nurses, entry)
		}
		return report
	}

	for _, day := range table.Days() {
		entry := dayReport{Day: day.Day, Date: result.Period.Date(day.Day).Format("2006-01-02")}
		for _, assignment := range day.Assignments {
			switch assignment.Shift {
			case model.Morning:
				entry.Morning = assignment.Nurses
			case model.Afternoon:
				entry.Afternoon = assignment.Nurses
			case model.Night:
				entry.Night = assignment.Nurses
			}
		}
		report.Days = append(report.Days, entry)
	}
	return report
}

// writeYAML encodes the report for the chosen view
func writeYAML(w io.Writer, result *services.GenerateScheduleResult, view string) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(buildReport(result, view)); err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	return encoder.Close()
}
