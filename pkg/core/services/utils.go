package services

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/teambition/rrule-go"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/internal/config"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/allocator"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

// NurseClient defines the roster operations needed by the services
type NurseClient interface {
	ListNurses() ([]model.Nurse, error)
}

// expandRRuleDays returns the days of the period on which the recurrence rule fires
func expandRRuleDays(ruleStr string, period model.Period) ([]int, error) {
	rule, err := rrule.StrToRRule(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule %q: %w", ruleStr, err)
	}

	// Anchor the rule at the start of the period so every occurrence falls on a day boundary
	rule.DTStart(period.Start())

	// The whole last day is covered, so rules firing later in the day still match it
	end := period.EndExclusive()
	occurrences := rule.Between(period.Start(), end, true)
	days := make([]int, 0, len(occurrences))
	for _, occurrence := range occurrences {
		if occurrence.Before(end) {
			days = append(days, occurrence.Day())
		}
	}
	return days, nil
}

// buildUnavailability merges explicit days, per-nurse recurrence rules and
// ward-wide blackouts into the allocator's nurse -> days map.
// Days are sorted and deduplicated; nurses with no unavailable days are absent.
func buildUnavailability(nurses []model.Nurse, blackouts []config.Blackout, period model.Period) (map[string][]int, error) {
	days := make(map[string][]int, len(nurses))

	for _, nurse := range nurses {
		for _, day := range nurse.UnavailableDays {
			if period.Contains(day) {
				days[nurse.ID] = append(days[nurse.ID], day)
			}
		}

		for _, ruleStr := range nurse.UnavailableRRules {
			ruleDays, err := expandRRuleDays(ruleStr, period)
			if err != nil {
				return nil, fmt.Errorf("invalid unavailability for nurse %s: %w", nurse.ID, err)
			}
			days[nurse.ID] = append(days[nurse.ID], ruleDays...)
		}
	}

	allIDs := nurseIDs(nurses)
	for i, blackout := range blackouts {
		blackoutDays, err := expandRRuleDays(blackout.RRule, period)
		if err != nil {
			return nil, fmt.Errorf("invalid blackout %d: %w", i, err)
		}

		affected := blackout.Nurses
		if len(affected) == 0 {
			affected = allIDs
		}
		for _, id := range affected {
			days[id] = append(days[id], blackoutDays...)
		}
	}

	for id, nurseDays := range days {
		nurseDays = lo.Uniq(nurseDays)
		slices.Sort(nurseDays)
		if len(nurseDays) == 0 {
			delete(days, id)
			continue
		}
		days[id] = nurseDays
	}

	return days, nil
}

// buildPreferenceModel converts roster preferences into the named model
func buildPreferenceModel(name string, nurses []model.Nurse) (allocator.PreferenceModel, error) {
	modelName, err := allocator.ParsePreferenceModelName(name)
	if err != nil {
		return nil, err
	}

	switch modelName {
	case allocator.PreferenceModelSingleShift:
		prefs := make(map[string]model.ShiftKind)
		for _, nurse := range nurses {
			if nurse.PreferredShift != nil {
				prefs[nurse.ID] = *nurse.PreferredShift
			}
		}
		return allocator.NewSingleShiftPreferences(prefs), nil
	default:
		prefs := make(map[string][]model.DayShift)
		for _, nurse := range nurses {
			if len(nurse.Preferences) > 0 {
				prefs[nurse.ID] = nurse.Preferences
			}
		}
		return allocator.NewDayShiftPreferences(prefs), nil
	}
}

// nurseIDs returns the IDs of the nurses in roster order
func nurseIDs(nurses []model.Nurse) []string {
	return lo.Map(nurses, func(nurse model.Nurse, _ int) string {
		return nurse.ID
	})
}
