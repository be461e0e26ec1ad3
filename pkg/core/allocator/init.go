package allocator

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// InitAllocation validates the config and builds an Allocator with an empty shift table.
//
// Normalisation:
//   - Duplicate nurse IDs collapse to their first occurrence; blank IDs are dropped
//   - Unavailability for nurses not on the roster is ignored
//   - Unavailable days outside the period are ignored
//   - A nil preference model means no nurse prefers anything
//
// Errors:
//   - ErrInvalidPeriod if the period is out of range
//   - ErrEmptyRoster if no nurses remain after normalisation
//   - ErrInvalidPolicy if the tie-break is unknown or the per-day cap is negative
func InitAllocation(config AllocationConfig) (*Allocator, error) {
	// Step 1: Validate the period
	if err := config.Period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}

	// Step 2: Normalise the roster
	nurses := lo.Uniq(lo.Filter(config.Nurses, func(nurse string, _ int) bool {
		return strings.TrimSpace(nurse) != ""
	}))
	if len(nurses) == 0 {
		return nil, ErrEmptyRoster
	}

	// Step 3: Normalise the policy
	policy, err := config.Policy.normalize()
	if err != nil {
		return nil, err
	}

	// Step 4: Build the day -> unavailable nurses lookup
	rostered := lo.SliceToMap(nurses, func(nurse string) (string, bool) {
		return nurse, true
	})
	unavailable := make(map[int]map[string]bool)
	for nurse, days := range config.Unavailability {
		if !rostered[nurse] {
			continue
		}
		for _, day := range days {
			if !config.Period.Contains(day) {
				continue
			}
			if unavailable[day] == nil {
				unavailable[day] = make(map[string]bool)
			}
			unavailable[day][nurse] = true
		}
	}

	preferences := config.Preferences
	if preferences == nil {
		preferences = NoPreferences{}
	}

	checks := config.Checks
	if checks == nil {
		checks = DefaultChecks()
	}

	// Every rostered nurse starts at zero so the outcome reports idle nurses too
	loads := make(LoadCounter, len(nurses))
	for _, nurse := range nurses {
		loads[nurse] = 0
	}

	state := &ScheduleState{
		Table:       newShiftTable(config.Period, policy.TargetSize),
		Nurses:      nurses,
		Unavailable: unavailable,
		Loads:       loads,
		dailyShifts: make(map[int]map[string]int),
	}

	return &Allocator{
		policy:      policy,
		preferences: preferences,
		checks:      checks,
		state:       state,
	}, nil
}
