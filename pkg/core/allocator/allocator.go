package allocator

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

// Allocator fills a shift table for one period according to a policy
type Allocator struct {
	policy      AllocationPolicy
	preferences PreferenceModel
	checks      []Check
	state       *ScheduleState
}

// AllocationConfig contains the inputs for a single allocation run
type AllocationConfig struct {
	// Nurses is the roster in priority order
	Nurses []string

	// Unavailability maps nurse ID -> days of the month they cannot work
	Unavailability map[string][]int

	// Preferences is the preference model (nil means no preferences)
	Preferences PreferenceModel

	// Period is the month being scheduled
	Period model.Period

	// Policy controls tie-breaking, shift size and backfill
	Policy AllocationPolicy

	// Checks run against the finished table (nil means DefaultChecks)
	Checks []Check
}

// AllocationOutcome represents the result of an allocation run
type AllocationOutcome struct {
	// RunID identifies this run in logs
	RunID string

	// Table is the completed shift table
	Table *ShiftTable

	// Nurses is the normalised roster the run used
	Nurses []string

	// Loads is the final shift count per rostered nurse
	Loads LoadCounter

	// Understaffed lists every shift with fewer than the target number of nurses
	Understaffed []ShiftValidationError

	// ValidationErrors contains every check failure on the final table
	ValidationErrors []ShiftValidationError

	// Success is true when no check failed
	Success bool

	// Summary describes the spread of loads across the roster
	Summary LoadSummary

	// Policy is the normalised policy the run used
	Policy AllocationPolicy

	// BackfilledSlots is the number of places filled by the backfill pass
	BackfilledSlots int
}

// Allocate runs the allocation to produce a complete shift table.
// Days are processed in ascending order and shifts within a day in Morning,
// Afternoon, Night order; loads accumulate in that order and feed later tie-breaks.
func Allocate(config AllocationConfig) (*AllocationOutcome, error) {

	// Initialise allocator
	allocator, err := InitAllocation(config)
	if err != nil {
		return nil, err
	}

	// Primary pass
	allocator.allocateAll()

	// Optional backfill pass
	backfilled := 0
	if allocator.policy.Backfill {
		backfilled = allocator.Backfill()
	}

	// Build outcome report
	outcome := allocator.buildOutcome()
	outcome.BackfilledSlots = backfilled
	return outcome, nil
}

// allocateAll runs the primary pass over every day and shift
func (a *Allocator) allocateAll() {
	for day := 1; day <= a.state.Table.DayCount(); day++ {
		// Availability is evaluated once per day and shared by all three shifts
		available := a.state.AvailableOn(day)

		for _, shift := range model.ShiftKinds() {
			a.allocateShift(day, shift, available)
		}
	}
}

// allocateShift selects up to TargetSize nurses for one shift.
// Preferred nurses are taken first, then the rest of the available pool.
func (a *Allocator) allocateShift(day int, shift model.ShiftKind, available []string) {
	assignment := a.state.Table.assignment(day, shift)

	eligible := available
	if a.policy.MaxShiftsPerDay > 0 {
		eligible = lo.Filter(available, func(nurse string, _ int) bool {
			return a.state.ShiftsOnDay(nurse, day) < a.policy.MaxShiftsPerDay
		})
	}

	preferred, others := lo.FilterReject(eligible, func(nurse string, _ int) bool {
		return a.preferences.Prefers(nurse, day, shift)
	})

	// Both pools are ranked against the loads as they stand before this shift
	selected := takeUpTo(a.rank(preferred), a.policy.TargetSize)
	if missing := a.policy.TargetSize - len(selected); missing > 0 {
		selected = append(selected, takeUpTo(a.rank(others), missing)...)
	}

	for _, nurse := range selected {
		a.state.assign(assignment, nurse)
	}
}

// Backfill revisits every shift below the target size and tops it up from the
// day's available nurses not already on that shift. Preferences and the per-day
// cap are ignored. Returns the number of places filled.
// A second call fills nothing: every short shift has already used its whole pool.
func (a *Allocator) Backfill() int {
	filled := 0

	for day := 1; day <= a.state.Table.DayCount(); day++ {
		available := a.state.AvailableOn(day)

		for _, shift := range model.ShiftKinds() {
			assignment := a.state.Table.assignment(day, shift)
			missing := a.policy.TargetSize - assignment.Size()
			if missing <= 0 {
				continue
			}

			pool := lo.Reject(available, func(nurse string, _ int) bool {
				return assignment.Has(nurse)
			})
			if len(pool) == 0 {
				continue
			}

			for _, nurse := range takeUpTo(a.rank(pool), missing) {
				a.state.assign(assignment, nurse)
				filled++
			}
		}
	}

	return filled
}

func (a *Allocator) rank(candidates []string) []string {
	return RankCandidates(candidates, a.state.Loads, a.policy.TieBreak, a.policy.Rand)
}

// buildOutcome creates the final allocation outcome report
func (a *Allocator) buildOutcome() *AllocationOutcome {
	outcome := &AllocationOutcome{
		RunID:            uuid.NewString(),
		Table:            a.state.Table,
		Nurses:           a.state.Nurses,
		Loads:            a.state.Loads.Clone(),
		Understaffed:     []ShiftValidationError{},
		ValidationErrors: []ShiftValidationError{},
		Policy:           a.policy,
	}

	// Under-staffing is reported regardless of which checks are configured
	outcome.Understaffed = append(outcome.Understaffed, (&CoverageCheck{}).ValidateShiftTable(a.state)...)

	// Run validation
	outcome.ValidationErrors = append(outcome.ValidationErrors, ValidateShiftTable(a.state, a.checks)...)

	outcome.Success = len(outcome.ValidationErrors) == 0
	outcome.Summary = SummariseLoads(a.state.Nurses, a.state.Loads)

	return outcome
}

func takeUpTo(nurses []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(nurses) <= n {
		return nurses
	}
	return nurses[:n]
}
