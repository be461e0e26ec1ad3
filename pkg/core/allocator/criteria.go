package allocator

import (
	"fmt"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

// ShiftValidationError represents a validation error for a specific shift
type ShiftValidationError struct {
	Day         int
	Shift       model.ShiftKind
	CheckName   string
	Description string
}

// String renders a validation error as "day 3 Morning [Coverage]: ..."
func (e ShiftValidationError) String() string {
	return fmt.Sprintf("day %d %s [%s]: %s", e.Day, e.Shift, e.CheckName, e.Description)
}

// Check inspects a finished shift table for rule violations
type Check interface {
	// Name returns a human-readable identifier for this check
	Name() string

	// ValidateShiftTable returns a validation error per offending shift (empty if all valid)
	ValidateShiftTable(state *ScheduleState) []ShiftValidationError
}

// DefaultChecks returns the checks run when the config does not supply any
func DefaultChecks() []Check {
	return []Check{
		&CoverageCheck{},
		&AvailabilityCheck{},
		&TargetCapCheck{},
		&RosterCheck{},
	}
}

// ValidateShiftTable runs every check against the state.
// An empty slice indicates the table is valid.
func ValidateShiftTable(state *ScheduleState, checks []Check) []ShiftValidationError {
	var errors []ShiftValidationError

	for _, check := range checks {
		errors = append(errors, check.ValidateShiftTable(state)...)
	}

	return errors
}
