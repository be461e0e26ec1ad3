package allocator

import "fmt"

// CoverageCheck reports every shift holding fewer nurses than the target size.
// A short shift is a valid outcome when the eligible pool ran out; this check
// surfaces it so callers can act on it.
type CoverageCheck struct{}

func (c *CoverageCheck) Name() string {
	return "Coverage"
}

func (c *CoverageCheck) ValidateShiftTable(state *ScheduleState) []ShiftValidationError {
	var errors []ShiftValidationError

	target := state.Table.TargetSize()
	for _, shifts := range state.Table.days {
		for _, assignment := range shifts {
			if assignment.Size() >= target {
				continue
			}
			errors = append(errors, ShiftValidationError{
				Day:         assignment.Day,
				Shift:       assignment.Shift,
				CheckName:   c.Name(),
				Description: fmt.Sprintf("Shift is understaffed: has %d nurses but target is %d (%d available)", assignment.Size(), target, len(state.AvailableOn(assignment.Day))),
			})
		}
	}

	return errors
}
