package allocator

import "fmt"

// TargetCapCheck reports shifts holding more nurses than the target size,
// or holding the same nurse twice
type TargetCapCheck struct{}

func (c *TargetCapCheck) Name() string {
	return "TargetCap"
}

func (c *TargetCapCheck) ValidateShiftTable(state *ScheduleState) []ShiftValidationError {
	var errors []ShiftValidationError

	target := state.Table.TargetSize()
	for _, shifts := range state.Table.days {
		for _, assignment := range shifts {
			if assignment.Size() > target {
				errors = append(errors, ShiftValidationError{
					Day:         assignment.Day,
					Shift:       assignment.Shift,
					CheckName:   c.Name(),
					Description: fmt.Sprintf("Shift is overfilled: has %d nurses but target is %d", assignment.Size(), target),
				})
			}

			seen := make(map[string]bool, assignment.Size())
			for _, nurse := range assignment.Nurses {
				if seen[nurse] {
					errors = append(errors, ShiftValidationError{
						Day:         assignment.Day,
						Shift:       assignment.Shift,
						CheckName:   c.Name(),
						Description: fmt.Sprintf("Nurse %s is assigned more than once", nurse),
					})
				}
				seen[nurse] = true
			}
		}
	}

	return errors
}
