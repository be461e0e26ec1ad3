package allocator

import "fmt"

// RosterCheck reports assigned nurses who are not on the roster
type RosterCheck struct{}

func (c *RosterCheck) Name() string {
	return "Roster"
}

func (c *RosterCheck) ValidateShiftTable(state *ScheduleState) []ShiftValidationError {
	var errors []ShiftValidationError

	for _, shifts := range state.Table.days {
		for _, assignment := range shifts {
			for _, nurse := range assignment.Nurses {
				if state.IsRostered(nurse) {
					continue
				}
				errors = append(errors, ShiftValidationError{
					Day:         assignment.Day,
					Shift:       assignment.Shift,
					CheckName:   c.Name(),
					Description: fmt.Sprintf("Nurse %s is not on the roster", nurse),
				})
			}
		}
	}

	return errors
}
