package allocator

import "fmt"

// AvailabilityCheck reports nurses assigned on a day they declared unavailable
type AvailabilityCheck struct{}

func (c *AvailabilityCheck) Name() string {
	return "Availability"
}

func (c *AvailabilityCheck) ValidateShiftTable(state *ScheduleState) []ShiftValidationError {
	var errors []ShiftValidationError

	for _, shifts := range state.Table.days {
		for _, assignment := range shifts {
			for _, nurse := range assignment.Nurses {
				if state.IsAvailable(nurse, assignment.Day) {
					continue
				}
				errors = append(errors, ShiftValidationError{
					Day:         assignment.Day,
					Shift:       assignment.Shift,
					CheckName:   c.Name(),
					Description: fmt.Sprintf("Nurse %s is assigned but unavailable on day %d", nurse, assignment.Day),
				})
			}
		}
	}

	return errors
}
