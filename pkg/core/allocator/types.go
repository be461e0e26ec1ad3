package allocator

import (
	"slices"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

// Assignment is the set of nurses allocated to one shift on one day
type Assignment struct {
	Day   int
	Shift model.ShiftKind

	// Nurses in the order they were allocated
	Nurses []string
}

// Size returns the number of nurses allocated
func (a Assignment) Size() int {
	return len(a.Nurses)
}

// Has returns true if the nurse is allocated to this assignment
func (a Assignment) Has(nurse string) bool {
	return slices.Contains(a.Nurses, nurse)
}

func (a Assignment) clone() Assignment {
	return Assignment{Day: a.Day, Shift: a.Shift, Nurses: slices.Clone(a.Nurses)}
}

// DaySchedule holds the assignments for a single day in shift order
type DaySchedule struct {
	Day         int
	Assignments []Assignment
}

// ShiftTable is the complete schedule for a period: one Assignment per day per shift.
// Accessors return copies, so a table handed back by Allocate cannot be modified by callers.
type ShiftTable struct {
	period     model.Period
	targetSize int

	// days[d-1][shift] is the assignment for day d
	days [][]*Assignment
}

func newShiftTable(period model.Period, targetSize int) *ShiftTable {
	daysInMonth := period.DaysInMonth()
	days := make([][]*Assignment, daysInMonth)
	for i := range days {
		shifts := model.ShiftKinds()
		days[i] = make([]*Assignment, len(shifts))
		for _, shift := range shifts {
			days[i][shift] = &Assignment{Day: i + 1, Shift: shift, Nurses: []string{}}
		}
	}
	return &ShiftTable{period: period, targetSize: targetSize, days: days}
}

// assignment returns the mutable assignment for allocator-internal use
func (t *ShiftTable) assignment(day int, shift model.ShiftKind) *Assignment {
	return t.days[day-1][shift]
}

// Period returns the month this table covers
func (t *ShiftTable) Period() model.Period {
	return t.period
}

// TargetSize returns the number of nurses each shift was meant to receive
func (t *ShiftTable) TargetSize() int {
	return t.targetSize
}

// DayCount returns the number of days in the table
func (t *ShiftTable) DayCount() int {
	return len(t.days)
}

// Assignment returns a copy of the assignment for the given day and shift.
// The second return value is false if the day or shift is out of range.
func (t *ShiftTable) Assignment(day int, shift model.ShiftKind) (Assignment, bool) {
	if day < 1 || day > len(t.days) || !shift.IsValid() {
		return Assignment{}, false
	}
	return t.days[day-1][shift].clone(), true
}

// Days returns the table in day-then-shift order
func (t *ShiftTable) Days() []DaySchedule {
	result := make([]DaySchedule, 0, len(t.days))
	for i, shifts := range t.days {
		day := DaySchedule{Day: i + 1, Assignments: make([]Assignment, 0, len(shifts))}
		for _, assignment := range shifts {
			day.Assignments = append(day.Assignments, assignment.clone())
		}
		result = append(result, day)
	}
	return result
}

// Assignments returns every assignment in processing order (day ascending, then shift order)
func (t *ShiftTable) Assignments() []Assignment {
	result := make([]Assignment, 0, len(t.days)*len(model.ShiftKinds()))
	for _, shifts := range t.days {
		for _, assignment := range shifts {
			result = append(result, assignment.clone())
		}
	}
	return result
}

// ByNurse returns the nurse-then-day view of the table: for each allocated nurse,
// the shifts they work on each day. Nurses with no allocations are absent.
func (t *ShiftTable) ByNurse() map[string]map[int][]model.ShiftKind {
	result := make(map[string]map[int][]model.ShiftKind)
	for _, shifts := range t.days {
		for _, assignment := range shifts {
			for _, nurse := range assignment.Nurses {
				if result[nurse] == nil {
					result[nurse] = make(map[int][]model.ShiftKind)
				}
				result[nurse][assignment.Day] = append(result[nurse][assignment.Day], assignment.Shift)
			}
		}
	}
	return result
}

// LoadCounter tracks how many shifts each nurse has been allocated in a run.
// Counts only ever increase during a run.
type LoadCounter map[string]int

// Increment records one more allocated shift for the nurse
func (lc LoadCounter) Increment(nurse string) {
	lc[nurse]++
}

// Get returns the nurse's current load (0 if never allocated)
func (lc LoadCounter) Get(nurse string) int {
	return lc[nurse]
}

// Clone returns an independent copy of the counter
func (lc LoadCounter) Clone() LoadCounter {
	clone := make(LoadCounter, len(lc))
	for nurse, count := range lc {
		clone[nurse] = count
	}
	return clone
}

// ScheduleState is the working state of a single allocation run
type ScheduleState struct {
	// Table being filled
	Table *ShiftTable

	// Nurses in roster order (deduplicated)
	Nurses []string

	// Unavailable maps day -> set of nurses who cannot work that day.
	// Only rostered nurses and days within the period are present.
	Unavailable map[int]map[string]bool

	// Loads is the running shift count per nurse
	Loads LoadCounter

	// dailyShifts counts shifts per nurse per day (used by the per-day cap)
	dailyShifts map[int]map[string]int
}

// IsRostered returns true if the nurse is on the roster for this run
func (s *ScheduleState) IsRostered(nurse string) bool {
	return slices.Contains(s.Nurses, nurse)
}

// IsAvailable returns true if the nurse is not marked unavailable on the day
func (s *ScheduleState) IsAvailable(nurse string, day int) bool {
	return !s.Unavailable[day][nurse]
}

// AvailableOn returns the nurses available on the given day in roster order
func (s *ScheduleState) AvailableOn(day int) []string {
	available := make([]string, 0, len(s.Nurses))
	for _, nurse := range s.Nurses {
		if s.IsAvailable(nurse, day) {
			available = append(available, nurse)
		}
	}
	return available
}

// ShiftsOnDay returns how many shifts the nurse already holds on the day
func (s *ScheduleState) ShiftsOnDay(nurse string, day int) int {
	return s.dailyShifts[day][nurse]
}

// assign adds the nurse to the assignment and updates load tracking immediately
func (s *ScheduleState) assign(assignment *Assignment, nurse string) {
	assignment.Nurses = append(assignment.Nurses, nurse)
	s.Loads.Increment(nurse)
	if s.dailyShifts[assignment.Day] == nil {
		s.dailyShifts[assignment.Day] = make(map[string]int)
	}
	s.dailyShifts[assignment.Day][nurse]++
}
