package allocator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

var fiveNurses = []string{"N1", "N2", "N3", "N4", "N5"}

var feb2024 = model.Period{Year: 2024, Month: time.February}

func mustAllocate(t *testing.T, config AllocationConfig) *AllocationOutcome {
	t.Helper()
	outcome, err := Allocate(config)
	require.NoError(t, err)
	require.NotNil(t, outcome)
	return outcome
}

func assignmentFor(t *testing.T, outcome *AllocationOutcome, day int, shift model.ShiftKind) []string {
	t.Helper()
	assignment, ok := outcome.Table.Assignment(day, shift)
	require.True(t, ok, "missing assignment for day %d %s", day, shift)
	return assignment.Nurses
}

func TestAllocate_LeapFebruaryRosterOrder(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Period: feb2024,
		Policy: DefaultPolicy(),
	})

	assert.Equal(t, 29, outcome.Table.DayCount())
	for day := 1; day <= 29; day++ {
		for _, shift := range model.ShiftKinds() {
			assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, day, shift), "day %d %s", day, shift)
		}
	}

	assert.True(t, outcome.Success)
	assert.Empty(t, outcome.Understaffed)
	assert.Empty(t, outcome.ValidationErrors)
	assert.Equal(t, 87, outcome.Loads.Get("N1"))
	assert.Equal(t, 0, outcome.Loads.Get("N5"))
	assert.NotEmpty(t, outcome.RunID)
}

func TestAllocate_LeapFebruaryLeastLoadedRotates(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Period: feb2024,
		Policy: AllocationPolicy{TieBreak: TieBreakLeastLoaded},
	})

	assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 1, model.Morning))
	assert.Equal(t, []string{"N3", "N4"}, assignmentFor(t, outcome, 1, model.Afternoon))
	assert.Equal(t, []string{"N5", "N1"}, assignmentFor(t, outcome, 1, model.Night))
	assert.Equal(t, []string{"N2", "N3"}, assignmentFor(t, outcome, 2, model.Morning))
}

func TestAllocate_UnavailableNurseNeverScheduledThatDay(t *testing.T) {
	for _, tieBreak := range TieBreaks() {
		t.Run(string(tieBreak), func(t *testing.T) {
			outcome := mustAllocate(t, AllocationConfig{
				Nurses:         fiveNurses,
				Unavailability: map[string][]int{"N1": {5}},
				Period:         feb2024,
				Policy:         AllocationPolicy{TieBreak: tieBreak, Seed: 42},
			})

			for _, shift := range model.ShiftKinds() {
				nurses := assignmentFor(t, outcome, 5, shift)
				assert.NotContains(t, nurses, "N1")
				assert.Len(t, nurses, 2)
			}
			assert.True(t, outcome.Success)
		})
	}
}

func TestAllocate_RosterOrderFallsThroughWhenFirstNurseUnavailable(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses:         fiveNurses,
		Unavailability: map[string][]int{"N1": {5}},
		Period:         feb2024,
		Policy:         DefaultPolicy(),
	})

	assert.Equal(t, []string{"N2", "N3"}, assignmentFor(t, outcome, 5, model.Morning))
	assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 6, model.Morning))
}

func TestAllocate_PreferredPairWinsDayShift(t *testing.T) {
	prefs := NewDayShiftPreferences(map[string][]model.DayShift{
		"N1": {{Day: 3, Shift: model.Morning}},
		"N2": {{Day: 3, Shift: model.Morning}},
	})

	for _, tieBreak := range TieBreaks() {
		t.Run(string(tieBreak), func(t *testing.T) {
			outcome := mustAllocate(t, AllocationConfig{
				Nurses:      fiveNurses,
				Preferences: prefs,
				Period:      feb2024,
				Policy:      AllocationPolicy{TieBreak: tieBreak, Seed: 7},
			})

			assert.ElementsMatch(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 3, model.Morning))
		})
	}
}

func TestAllocate_PreferencePriority(t *testing.T) {
	tests := []struct {
		name     string
		prefs    map[string][]model.DayShift
		expected []string
	}{
		{
			name:     "single preferred nurse fills first place",
			prefs:    map[string][]model.DayShift{"N4": {{Day: 1, Shift: model.Morning}}},
			expected: []string{"N4", "N1"},
		},
		{
			name: "more preferred nurses than places takes first by roster order",
			prefs: map[string][]model.DayShift{
				"N5": {{Day: 1, Shift: model.Morning}},
				"N3": {{Day: 1, Shift: model.Morning}},
				"N4": {{Day: 1, Shift: model.Morning}},
			},
			expected: []string{"N3", "N4"},
		},
		{
			name:     "preference for another day has no effect",
			prefs:    map[string][]model.DayShift{"N4": {{Day: 2, Shift: model.Morning}}},
			expected: []string{"N1", "N2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := mustAllocate(t, AllocationConfig{
				Nurses:      fiveNurses,
				Preferences: NewDayShiftPreferences(tt.prefs),
				Period:      feb2024,
				Policy:      DefaultPolicy(),
			})
			assert.Equal(t, tt.expected, assignmentFor(t, outcome, 1, model.Morning))
		})
	}
}

func TestAllocate_PreferredButUnavailableIsSkipped(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Preferences: NewDayShiftPreferences(map[string][]model.DayShift{
			"N4": {{Day: 3, Shift: model.Night}},
		}),
		Unavailability: map[string][]int{"N4": {3}},
		Period:         feb2024,
		Policy:         DefaultPolicy(),
	})

	assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 3, model.Night))
}

func TestAllocate_SingleShiftPreferences(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Preferences: NewSingleShiftPreferences(map[string]model.ShiftKind{
			"N5": model.Night,
		}),
		Period: model.Period{Year: 2025, Month: time.April},
		Policy: DefaultPolicy(),
	})

	for day := 1; day <= 30; day++ {
		assert.Equal(t, []string{"N5", "N1"}, assignmentFor(t, outcome, day, model.Night))
		assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, day, model.Morning))
	}
}

func TestAllocate_CoverageCompleteness(t *testing.T) {
	periods := []model.Period{
		{Year: 2024, Month: time.February},
		{Year: 2023, Month: time.February},
		{Year: 2025, Month: time.April},
		{Year: 2025, Month: time.December},
	}

	for _, period := range periods {
		t.Run(period.String(), func(t *testing.T) {
			outcome := mustAllocate(t, AllocationConfig{
				Nurses: []string{"N1"},
				Period: period,
				Policy: DefaultPolicy(),
			})

			days := outcome.Table.Days()
			require.Len(t, days, period.DaysInMonth())
			for i, day := range days {
				assert.Equal(t, i+1, day.Day)
				require.Len(t, day.Assignments, 3)
				for j, assignment := range day.Assignments {
					assert.Equal(t, model.ShiftKinds()[j], assignment.Shift)
				}
			}
			assert.Len(t, outcome.Table.Assignments(), period.DaysInMonth()*3)
		})
	}
}

func TestAllocate_TargetCapAndNoDuplicates(t *testing.T) {
	for _, tieBreak := range TieBreaks() {
		for _, target := range []int{1, 2, 4, 7} {
			outcome := mustAllocate(t, AllocationConfig{
				Nurses:         fiveNurses,
				Unavailability: map[string][]int{"N2": {1, 2, 3}, "N3": {2}},
				Period:         feb2024,
				Policy:         AllocationPolicy{TieBreak: tieBreak, TargetSize: target, Backfill: true, Seed: 99},
			})

			for _, assignment := range outcome.Table.Assignments() {
				assert.LessOrEqual(t, assignment.Size(), target)
				assert.Len(t, lo.Uniq(assignment.Nurses), assignment.Size())
			}
			assert.Empty(t, errorsFromCheck(outcome.ValidationErrors, "TargetCap"))
			assert.Empty(t, errorsFromCheck(outcome.ValidationErrors, "Availability"))
		}
	}
}

func TestAllocate_UnderstaffedWhenEveryoneUnavailable(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses:         []string{"N1", "N2", "N3"},
		Unavailability: map[string][]int{"N1": {7}, "N2": {7}, "N3": {7, 8}},
		Period:         feb2024,
		Policy:         DefaultPolicy(),
	})

	for _, shift := range model.ShiftKinds() {
		assert.Empty(t, assignmentFor(t, outcome, 7, shift))
		assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 8, shift))
	}

	require.Len(t, outcome.Understaffed, 3)
	for _, understaffed := range outcome.Understaffed {
		assert.Equal(t, 7, understaffed.Day)
		assert.Equal(t, "Coverage", understaffed.CheckName)
	}
	assert.False(t, outcome.Success)
}

func TestAllocate_UnderstaffedWhenPoolSmallerThanTarget(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: []string{"N1"},
		Period: feb2024,
		Policy: DefaultPolicy(),
	})

	assert.Equal(t, []string{"N1"}, assignmentFor(t, outcome, 1, model.Morning))
	assert.Len(t, outcome.Understaffed, 29*3)
	assert.Equal(t, 87, outcome.Loads.Get("N1"))
}

func TestAllocate_Determinism(t *testing.T) {
	for _, tieBreak := range []TieBreak{TieBreakRosterOrder, TieBreakLeastLoaded} {
		t.Run(string(tieBreak), func(t *testing.T) {
			config := AllocationConfig{
				Nurses:         fiveNurses,
				Unavailability: map[string][]int{"N1": {5, 9}, "N4": {1}},
				Preferences: NewDayShiftPreferences(map[string][]model.DayShift{
					"N3": {{Day: 2, Shift: model.Night}},
				}),
				Period: feb2024,
				Policy: AllocationPolicy{TieBreak: tieBreak},
			}

			first := mustAllocate(t, config)
			second := mustAllocate(t, config)
			assert.Equal(t, first.Table.Days(), second.Table.Days())
			assert.Equal(t, first.Loads, second.Loads)
			assert.NotEqual(t, first.RunID, second.RunID)
		})
	}
}

func TestAllocate_RandomIsReproducibleWithSeed(t *testing.T) {
	config := AllocationConfig{
		Nurses: fiveNurses,
		Period: feb2024,
		Policy: AllocationPolicy{TieBreak: TieBreakRandom, Seed: 1234},
	}

	first := mustAllocate(t, config)
	second := mustAllocate(t, config)
	assert.Equal(t, first.Table.Days(), second.Table.Days())

	// An injected source takes precedence over the seed
	config.Policy.Rand = rand.New(rand.NewSource(1234))
	third := mustAllocate(t, config)
	assert.Equal(t, first.Table.Days(), third.Table.Days())
	assert.Equal(t, int64(1234), third.Policy.Seed)
}

func TestAllocate_ReportsSeed(t *testing.T) {
	// Clock seed is filled in and reported
	clockSeeded := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Period: feb2024,
		Policy: AllocationPolicy{TieBreak: TieBreakRandom},
	})
	assert.NotZero(t, clockSeeded.Policy.Seed)

	replay := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Period: feb2024,
		Policy: AllocationPolicy{TieBreak: TieBreakRandom, Seed: clockSeeded.Policy.Seed},
	})
	assert.Equal(t, clockSeeded.Table.Days(), replay.Table.Days())

	// An injected source leaves the seed as given
	injected := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Period: feb2024,
		Policy: AllocationPolicy{TieBreak: TieBreakRandom, Rand: rand.New(rand.NewSource(9))},
	})
	assert.Zero(t, injected.Policy.Seed)
}

func TestAllocate_LeastLoadedKeepsLoadsBalanced(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Period: feb2024,
		Policy: AllocationPolicy{TieBreak: TieBreakLeastLoaded},
	})

	// 29 days * 3 shifts * 2 nurses spread over 5 nurses
	assert.Equal(t, 174, outcome.Summary.Total)
	assert.LessOrEqual(t, outcome.Summary.Spread, 1)
	assert.InDelta(t, 34.8, outcome.Summary.Mean, 1e-9)
}

func TestAllocate_LeastLoadedPrefersLowerLoadEveryShift(t *testing.T) {
	allocator, err := InitAllocation(AllocationConfig{
		Nurses:         fiveNurses,
		Unavailability: map[string][]int{"N2": {2, 3, 4}},
		Period:         feb2024,
		Policy:         AllocationPolicy{TieBreak: TieBreakLeastLoaded},
	})
	require.NoError(t, err)

	// Walk the primary pass shift by shift and check nobody chosen has a higher
	// load than an available nurse left out
	for day := 1; day <= allocator.state.Table.DayCount(); day++ {
		available := allocator.state.AvailableOn(day)
		for _, shift := range model.ShiftKinds() {
			before := allocator.state.Loads.Clone()
			allocator.allocateShift(day, shift, available)

			assignment, _ := allocator.state.Table.Assignment(day, shift)
			for _, chosen := range assignment.Nurses {
				for _, candidate := range available {
					if assignment.Has(candidate) {
						continue
					}
					assert.LessOrEqual(t, before.Get(chosen), before.Get(candidate),
						"day %d %s: %s chosen over %s", day, shift, chosen, candidate)
				}
			}
		}
	}
}

func TestAllocate_MaxShiftsPerDayLeavesGapsWithoutBackfill(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: []string{"N1", "N2", "N3"},
		Period: feb2024,
		Policy: AllocationPolicy{TieBreak: TieBreakRosterOrder, MaxShiftsPerDay: 1},
	})

	assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 1, model.Morning))
	assert.Equal(t, []string{"N3"}, assignmentFor(t, outcome, 1, model.Afternoon))
	assert.Empty(t, assignmentFor(t, outcome, 1, model.Night))
	assert.Len(t, outcome.Understaffed, 29*2)
	assert.Zero(t, outcome.BackfilledSlots)
}

func TestAllocate_BackfillTopsUpGaps(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: []string{"N1", "N2", "N3"},
		Period: feb2024,
		Policy: AllocationPolicy{TieBreak: TieBreakRosterOrder, MaxShiftsPerDay: 1, Backfill: true},
	})

	assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 1, model.Morning))
	assert.Equal(t, []string{"N3", "N1"}, assignmentFor(t, outcome, 1, model.Afternoon))
	assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 1, model.Night))
	assert.Equal(t, 29*3, outcome.BackfilledSlots)
	assert.Empty(t, outcome.Understaffed)
	assert.True(t, outcome.Success)
}

func TestAllocate_BackfillRespectsAvailability(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses:         []string{"N1", "N2", "N3"},
		Unavailability: map[string][]int{"N1": {1}, "N2": {1}},
		Period:         feb2024,
		Policy:         AllocationPolicy{MaxShiftsPerDay: 1, Backfill: true},
	})

	assert.Equal(t, []string{"N3"}, assignmentFor(t, outcome, 1, model.Morning))
	assert.Equal(t, []string{"N3"}, assignmentFor(t, outcome, 1, model.Afternoon))
	assert.Equal(t, []string{"N3"}, assignmentFor(t, outcome, 1, model.Night))
	assert.Len(t, outcome.Understaffed, 3)
}

func TestBackfill_Idempotent(t *testing.T) {
	for _, tieBreak := range TieBreaks() {
		t.Run(string(tieBreak), func(t *testing.T) {
			allocator, err := InitAllocation(AllocationConfig{
				Nurses:         []string{"N1", "N2", "N3", "N4"},
				Unavailability: map[string][]int{"N1": {2}, "N2": {2}, "N3": {2}},
				Period:         feb2024,
				Policy:         AllocationPolicy{TieBreak: tieBreak, MaxShiftsPerDay: 1, TargetSize: 3, Seed: 5},
			})
			require.NoError(t, err)

			allocator.allocateAll()
			first := allocator.Backfill()
			assert.Positive(t, first)

			table := allocator.state.Table.Days()
			loads := allocator.state.Loads.Clone()

			assert.Zero(t, allocator.Backfill())
			assert.Equal(t, table, allocator.state.Table.Days())
			assert.Equal(t, loads, allocator.state.Loads)
		})
	}
}

func TestAllocate_NurseMayWorkSeveralShiftsPerDay(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: []string{"N1", "N2"},
		Period: feb2024,
		Policy: DefaultPolicy(),
	})

	byNurse := outcome.Table.ByNurse()
	assert.Equal(t, model.ShiftKinds(), byNurse["N1"][1])
	assert.Len(t, byNurse["N2"], 29)
}

func TestAllocate_InvalidInputs(t *testing.T) {
	tests := []struct {
		name    string
		config  AllocationConfig
		wantErr error
	}{
		{
			name:    "empty roster",
			config:  AllocationConfig{Period: feb2024},
			wantErr: ErrEmptyRoster,
		},
		{
			name:    "blank roster entries only",
			config:  AllocationConfig{Nurses: []string{"", "  "}, Period: feb2024},
			wantErr: ErrEmptyRoster,
		},
		{
			name:    "month out of range",
			config:  AllocationConfig{Nurses: fiveNurses, Period: model.Period{Year: 2024, Month: 13}},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:    "year out of range",
			config:  AllocationConfig{Nurses: fiveNurses, Period: model.Period{Year: 1800, Month: time.May}},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:    "unknown tie-break",
			config:  AllocationConfig{Nurses: fiveNurses, Period: feb2024, Policy: AllocationPolicy{TieBreak: "alphabetical"}},
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "negative per-day cap",
			config:  AllocationConfig{Nurses: fiveNurses, Period: feb2024, Policy: AllocationPolicy{MaxShiftsPerDay: -1}},
			wantErr: ErrInvalidPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := Allocate(tt.config)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, outcome)
		})
	}
}

func TestAllocate_IgnoresUnknownNursesAndOutOfRangeDays(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: []string{"N1", "N2", "N3"},
		Unavailability: map[string][]int{
			"N1":    {0, 30, 31, -4, 100},
			"ghost": {1, 2, 3},
		},
		Preferences: NewDayShiftPreferences(map[string][]model.DayShift{
			"ghost": {{Day: 1, Shift: model.Morning}},
			"N3":    {{Day: 45, Shift: model.Morning}},
		}),
		Period: feb2024,
		Policy: DefaultPolicy(),
	})

	assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 1, model.Morning))
	assert.NotContains(t, outcome.Table.ByNurse(), "ghost")
	assert.True(t, outcome.Success)
}

func TestAllocate_DuplicateNursesCollapse(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: []string{"N2", "N1", "N2", "N1"},
		Period: feb2024,
		Policy: DefaultPolicy(),
	})

	assert.Equal(t, []string{"N2", "N1"}, outcome.Nurses)
	assert.Equal(t, []string{"N2", "N1"}, assignmentFor(t, outcome, 1, model.Morning))
}

func TestAllocate_DefaultsTargetSize(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Period: feb2024,
		Policy: AllocationPolicy{TargetSize: -3},
	})

	assert.Equal(t, DefaultTargetSize, outcome.Table.TargetSize())
	assert.Equal(t, TieBreakRosterOrder, outcome.Policy.TieBreak)
	assert.Len(t, assignmentFor(t, outcome, 10, model.Night), 2)
}

func TestShiftTable_AccessorsReturnCopies(t *testing.T) {
	outcome := mustAllocate(t, AllocationConfig{
		Nurses: fiveNurses,
		Period: feb2024,
		Policy: DefaultPolicy(),
	})

	assignment, ok := outcome.Table.Assignment(1, model.Morning)
	require.True(t, ok)
	assignment.Nurses[0] = "intruder"

	days := outcome.Table.Days()
	days[0].Assignments[0].Nurses[1] = "intruder"

	assert.Equal(t, []string{"N1", "N2"}, assignmentFor(t, outcome, 1, model.Morning))

	_, ok = outcome.Table.Assignment(30, model.Morning)
	assert.False(t, ok)
	_, ok = outcome.Table.Assignment(1, model.ShiftKind(9))
	assert.False(t, ok)
}

func errorsFromCheck(errors []ShiftValidationError, name string) []ShiftValidationError {
	return lo.Filter(errors, func(err ShiftValidationError, _ int) bool {
		return err.CheckName == name
	})
}
