package allocator

import (
	"fmt"
	"strings"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

// PreferenceModel answers whether a nurse prefers a given shift on a given day.
// Nurses unknown to the model prefer nothing.
type PreferenceModel interface {
	// Name returns the model's identifier ("dayShift" or "singleShift")
	Name() string

	// Prefers returns true if the nurse prefers the shift on the day
	Prefers(nurse string, day int, shift model.ShiftKind) bool
}

// Preference model names
const (
	PreferenceModelDayShift    = "dayShift"
	PreferenceModelSingleShift = "singleShift"
)

// ParsePreferenceModelName validates a preference model name (case-insensitive)
func ParsePreferenceModelName(name string) (string, error) {
	for _, candidate := range []string{PreferenceModelDayShift, PreferenceModelSingleShift} {
		if strings.EqualFold(strings.TrimSpace(name), candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown preference model %q (expected %s or %s)", name, PreferenceModelDayShift, PreferenceModelSingleShift)
}

// DayShiftPreferences maps each nurse to a set of preferred (day, shift) pairs
type DayShiftPreferences struct {
	prefs map[string]map[model.DayShift]bool
}

// NewDayShiftPreferences builds a day-shift model. Invalid shift kinds are dropped.
func NewDayShiftPreferences(prefs map[string][]model.DayShift) *DayShiftPreferences {
	m := &DayShiftPreferences{prefs: make(map[string]map[model.DayShift]bool, len(prefs))}
	for nurse, pairs := range prefs {
		for _, pair := range pairs {
			if !pair.Shift.IsValid() {
				continue
			}
			if m.prefs[nurse] == nil {
				m.prefs[nurse] = make(map[model.DayShift]bool)
			}
			m.prefs[nurse][pair] = true
		}
	}
	return m
}

func (m *DayShiftPreferences) Name() string {
	return PreferenceModelDayShift
}

func (m *DayShiftPreferences) Prefers(nurse string, day int, shift model.ShiftKind) bool {
	return m.prefs[nurse][model.DayShift{Day: day, Shift: shift}]
}

// SingleShiftPreferences maps each nurse to one preferred shift kind applied to every day
type SingleShiftPreferences struct {
	prefs map[string]model.ShiftKind
}

// NewSingleShiftPreferences builds a single-shift model. Invalid shift kinds are dropped.
func NewSingleShiftPreferences(prefs map[string]model.ShiftKind) *SingleShiftPreferences {
	m := &SingleShiftPreferences{prefs: make(map[string]model.ShiftKind, len(prefs))}
	for nurse, shift := range prefs {
		if shift.IsValid() {
			m.prefs[nurse] = shift
		}
	}
	return m
}

func (m *SingleShiftPreferences) Name() string {
	return PreferenceModelSingleShift
}

func (m *SingleShiftPreferences) Prefers(nurse string, _ int, shift model.ShiftKind) bool {
	preferred, ok := m.prefs[nurse]
	return ok && preferred == shift
}

// NoPreferences is the model used when the caller supplies none
type NoPreferences struct{}

func (NoPreferences) Name() string {
	return "none"
}

func (NoPreferences) Prefers(string, int, model.ShiftKind) bool {
	return false
}
