package model

import (
	"fmt"
	"strings"
	"time"
)

// Supported year range for a scheduling period
const (
	MinYear = 1900
	MaxYear = 9999
)

// ShiftKind is one of the fixed daily shifts
type ShiftKind int

const (
	Morning ShiftKind = iota
	Afternoon
	Night
)

var shiftKindNames = [...]string{
	Morning:   "Morning",
	Afternoon: "Afternoon",
	Night:     "Night",
}

// ShiftKinds returns every shift kind in processing order (Morning, Afternoon, Night)
func ShiftKinds() []ShiftKind {
	return []ShiftKind{Morning, Afternoon, Night}
}

func (k ShiftKind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("ShiftKind(%d)", int(k))
	}
	return shiftKindNames[k]
}

// IsValid returns true if k is one of Morning, Afternoon or Night
func (k ShiftKind) IsValid() bool {
	return k >= Morning && k <= Night
}

// ParseShiftKind converts a shift name (case-insensitive) to a ShiftKind
func ParseShiftKind(name string) (ShiftKind, error) {
	for i, candidate := range shiftKindNames {
		if strings.EqualFold(strings.TrimSpace(name), candidate) {
			return ShiftKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shift %q (expected Morning, Afternoon or Night)", name)
}

// MarshalText encodes the shift kind by name so YAML output stays readable
func (k ShiftKind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid shift kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a shift kind from its name
func (k *ShiftKind) UnmarshalText(text []byte) error {
	parsed, err := ParseShiftKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Period is the calendar month being scheduled
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod creates a period and validates it
func NewPeriod(year int, month time.Month) (Period, error) {
	p := Period{Year: year, Month: month}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate checks the month is 1..12 and the year is within MinYear..MaxYear
func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("month must be between 1 and 12, got %d", int(p.Month))
	}
	if p.Year < MinYear || p.Year > MaxYear {
		return fmt.Errorf("year must be between %d and %d, got %d", MinYear, MaxYear, p.Year)
	}
	return nil
}

// DaysInMonth returns the number of days in the period's month
func (p Period) DaysInMonth() int {
	// Day 0 of the following month normalises to the last day of this one
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains returns true if day is a valid day-of-month for the period
func (p Period) Contains(day int) bool {
	return day >= 1 && day <= p.DaysInMonth()
}

// Start returns midnight UTC on the first day of the period
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC on the last day of the period
func (p Period) End() time.Time {
	return p.Date(p.DaysInMonth())
}

// EndExclusive returns midnight UTC on the first day of the following month
func (p Period) EndExclusive() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Date returns midnight UTC on the given day of the period
func (p Period) Date(day int) time.Time {
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// DayShift is a (day, shift) pair within a period
type DayShift struct {
	Day   int
	Shift ShiftKind
}

// Nurse represents a rostered nurse as loaded from the roster file
type Nurse struct {
	ID          string
	FirstName   string
	LastName    string
	DisplayName string

	// UnavailableDays are explicit day-of-month numbers the nurse cannot work
	UnavailableDays []int

	// UnavailableRRules are recurrence rules (RFC 5545) describing recurring unavailability
	UnavailableRRules []string

	// PreferredShift is used by the single-shift preference model (nil if none)
	PreferredShift *ShiftKind

	// Preferences are used by the day-shift preference model
	Preferences []DayShift
}

// FullName returns "FirstName LastName", falling back to the ID
func (n Nurse) FullName() string {
	name := strings.TrimSpace(n.FirstName + " " + n.LastName)
	if name == "" {
		return n.ID
	}
	return name
}
