package rosterclient

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

type rosterDocument struct {
	Nurses []nurseEntry `yaml:"nurses" validate:"required,min=1,unique=ID,dive"`
}

type nurseEntry struct {
	ID                string            `yaml:"id" validate:"required"`
	FirstName         string            `yaml:"firstName"`
	LastName          string            `yaml:"lastName"`
	UnavailableDays   []int             `yaml:"unavailableDays" validate:"dive,min=1,max=31"`
	UnavailableRRules []string          `yaml:"unavailableRRules" validate:"dive,required"`
	PreferredShift    string            `yaml:"preferredShift"`
	Preferences       []preferenceEntry `yaml:"preferences" validate:"dive"`
}

type preferenceEntry struct {
	Day   int    `yaml:"day" validate:"min=1,max=31"`
	Shift string `yaml:"shift" validate:"required"`
}

// ListNurses retrieves and parses nurses from the roster file
func (c *Client) ListNurses() ([]model.Nurse, error) {
	data, err := c.readFile()
	if err != nil {
		return nil, err
	}

	nurses, err := ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", c.path, err)
	}

	return nurses, nil
}

// ParseRoster decodes and validates a YAML roster, preserving file order
func ParseRoster(data []byte) ([]model.Nurse, error) {
	var doc rosterDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	// IDs are compared trimmed, so " n1" duplicates "n1" and a blank ID is missing
	for i := range doc.Nurses {
		doc.Nurses[i].ID = strings.TrimSpace(doc.Nurses[i].ID)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("roster validation failed: %w", err)
	}

	nurses := make([]model.Nurse, 0, len(doc.Nurses))
	for i, entry := range doc.Nurses {
		nurse, err := entry.toNurse()
		if err != nil {
			return nil, fmt.Errorf("invalid nurse at position %d (%s): %w", i, entry.ID, err)
		}
		nurses = append(nurses, nurse)
	}

	// Compute display names for all nurses (ensures uniqueness across entire list)
	ComputeDisplayNames(nurses)

	return nurses, nil
}

func (e nurseEntry) toNurse() (model.Nurse, error) {
	nurse := model.Nurse{
		ID:                strings.TrimSpace(e.ID),
		FirstName:         strings.TrimSpace(e.FirstName),
		LastName:          strings.TrimSpace(e.LastName),
		UnavailableDays:   e.UnavailableDays,
		UnavailableRRules: e.UnavailableRRules,
	}

	if e.PreferredShift != "" {
		shift, err := model.ParseShiftKind(e.PreferredShift)
		if err != nil {
			return model.Nurse{}, fmt.Errorf("preferredShift: %w", err)
		}
		nurse.PreferredShift = &shift
	}

	for _, pref := range e.Preferences {
		shift, err := model.ParseShiftKind(pref.Shift)
		if err != nil {
			return model.Nurse{}, fmt.Errorf("preferences: %w", err)
		}
		nurse.Preferences = append(nurse.Preferences, model.DayShift{Day: pref.Day, Shift: shift})
	}

	return nurse, nil
}

// ComputeDisplayNames calculates display names for a list of nurses based on uniqueness:
// - If first name is unique: use first name only
// - If first name + first letter of surname is unique: use "FirstName L."
// - Otherwise: use full name "FirstName LastName"
// Nurses without a first name are shown by ID.
func ComputeDisplayNames(nurses []model.Nurse) {
	// Count occurrences of each first name
	firstNameCounts := make(map[string]int)
	for _, n := range nurses {
		firstNameCounts[n.FirstName]++
	}

	// Count occurrences of each "FirstName L." format
	firstNameInitialCounts := make(map[string]int)
	for _, n := range nurses {
		if key, ok := initialKey(n); ok {
			firstNameInitialCounts[key]++
		}
	}

	// Assign display names
	for i := range nurses {
		n := &nurses[i]

		if n.FirstName == "" {
			n.DisplayName = n.ID
			continue
		}

		// Try first name only
		if firstNameCounts[n.FirstName] == 1 {
			n.DisplayName = n.FirstName
			continue
		}

		// Try first name + initial
		if key, ok := initialKey(*n); ok && firstNameInitialCounts[key] == 1 {
			n.DisplayName = key
			continue
		}

		// Fall back to full name
		n.DisplayName = n.FullName()
	}
}

func initialKey(n model.Nurse) (string, bool) {
	if n.LastName == "" {
		return "", false
	}
	initial, _ := utf8.DecodeRuneInString(n.LastName)
	return n.FirstName + " " + string(initial) + ".", true
}
