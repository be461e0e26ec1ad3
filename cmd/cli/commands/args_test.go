package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name     string
		year     string
		month    string
		expected model.Period
	}{
		{"numeric month", "2024", "2", model.Period{Year: 2024, Month: time.February}},
		{"zero padded month", "2024", "02", model.Period{Year: 2024, Month: time.February}},
		{"full month name", "2023", "September", model.Period{Year: 2023, Month: time.September}},
		{"short month name", "2023", "sep", model.Period{Year: 2023, Month: time.September}},
		{"mixed case", "2025", "DeC", model.Period{Year: 2025, Month: time.December}},
		{"surrounding spaces", " 2025 ", " 1 ", model.Period{Year: 2025, Month: time.January}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := parsePeriod(tt.year, tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, period)
		})
	}
}

func TestParsePeriod_Errors(t *testing.T) {
	tests := []struct {
		name    string
		year    string
		month   string
		wantErr string
	}{
		{"non-numeric year", "next", "2", "year must be a number"},
		{"unknown month name", "2024", "smarch", "month must be a number or month name"},
		{"month zero", "2024", "0", "month must be between 1 and 12"},
		{"month thirteen", "2024", "13", "month must be between 1 and 12"},
		{"year too small", "1899", "1", "year must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePeriod(tt.year, tt.month)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestShiftLetters(t *testing.T) {
	assert.Equal(t, "", shiftLetters(nil))
	assert.Equal(t, "M", shiftLetters([]model.ShiftKind{model.Morning}))
	assert.Equal(t, "MAN", shiftLetters([]model.ShiftKind{model.Morning, model.Afternoon, model.Night}))
}

func TestNewPalette(t *testing.T) {
	assert.Equal(t, palette{}, newPalette(false))
	assert.Equal(t, colorRed, newPalette(true).red)
}
