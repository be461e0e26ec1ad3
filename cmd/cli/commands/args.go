package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

// parsePeriod converts "<year> <month>" arguments into a validated period.
// The month may be a number (1-12) or an English month name or its first three letters.
func parsePeriod(yearArg, monthArg string) (model.Period, error) {
	year, err := strconv.Atoi(strings.TrimSpace(yearArg))
	if err != nil {
		return model.Period{}, fmt.Errorf("year must be a number, got: %s", yearArg)
	}

	month, err := parseMonth(monthArg)
	if err != nil {
		return model.Period{}, err
	}

	return model.NewPeriod(year, month)
}

func parseMonth(arg string) (time.Month, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(arg); err == nil {
		return time.Month(n), nil
	}

	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(arg, name) || strings.EqualFold(arg, name[:3]) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("month must be a number or month name, got: %s", arg)
}
