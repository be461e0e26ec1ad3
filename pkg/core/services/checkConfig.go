package services

import (
	"fmt"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/internal/config"
)

// CheckConfigResult summarises a loaded configuration and roster
type CheckConfigResult struct {
	NurseCount            int
	NursesWithPreferences int
	NursesWithRRules      int
	BlackoutCount         int

	// UnknownBlackoutNurses are IDs named in blackouts that are not on the roster
	UnknownBlackoutNurses []string
}

// CheckConfig loads the roster and verifies every recurrence rule in it parses.
// Blackouts naming nurses missing from the roster are reported, not rejected.
func CheckConfig(nurseClient NurseClient, cfg *config.Config, logger *zap.Logger) (*CheckConfigResult, error) {
	logger.Debug("Starting checkConfig")

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	nurses, err := nurseClient.ListNurses()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nurses: %w", err)
	}
	logger.Debug("Found nurses", zap.Int("count", len(nurses)))

	result := &CheckConfigResult{
		NurseCount:            len(nurses),
		BlackoutCount:         len(cfg.Blackouts),
		UnknownBlackoutNurses: []string{},
	}

	rostered := make(map[string]bool, len(nurses))
	for _, nurse := range nurses {
		rostered[nurse.ID] = true

		if len(nurse.Preferences) > 0 || nurse.PreferredShift != nil {
			result.NursesWithPreferences++
		}
		if len(nurse.UnavailableRRules) > 0 {
			result.NursesWithRRules++
		}

		for _, ruleStr := range nurse.UnavailableRRules {
			if _, err := rrule.StrToRRule(ruleStr); err != nil {
				return nil, fmt.Errorf("invalid rrule for nurse %s: %w", nurse.ID, err)
			}
		}
	}

	for _, blackout := range cfg.Blackouts {
		for _, id := range blackout.Nurses {
			if !rostered[id] {
				result.UnknownBlackoutNurses = append(result.UnknownBlackoutNurses, id)
			}
		}
	}

	if len(result.UnknownBlackoutNurses) > 0 {
		logger.Warn("Blackouts reference nurses not on the roster",
			zap.Strings("nurse_ids", result.UnknownBlackoutNurses))
	}

	return result, nil
}
