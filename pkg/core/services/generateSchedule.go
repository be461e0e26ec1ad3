package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/internal/config"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/allocator"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

// GenerateScheduleOptions are per-run settings. Nil fields fall back to the config.
type GenerateScheduleOptions struct {
	Period model.Period

	PreferenceModel *string
	TieBreak        *string
	TargetSize      *int
	Backfill        *bool
	MaxShiftsPerDay *int
	Seed            *int64
}

// GenerateScheduleResult contains the generated schedule and the inputs it was built from
type GenerateScheduleResult struct {
	Period model.Period

	// Nurses is the roster in file order
	Nurses []model.Nurse

	// Unavailability is the merged nurse -> days map passed to the allocator
	Unavailability map[string][]int

	// PreferenceModel is the name of the preference model used
	PreferenceModel string

	Outcome *allocator.AllocationOutcome
}

// NurseByID returns the roster entry for the ID
func (r *GenerateScheduleResult) NurseByID(id string) (model.Nurse, bool) {
	for _, nurse := range r.Nurses {
		if nurse.ID == id {
			return nurse, true
		}
	}
	return model.Nurse{}, false
}

// GenerateSchedule loads the roster, expands recurring unavailability for the
// period and runs the allocator. Under-staffed shifts are reported in the
// outcome rather than returned as an error.
func GenerateSchedule(
	ctx context.Context,
	nurseClient NurseClient,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateScheduleOptions,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule", zap.String("period", opts.Period.String()))

	if err := opts.Period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", allocator.ErrInvalidPeriod, err)
	}

	// Step 1: Resolve the allocation policy
	policy, prefModelName, err := resolvePolicy(cfg, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolved policy",
		zap.String("tie_break", string(policy.TieBreak)),
		zap.Int("target_size", policy.TargetSize),
		zap.Bool("backfill", policy.Backfill),
		zap.Int("max_shifts_per_day", policy.MaxShiftsPerDay),
		zap.Int64("seed", policy.Seed),
		zap.String("preference_model", prefModelName))

	// Step 2: Fetch nurses
	logger.Debug("Fetching nurses")
	nurses, err := nurseClient.ListNurses()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nurses: %w", err)
	}
	logger.Debug("Found nurses", zap.Int("count", len(nurses)))

	if len(nurses) == 0 {
		return nil, fmt.Errorf("failed to generate schedule: %w", allocator.ErrEmptyRoster)
	}

	// Step 3: Expand unavailability for the period
	unavailability, err := buildUnavailability(nurses, cfg.Blackouts, opts.Period)
	if err != nil {
		return nil, fmt.Errorf("failed to build unavailability: %w", err)
	}
	logger.Debug("Built unavailability",
		zap.Int("nurses_with_unavailability", len(unavailability)),
		zap.Int("blackouts", len(cfg.Blackouts)))

	// Step 4: Build preference model
	preferences, err := buildPreferenceModel(prefModelName, nurses)
	if err != nil {
		return nil, fmt.Errorf("failed to build preferences: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("schedule generation cancelled: %w", err)
	}

	// Step 5: Run allocation
	outcome, err := allocator.Allocate(allocator.AllocationConfig{
		Nurses:         nurseIDs(nurses),
		Unavailability: unavailability,
		Preferences:    preferences,
		Period:         opts.Period,
		Policy:         policy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate schedule: %w", err)
	}

	logger.Info("Schedule generated",
		zap.String("run_id", outcome.RunID),
		zap.String("period", opts.Period.String()),
		zap.Int("days", outcome.Table.DayCount()),
		zap.Int("understaffed_shifts", len(outcome.Understaffed)),
		zap.Int("backfilled_slots", outcome.BackfilledSlots),
		zap.Int64("seed", outcome.Policy.Seed),
		zap.Bool("success", outcome.Success))
	logger.Debug("Load summary",
		zap.String("run_id", outcome.RunID),
		zap.Int("total", outcome.Summary.Total),
		zap.Float64("mean", outcome.Summary.Mean),
		zap.Float64("std_dev", outcome.Summary.StdDev),
		zap.Int("spread", outcome.Summary.Spread))

	for _, validationErr := range outcome.ValidationErrors {
		logger.Warn("Validation error",
			zap.String("run_id", outcome.RunID),
			zap.Int("day", validationErr.Day),
			zap.String("shift", validationErr.Shift.String()),
			zap.String("check", validationErr.CheckName),
			zap.String("description", validationErr.Description))
	}

	return &GenerateScheduleResult{
		Period:          opts.Period,
		Nurses:          nurses,
		Unavailability:  unavailability,
		PreferenceModel: prefModelName,
		Outcome:         outcome,
	}, nil
}

// resolvePolicy merges per-run options over the config
func resolvePolicy(cfg *config.Config, opts GenerateScheduleOptions) (allocator.AllocationPolicy, string, error) {
	tieBreakName := cfg.TieBreak
	if opts.TieBreak != nil {
		tieBreakName = *opts.TieBreak
	}
	tieBreak := allocator.TieBreakRosterOrder
	if tieBreakName != "" {
		parsed, err := allocator.ParseTieBreak(tieBreakName)
		if err != nil {
			return allocator.AllocationPolicy{}, "", err
		}
		tieBreak = parsed
	}

	policy := allocator.AllocationPolicy{
		TieBreak:        tieBreak,
		TargetSize:      cfg.TargetSize,
		Backfill:        cfg.Backfill,
		MaxShiftsPerDay: cfg.MaxShiftsPerDay,
		Seed:            cfg.Seed,
	}
	if opts.TargetSize != nil {
		policy.TargetSize = *opts.TargetSize
	}
	if opts.Backfill != nil {
		policy.Backfill = *opts.Backfill
	}
	if opts.MaxShiftsPerDay != nil {
		policy.MaxShiftsPerDay = *opts.MaxShiftsPerDay
	}
	if opts.Seed != nil {
		policy.Seed = *opts.Seed
	}

	if policy.TargetSize < 0 {
		return allocator.AllocationPolicy{}, "", fmt.Errorf("%w: target size must be >= 1, got %d", allocator.ErrInvalidPolicy, policy.TargetSize)
	}

	prefModelName := cfg.PreferenceModel
	if opts.PreferenceModel != nil {
		prefModelName = *opts.PreferenceModel
	}
	if prefModelName == "" {
		prefModelName = allocator.PreferenceModelDayShift
	}
	prefModelName, err := allocator.ParsePreferenceModelName(prefModelName)
	if err != nil {
		return allocator.AllocationPolicy{}, "", err
	}

	return policy, prefModelName, nil
}
