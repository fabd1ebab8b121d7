package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"feisworks/internal/domain/competition"
	"feisworks/internal/domain/feis"
	"feisworks/internal/domain/scheduling"
)

// SchedulerStoreForOrchestrator defines the store interface needed by the
// instant scheduler. LoadContext reads the whole feis snapshot in one batch;
// PersistPlacements writes every placement in a single transaction so a
// failed run never leaves a half-written schedule.
type SchedulerStoreForOrchestrator interface {
	LoadContext(ctx context.Context, feisID string) (*scheduling.Context, error)
	PersistPlacements(ctx context.Context, feisID string, placements []scheduling.Placement) error
}

// RunInstantSchedulerInput carries input for the instant scheduler run.
// Config fields override the feis settings; zero values fall through to the
// feis and then to the defaults.
type RunInstantSchedulerInput struct {
	FeisID string
	Config *scheduling.ConfigOverride
}

// RunInstantSchedulerDeps holds dependencies for RunInstantScheduler.
type RunInstantSchedulerDeps struct {
	SchedulerStore SchedulerStoreForOrchestrator
	Now            func() time.Time
}

// ExecuteRunInstantScheduler runs the full scheduling pipeline for one feis:
// normalize competitions, build stage plans, place everything, persist the
// placements atomically, then detect conflicts on the resulting schedule.
// Re-running replaces the previous schedule wholesale.
// PRE: FeisID must be non-empty; the feis must exist
// POST: Every placed competition has stage, start and duration persisted;
// the returned result reports merges, splits, warnings and conflicts
func ExecuteRunInstantScheduler(ctx context.Context, input RunInstantSchedulerInput, deps RunInstantSchedulerDeps) (scheduling.SchedulerResult, error) {
	if input.FeisID == "" {
		return scheduling.SchedulerResult{}, errors.New("feis ID is required")
	}

	started := deps.Now()

	sctx, err := deps.SchedulerStore.LoadContext(ctx, input.FeisID)
	if err != nil {
		return scheduling.SchedulerResult{}, err
	}

	cfg := ResolveConfig(sctx.Feis, input.Config)

	norm := scheduling.Normalize(sctx.Competitions, sctx.EntryCounts(), cfg)

	plans, planWarnings := scheduling.BuildStagePlans(sctx.Feis, sctx.Stages, sctx.Coverage)

	schedulable := make([]competition.Competition, 0, len(norm.SchedulableIDs))
	for _, id := range norm.SchedulableIDs {
		if c, ok := sctx.CompetitionByID(id); ok {
			schedulable = append(schedulable, c)
		}
	}

	placed, err := scheduling.Place(sctx.Feis, plans, schedulable, norm.EntryCounts, cfg)
	if err != nil {
		return scheduling.SchedulerResult{}, err
	}

	if err := deps.SchedulerStore.PersistPlacements(ctx, input.FeisID, placed.Placements); err != nil {
		return scheduling.SchedulerResult{}, err
	}

	sctx.ApplyPlacements(placed.Placements)
	conflicts := scheduling.DetectConflicts(sctx)

	warnings := append(norm.Warnings, planWarnings...)
	warnings = append(warnings, placed.Warnings...)

	result := scheduling.SchedulerResult{
		FeisID:     input.FeisID,
		Placements: placed.Placements,
		LunchHolds: placed.LunchHolds,
		Merges:     norm.Merges,
		Splits:     norm.Splits,
		Warnings:   warnings,
		Conflicts:  conflicts,
		Summary:    buildSummary(sctx, norm, placed, warnings, conflicts),
	}

	slog.Info("scheduler_event", "event", "schedule_generated",
		"feis_id", input.FeisID,
		"placed", result.Summary.ScheduledCount,
		"unplaced", result.Summary.UnscheduledCount,
		"merges", result.Summary.MergeCount,
		"splits", result.Summary.SplitCount,
		"warnings", result.Summary.WarningCount,
		"conflicts", result.Summary.ConflictCount,
		"elapsed_ms", deps.Now().Sub(started).Milliseconds())

	return result, nil
}

// ResolveConfig layers scheduler settings: explicit override fields win over
// the feis settings, which win over the defaults. Only fields the feis
// actually carries (venue hours, lunch) come from it.
func ResolveConfig(f feis.Feis, override *scheduling.ConfigOverride) scheduling.Config {
	cfg := scheduling.DefaultConfig()

	if f.VenueOpen != "" {
		cfg.FeisStartTime = f.VenueOpen
	}
	if f.VenueClose != "" {
		cfg.FeisEndTime = f.VenueClose
	}
	if f.LunchWindowStart != "" {
		cfg.LunchWindowStart = f.LunchWindowStart
	}
	if f.LunchWindowEnd != "" {
		cfg.LunchWindowEnd = f.LunchWindowEnd
	}
	if f.LunchDurationMinutes > 0 {
		cfg.LunchDurationMinutes = f.LunchDurationMinutes
	}

	if override == nil {
		return cfg
	}
	if override.MinCompSize > 0 {
		cfg.MinCompSize = override.MinCompSize
	}
	if override.MaxCompSize > 0 {
		cfg.MaxCompSize = override.MaxCompSize
	}
	if override.LunchWindowStart != "" {
		cfg.LunchWindowStart = override.LunchWindowStart
	}
	if override.LunchWindowEnd != "" {
		cfg.LunchWindowEnd = override.LunchWindowEnd
	}
	if override.LunchDurationMinutes > 0 {
		cfg.LunchDurationMinutes = override.LunchDurationMinutes
	}
	if override.FeisStartTime != "" {
		cfg.FeisStartTime = override.FeisStartTime
	}
	if override.FeisEndTime != "" {
		cfg.FeisEndTime = override.FeisEndTime
	}
	if override.DefaultGradeDuration > 0 {
		cfg.DefaultGradeDuration = override.DefaultGradeDuration
	}
	if override.DefaultChampDuration > 0 {
		cfg.DefaultChampDuration = override.DefaultChampDuration
	}
	if override.MinGradeDuration > 0 {
		cfg.MinGradeDuration = override.MinGradeDuration
	}
	if override.MinChampDuration > 0 {
		cfg.MinChampDuration = override.MinChampDuration
	}
	if override.AllowTwoYearMergeUp != nil {
		cfg.AllowTwoYearMergeUp = *override.AllowTwoYearMergeUp
	}
	if override.StrictNoExhibition != nil {
		cfg.StrictNoExhibition = *override.StrictNoExhibition
	}
	return cfg
}

func buildSummary(sctx *scheduling.Context, norm scheduling.NormalizationResult, placed scheduling.PlacementResult, warnings []scheduling.Warning, conflicts []scheduling.Conflict) scheduling.Summary {
	s := scheduling.Summary{
		ScheduledCount:   len(placed.Placements),
		UnscheduledCount: len(placed.UnplacedIDs),
		MergeCount:       len(norm.Merges),
		SplitCount:       len(norm.Splits),
		WarningCount:     len(warnings),
		ConflictCount:    len(conflicts),
		LunchHoldCount:   len(placed.LunchHolds),
	}
	for _, p := range placed.Placements {
		if c, ok := sctx.CompetitionByID(p.CompetitionID); ok {
			if c.IsChampionship() {
				s.ChampionshipCount++
			} else {
				s.GradeCount++
			}
		}
	}
	return s
}
