package scheduling

import (
	"fmt"
	"sort"
	"time"

	"feisworks/internal/domain/competition"
	"feisworks/internal/domain/feis"
)

// loadImbalanceThreshold is the maximum spread between the earliest- and
// latest-finishing stage before a load-imbalance warning is raised.
const loadImbalanceThreshold = 60 * time.Minute

// Place greedily bin-packs competitions onto stage plans. All grade
// competitions run first, then all championships, each sorted by
// (level, min age, larger-first entry count). Each competition lands on the
// stage whose cursor is earliest; a lunch hold is inserted at most once per
// stage when its cursor falls inside the lunch window.
// PRE: comps contains only schedulable (unmerged) competitions
// POST: every placement satisfies end = start + duration
func Place(f feis.Feis, plans []StagePlan, comps []competition.Competition, entryCounts map[string]int, cfg Config) (PlacementResult, error) {
	var result PlacementResult

	ordered := placementOrder(comps, entryCounts)

	if len(plans) == 0 {
		for _, c := range ordered {
			result.UnplacedIDs = append(result.UnplacedIDs, c.ID)
			result.Warnings = append(result.Warnings, Warning{
				Code:           WarningInsufficientChampPanelCapacity,
				Message:        fmt.Sprintf("no stage has capacity for %s", c.Name),
				CompetitionIDs: []string{c.ID},
				Severity:       SeverityCritical,
			})
		}
		return result, nil
	}

	feisStart, err := clockOn(f.Date, cfg.FeisStartTime)
	if err != nil {
		return PlacementResult{}, err
	}
	feisEnd, err := clockOn(f.Date, cfg.FeisEndTime)
	if err != nil {
		return PlacementResult{}, err
	}

	lunchEnabled := cfg.LunchWindowStart != "" && cfg.LunchWindowEnd != "" && cfg.LunchDurationMinutes > 0
	var lunchStart, lunchEnd time.Time
	if lunchEnabled {
		if lunchStart, err = clockOn(f.Date, cfg.LunchWindowStart); err != nil {
			return PlacementResult{}, err
		}
		if lunchEnd, err = clockOn(f.Date, cfg.LunchWindowEnd); err != nil {
			return PlacementResult{}, err
		}
	}

	cursors := make([]time.Time, len(plans))
	lunchDone := make([]bool, len(plans))
	for i := range cursors {
		cursors[i] = feisStart
	}

	for _, c := range ordered {
		duration := resolveDuration(c, entryCounts[c.ID], cfg)

		// Earliest cursor wins; plan order breaks ties.
		idx := 0
		for i := 1; i < len(cursors); i++ {
			if cursors[i].Before(cursors[idx]) {
				idx = i
			}
		}

		if lunchEnabled && !lunchDone[idx] && !cursors[idx].Before(lunchStart) && cursors[idx].Before(lunchEnd) {
			hold := LunchHold{
				StageID: plans[idx].StageID,
				Start:   cursors[idx],
				End:     cursors[idx].Add(time.Duration(cfg.LunchDurationMinutes) * time.Minute),
			}
			result.LunchHolds = append(result.LunchHolds, hold)
			cursors[idx] = hold.End
			lunchDone[idx] = true
		}

		start := cursors[idx]
		end := start.Add(time.Duration(duration) * time.Minute)
		result.Placements = append(result.Placements, Placement{
			CompetitionID:   c.ID,
			StageID:         plans[idx].StageID,
			ScheduledStart:  start,
			ScheduledEnd:    end,
			DurationMinutes: duration,
			EntryCount:      entryCounts[c.ID],
		})
		cursors[idx] = end
	}

	result.Warnings = append(result.Warnings, postPlacementWarnings(plans, cursors, feisEnd)...)
	return result, nil
}

// placementOrder sorts grades before championships, each by ascending level
// and min age with larger competitions earlier among ties.
func placementOrder(comps []competition.Competition, entryCounts map[string]int) []competition.Competition {
	var grades, champs []competition.Competition
	for _, c := range comps {
		if c.IsChampionship() {
			champs = append(champs, c)
		} else {
			grades = append(grades, c)
		}
	}

	byPriority := func(list []competition.Competition) {
		sort.SliceStable(list, func(i, j int) bool {
			oi, oj := competition.LevelOrder(list[i].Level), competition.LevelOrder(list[j].Level)
			if oi != oj {
				return oi < oj
			}
			if list[i].MinAge != list[j].MinAge {
				return list[i].MinAge < list[j].MinAge
			}
			return entryCounts[list[i].ID] > entryCounts[list[j].ID]
		})
	}
	byPriority(grades)
	byPriority(champs)
	return append(grades, champs...)
}

// resolveDuration picks the duration for one competition: an explicit
// positive duration wins; empty competitions take the per-type default;
// everything else is estimated. The per-type floor always applies.
func resolveDuration(c competition.Competition, entryCount int, cfg Config) int {
	duration := c.DurationMinutes
	if duration <= 0 {
		if entryCount == 0 {
			if c.IsChampionship() {
				duration = cfg.DefaultChampDuration
			} else {
				duration = cfg.DefaultGradeDuration
			}
		} else {
			duration = EstimateCompetitionDuration(c, entryCount).Minutes
		}
	}

	floor := cfg.MinGradeDuration
	if c.IsChampionship() {
		floor = cfg.MinChampDuration
	}
	if duration < floor {
		duration = floor
	}
	return duration
}

// postPlacementWarnings checks venue overrun and stage load imbalance.
func postPlacementWarnings(plans []StagePlan, cursors []time.Time, feisEnd time.Time) []Warning {
	var warnings []Warning

	var overrun []string
	for i, cur := range cursors {
		if cur.After(feisEnd) {
			overrun = append(overrun, plans[i].StageID)
		}
	}
	if len(overrun) > 0 {
		warnings = append(warnings, Warning{
			Code:     WarningScheduleExceedsVenueHours,
			Message:  fmt.Sprintf("%d stage(s) finish after venue close %s", len(overrun), feisEnd.Format("15:04")),
			StageIDs: overrun,
			Severity: SeverityWarning,
		})
	}

	if len(cursors) >= 2 {
		earliest, latest := 0, 0
		for i := range cursors {
			if cursors[i].Before(cursors[earliest]) {
				earliest = i
			}
			if cursors[i].After(cursors[latest]) {
				latest = i
			}
		}
		spread := cursors[latest].Sub(cursors[earliest])
		if spread > loadImbalanceThreshold {
			warnings = append(warnings, Warning{
				Code: WarningLoadImbalance,
				Message: fmt.Sprintf("%s finishes %.0f minutes after %s; consider rebalancing",
					plans[latest].StageName, spread.Minutes(), plans[earliest].StageName),
				StageIDs: []string{plans[earliest].StageID, plans[latest].StageID},
				Severity: SeverityWarning,
			})
		}
	}
	return warnings
}
