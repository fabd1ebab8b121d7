package scheduling

import (
	"fmt"
	"sort"

	"feisworks/internal/domain/feis"
	"feisworks/internal/domain/stage"
)

// TrackGrades is the only track stage plans currently carry; championship
// panel detection is not wired up (see stageChampionshipCapable).
const TrackGrades = "grades"

// BuildStagePlans turns raw judge-coverage records into per-stage plans for
// the feis date. A feis with no stages at all is unschedulable; a stage with
// no coverage stays schedulable using the full venue hours as its window.
func BuildStagePlans(f feis.Feis, stages []stage.Stage, coverage []stage.CoverageBlock) ([]StagePlan, []Warning) {
	if len(stages) == 0 {
		return nil, []Warning{{
			Code:     WarningNoJudgeCoverage,
			Message:  "no stages are set up for this feis; nothing can be scheduled",
			Severity: SeverityCritical,
		}}
	}

	ordered := make([]stage.Stage, len(stages))
	copy(ordered, stages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})

	var plans []StagePlan
	var warnings []Warning
	for _, s := range ordered {
		var windows []CoverageWindow
		for _, b := range coverage {
			if b.StageID != s.ID || b.Day != f.Date {
				continue
			}
			windows = append(windows, CoverageWindow{
				AdjudicatorID: b.AdjudicatorID,
				StartTime:     b.StartTime,
				EndTime:       b.EndTime,
			})
		}

		if len(windows) == 0 {
			warnings = append(warnings, Warning{
				Code:     WarningNoJudgeCoverage,
				Message:  fmt.Sprintf("%s has no judge coverage on %s; using full venue hours", s.Name, f.Date),
				StageIDs: []string{s.ID},
				Severity: SeverityWarning,
			})
			windows = []CoverageWindow{{StartTime: f.VenueOpen, EndTime: f.VenueClose}}
		}

		plans = append(plans, StagePlan{
			StageID:             s.ID,
			StageName:           s.Name,
			Coverage:            windows,
			ChampionshipCapable: stageChampionshipCapable(windows),
			Track:               TrackGrades,
		})
	}
	return plans, warnings
}

// stageChampionshipCapable reports whether a stage has a full judging panel
// (three or more judges covering the same window simultaneously).
// not implemented: concurrent-judge counting is not wired up; every stage is
// treated as grades-only for now.
func stageChampionshipCapable(windows []CoverageWindow) bool {
	return false
}
