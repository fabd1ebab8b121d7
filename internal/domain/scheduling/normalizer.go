package scheduling

import (
	"fmt"
	"sort"

	"feisworks/internal/domain/competition"
)

// optionalKey is a tagged-option field for family grouping. A structured
// key keeps "no gender" and a literal gender value distinct; building the
// key by string concatenation of nullable fields can collide.
type optionalKey struct {
	Value   string
	Present bool
}

func optional(v string) optionalKey {
	return optionalKey{Value: v, Present: v != ""}
}

// FamilyKey groups grade competitions that differ only by age bracket.
type FamilyKey struct {
	DanceType optionalKey
	Level     string
	Gender    optionalKey
}

// FamilyOf returns the family a grade competition belongs to.
func FamilyOf(c competition.Competition) FamilyKey {
	return FamilyKey{
		DanceType: optional(c.DanceType),
		Level:     c.Level,
		Gender:    optional(c.Gender),
	}
}

// Normalize merges undersized grade competitions up into older brackets of
// the same family and flags oversized competitions for splitting. Merged
// sources leave the schedulable set; their entries count toward the target.
// Split flagging is informational only and does not affect placement.
func Normalize(comps []competition.Competition, entryCounts map[string]int, cfg Config) NormalizationResult {
	effective := make(map[string]int, len(comps))
	for _, c := range comps {
		effective[c.ID] = entryCounts[c.ID]
	}

	// Group grade competitions into families, keeping first-seen key order
	// so the report is deterministic.
	families := make(map[FamilyKey][]competition.Competition)
	var keyOrder []FamilyKey
	for _, c := range comps {
		if c.IsChampionship() {
			continue
		}
		key := FamilyOf(c)
		if _, seen := families[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		families[key] = append(families[key], c)
	}

	result := NormalizationResult{
		EntryCounts:       effective,
		TotalCompetitions: len(comps),
	}
	merged := make(map[string]bool)

	for _, key := range keyOrder {
		family := families[key]
		sort.SliceStable(family, func(i, j int) bool {
			if family[i].MinAge != family[j].MinAge {
				return family[i].MinAge < family[j].MinAge
			}
			return family[i].MaxAge < family[j].MaxAge
		})

		for _, source := range family {
			if merged[source.ID] {
				continue
			}
			count := effective[source.ID]
			if count >= cfg.MinCompSize {
				continue
			}

			target, found := findMergeTarget(source, family, merged, cfg.AllowTwoYearMergeUp)
			if !found {
				severity := SeverityWarning
				if cfg.StrictNoExhibition {
					severity = SeverityCritical
				}
				result.Warnings = append(result.Warnings, Warning{
					Code: WarningSmallCompExhibitionRisk,
					Message: fmt.Sprintf("%s has %d entries (minimum %d) and no older bracket to merge into; it may run as an exhibition",
						source.Name, count, cfg.MinCompSize),
					CompetitionIDs: []string{source.ID},
					Severity:       severity,
				})
				continue
			}

			merged[source.ID] = true
			effective[target.ID] += count
			result.Merges = append(result.Merges, MergeAction{
				SourceCompetitionID: source.ID,
				TargetCompetitionID: target.ID,
				SourceAgeRange:      source.AgeRange(),
				TargetAgeRange:      target.AgeRange(),
				DancersMoved:        count,
				Reason:              MergeReasonMinCompSize,
				Rationale: fmt.Sprintf("%s has %d entries, below the minimum of %d; dancers move up into %s",
					source.Name, count, cfg.MinCompSize, target.Name),
			})
		}
	}

	// Split flagging runs over every unmerged competition, grades and
	// championships alike.
	for _, c := range comps {
		if merged[c.ID] {
			continue
		}
		result.SchedulableIDs = append(result.SchedulableIDs, c.ID)
		count := effective[c.ID]
		if count <= cfg.MaxCompSize {
			continue
		}
		result.Splits = append(result.Splits, SplitAction{
			OriginalCompetitionID: c.ID,
			OriginalSize:          count,
			GroupASize:            count / 2,
			GroupBSize:            count - count/2,
			Reason:                SplitReasonMaxCompSize,
			AssignmentMethod:      SplitAssignmentRandom,
		})
	}

	result.MergedCount = len(result.Merges)
	result.SplitCount = len(result.Splits)
	result.FinalCompetitionCount = result.TotalCompetitions - result.MergedCount + result.SplitCount
	return result
}

// findMergeTarget searches strictly-older unmerged competitions in the same
// family. The adjacent bracket is preferred; with the two-year allowance a
// target up to two years older is accepted. Merging never moves older
// dancers down, so a target younger than the source is never selected.
func findMergeTarget(source competition.Competition, family []competition.Competition, merged map[string]bool, allowTwoYear bool) (competition.Competition, bool) {
	var fallback competition.Competition
	haveFallback := false

	for _, t := range family {
		if t.ID == source.ID || merged[t.ID] {
			continue
		}
		if t.MinAge < source.MaxAge {
			continue // younger or overlapping-downward bracket
		}
		if t.MinAge == source.MaxAge || t.MinAge == source.MaxAge+1 {
			return t, true
		}
		if allowTwoYear && t.MinAge <= source.MaxAge+2 && !haveFallback {
			fallback = t
			haveFallback = true
		}
	}
	return fallback, haveFallback
}
