package scheduling

import (
	"fmt"
	"sort"
	"time"

	"feisworks/internal/domain/adjudicator"
	"feisworks/internal/domain/competition"
)

// minimalOverlapWindow stands in for a missing or zero duration so that
// back-to-back sparse data still registers instantaneous overlap.
const minimalOverlapWindow = 2 * time.Minute

// DetectConflicts runs all five conflict rules over the snapshot and
// concatenates the findings. Each rule is stateless and independent; the
// detector works on partially scheduled feiseanna too.
func DetectConflicts(sctx *Context) []Conflict {
	var conflicts []Conflict
	conflicts = append(conflicts, detectSiblingClashes(sctx)...)
	conflicts = append(conflicts, detectAdjudicatorSchoolLinks(sctx)...)
	conflicts = append(conflicts, detectAdjudicatorDoubleBookings(sctx)...)
	conflicts = append(conflicts, detectAdjudicatorUnavailability(sctx)...)
	conflicts = append(conflicts, detectDancerDoubleBookings(sctx)...)
	return conflicts
}

// scheduledWindow returns the competition's conflict-check window.
// Unscheduled competitions have no window.
func scheduledWindow(c competition.Competition) (start, end time.Time, ok bool) {
	if c.ScheduledStart.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	start = c.ScheduledStart
	if c.DurationMinutes > 0 {
		end = start.Add(time.Duration(c.DurationMinutes) * time.Minute)
	} else {
		end = start.Add(minimalOverlapWindow)
	}
	return start, end, true
}

// windowsOverlap reports whether two half-open windows intersect.
func windowsOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// detectSiblingClashes finds pairs of overlapping competitions on different
// stages that share at least one parent through their dancers. Parents
// cannot watch two stages at once.
func detectSiblingClashes(sctx *Context) []Conflict {
	entries := sctx.EntriesByCompetition()

	// parent ID -> dancer IDs, per competition
	parentDancers := make(map[string]map[string][]string)
	for compID, compEntries := range entries {
		for _, e := range compEntries {
			d, ok := sctx.DancerByID(e.DancerID)
			if !ok || d.ParentID == "" {
				continue
			}
			if parentDancers[compID] == nil {
				parentDancers[compID] = make(map[string][]string)
			}
			parentDancers[compID][d.ParentID] = append(parentDancers[compID][d.ParentID], d.ID)
		}
	}

	var conflicts []Conflict
	comps := sctx.Competitions
	for i := 0; i < len(comps); i++ {
		s1, e1, ok := scheduledWindow(comps[i])
		if !ok || comps[i].StageID == "" {
			continue
		}
		for j := i + 1; j < len(comps); j++ {
			s2, e2, ok := scheduledWindow(comps[j])
			if !ok || comps[j].StageID == "" || comps[j].StageID == comps[i].StageID {
				continue
			}
			if !windowsOverlap(s1, e1, s2, e2) {
				continue
			}

			var dancerIDs []string
			for parentID, ids := range parentDancers[comps[i].ID] {
				if otherIDs, shared := parentDancers[comps[j].ID][parentID]; shared {
					dancerIDs = append(dancerIDs, ids...)
					dancerIDs = append(dancerIDs, otherIDs...)
				}
			}
			if len(dancerIDs) == 0 {
				continue
			}
			sort.Strings(dancerIDs)
			conflicts = append(conflicts, Conflict{
				Type:     ConflictSibling,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("siblings are entered in %s and %s, which overlap on different stages",
					comps[i].Name, comps[j].Name),
				AffectedCompetitionIDs: []string{comps[i].ID, comps[j].ID},
				AffectedDancerIDs:      dedupe(dancerIDs),
				AffectedStageIDs:       []string{comps[i].StageID, comps[j].StageID},
			})
		}
	}
	return conflicts
}

// detectAdjudicatorSchoolLinks finds competitions whose assigned judge has a
// student entered: the dancer's school is the judge themselves or the
// judge's declared school affiliation.
func detectAdjudicatorSchoolLinks(sctx *Context) []Conflict {
	entries := sctx.EntriesByCompetition()

	var conflicts []Conflict
	for _, c := range sctx.Competitions {
		if c.AdjudicatorID == "" {
			continue
		}
		judge, ok := sctx.AdjudicatorByID(c.AdjudicatorID)
		if !ok {
			continue
		}

		var dancerIDs []string
		for _, e := range entries[c.ID] {
			d, ok := sctx.DancerByID(e.DancerID)
			if !ok || d.SchoolID == "" {
				continue
			}
			if d.SchoolID == judge.ID || (judge.SchoolID != "" && d.SchoolID == judge.SchoolID) {
				dancerIDs = append(dancerIDs, d.ID)
			}
		}
		if len(dancerIDs) == 0 {
			continue
		}

		conflict := Conflict{
			Type:     ConflictAdjudicatorSchool,
			Severity: SeverityError,
			Message: fmt.Sprintf("%s is assigned to %s but has %d of their own student(s) entered",
				judge.Name, c.Name, len(dancerIDs)),
			AffectedCompetitionIDs: []string{c.ID},
			AffectedDancerIDs:      dancerIDs,
		}
		if c.StageID != "" {
			conflict.AffectedStageIDs = []string{c.StageID}
		}
		conflicts = append(conflicts, conflict)
	}
	return conflicts
}

// detectAdjudicatorDoubleBookings finds the same judge assigned to two
// competitions with overlapping scheduled windows.
func detectAdjudicatorDoubleBookings(sctx *Context) []Conflict {
	var conflicts []Conflict
	comps := sctx.Competitions
	for i := 0; i < len(comps); i++ {
		if comps[i].AdjudicatorID == "" {
			continue
		}
		s1, e1, ok := scheduledWindow(comps[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(comps); j++ {
			if comps[j].AdjudicatorID != comps[i].AdjudicatorID {
				continue
			}
			s2, e2, ok := scheduledWindow(comps[j])
			if !ok || !windowsOverlap(s1, e1, s2, e2) {
				continue
			}

			name := comps[i].AdjudicatorID
			if judge, ok := sctx.AdjudicatorByID(comps[i].AdjudicatorID); ok {
				name = judge.Name
			}
			conflicts = append(conflicts, Conflict{
				Type:     ConflictAdjudicatorDoubleBooked,
				Severity: SeverityError,
				Message: fmt.Sprintf("%s is booked for %s and %s at the same time",
					name, comps[i].Name, comps[j].Name),
				AffectedCompetitionIDs: []string{comps[i].ID, comps[j].ID},
				AffectedStageIDs:       stagePair(comps[i], comps[j]),
			})
		}
	}
	return conflicts
}

// detectAdjudicatorUnavailability finds scheduled competitions whose window
// is not contained in any Available block the judge declared for the feis
// day. Judges with no declared blocks are treated as fully available.
func detectAdjudicatorUnavailability(sctx *Context) []Conflict {
	blocksByJudge := make(map[string][]adjudicator.AvailabilityBlock)
	for _, b := range sctx.Availability {
		if b.Day != sctx.Feis.Date {
			continue
		}
		blocksByJudge[b.AdjudicatorID] = append(blocksByJudge[b.AdjudicatorID], b)
	}

	var conflicts []Conflict
	for _, c := range sctx.Competitions {
		if c.AdjudicatorID == "" {
			continue
		}
		start, end, ok := scheduledWindow(c)
		if !ok {
			continue
		}
		declared := blocksByJudge[c.AdjudicatorID]
		if len(declared) == 0 {
			continue // no declared blocks means fully available
		}

		covered := false
		for _, b := range declared {
			if b.Type != adjudicator.AvailabilityAvailable {
				continue
			}
			bStart, err1 := clockOn(b.Day, b.StartTime)
			bEnd, err2 := clockOn(b.Day, b.EndTime)
			if err1 != nil || err2 != nil {
				continue
			}
			if !start.Before(bStart) && !end.After(bEnd) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}

		name := c.AdjudicatorID
		if judge, ok := sctx.AdjudicatorByID(c.AdjudicatorID); ok {
			name = judge.Name
		}
		conflict := Conflict{
			Type:     ConflictAdjudicatorUnavailable,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%s is scheduled %s-%s but %s has not declared availability for that window",
				c.Name, start.Format("15:04"), end.Format("15:04"), name),
			AffectedCompetitionIDs: []string{c.ID},
		}
		if c.StageID != "" {
			conflict.AffectedStageIDs = []string{c.StageID}
		}
		conflicts = append(conflicts, conflict)
	}
	return conflicts
}

// detectDancerDoubleBookings finds dancers entered in two competitions with
// overlapping scheduled windows, regardless of stage.
func detectDancerDoubleBookings(sctx *Context) []Conflict {
	dancersByComp := make(map[string]map[string]bool)
	for _, e := range sctx.Entries {
		if dancersByComp[e.CompetitionID] == nil {
			dancersByComp[e.CompetitionID] = make(map[string]bool)
		}
		dancersByComp[e.CompetitionID][e.DancerID] = true
	}

	var conflicts []Conflict
	comps := sctx.Competitions
	for i := 0; i < len(comps); i++ {
		s1, e1, ok := scheduledWindow(comps[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(comps); j++ {
			s2, e2, ok := scheduledWindow(comps[j])
			if !ok || !windowsOverlap(s1, e1, s2, e2) {
				continue
			}

			var shared []string
			for dancerID := range dancersByComp[comps[i].ID] {
				if dancersByComp[comps[j].ID][dancerID] {
					shared = append(shared, dancerID)
				}
			}
			if len(shared) == 0 {
				continue
			}
			sort.Strings(shared)
			conflicts = append(conflicts, Conflict{
				Type:     ConflictDancerDoubleBooked,
				Severity: SeverityError,
				Message: fmt.Sprintf("%d dancer(s) are entered in both %s and %s, which overlap",
					len(shared), comps[i].Name, comps[j].Name),
				AffectedCompetitionIDs: []string{comps[i].ID, comps[j].ID},
				AffectedDancerIDs:      shared,
				AffectedStageIDs:       stagePair(comps[i], comps[j]),
			})
		}
	}
	return conflicts
}

func stagePair(a, b competition.Competition) []string {
	var ids []string
	if a.StageID != "" {
		ids = append(ids, a.StageID)
	}
	if b.StageID != "" && b.StageID != a.StageID {
		ids = append(ids, b.StageID)
	}
	return ids
}

func dedupe(sorted []string) []string {
	var out []string
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
