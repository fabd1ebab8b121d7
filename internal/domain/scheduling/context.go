package scheduling

import (
	"fmt"
	"time"

	"feisworks/internal/domain/adjudicator"
	"feisworks/internal/domain/competition"
	"feisworks/internal/domain/dancer"
	"feisworks/internal/domain/entry"
	"feisworks/internal/domain/feis"
	"feisworks/internal/domain/stage"
)

// Context is the read-only snapshot of everything one scheduler run needs,
// loaded in a single batched read. The engine computes over it purely; the
// only write happens afterwards through PersistPlacements.
type Context struct {
	Feis         feis.Feis
	Competitions []competition.Competition
	Entries      []entry.Entry
	Dancers      []dancer.Dancer
	Stages       []stage.Stage
	Coverage     []stage.CoverageBlock
	Adjudicators []adjudicator.Adjudicator
	Availability []adjudicator.AvailabilityBlock
}

// EntryCounts returns the number of entries per competition ID.
func (c *Context) EntryCounts() map[string]int {
	counts := make(map[string]int, len(c.Competitions))
	for _, e := range c.Entries {
		counts[e.CompetitionID]++
	}
	return counts
}

// EntriesByCompetition groups entries by competition ID.
func (c *Context) EntriesByCompetition() map[string][]entry.Entry {
	byComp := make(map[string][]entry.Entry)
	for _, e := range c.Entries {
		byComp[e.CompetitionID] = append(byComp[e.CompetitionID], e)
	}
	return byComp
}

// DancerByID looks up a dancer. The second return is false when the entry
// references a dancer missing from the snapshot.
func (c *Context) DancerByID(id string) (dancer.Dancer, bool) {
	for _, d := range c.Dancers {
		if d.ID == id {
			return d, true
		}
	}
	return dancer.Dancer{}, false
}

// AdjudicatorByID looks up a judge on the roster.
func (c *Context) AdjudicatorByID(id string) (adjudicator.Adjudicator, bool) {
	for _, a := range c.Adjudicators {
		if a.ID == id {
			return a, true
		}
	}
	return adjudicator.Adjudicator{}, false
}

// StageByID looks up a stage.
func (c *Context) StageByID(id string) (stage.Stage, bool) {
	for _, s := range c.Stages {
		if s.ID == id {
			return s, true
		}
	}
	return stage.Stage{}, false
}

// CompetitionByID looks up a competition.
func (c *Context) CompetitionByID(id string) (competition.Competition, bool) {
	for _, comp := range c.Competitions {
		if comp.ID == id {
			return comp, true
		}
	}
	return competition.Competition{}, false
}

// ApplyPlacements writes placement results onto the in-memory competitions
// so the conflict detector sees the same state that was just persisted.
func (c *Context) ApplyPlacements(placements []Placement) {
	byComp := make(map[string]Placement, len(placements))
	for _, p := range placements {
		byComp[p.CompetitionID] = p
	}
	for i := range c.Competitions {
		if p, ok := byComp[c.Competitions[i].ID]; ok {
			c.Competitions[i].StageID = p.StageID
			c.Competitions[i].ScheduledStart = p.ScheduledStart
			c.Competitions[i].DurationMinutes = p.DurationMinutes
		}
	}
}

// clockOn resolves an HH:MM clock time onto the feis date.
func clockOn(day, hhmm string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", day+" "+hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q on %q: %w", hhmm, day, err)
	}
	return t, nil
}
