package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"feisworks/internal/domain/adjudicator"
	"feisworks/internal/domain/competition"
	"feisworks/internal/domain/dancer"
	"feisworks/internal/domain/entry"
	"feisworks/internal/domain/feis"
	"feisworks/internal/domain/stage"
)

// SeedDemoFeisDeps holds the stores needed to seed the demo feis.
type SeedDemoFeisDeps struct {
	FeisStore interface {
		GetByID(ctx context.Context, id string) (feis.Feis, error)
		Save(ctx context.Context, f feis.Feis) error
	}
	StageStore interface {
		Save(ctx context.Context, s stage.Stage) error
		SaveCoverage(ctx context.Context, b stage.CoverageBlock) error
	}
	AdjudicatorStore interface {
		Save(ctx context.Context, a adjudicator.Adjudicator) error
		SaveAvailability(ctx context.Context, b adjudicator.AvailabilityBlock) error
	}
	CompetitionStore interface {
		Save(ctx context.Context, c competition.Competition) error
	}
	DancerStore interface {
		Save(ctx context.Context, d dancer.Dancer) error
	}
	EntryStore interface {
		Save(ctx context.Context, e entry.Entry) error
	}
}

const demoFeisID = "demo-feis"
const demoDay = "2026-03-14"

// ExecuteSeedDemoFeis loads a small realistic feis for development: two
// stages, three judges, a grade syllabus with an undersized bracket that
// triggers a merge, and a family with entries on both stages. Idempotent -
// it does nothing when the demo feis already exists.
func ExecuteSeedDemoFeis(ctx context.Context, deps SeedDemoFeisDeps) error {
	_, err := deps.FeisStore.GetByID(ctx, demoFeisID)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, feis.ErrNotFound) {
		return err
	}

	f := feis.Feis{
		ID:             demoFeisID,
		Name:           "St. Brigid's Spring Feis",
		Date:           demoDay,
		Venue:          "Riverside Community Hall",
		OrganizerEmail: "organizer@example.com",
		Notes:          "Doors open 08:00. **Results** posted stage-side.",
		VenueOpen:      "08:30",
		VenueClose:     "17:30",
	}
	if err := deps.FeisStore.Save(ctx, f); err != nil {
		return err
	}

	stages := []stage.Stage{
		{ID: "demo-stage-a", FeisID: demoFeisID, Name: "Stage A", Sequence: 1},
		{ID: "demo-stage-b", FeisID: demoFeisID, Name: "Stage B", Sequence: 2},
	}
	for _, s := range stages {
		if err := deps.StageStore.Save(ctx, s); err != nil {
			return err
		}
	}

	judges := []adjudicator.Adjudicator{
		{ID: "demo-judge-1", Name: "Mary O'Connell", SchoolID: "school-oconnell"},
		{ID: "demo-judge-2", Name: "Seamus Byrne"},
		{ID: "demo-judge-3", Name: "Niamh Gallagher", SchoolID: "school-gallagher"},
	}
	for _, j := range judges {
		if err := deps.AdjudicatorStore.Save(ctx, j); err != nil {
			return err
		}
	}
	// Judge 2 leaves early; judge 3 only covers the afternoon on stage B.
	coverage := []stage.CoverageBlock{
		{ID: "demo-cov-1", StageID: "demo-stage-a", AdjudicatorID: "demo-judge-1", Day: demoDay, StartTime: "08:30", EndTime: "17:30"},
		{ID: "demo-cov-2", StageID: "demo-stage-b", AdjudicatorID: "demo-judge-2", Day: demoDay, StartTime: "08:30", EndTime: "13:00"},
		{ID: "demo-cov-3", StageID: "demo-stage-b", AdjudicatorID: "demo-judge-3", Day: demoDay, StartTime: "13:00", EndTime: "17:30"},
	}
	for _, b := range coverage {
		if err := deps.StageStore.SaveCoverage(ctx, b); err != nil {
			return err
		}
	}
	availability := []adjudicator.AvailabilityBlock{
		{ID: "demo-avail-1", AdjudicatorID: "demo-judge-2", Day: demoDay, StartTime: "08:30", EndTime: "13:00", Type: adjudicator.AvailabilityAvailable},
	}
	for _, b := range availability {
		if err := deps.AdjudicatorStore.SaveAvailability(ctx, b); err != nil {
			return err
		}
	}

	type seedComp struct {
		id        string
		name      string
		minAge    int
		maxAge    int
		level     string
		danceType string
		entries   int
	}
	comps := []seedComp{
		{"demo-comp-b1-reel-u8", "Beginner 1 Reel U8", 7, 7, competition.LevelBeginner1, "reel", 9},
		{"demo-comp-b1-reel-u9", "Beginner 1 Reel U9", 8, 8, competition.LevelBeginner1, "reel", 12},
		{"demo-comp-nov-jig-u9", "Novice Light Jig U9", 8, 8, competition.LevelNovice, "light_jig", 7},
		{"demo-comp-nov-jig-u10", "Novice Light Jig U10", 9, 9, competition.LevelNovice, "light_jig", 11},
		// Undersized: merges up into the U10 bracket on a default run.
		{"demo-comp-pw-hp-u9", "Prizewinner Hornpipe U9", 8, 8, competition.LevelPrizewinner, "hornpipe", 3},
		{"demo-comp-pw-hp-u10", "Prizewinner Hornpipe U10", 9, 9, competition.LevelPrizewinner, "hornpipe", 6},
		{"demo-comp-prelim-u12", "Preliminary Championship U12", 10, 11, competition.LevelPrelimChampionship, "", 8},
	}

	dancerNames := []string{
		"Aoife Murphy", "Liam Murphy", "Saoirse Kelly", "Niamh Walsh", "Ciara Byrne",
		"Oisin Doyle", "Roisin McCarthy", "Sean Brennan", "Grainne Lynch", "Cormac Duffy",
		"Eimear Nolan", "Padraig Quinn", "Sinead Kavanagh", "Fionn Maguire", "Orla Redmond",
	}
	for i, name := range dancerNames {
		d := dancer.Dancer{
			ID:       fmt.Sprintf("demo-dancer-%d", i+1),
			Name:     name,
			ParentID: fmt.Sprintf("demo-parent-%d", i/2+1), // pairs of siblings
		}
		if i%3 == 0 {
			d.SchoolID = "school-oconnell"
		}
		if err := deps.DancerStore.Save(ctx, d); err != nil {
			return err
		}
	}

	entrySeq := 0
	for _, sc := range comps {
		c := competition.Competition{
			ID:            sc.id,
			FeisID:        demoFeisID,
			Name:          sc.name,
			MinAge:        sc.minAge,
			MaxAge:        sc.maxAge,
			Level:         sc.level,
			DanceType:     sc.danceType,
			ScoringMethod: competition.ScoringSolo,
		}
		if c.Level == competition.LevelPrelimChampionship || c.Level == competition.LevelOpenChampionship {
			c.ScoringMethod = competition.ScoringChampionship
		}
		if err := deps.CompetitionStore.Save(ctx, c); err != nil {
			return err
		}
		for i := 0; i < sc.entries; i++ {
			entrySeq++
			e := entry.Entry{
				ID:            fmt.Sprintf("demo-entry-%d", entrySeq),
				CompetitionID: sc.id,
				DancerID:      fmt.Sprintf("demo-dancer-%d", i%len(dancerNames)+1),
			}
			if err := deps.EntryStore.Save(ctx, e); err != nil {
				return err
			}
		}
	}

	slog.Info("seed_event", "event", "demo_feis_seeded",
		"feis_id", demoFeisID, "competitions", len(comps), "dancers", len(dancerNames), "entries", entrySeq)
	return nil
}
