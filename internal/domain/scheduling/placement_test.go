package scheduling

import (
	"testing"
	"time"

	"feisworks/internal/domain/competition"
	"feisworks/internal/domain/feis"
)

var placeFeis = feis.Feis{
	ID:         "f1",
	Name:       "Demo Feis",
	Date:       "2026-03-14",
	VenueOpen:  "08:00",
	VenueClose: "18:00",
}

func noLunchConfig() Config {
	cfg := DefaultConfig()
	cfg.LunchWindowStart = ""
	cfg.LunchWindowEnd = ""
	return cfg
}

func onePlan() []StagePlan {
	return []StagePlan{{
		StageID:   "s1",
		StageName: "Stage A",
		Coverage:  []CoverageWindow{{StartTime: "08:00", EndTime: "18:00"}},
		Track:     TrackGrades,
	}}
}

func at(day, hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day+" "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

// TestPlaceOrdersByLevelThenAge tests the end-to-end ordering scenario:
// three grade competitions registered out of order are placed consecutively
// as Beginner1, Novice, Prizewinner from 08:00 with zero gaps.
func TestPlaceOrdersByLevelThenAge(t *testing.T) {
	comps := []competition.Competition{
		gradeComp("pw-u10", "hornpipe", competition.LevelPrizewinner, "", 9, 9),
		gradeComp("b1-u8", "reel", competition.LevelBeginner1, "", 7, 7),
		gradeComp("nov-u9", "jig", competition.LevelNovice, "", 8, 8),
	}
	counts := map[string]int{"b1-u8": 10, "nov-u9": 8, "pw-u10": 6}

	result, err := Place(placeFeis, onePlan(), comps, counts, noLunchConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Placements) != 3 {
		t.Fatalf("placements = %d, want 3", len(result.Placements))
	}

	wantOrder := []string{"b1-u8", "nov-u9", "pw-u10"}
	for i, want := range wantOrder {
		if result.Placements[i].CompetitionID != want {
			t.Errorf("placement[%d] = %s, want %s", i, result.Placements[i].CompetitionID, want)
		}
	}
	if !result.Placements[0].ScheduledStart.Equal(at("2026-03-14", "08:00")) {
		t.Errorf("first start = %v, want 08:00", result.Placements[0].ScheduledStart)
	}
	for i := 1; i < len(result.Placements); i++ {
		if !result.Placements[i].ScheduledStart.Equal(result.Placements[i-1].ScheduledEnd) {
			t.Errorf("gap before %s: start %v, previous end %v",
				result.Placements[i].CompetitionID,
				result.Placements[i].ScheduledStart,
				result.Placements[i-1].ScheduledEnd)
		}
	}
	if len(result.LunchHolds) != 0 {
		t.Errorf("lunch holds = %d, want 0 with no lunch window", len(result.LunchHolds))
	}
}

// TestPlaceLargerCompetitionsFirstAmongTies tests the -entryCount tiebreak.
func TestPlaceLargerCompetitionsFirstAmongTies(t *testing.T) {
	comps := []competition.Competition{
		gradeComp("small", "reel", competition.LevelNovice, "", 8, 8),
		gradeComp("large", "jig", competition.LevelNovice, "", 8, 8),
	}
	counts := map[string]int{"small": 6, "large": 20}

	result, err := Place(placeFeis, onePlan(), comps, counts, noLunchConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Placements[0].CompetitionID != "large" {
		t.Errorf("first placement = %s, want large", result.Placements[0].CompetitionID)
	}
}

// TestPlaceInsertsLunchOnce tests that a stage gets exactly one lunch hold,
// inserted only when its cursor falls inside the window.
func TestPlaceInsertsLunchOnce(t *testing.T) {
	comps := []competition.Competition{
		gradeComp("a", "reel", competition.LevelBeginner1, "", 7, 7),
		gradeComp("b", "reel", competition.LevelBeginner1, "", 8, 8),
		gradeComp("c", "reel", competition.LevelBeginner1, "", 9, 9),
	}
	for i := range comps {
		comps[i].DurationMinutes = 30
	}
	counts := map[string]int{"a": 10, "b": 10, "c": 10}

	cfg := DefaultConfig()
	cfg.FeisStartTime = "11:50"
	cfg.LunchWindowStart = "12:00"
	cfg.LunchWindowEnd = "13:30"
	cfg.LunchDurationMinutes = 45

	result, err := Place(placeFeis, onePlan(), comps, counts, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.LunchHolds) != 1 {
		t.Fatalf("lunch holds = %d, want 1", len(result.LunchHolds))
	}
	hold := result.LunchHolds[0]
	// First competition runs 11:50-12:20; the cursor is then inside the
	// window, so lunch holds 12:20-13:05 and the second competition starts
	// at 13:05.
	if !hold.Start.Equal(at("2026-03-14", "12:20")) || !hold.End.Equal(at("2026-03-14", "13:05")) {
		t.Errorf("hold = %v-%v, want 12:20-13:05", hold.Start, hold.End)
	}
	if !result.Placements[1].ScheduledStart.Equal(hold.End) {
		t.Errorf("post-lunch start = %v, want %v", result.Placements[1].ScheduledStart, hold.End)
	}
}

// TestPlaceDurationResolution tests explicit durations, floors, estimator
// fallback and the zero-entry default.
func TestPlaceDurationResolution(t *testing.T) {
	short := gradeComp("short", "reel", competition.LevelNovice, "", 8, 8)
	short.DurationMinutes = 4 // below the grade floor
	empty := gradeComp("empty", "jig", competition.LevelNovice, "", 9, 9)
	champ := competition.Competition{
		ID: "champ", FeisID: "f1", Name: "champ", MinAge: 12, MaxAge: 14,
		Level: competition.LevelPrelimChampionship, ScoringMethod: competition.ScoringChampionship,
	}

	counts := map[string]int{"short": 8, "empty": 0, "champ": 0}
	result, err := Place(placeFeis, onePlan(), []competition.Competition{short, empty, champ}, counts, noLunchConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	durations := map[string]int{}
	for _, p := range result.Placements {
		durations[p.CompetitionID] = p.DurationMinutes
	}
	if durations["short"] != 10 {
		t.Errorf("short duration = %d, want floor 10", durations["short"])
	}
	if durations["empty"] != 15 {
		t.Errorf("empty grade duration = %d, want default 15", durations["empty"])
	}
	if durations["champ"] != 30 {
		t.Errorf("empty championship duration = %d, want default 30", durations["champ"])
	}
}

// TestPlaceBalancesAcrossStages tests earliest-cursor stage selection.
func TestPlaceBalancesAcrossStages(t *testing.T) {
	plans := []StagePlan{
		{StageID: "s1", StageName: "Stage A"},
		{StageID: "s2", StageName: "Stage B"},
	}
	var comps []competition.Competition
	counts := map[string]int{}
	for _, id := range []string{"a", "b", "c", "d"} {
		c := gradeComp(id, "reel", competition.LevelNovice, "", 8, 8)
		c.DurationMinutes = 20
		comps = append(comps, c)
		counts[id] = 10
	}

	result, err := Place(placeFeis, plans, comps, counts, noLunchConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perStage := map[string]int{}
	for _, p := range result.Placements {
		perStage[p.StageID]++
	}
	if perStage["s1"] != 2 || perStage["s2"] != 2 {
		t.Errorf("distribution = %+v, want 2 per stage", perStage)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %+v, want none", result.Warnings)
	}
}

// TestPlaceNoPlans tests that without any stage plan every competition is
// reported unplaced with a critical capacity warning.
func TestPlaceNoPlans(t *testing.T) {
	champ := competition.Competition{
		ID: "champ", FeisID: "f1", Name: "champ", MinAge: 12, MaxAge: 14,
		Level: competition.LevelOpenChampionship, ScoringMethod: competition.ScoringChampionship,
	}
	result, err := Place(placeFeis, nil, []competition.Competition{champ}, map[string]int{"champ": 9}, noLunchConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Placements) != 0 || len(result.UnplacedIDs) != 1 {
		t.Fatalf("placements = %d, unplaced = %d, want 0 and 1", len(result.Placements), len(result.UnplacedIDs))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(result.Warnings))
	}
	w := result.Warnings[0]
	if w.Code != WarningInsufficientChampPanelCapacity || w.Severity != SeverityCritical {
		t.Errorf("warning = %+v, want critical insufficient_champ_panel_capacity", w)
	}
}

// TestPlaceVenueOverrunWarning tests the venue-hours warning.
func TestPlaceVenueOverrunWarning(t *testing.T) {
	long := gradeComp("long", "reel", competition.LevelNovice, "", 8, 8)
	long.DurationMinutes = 90
	cfg := noLunchConfig()
	cfg.FeisStartTime = "17:00"
	cfg.FeisEndTime = "18:00"

	result, err := Place(placeFeis, onePlan(), []competition.Competition{long}, map[string]int{"long": 12}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, w := range result.Warnings {
		if w.Code == WarningScheduleExceedsVenueHours {
			found = true
			if w.Severity != SeverityWarning {
				t.Errorf("severity = %q, want %q", w.Severity, SeverityWarning)
			}
		}
	}
	if !found {
		t.Error("expected a schedule_exceeds_venue_hours warning")
	}
}

// TestPlaceLoadImbalanceWarning tests the >60 minute spread warning.
func TestPlaceLoadImbalanceWarning(t *testing.T) {
	plans := []StagePlan{
		{StageID: "s1", StageName: "Stage A"},
		{StageID: "s2", StageName: "Stage B"},
	}
	heavy := gradeComp("heavy", "reel", competition.LevelNovice, "", 8, 8)
	heavy.DurationMinutes = 120

	result, err := Place(placeFeis, plans, []competition.Competition{heavy}, map[string]int{"heavy": 12}, noLunchConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, w := range result.Warnings {
		if w.Code == WarningLoadImbalance {
			found = true
		}
	}
	if !found {
		t.Error("expected a load_imbalance warning")
	}
}
