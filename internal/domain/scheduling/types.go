package scheduling

import "time"

// Severities for warnings and conflicts. Critical warnings flag operator
// attention but never abort a run.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
	SeverityError    = "error"
)

// Warning codes.
const (
	WarningSmallCompExhibitionRisk        = "small_comp_exhibition_risk"
	WarningNoJudgeCoverage                = "no_judge_coverage"
	WarningInsufficientChampPanelCapacity = "insufficient_champ_panel_capacity"
	WarningScheduleExceedsVenueHours      = "schedule_exceeds_venue_hours"
	WarningLoadImbalance                  = "load_imbalance"
)

// Conflict types.
const (
	ConflictSibling                 = "sibling"
	ConflictAdjudicatorSchool       = "adjudicator_school"
	ConflictAdjudicatorDoubleBooked = "adjudicator_double_booked"
	ConflictAdjudicatorUnavailable  = "adjudicator_unavailable"
	ConflictDancerDoubleBooked      = "dancer_double_booked"
)

// Merge/split reasons and methods.
const (
	MergeReasonMinCompSize = "min_comp_size"
	SplitReasonMaxCompSize = "max_comp_size"
	SplitAssignmentRandom  = "random"
)

// Config holds the tunables for one scheduler run. Zero values are filled
// from the feis settings and then from DefaultConfig by the orchestrator.
type Config struct {
	MinCompSize          int    `json:"min_comp_size"`
	MaxCompSize          int    `json:"max_comp_size"`
	LunchWindowStart     string `json:"lunch_window_start"` // HH:MM, "" disables lunch holds
	LunchWindowEnd       string `json:"lunch_window_end"`   // HH:MM
	LunchDurationMinutes int    `json:"lunch_duration_minutes"`
	AllowTwoYearMergeUp  bool   `json:"allow_two_year_merge_up"`
	StrictNoExhibition   bool   `json:"strict_no_exhibition"`
	FeisStartTime        string `json:"feis_start_time"` // HH:MM
	FeisEndTime          string `json:"feis_end_time"`   // HH:MM
	DefaultGradeDuration int    `json:"default_grade_duration"`
	DefaultChampDuration int    `json:"default_champ_duration"`
	MinGradeDuration     int    `json:"min_grade_duration"`
	MinChampDuration     int    `json:"min_champ_duration"`
}

// ConfigOverride carries per-run overrides of Config. Zero values mean
// "not set" and fall through; the booleans are pointers so an absent flag is
// distinguishable from an explicit false.
type ConfigOverride struct {
	MinCompSize          int    `json:"min_comp_size"`
	MaxCompSize          int    `json:"max_comp_size"`
	LunchWindowStart     string `json:"lunch_window_start"`
	LunchWindowEnd       string `json:"lunch_window_end"`
	LunchDurationMinutes int    `json:"lunch_duration_minutes"`
	AllowTwoYearMergeUp  *bool  `json:"allow_two_year_merge_up"`
	StrictNoExhibition   *bool  `json:"strict_no_exhibition"`
	FeisStartTime        string `json:"feis_start_time"`
	FeisEndTime          string `json:"feis_end_time"`
	DefaultGradeDuration int    `json:"default_grade_duration"`
	DefaultChampDuration int    `json:"default_champ_duration"`
	MinGradeDuration     int    `json:"min_grade_duration"`
	MinChampDuration     int    `json:"min_champ_duration"`
}

// DefaultConfig returns the standard scheduler settings.
func DefaultConfig() Config {
	return Config{
		MinCompSize:          5,
		MaxCompSize:          25,
		LunchWindowStart:     "12:00",
		LunchWindowEnd:       "13:30",
		LunchDurationMinutes: 45,
		AllowTwoYearMergeUp:  true,
		FeisStartTime:        "08:00",
		FeisEndTime:          "18:00",
		DefaultGradeDuration: 15,
		DefaultChampDuration: 30,
		MinGradeDuration:     10,
		MinChampDuration:     20,
	}
}

// MergeAction records one merge-up: the source competition's dancers move
// into the older target bracket and the source leaves the schedulable set.
type MergeAction struct {
	SourceCompetitionID string `json:"source_competition_id"`
	TargetCompetitionID string `json:"target_competition_id"`
	SourceAgeRange      string `json:"source_age_range"`
	TargetAgeRange      string `json:"target_age_range"`
	DancersMoved        int    `json:"dancers_moved"`
	Reason              string `json:"reason"`
	Rationale           string `json:"rationale"`
}

// SplitAction records the intent to split an oversized competition into two
// groups. Creating the actual sub-competitions is the organizer's call, so
// NewCompetitionID stays empty until then.
type SplitAction struct {
	OriginalCompetitionID string `json:"original_competition_id"`
	NewCompetitionID      string `json:"new_competition_id"`
	OriginalSize          int    `json:"original_size"`
	GroupASize            int    `json:"group_a_size"`
	GroupBSize            int    `json:"group_b_size"`
	Reason                string `json:"reason"`
	AssignmentMethod      string `json:"assignment_method"`
}

// Warning flags an expected infeasibility. The run continues regardless of
// severity; warnings only steer operator attention.
type Warning struct {
	Code           string   `json:"code"`
	Message        string   `json:"message"`
	CompetitionIDs []string `json:"competition_ids,omitempty"`
	StageIDs       []string `json:"stage_ids,omitempty"`
	Severity       string   `json:"severity"`
}

// Conflict is one finding from the conflict detector.
type Conflict struct {
	Type                   string   `json:"conflict_type"`
	Severity               string   `json:"severity"`
	Message                string   `json:"message"`
	AffectedCompetitionIDs []string `json:"affected_competition_ids,omitempty"`
	AffectedDancerIDs      []string `json:"affected_dancer_ids,omitempty"`
	AffectedStageIDs       []string `json:"affected_stage_ids,omitempty"`
}

// Placement is one competition slotted onto a stage.
type Placement struct {
	CompetitionID   string    `json:"competition_id"`
	StageID         string    `json:"stage_id"`
	ScheduledStart  time.Time `json:"scheduled_start"`
	ScheduledEnd    time.Time `json:"scheduled_end"`
	DurationMinutes int       `json:"duration_minutes"`
	EntryCount      int       `json:"entry_count"`
}

// LunchHold is the reserved non-competition block inserted at most once per
// stage per run.
type LunchHold struct {
	StageID string    `json:"stage_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// StagePlan is one stage made schedulable: its judge coverage for the day
// and which track of the syllabus it can host.
type StagePlan struct {
	StageID             string
	StageName           string
	Coverage            []CoverageWindow
	ChampionshipCapable bool
	Track               string
}

// CoverageWindow is one judge-coverage window inside a stage plan.
type CoverageWindow struct {
	AdjudicatorID string
	StartTime     string // HH:MM
	EndTime       string // HH:MM
}

// NormalizationResult is the outcome of merging and split flagging.
type NormalizationResult struct {
	Merges                []MergeAction
	Splits                []SplitAction
	Warnings              []Warning
	SchedulableIDs        []string       // competitions that survive into placement, input order
	EntryCounts           map[string]int // effective counts after merges
	TotalCompetitions     int
	MergedCount           int
	SplitCount            int
	FinalCompetitionCount int
}

// PlacementResult is the outcome of the greedy bin-packing pass.
type PlacementResult struct {
	Placements  []Placement
	LunchHolds  []LunchHold
	Warnings    []Warning
	UnplacedIDs []string
}

// Summary carries the counts downstream consumers display.
type Summary struct {
	ScheduledCount    int `json:"scheduled_count"`
	UnscheduledCount  int `json:"unscheduled_count"`
	GradeCount        int `json:"grade_count"`
	ChampionshipCount int `json:"championship_count"`
	MergeCount        int `json:"merge_count"`
	SplitCount        int `json:"split_count"`
	WarningCount      int `json:"warning_count"`
	ConflictCount     int `json:"conflict_count"`
	LunchHoldCount    int `json:"lunch_hold_count"`
}

// SchedulerResult is the consolidated report of one scheduler run.
type SchedulerResult struct {
	FeisID     string        `json:"feis_id"`
	Placements []Placement   `json:"placements"`
	LunchHolds []LunchHold   `json:"lunch_holds"`
	Merges     []MergeAction `json:"merges"`
	Splits     []SplitAction `json:"splits"`
	Warnings   []Warning     `json:"warnings"`
	Conflicts  []Conflict    `json:"conflicts"`
	Summary    Summary       `json:"summary"`
}
