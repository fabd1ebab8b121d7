package scheduling

import (
	"fmt"
	"math"

	"feisworks/internal/domain/competition"
)

// Dance parameter defaults. 113 bpm is a reel; 48 bars is the standard
// grade-competition length.
const (
	DefaultTempoBPM          = 113
	DefaultBars              = 48
	DefaultTransitionSeconds = 15
)

// Per-type estimation policy: championship rounds dance one at a time with a
// longer setup; grade competitions dance two at a time.
const (
	champDancersPerRotation = 1
	champSetupMinutes       = 5
	gradeDancersPerRotation = 2
	gradeSetupMinutes       = 2
)

// Estimate is the result of one duration estimation.
type Estimate struct {
	Minutes   int
	Rotations int
	Breakdown string
}

// EstimateDuration estimates how long a competition takes to run from its
// entry count and dance parameters.
// PRE: dancersPerRotation > 0, tempoBPM > 0
// POST: Minutes includes setup; zero entries yield setup time only
func EstimateDuration(entryCount, bars, tempoBPM, dancersPerRotation, setupMinutes, transitionSeconds int) Estimate {
	if entryCount == 0 {
		return Estimate{Minutes: setupMinutes, Rotations: 0, Breakdown: "No entries"}
	}

	rotations := (entryCount + dancersPerRotation - 1) / dancersPerRotation
	secondsPerBar := 60.0 / float64(tempoBPM)
	danceSeconds := float64(bars) * secondsPerBar
	totalSeconds := float64(rotations) * (danceSeconds + float64(transitionSeconds))
	minutes := int(math.Ceil(totalSeconds/60)) + setupMinutes

	return Estimate{
		Minutes:   minutes,
		Rotations: rotations,
		Breakdown: fmt.Sprintf("%d rotation(s) of %d bars at %d bpm (%.0fs dance + %ds transition each) + %dm setup",
			rotations, bars, tempoBPM, danceSeconds, transitionSeconds, setupMinutes),
	}
}

// EstimateCompetitionDuration applies the per-type policy and dance
// parameter defaults for one competition.
func EstimateCompetitionDuration(c competition.Competition, entryCount int) Estimate {
	bars := c.Bars
	if bars <= 0 {
		bars = DefaultBars
	}
	tempo := c.TempoBPM
	if tempo <= 0 {
		tempo = DefaultTempoBPM
	}

	if c.IsChampionship() {
		return EstimateDuration(entryCount, bars, tempo, champDancersPerRotation, champSetupMinutes, DefaultTransitionSeconds)
	}
	return EstimateDuration(entryCount, bars, tempo, gradeDancersPerRotation, gradeSetupMinutes, DefaultTransitionSeconds)
}
