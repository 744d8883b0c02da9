package services

import (
	"time"

	"github.com/lance116/period-tracker/internal/models"
)

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
)

type CurrentCycle struct {
	Cycle      models.Cycle
	CurrentDay int
}

// CurrentCycleFor locates today's position in the most recent period that
// has already started. Records starting after today are skipped; upstream
// validation should prevent them, but a stray future row must not mis-rank
// the selection. Returns false when no record is eligible.
func CurrentCycleFor(cycles []models.Cycle, today time.Time, location *time.Location) (CurrentCycle, bool) {
	todayDay := DateAtLocation(today, location)

	var selected *models.Cycle
	var selectedStart time.Time
	for index := range cycles {
		start := DateAtLocation(cycles[index].StartDate, location)
		if start.After(todayDay) {
			continue
		}
		if selected == nil || start.After(selectedStart) {
			selected = &cycles[index]
			selectedStart = start
		}
	}
	if selected == nil {
		return CurrentCycle{}, false
	}

	currentDay := DaysBetween(selectedStart, todayDay) + 1
	if currentDay < 1 {
		currentDay = 1
	}
	return CurrentCycle{Cycle: *selected, CurrentDay: currentDay}, true
}

// PhaseForDay maps a cycle day onto a phase. Bands are inclusive and
// checked in order, so a day inside the period never resolves to
// follicular even when both thresholds admit it.
func PhaseForDay(day int, periodDuration int, averageCycleLength int) string {
	if periodDuration <= 0 {
		periodDuration = models.DefaultPeriodDuration
	}
	if averageCycleLength <= 0 {
		averageCycleLength = models.DefaultCycleLength
	}

	switch {
	case day <= periodDuration:
		return PhaseMenstrual
	case day <= roundToInt(float64(averageCycleLength)*0.5):
		return PhaseFollicular
	case day <= roundToInt(float64(averageCycleLength)*0.6):
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}

func roundToInt(value float64) int {
	return int(value + 0.5)
}
