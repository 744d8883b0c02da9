package services

import (
	"time"

	"github.com/lance116/period-tracker/internal/models"
)

type CalendarDayState struct {
	Date            time.Time `json:"date"`
	DateString      string    `json:"date_string"`
	Day             int       `json:"day"`
	InMonth         bool      `json:"in_month"`
	IsToday         bool      `json:"is_today"`
	Kind            string    `json:"kind"`
	IsPeriod        bool      `json:"is_period"`
	IsPredicted     bool      `json:"is_predicted"`
	IsFertile       bool      `json:"is_fertile"`
	IsOvulation     bool      `json:"is_ovulation"`
	WindowPredicted bool      `json:"window_predicted"`
	Confidence      float64   `json:"confidence,omitempty"`
	HasLog          bool      `json:"has_log"`
}

// BuildCalendarDayStates renders one month of classified days on a
// Sunday-aligned grid. Logged periods, projected periods, and the derived
// ovulation/fertile windows are resolved with ClassifyDay precedence;
// windows anchored to a projection rather than a logged period carry the
// WindowPredicted marker.
func BuildCalendarDayStates(monthStart time.Time, cycles []models.Cycle, profile *models.Profile, predictions []PredictedPeriod, logs []models.HealthLog, today time.Time, location *time.Location) []CalendarDayState {
	monthStart = DateAtLocation(monthStart, location)
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	periodDuration := profile.PeriodDurationHint()
	windowLength := AverageCycleLength(cycles)

	periodMap := make(map[string]bool)
	for _, cycle := range cycles {
		start := DateAtLocation(cycle.StartDate, location)
		duration := cycle.ResolvedPeriodDuration(periodDuration)
		for offset := 0; offset < duration; offset++ {
			periodMap[start.AddDate(0, 0, offset).Format("2006-01-02")] = true
		}
	}

	predictedMap := make(map[string]bool)
	confidenceMap := make(map[string]float64)
	for _, prediction := range predictions {
		start := DateAtLocation(prediction.Date, location)
		for offset := 0; offset < periodDuration; offset++ {
			key := start.AddDate(0, 0, offset).Format("2006-01-02")
			predictedMap[key] = true
			if existing, exists := confidenceMap[key]; !exists || prediction.Confidence > existing {
				confidenceMap[key] = prediction.Confidence
			}
		}
	}

	ovulationMap := make(map[string]bool)
	fertileMap := make(map[string]bool)
	windowPredictedMap := make(map[string]bool)

	markWindow := func(anchor time.Time, predicted bool) {
		ovulationKey := DateAtLocation(OvulationDay(anchor, windowLength), location).Format("2006-01-02")
		ovulationMap[ovulationKey] = true
		fertileStart, fertileEnd := FertileWindow(anchor, windowLength)
		for day := DateAtLocation(fertileStart, location); !day.After(DateAtLocation(fertileEnd, location)); day = day.AddDate(0, 0, 1) {
			key := day.Format("2006-01-02")
			fertileMap[key] = true
			if marked, exists := windowPredictedMap[key]; !exists || (marked && !predicted) {
				windowPredictedMap[key] = predicted
			}
		}
	}
	for _, cycle := range cycles {
		markWindow(DateAtLocation(cycle.StartDate, location), false)
	}
	for _, prediction := range predictions {
		markWindow(DateAtLocation(prediction.Date, location), true)
	}

	logMap := make(map[string]bool, len(logs))
	for _, entry := range logs {
		logMap[DateAtLocation(entry.LogDate, location).Format("2006-01-02")] = true
	}

	todayKey := DateAtLocation(today, location).Format("2006-01-02")

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		marks := DayMarks{
			Period:          periodMap[key],
			PredictedPeriod: predictedMap[key],
			Ovulation:       ovulationMap[key],
			Fertile:         fertileMap[key],
		}
		kind := ClassifyDay(marks)

		days = append(days, CalendarDayState{
			Date:            day,
			DateString:      key,
			Day:             day.Day(),
			InMonth:         day.Month() == monthStart.Month(),
			IsToday:         key == todayKey,
			Kind:            kind,
			IsPeriod:        kind == DayKindPeriod,
			IsPredicted:     kind == DayKindPredictedPeriod,
			IsOvulation:     kind == DayKindOvulation,
			IsFertile:       kind == DayKindFertile,
			WindowPredicted: (kind == DayKindOvulation || kind == DayKindFertile) && windowPredictedMap[key],
			Confidence:      confidenceMap[key],
			HasLog:          logMap[key],
		})
	}

	return days
}
