package services

import (
	"math"
	"math/rand"
	"time"

	"github.com/lance116/period-tracker/internal/models"
)

type PredictedPeriod struct {
	Date        time.Time `json:"date"`
	CycleNumber int       `json:"cycle_number"`
	Confidence  float64   `json:"confidence"`
}

type NextPeriod struct {
	DaysUntil  int       `json:"days_until"`
	Date       time.Time `json:"date"`
	Confidence float64   `json:"confidence"`
}

// FuturePeriods projects period starts forward from the latest eligible
// record out to today+monthsAhead. Each step advances by the average cycle
// length plus a damped jitter bounded by a quarter of the observed
// variability, so projections for irregular histories wobble the way real
// cycles do without swinging wildly. Confidence decays 5% per cycle and
// floors at 0.5.
//
// The jitter makes repeated calls disagree on exact dates; pass a seeded
// rng to pin the sequence, or nil for the shared source.
func FuturePeriods(cycles []models.Cycle, today time.Time, monthsAhead int, location *time.Location, rng *rand.Rand) []PredictedPeriod {
	current, ok := CurrentCycleFor(cycles, today, location)
	if !ok || monthsAhead <= 0 {
		return []PredictedPeriod{}
	}

	averageLength := AverageCycleLength(cycles)
	variability := CycleVariability(cycles)

	todayDay := DateAtLocation(today, location)
	horizon := todayDay.AddDate(0, monthsAhead, 0)
	cursor := DateAtLocation(current.Cycle.StartDate, location)

	predictions := make([]PredictedPeriod, 0)
	for cycleNumber := 1; ; cycleNumber++ {
		noise := (randomFloat(rng) - 0.5) * variability * 0.5
		step := int(math.Round(float64(averageLength) + noise))
		if step < 1 {
			step = 1
		}
		cursor = cursor.AddDate(0, 0, step)
		if cursor.After(horizon) {
			break
		}

		confidence := 1 - float64(cycleNumber)*0.05
		if confidence < 0.5 {
			confidence = 0.5
		}
		predictions = append(predictions, PredictedPeriod{
			Date:        cursor,
			CycleNumber: cycleNumber,
			Confidence:  confidence,
		})
	}
	return predictions
}

// NextPeriodPrediction is the first entry of a one-month projection,
// expressed as days from today. Returns false when nothing falls inside
// the month.
func NextPeriodPrediction(cycles []models.Cycle, today time.Time, location *time.Location, rng *rand.Rand) (NextPeriod, bool) {
	predictions := FuturePeriods(cycles, today, 1, location, rng)
	if len(predictions) == 0 {
		return NextPeriod{}, false
	}

	first := predictions[0]
	daysUntil := DaysBetween(DateAtLocation(today, location), DateAtLocation(first.Date, location))
	if daysUntil < 0 {
		daysUntil = 0
	}
	return NextPeriod{
		DaysUntil:  daysUntil,
		Date:       first.Date,
		Confidence: first.Confidence,
	}, true
}

func randomFloat(rng *rand.Rand) float64 {
	if rng != nil {
		return rng.Float64()
	}
	return rand.Float64()
}
