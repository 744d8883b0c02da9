package services

import "time"

// OvulationDay places ovulation by the luteal-phase counting convention:
// floor(cycleLength/2) - 1 days after the period start.
func OvulationDay(periodStart time.Time, cycleLength int) time.Time {
	return periodStart.AddDate(0, 0, cycleLength/2-1)
}

// FertileWindow is the inclusive 7-day span around ovulation: five days
// before, ovulation itself, and one day after.
func FertileWindow(periodStart time.Time, cycleLength int) (time.Time, time.Time) {
	ovulation := OvulationDay(periodStart, cycleLength)
	return ovulation.AddDate(0, 0, -5), ovulation.AddDate(0, 0, 1)
}

const (
	DayKindPeriod          = "period"
	DayKindPredictedPeriod = "predicted_period"
	DayKindOvulation       = "ovulation"
	DayKindFertile         = "fertile"
	DayKindRegular         = "regular"
)

// DayMarks carries the raw window memberships of one calendar day before
// precedence is applied.
type DayMarks struct {
	Period          bool
	PredictedPeriod bool
	Ovulation       bool
	Fertile         bool
}

// ClassifyDay resolves overlapping windows in priority order: logged
// period, predicted period, ovulation, fertile, regular. A period day is
// never also reported as fertile even when the arithmetic windows overlap.
func ClassifyDay(marks DayMarks) string {
	switch {
	case marks.Period:
		return DayKindPeriod
	case marks.PredictedPeriod:
		return DayKindPredictedPeriod
	case marks.Ovulation:
		return DayKindOvulation
	case marks.Fertile:
		return DayKindFertile
	default:
		return DayKindRegular
	}
}
