package services

import (
	"math"
	"sort"

	"github.com/lance116/period-tracker/internal/models"
)

// SortCyclesByStartDesc returns a copy of the records ordered most recent
// first, the fixed ordering the rest of the engine assumes.
func SortCyclesByStartDesc(cycles []models.Cycle) []models.Cycle {
	sorted := make([]models.Cycle, 0, len(cycles))
	sorted = append(sorted, cycles...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StartDate.Equal(sorted[j].StartDate) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})
	return sorted
}

// CycleIntervals derives the observed cycle lengths: the absolute
// day-difference between each adjacent pair of period starts. N records
// yield N-1 intervals; fewer than two records yield none.
func CycleIntervals(cycles []models.Cycle) []int {
	if len(cycles) < 2 {
		return nil
	}

	sorted := SortCyclesByStartDesc(cycles)
	intervals := make([]int, 0, len(sorted)-1)
	for index := 0; index < len(sorted)-1; index++ {
		difference := DaysBetween(sorted[index+1].StartDate, sorted[index].StartDate)
		if difference < 0 {
			difference = -difference
		}
		intervals = append(intervals, difference)
	}
	return intervals
}

// AverageCycleLength is the rounded mean of the observed intervals, or the
// 28-day default while there is no usable history.
func AverageCycleLength(cycles []models.Cycle) int {
	intervals := CycleIntervals(cycles)
	if len(intervals) == 0 {
		return models.DefaultCycleLength
	}

	var total int
	for _, interval := range intervals {
		total += interval
	}
	return int(math.Round(float64(total) / float64(len(intervals))))
}

// CycleVariability is the population standard deviation of the observed
// intervals. Fewer than two intervals carry no spread signal and yield 0.
func CycleVariability(cycles []models.Cycle) float64 {
	intervals := CycleIntervals(cycles)
	if len(intervals) < 2 {
		return 0
	}

	var total float64
	for _, interval := range intervals {
		total += float64(interval)
	}
	mean := total / float64(len(intervals))

	var squaredSum float64
	for _, interval := range intervals {
		deviation := float64(interval) - mean
		squaredSum += deviation * deviation
	}
	return math.Sqrt(squaredSum / float64(len(intervals)))
}
