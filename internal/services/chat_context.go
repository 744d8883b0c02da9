package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/lance116/period-tracker/internal/models"
)

// ComposeChatContext folds the engine's derived values, the profile, and
// recent health logs into the descriptive context string the chat
// assistant receives. This is the only place engine output crosses a wire
// boundary.
func ComposeChatContext(cycles []models.Cycle, profile *models.Profile, logs []models.HealthLog, today time.Time, location *time.Location, rng *rand.Rand) string {
	var context strings.Builder

	context.WriteString(fmt.Sprintf(
		"User profile: Average cycle length is %d days, average period duration is %d days. ",
		profile.CycleLengthHint(),
		profile.PeriodDurationHint(),
	))
	if profile != nil && profile.IsRegular {
		context.WriteString("Cycles reported as regular. ")
	}

	if current, ok := CurrentCycleFor(cycles, today, location); ok {
		phase := PhaseForDay(
			current.CurrentDay,
			current.Cycle.ResolvedPeriodDuration(profile.PeriodDurationHint()),
			AverageCycleLength(cycles),
		)
		context.WriteString(fmt.Sprintf("Currently on cycle day %d, in %s phase. ", current.CurrentDay, phase))
	}

	if next, ok := NextPeriodPrediction(cycles, today, location, rng); ok {
		context.WriteString(fmt.Sprintf("Next period predicted for %s, in %d days. ",
			next.Date.Format("January 2, 2006"), next.DaysUntil))
	}

	if intervals := CycleIntervals(cycles); len(intervals) > 0 {
		recent := intervals
		if len(recent) > 3 {
			recent = recent[:3]
		}
		parts := make([]string, 0, len(recent))
		for _, interval := range recent {
			parts = append(parts, fmt.Sprintf("%d days", interval))
		}
		context.WriteString(fmt.Sprintf("Recent cycles: %s. ", strings.Join(parts, ", ")))
	}

	if len(logs) > 0 {
		context.WriteString("Recent health logs: ")
		for _, entry := range logs {
			details := make([]string, 0, 4)
			if entry.Flow != "" && entry.Flow != models.FlowNone {
				details = append(details, "flow: "+entry.Flow)
			}
			if entry.PainLevel != nil && *entry.PainLevel > 0 {
				details = append(details, fmt.Sprintf("pain level: %d/10", *entry.PainLevel))
			}
			if strings.TrimSpace(entry.Mood) != "" {
				details = append(details, "mood: "+entry.Mood)
			}
			if entry.SleepHours != nil && *entry.SleepHours > 0 {
				details = append(details, fmt.Sprintf("sleep: %.1fh", *entry.SleepHours))
			}
			if strings.TrimSpace(entry.Notes) != "" {
				details = append(details, "notes: "+strings.TrimSpace(entry.Notes))
			}
			if len(details) == 0 {
				continue
			}
			context.WriteString(fmt.Sprintf("%s (%s); ",
				DateAtLocation(entry.LogDate, location).Format("2006-01-02"),
				strings.Join(details, ", ")))
		}
	}

	return strings.TrimSpace(context.String())
}
