package services

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/lance116/period-tracker/internal/models"
)

func TestComposeChatContextFull(t *testing.T) {
	cycles := []models.Cycle{
		makeCycle(t, 1, "2024-01-01"),
		makeCycle(t, 2, "2024-01-29"),
		makeCycle(t, 3, "2024-02-26"),
	}
	pain := 6
	sleep := 7.5
	logs := []models.HealthLog{{
		UserID:     1,
		LogDate:    mustParseDay(t, "2024-03-09"),
		Flow:       models.FlowLight,
		Mood:       "tired",
		PainLevel:  &pain,
		SleepHours: &sleep,
		Notes:      "cramps in the evening",
	}}
	profile := &models.Profile{
		AverageCycleLength:    intPtr(28),
		AveragePeriodDuration: intPtr(5),
		IsRegular:             true,
	}
	today := mustParseDay(t, "2024-03-10")

	context := ComposeChatContext(cycles, profile, logs, today, time.UTC, rand.New(rand.NewSource(1)))

	for _, fragment := range []string{
		"Average cycle length is 28 days",
		"average period duration is 5 days",
		"Cycles reported as regular.",
		"Currently on cycle day 14, in follicular phase.",
		"Next period predicted for March 25, 2024, in 15 days.",
		"Recent cycles: 28 days, 28 days.",
		"2024-03-09 (flow: light, pain level: 6/10, mood: tired, sleep: 7.5h, notes: cramps in the evening)",
	} {
		if !strings.Contains(context, fragment) {
			t.Fatalf("context missing %q:\n%s", fragment, context)
		}
	}
}

func TestComposeChatContextMinimal(t *testing.T) {
	today := mustParseDay(t, "2024-03-10")

	context := ComposeChatContext(nil, &models.Profile{}, nil, today, time.UTC, nil)
	if !strings.Contains(context, "Average cycle length is 28 days") {
		t.Fatalf("expected defaults in the profile sentence:\n%s", context)
	}
	for _, fragment := range []string{"cycle day", "Next period", "Recent cycles", "health logs"} {
		if strings.Contains(context, fragment) {
			t.Fatalf("context must omit %q without data:\n%s", fragment, context)
		}
	}
	if strings.HasSuffix(context, " ") {
		t.Fatalf("context must be trimmed")
	}
}

func TestComposeChatContextSkipsEmptyLogEntries(t *testing.T) {
	logs := []models.HealthLog{{UserID: 1, LogDate: mustParseDay(t, "2024-03-09"), Flow: models.FlowNone}}
	today := mustParseDay(t, "2024-03-10")

	context := ComposeChatContext(nil, &models.Profile{}, logs, today, time.UTC, nil)
	if strings.Contains(context, "2024-03-09") {
		t.Fatalf("an empty log entry must not appear:\n%s", context)
	}
}
