package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lance116/period-tracker/internal/services"
)

// GetInsights surfaces the engine's derived values for the dashboard: the
// handler fetches rows and formats JSON, the math lives in services.
func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycles, err := handler.repos.Cycles.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch cycles")
	}
	profile, err := handler.repos.Profiles.FindByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch profile")
	}

	now := time.Now().In(handler.location)
	averageCycleLength := services.AverageCycleLength(cycles)
	variability := services.CycleVariability(cycles)

	payload := fiber.Map{
		"average_cycle_length": averageCycleLength,
		"cycle_variability":    variability,
		"is_regular":           profile.IsRegular,
		"current_cycle":        nil,
		"next_period":          nil,
	}

	if current, ok := services.CurrentCycleFor(cycles, now, handler.location); ok {
		phase := services.PhaseForDay(
			current.CurrentDay,
			current.Cycle.ResolvedPeriodDuration(profile.PeriodDurationHint()),
			averageCycleLength,
		)
		payload["current_cycle"] = fiber.Map{
			"id":          current.Cycle.ID,
			"start_date":  services.DateAtLocation(current.Cycle.StartDate, handler.location).Format(dateInputLayout),
			"current_day": current.CurrentDay,
			"phase":       phase,
		}
	}

	if next, ok := services.NextPeriodPrediction(cycles, now, handler.location, nil); ok {
		payload["next_period"] = fiber.Map{
			"date":       services.DateAtLocation(next.Date, handler.location).Format(dateInputLayout),
			"days_until": next.DaysUntil,
			"confidence": next.Confidence,
		}
	}

	return c.JSON(payload)
}

func (handler *Handler) GetFuturePeriods(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycles, err := handler.repos.Cycles.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch cycles")
	}

	monthsAhead := parsePositiveQueryInt(c.Query("months"), 12, 24)
	now := time.Now().In(handler.location)
	predictions := services.FuturePeriods(cycles, now, monthsAhead, handler.location, nil)

	views := make([]fiber.Map, 0, len(predictions))
	for _, prediction := range predictions {
		views = append(views, fiber.Map{
			"date":         services.DateAtLocation(prediction.Date, handler.location).Format(dateInputLayout),
			"cycle_number": prediction.CycleNumber,
			"confidence":   prediction.Confidence,
		})
	}
	return c.JSON(views)
}
