package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lance116/period-tracker/internal/services"
)

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := time.Now().In(handler.location)
	monthStart := services.DateAtLocation(now, handler.location)
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, handler.location)
	if raw := c.Query("month"); raw != "" {
		parsed, err := parseMonthInput(raw, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
		monthStart = parsed
	}

	cycles, err := handler.repos.Cycles.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch cycles")
	}
	profile, err := handler.repos.Profiles.FindByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch profile")
	}
	logs, err := handler.repos.HealthLogs.ListRecentByUser(user.ID, 90)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}

	// Project far enough to cover any month the client can page to.
	predictions := services.FuturePeriods(cycles, now, 24, handler.location, nil)
	days := services.BuildCalendarDayStates(monthStart, cycles, &profile, predictions, logs, now, handler.location)

	return c.JSON(fiber.Map{
		"month": monthStart.Format("2006-01"),
		"days":  days,
	})
}
