package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lance116/period-tracker/internal/db"
	"github.com/lance116/period-tracker/internal/models"
	"github.com/lance116/period-tracker/internal/services"
)

type healthLogInput struct {
	Flow       *string  `json:"flow"`
	Mood       *string  `json:"mood"`
	PainLevel  *int     `json:"pain_level"`
	SleepHours *float64 `json:"sleep_hours"`
	Notes      *string  `json:"notes"`
}

type healthLogView struct {
	LogDate    string   `json:"log_date"`
	Flow       string   `json:"flow"`
	Mood       string   `json:"mood,omitempty"`
	PainLevel  *int     `json:"pain_level,omitempty"`
	SleepHours *float64 `json:"sleep_hours,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

func (handler *Handler) healthLogToView(entry models.HealthLog) healthLogView {
	return healthLogView{
		LogDate:    services.DateAtLocation(entry.LogDate, handler.location).Format(dateInputLayout),
		Flow:       entry.Flow,
		Mood:       entry.Mood,
		PainLevel:  entry.PainLevel,
		SleepHours: entry.SleepHours,
		Notes:      entry.Notes,
	}
}

func (handler *Handler) ListHealthLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit := parsePositiveQueryInt(c.Query("limit"), 7, 90)
	logs, err := handler.repos.HealthLogs.ListRecentByUser(user.ID, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}

	views := make([]healthLogView, 0, len(logs))
	for _, entry := range logs {
		views = append(views, handler.healthLogToView(entry))
	}
	return c.JSON(views)
}

func (handler *Handler) UpsertHealthLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDateInput(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	var input healthLogInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Flow != nil && !models.ValidFlow(*input.Flow) {
		return apiError(c, fiber.StatusBadRequest, "invalid flow value")
	}
	if input.PainLevel != nil && (*input.PainLevel < 0 || *input.PainLevel > 10) {
		return apiError(c, fiber.StatusBadRequest, "pain level out of range")
	}
	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 24) {
		return apiError(c, fiber.StatusBadRequest, "sleep hours out of range")
	}

	dayStart, dayEnd := services.DayRange(day, handler.location)
	entry, found, err := handler.repos.HealthLogs.FindByUserAndDate(user.ID, dayStart, dayEnd)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch log")
	}
	if !found {
		entry = models.HealthLog{
			UserID:  user.ID,
			LogDate: dayStart,
			Flow:    models.FlowNone,
		}
	}

	if input.Flow != nil {
		entry.Flow = *input.Flow
	}
	if input.Mood != nil {
		entry.Mood = strings.TrimSpace(*input.Mood)
	}
	if input.PainLevel != nil {
		entry.PainLevel = input.PainLevel
	}
	if input.SleepHours != nil {
		entry.SleepHours = input.SleepHours
	}
	if input.Notes != nil {
		entry.Notes = strings.TrimSpace(*input.Notes)
	}
	entry.UpdatedAt = time.Now().In(handler.location)

	if !found {
		err = handler.repos.HealthLogs.Create(&entry)
	} else {
		err = handler.repos.HealthLogs.Save(&entry)
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save log")
	}
	return c.JSON(handler.healthLogToView(entry))
}

func (handler *Handler) DeleteHealthLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDateInput(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	dayStart, dayEnd := services.DayRange(day, handler.location)
	if err := handler.repos.HealthLogs.DeleteByUserAndDate(user.ID, dayStart, dayEnd); err != nil {
		if db.IsNotFound(err) {
			return apiError(c, fiber.StatusNotFound, "log not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete log")
	}
	return c.JSON(fiber.Map{"ok": true})
}
