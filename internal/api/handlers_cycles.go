package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lance116/period-tracker/internal/db"
	"github.com/lance116/period-tracker/internal/models"
	"github.com/lance116/period-tracker/internal/services"
)

type cycleInput struct {
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date"`
	PeriodDuration *int    `json:"period_duration"`
}

type cycleView struct {
	ID             uint    `json:"id"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
	PeriodDuration *int    `json:"period_duration,omitempty"`
}

func (handler *Handler) cycleToView(cycle models.Cycle) cycleView {
	view := cycleView{
		ID:             cycle.ID,
		StartDate:      services.DateAtLocation(cycle.StartDate, handler.location).Format(dateInputLayout),
		PeriodDuration: cycle.PeriodDuration,
	}
	if cycle.EndDate != nil {
		formatted := services.DateAtLocation(*cycle.EndDate, handler.location).Format(dateInputLayout)
		view.EndDate = &formatted
	}
	return view
}

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycles, err := handler.repos.Cycles.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch cycles")
	}

	views := make([]cycleView, 0, len(cycles))
	for _, cycle := range cycles {
		views = append(views, handler.cycleToView(cycle))
	}
	return c.JSON(views)
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycle, errMessage := handler.parseCyclePayload(c)
	if errMessage != "" {
		return apiError(c, fiber.StatusBadRequest, errMessage)
	}

	cycle.UserID = user.ID
	if err := handler.repos.Cycles.Create(&cycle); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save cycle")
	}
	return c.Status(fiber.StatusCreated).JSON(handler.cycleToView(cycle))
}

func (handler *Handler) UpdateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycleID, err := parseUintParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid cycle id")
	}

	existing, err := handler.repos.Cycles.FindByIDForUser(cycleID, user.ID)
	if err != nil {
		if errors.Is(err, db.ErrCycleNotFound) {
			return apiError(c, fiber.StatusNotFound, "cycle not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch cycle")
	}

	updated, errMessage := handler.parseCyclePayload(c)
	if errMessage != "" {
		return apiError(c, fiber.StatusBadRequest, errMessage)
	}

	existing.StartDate = updated.StartDate
	existing.EndDate = updated.EndDate
	existing.PeriodDuration = updated.PeriodDuration
	if err := handler.repos.Cycles.Save(&existing); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save cycle")
	}
	return c.JSON(handler.cycleToView(existing))
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycleID, err := parseUintParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid cycle id")
	}

	if err := handler.repos.Cycles.DeleteByIDForUser(cycleID, user.ID); err != nil {
		if errors.Is(err, db.ErrCycleNotFound) {
			return apiError(c, fiber.StatusNotFound, "cycle not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete cycle")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// parseCyclePayload decodes and validates a cycle body; the returned
// message is empty on success.
func (handler *Handler) parseCyclePayload(c *fiber.Ctx) (models.Cycle, string) {
	var input cycleInput
	if err := c.BodyParser(&input); err != nil {
		return models.Cycle{}, "invalid input"
	}

	start, err := parseDateInput(input.StartDate, handler.location)
	if err != nil {
		return models.Cycle{}, "invalid start date"
	}
	end, err := parseOptionalDateInput(input.EndDate, handler.location)
	if err != nil {
		return models.Cycle{}, "invalid end date"
	}

	now := time.Now().In(handler.location)
	if err := services.ValidateCycleInput(start, end, input.PeriodDuration, now, handler.location); err != nil {
		switch {
		case errors.Is(err, services.ErrCycleStartDateInFuture):
			return models.Cycle{}, "start date cannot be in the future"
		case errors.Is(err, services.ErrCycleEndBeforeStart):
			return models.Cycle{}, "end date cannot be before start date"
		default:
			return models.Cycle{}, "period duration must be positive"
		}
	}

	return models.Cycle{
		StartDate:      services.DateAtLocation(start, handler.location),
		EndDate:        end,
		PeriodDuration: input.PeriodDuration,
	}, ""
}
