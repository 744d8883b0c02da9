package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lance116/period-tracker/internal/services"
)

type profileInput struct {
	AverageCycleLength    *int  `json:"average_cycle_length"`
	AveragePeriodDuration *int  `json:"average_period_duration"`
	IsRegular             *bool `json:"is_regular"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.repos.Profiles.FindByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch profile")
	}
	return c.JSON(fiber.Map{
		"average_cycle_length":    profile.AverageCycleLength,
		"average_period_duration": profile.AveragePeriodDuration,
		"is_regular":              profile.IsRegular,
	})
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input profileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := services.ValidateProfileInput(input.AverageCycleLength, input.AveragePeriodDuration); err != nil {
		if errors.Is(err, services.ErrProfileCycleLengthOutOfRange) {
			return apiError(c, fiber.StatusBadRequest, "cycle length out of range")
		}
		return apiError(c, fiber.StatusBadRequest, "period duration out of range")
	}

	if _, err := handler.repos.Profiles.FindByUser(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch profile")
	}

	updates := map[string]any{"updated_at": time.Now().In(handler.location)}
	if input.AverageCycleLength != nil {
		updates["average_cycle_length"] = *input.AverageCycleLength
	}
	if input.AveragePeriodDuration != nil {
		updates["average_period_duration"] = *input.AveragePeriodDuration
	}
	if input.IsRegular != nil {
		updates["is_regular"] = *input.IsRegular
	}

	if err := handler.repos.Profiles.UpdateForUser(user.ID, updates); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}

	profile, err := handler.repos.Profiles.FindByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch profile")
	}
	return c.JSON(fiber.Map{
		"average_cycle_length":    profile.AverageCycleLength,
		"average_period_duration": profile.AveragePeriodDuration,
		"is_regular":              profile.IsRegular,
	})
}
