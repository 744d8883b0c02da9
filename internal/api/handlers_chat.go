package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lance116/period-tracker/internal/chat"
	"github.com/lance116/period-tracker/internal/models"
	"github.com/lance116/period-tracker/internal/services"
)

const chatHistoryLimit = 50
const chatPromptHistoryTurns = 10

type chatInput struct {
	Message string `json:"message"`
}

func (handler *Handler) PostChat(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.chatClient == nil || !handler.chatClient.Available() {
		return apiError(c, fiber.StatusServiceUnavailable, "chat assistant unavailable")
	}

	var input chatInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	message, err := services.SanitizeChatMessage(input.Message)
	if err != nil {
		if errors.Is(err, services.ErrChatMessageTooLong) {
			return apiError(c, fiber.StatusBadRequest, "message too long")
		}
		return apiError(c, fiber.StatusBadRequest, "message cannot be empty")
	}

	now := time.Now().In(handler.location)
	allowed, remaining := handler.chatLimiter.allow(user.ID, now, chatRateLimitMax, chatRateLimitWindow)
	c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if !allowed {
		return apiError(c, fiber.StatusTooManyRequests, "rate limit exceeded")
	}

	cycles, err := handler.repos.Cycles.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch cycles")
	}
	profile, err := handler.repos.Profiles.FindByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch profile")
	}
	logs, err := handler.repos.HealthLogs.ListRecentByUser(user.ID, 7)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}
	history, err := handler.recentChatHistory(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch chat history")
	}

	userContext := services.ComposeChatContext(cycles, &profile, logs, now, handler.location, nil)

	turns := make([]chat.Turn, 0, chatPromptHistoryTurns)
	start := len(history) - chatPromptHistoryTurns
	if start < 0 {
		start = 0
	}
	for _, entry := range history[start:] {
		role := "assistant"
		if entry.IsUser {
			role = "user"
		}
		turns = append(turns, chat.Turn{Role: role, Content: entry.Content})
	}

	reply, err := handler.chatClient.Reply(c.Context(), userContext, turns, message)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "chat assistant failed")
	}

	userMessage := models.ChatMessage{UserID: user.ID, Content: message, IsUser: true, CreatedAt: now}
	if err := handler.repos.ChatMessages.Create(&userMessage); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save message")
	}
	botMessage := models.ChatMessage{UserID: user.ID, Content: reply, IsUser: false, CreatedAt: time.Now().In(handler.location)}
	if err := handler.repos.ChatMessages.Create(&botMessage); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save message")
	}
	handler.chatHistory.Evict(user.ID)

	return c.JSON(fiber.Map{"reply": reply})
}

func (handler *Handler) GetChatHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	history, err := handler.recentChatHistory(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch chat history")
	}

	views := make([]fiber.Map, 0, len(history))
	for _, entry := range history {
		views = append(views, fiber.Map{
			"content":    entry.Content,
			"is_user":    entry.IsUser,
			"created_at": entry.CreatedAt,
		})
	}
	return c.JSON(views)
}

// recentChatHistory serves from the per-user cache and falls back to the
// database on miss.
func (handler *Handler) recentChatHistory(userID uint) ([]models.ChatMessage, error) {
	if cached, ok := handler.chatHistory.Get(userID); ok {
		return cached, nil
	}
	messages, err := handler.repos.ChatMessages.ListRecentByUser(userID, chatHistoryLimit)
	if err != nil {
		return nil, err
	}
	handler.chatHistory.Put(userID, messages)
	return messages, nil
}
