package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lance116/period-tracker/internal/chat"
	"github.com/lance116/period-tracker/internal/db"
)

type Handler struct {
	repos        *db.Repositories
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	chatClient   *chat.Client
	chatHistory  *chat.HistoryCache
	chatLimiter  *rateLimiter
}

func NewHandler(repos *db.Repositories, secretKey string, location *time.Location, cookieSecure bool, chatClient *chat.Client) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		repos:        repos,
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		chatClient:   chatClient,
		chatHistory:  chat.NewHistoryCache(5 * time.Minute),
		chatLimiter:  newRateLimiter(),
	}
}

const (
	authCookieName      = "perica_auth"
	contextUserKey      = "current_user"
	defaultAuthTokenTTL = 7 * 24 * time.Hour
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
