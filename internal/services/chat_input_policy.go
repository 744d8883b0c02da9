package services

import (
	"errors"
	"regexp"
	"strings"
)

const maxChatMessageLength = 1000

var (
	ErrChatMessageEmpty   = errors.New("chat message empty")
	ErrChatMessageTooLong = errors.New("chat message too long")
)

var excessNewlinesRegex = regexp.MustCompile(`\n{3,}`)

// SanitizeChatMessage trims the message and collapses newline runs, the
// same shaping the assistant proxy applies before prompting.
func SanitizeChatMessage(raw string) (string, error) {
	if len(raw) > maxChatMessageLength {
		return "", ErrChatMessageTooLong
	}
	sanitized := strings.TrimSpace(excessNewlinesRegex.ReplaceAllString(raw, "\n\n"))
	if sanitized == "" {
		return "", ErrChatMessageEmpty
	}
	return sanitized, nil
}
