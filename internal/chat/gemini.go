// Package chat talks to the hosted Gemini completion endpoint on behalf of
// the assistant and keeps a small per-user history cache.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash-lite"

const personaPrompt = "You are Perica, a period tracking assistant. Be conversational, casual yet professional, like texting a knowledgeable friend. Keep responses concise (1-3 sentences max). Never use em dashes. You're an expert on female health: periods, cycles, ovulation, PMS, pregnancy symptoms, menstrual phases, fertility, hormones, and all related topics. Be supportive and informative without being clinical or overly formal."

var ErrNotConfigured = errors.New("chat assistant not configured")

// Turn is one prior exchange line carried into the prompt for continuity.
type Turn struct {
	Role    string
	Content string
}

type Client struct {
	apiKey string
	model  string
}

func NewClient(apiKey string, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{apiKey: apiKey, model: model}
}

func (client *Client) Available() bool {
	return client.apiKey != ""
}

// Reply sends the composed user context, recent conversation, and the new
// message to Gemini and returns the assistant's text. Transient upstream
// failures are retried with jittered backoff before giving up.
func (client *Client) Reply(ctx context.Context, userContext string, history []Turn, message string) (string, error) {
	if !client.Available() {
		return "", ErrNotConfigured
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  client.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: client.buildPrompt(userContext, history, message)},
			},
		},
	}

	temperature := float32(0.7)
	maxTokens := int32(256)
	generateConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: maxTokens,
	}

	var reply string
	err = retry.Do(
		func() error {
			response, genErr := genaiClient.Models.GenerateContent(ctx, client.model, contents, generateConfig)
			if genErr != nil {
				return genErr
			}
			text, extractErr := extractText(response)
			if extractErr != nil {
				return extractErr
			}
			reply = text
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.RetryIf(isTransientError),
	)
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}
	return reply, nil
}

func (client *Client) buildPrompt(userContext string, history []Turn, message string) string {
	var prompt strings.Builder
	prompt.WriteString(personaPrompt)
	if userContext != "" {
		prompt.WriteString("\n\nUser context: ")
		prompt.WriteString(userContext)
	}
	if len(history) > 0 {
		prompt.WriteString("\n\nPrevious conversation context:\n")
		for _, turn := range history {
			prompt.WriteString(turn.Role)
			prompt.WriteString(": ")
			prompt.WriteString(turn.Content)
			prompt.WriteString("\n")
		}
	}
	prompt.WriteString("\nuser: ")
	prompt.WriteString(message)
	return prompt.String()
}

func extractText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 {
		return "", errors.New("empty response from gemini")
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in gemini response")
	}
	text := strings.TrimSpace(candidate.Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("empty text in gemini response")
	}
	return text, nil
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"rate limit", "quota", "timeout", "deadline", "unavailable",
		"internal server error", "502", "503", "504",
	} {
		if strings.Contains(message, indicator) {
			return true
		}
	}
	// Empty candidates come back occasionally on healthy connections.
	return strings.Contains(message, "empty response")
}
