package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sashabaranov/go-openai"
)

const (
	notConfiguredMessage = "AI analysis is not configured."

	recommendationSystemPrompt = "You are an expert web accessibility consultant. " +
		"Provide a clear, concise, and actionable recommendation for fixing a specific violation. " +
		"Structure your response in three parts: 1. **What it is:** 2. **Why it matters:** 3. **How to fix it:** (with a code example)."

	recommendationCacheTTL = 24 * time.Hour
)

// EnricherService attaches an AI-generated remediation recommendation to
// a violation. Failures are isolated per violation: the violation is
// always returned, with a fallback text when the provider call fails.
type EnricherService struct {
	client *openai.Client // nil when no API key is configured
	rdb    *redis.Client  // optional recommendation cache, may be nil
	logger *slog.Logger
}

func NewEnricherService(apiKey string, rdb *redis.Client, logger *slog.Logger) *EnricherService {
	e := &EnricherService{rdb: rdb, logger: logger}
	if apiKey != "" {
		e.client = openai.NewClient(apiKey)
	}
	return e
}

// Configured reports whether the AI provider is set up.
func (e *EnricherService) Configured() bool {
	return e.client != nil
}

func (e *EnricherService) Enrich(ctx context.Context, v Violation) Violation {
	description := fmt.Sprintf("%s on element: %s", v.Type, v.ElementTag)
	v.AIRecommendation = e.recommendation(ctx, description)
	return v
}

func (e *EnricherService) recommendation(ctx context.Context, description string) string {
	if e.client == nil {
		return notConfiguredMessage
	}

	cacheKey := recommendationCacheKey(description)
	if e.rdb != nil {
		if cached, err := e.rdb.Get(ctx, cacheKey).Result(); err == nil {
			return cached
		}
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT3Dot5Turbo,
		Temperature: 0.5,
		MaxTokens:   250,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: recommendationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Please provide an accessibility recommendation for the following violation: '" + description + "'"},
		},
	})
	if err != nil {
		e.logger.Warn("AI recommendation failed", "error", err)
		return fmt.Sprintf("Could not get AI recommendation: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "Could not get AI recommendation: empty response"
	}

	recommendation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if e.rdb != nil {
		if err := e.rdb.Set(ctx, cacheKey, recommendation, recommendationCacheTTL).Err(); err != nil {
			e.logger.Warn("Failed to cache AI recommendation", "error", err)
		}
	}
	return recommendation
}

func recommendationCacheKey(description string) string {
	sum := sha256.Sum256([]byte(description))
	return "ai_rec:" + hex.EncodeToString(sum[:])
}
