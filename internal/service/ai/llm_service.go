package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/evateli/globetalk/internal/config"
	"github.com/evateli/globetalk/internal/model/chat"
)

// Service wraps the chat model behind the conversation chain and the
// one-shot country prompts.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the AI service from configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, cfg)
}

// NewServiceWithModel builds the service around an existing chat model.
func NewServiceWithModel(ctx context.Context, chatModel model.ChatModel, cfg config.AIConfig) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
		chain:     runnable,
	}, nil
}

// StreamingEnabled reports whether SSE streaming replies are configured.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// Reply runs one conversation turn: the full ordered history plus the new
// user input through the chain.
func (s *Service) Reply(ctx context.Context, sessionID string, turns []chat.Turn, userInput string) (string, error) {
	response, err := s.chain.Invoke(ctx, s.buildChainInput(turns, userInput))
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}

	log.Printf("[ai] generated reply for session=%s, length=%d", sessionID, len(response.Content))
	return response.Content, nil
}

// StreamReply streams a conversation turn through the chain.
func (s *Service) StreamReply(ctx context.Context, sessionID string, turns []chat.Turn, userInput string) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	stream, err := s.chain.Stream(ctx, s.buildChainInput(turns, userInput))
	if err != nil {
		return nil, fmt.Errorf("failed to stream chat chain output: %w", err)
	}

	return stream, nil
}

// Opening generates the persona's first message from the system prompt alone.
func (s *Service) Opening(ctx context.Context, systemPrompt string) (string, error) {
	response, err := s.chatModel.Generate(ctx, []*schema.Message{schema.SystemMessage(systemPrompt)})
	if err != nil {
		return "", fmt.Errorf("failed to generate opening greeting: %w", err)
	}
	return response.Content, nil
}

// FlagEmoji asks the model for just the flag emoji of a country.
// Deterministic: temperature 0.
func (s *Service) FlagEmoji(ctx context.Context, country string) (string, error) {
	return s.generateOnce(ctx, flagSystemPrompt, fmt.Sprintf("Flag emoji for: %s", country))
}

// VerifyCountry returns the model's verbatim verification reply for a
// country name. Deterministic: temperature 0.
func (s *Service) VerifyCountry(ctx context.Context, country string) (string, error) {
	return s.generateOnce(ctx, verifySystemPrompt, fmt.Sprintf("Verify this country name: %s", country))
}

// CapitalCity resolves the capital city of a country.
func (s *Service) CapitalCity(ctx context.Context, country string) (string, error) {
	return s.generateOnce(ctx, capitalSystemPrompt, fmt.Sprintf("Capital city of: %s", country))
}

// CountrySummary produces a short factual summary of a country.
func (s *Service) CountrySummary(ctx context.Context, country string) (string, error) {
	return s.generateOnce(ctx, summarySystemPrompt, fmt.Sprintf("Summarize: %s", country))
}

// generateOnce runs a single deterministic system+user exchange outside the
// conversation chain.
func (s *Service) generateOnce(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	response, err := s.chatModel.Generate(ctx, messages, model.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	return strings.TrimSpace(response.Content), nil
}

// buildChainInput splits stored turns into the chain slots: the system
// turn, the conversation history and the new query. A restarted session
// appends a fresh system turn, so the latest one wins.
func (s *Service) buildChainInput(turns []chat.Turn, userInput string) map[string]any {
	system := ""
	history := make([]*schema.Message, 0, len(turns))

	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleSystem:
			system = turn.Content
		case chat.RoleUser:
			history = append(history, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}

	return map[string]any{
		"system":  system,
		"history": history,
		"query":   userInput,
	}
}
