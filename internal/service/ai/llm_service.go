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

	"github.com/puresoul/puresoul/backend/internal/config"
	"github.com/puresoul/puresoul/backend/internal/model/category"
	"github.com/puresoul/puresoul/backend/internal/model/chat"
)

// Service generates therapist replies through the configured chat model.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the model-backed reply service.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

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

// Reply generates the therapist answer for one user message under the
// session's support category.
func (s *Service) Reply(ctx context.Context, userMessage string, history []chat.Message, cat category.Category) (string, error) {
	input := map[string]any{
		"system":  cat.Prompt,
		"history": buildHistoryMessages(history),
		"query":   userMessage,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run reply chain: %w", err)
	}

	text := strings.TrimSpace(response.Content)
	if text == "" {
		text = "I'm here to listen. Could you tell me more?"
	}

	log.Printf("[ai] generated reply for category=%s, length=%d", cat.ID, len(text))
	return text, nil
}

func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		if m.Sender == chat.SenderUser {
			history = append(history, schema.UserMessage(m.Text))
		} else {
			history = append(history, schema.AssistantMessage(m.Text, nil))
		}
	}
	return history
}
