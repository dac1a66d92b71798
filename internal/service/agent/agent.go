// Package agent wires the tool-calling chat model into a ReAct agent. The
// orchestrator treats the agent as an opaque capability: message in, reply of
// an unspecified shape out.
package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"

	"github.com/nimbleshop/assistant/internal/config"
	"github.com/nimbleshop/assistant/internal/model/chat"
	"github.com/nimbleshop/assistant/internal/tools"
)

// Service runs the shopping-assistant agent.
type Service struct {
	agent *react.Agent
	cfg   config.AIConfig
}

// NewService authenticates against the model provider and registers the full
// tool set. Failure leaves the caller without an agent; there is no partial
// initialization.
func NewService(ctx context.Context, cfg config.AIConfig, toolset *tools.Toolset) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	toolList, err := toolset.All()
	if err != nil {
		return nil, fmt.Errorf("failed to build tool set: %w", err)
	}

	ra, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: chatModel,
		ToolsConfig:      compose.ToolsNodeConfig{Tools: toolList},
		MaxStep:          12,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build agent: %w", err)
	}

	log.Printf("[agent] initialized with %d tools, model=%s", len(toolList), cfg.Model)
	return &Service{agent: ra, cfg: cfg}, nil
}

// Invoke runs one agent turn over the conversation so far. The model call is
// deliberately not bounded by a local timeout; the caller's ctx governs
// cancellation.
func (s *Service) Invoke(ctx context.Context, history []chat.Message, userMessage string) (any, error) {
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, buildHistoryMessages(history)...)
	messages = append(messages, schema.UserMessage(userMessage))

	response, err := s.agent.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("agent generation failed: %w", err)
	}

	log.Printf("[agent] generated response, length=%d", len(response.Content))
	return response, nil
}

// ModelInfo describes the configured model for status reporting.
func (s *Service) ModelInfo() map[string]any {
	return map[string]any{
		"model":       s.cfg.Model,
		"region":      s.cfg.Region,
		"auth_method": s.cfg.AuthMethod(),
	}
}

func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	const historyLimit = 10

	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > historyLimit {
		startIdx = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
