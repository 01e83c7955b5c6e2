// Package agent drives the bounded tool-calling loop against the completion
// provider. The provider owns the decision of when to invoke the fetchPage
// tool; this service only supplies the capability and the step budget, and
// converts every provider failure into one fixed user-facing message.
package agent

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"

	"github.com/seo-optimizer/backend/internal/config"
	"github.com/seo-optimizer/backend/internal/model/chat"
)

// FallbackMessage is returned whenever the completion provider fails for any
// reason. It is recorded as a real assistant turn, never raised to callers.
const FallbackMessage = "I encountered an error while analyzing. Please make sure the URL is valid and try again."

// maxSteps caps one request at model -> tool -> model, bounding cost and
// ruling out infinite tool-calling loops.
const maxSteps = 3

// Service holds the tool capability and one chat model per model id. Models
// are constructed lazily, cached and reused read-only for the process
// lifetime.
type Service struct {
	cfg     config.AIConfig
	seoTool tool.InvokableTool

	mu     sync.Mutex
	models map[string]model.ToolCallingChatModel
}

// NewService constructs the orchestrator and eagerly builds the default
// chat model so misconfiguration surfaces at startup rather than on the
// first request.
func NewService(ctx context.Context, cfg config.AIConfig, seoTool tool.InvokableTool) (*Service, error) {
	s := &Service{
		cfg:     cfg,
		seoTool: seoTool,
		models:  make(map[string]model.ToolCallingChatModel),
	}

	if _, err := s.chatModel(ctx, cfg.Model); err != nil {
		return nil, fmt.Errorf("failed to create default chat model: %w", err)
	}

	return s, nil
}

// Analyze runs one agent turn over the conversation so far plus the new user
// message and returns the assistant's final text. It never returns an error:
// any provider failure yields FallbackMessage.
func (s *Service) Analyze(ctx context.Context, userMessage string, history []chat.Message, modelID string) string {
	text, err := s.generate(ctx, userMessage, history, modelID)
	if err != nil {
		log.Printf("[agent] analysis failed: %v", err)
		return FallbackMessage
	}
	return text
}

func (s *Service) generate(ctx context.Context, userMessage string, history []chat.Message, modelID string) (string, error) {
	if modelID == "" {
		modelID = s.cfg.Model
	}

	chatModel, err := s.chatModel(ctx, modelID)
	if err != nil {
		return "", err
	}

	ragent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: []tool.BaseTool{s.seoTool},
		},
		MaxStep: maxSteps,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build agent: %w", err)
	}

	output, err := ragent.Generate(ctx, buildMessages(userMessage, history))
	if err != nil {
		return "", fmt.Errorf("failed to run agent: %w", err)
	}

	log.Printf("[agent] generated response, model=%s, length=%d", modelID, len(output.Content))
	return output.Content, nil
}

// chatModel returns the cached chat model for modelID, constructing it on
// first use.
func (s *Service) chatModel(ctx context.Context, modelID string) (model.ToolCallingChatModel, error) {
	if modelID == "" {
		modelID = s.cfg.Model
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.models[modelID]; ok {
		return m, nil
	}

	m, err := s.cfg.NewChatModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	s.models[modelID] = m
	return m, nil
}

// buildMessages assembles system prompt, full prior history and the new user
// message in order.
func buildMessages(userMessage string, history []chat.Message) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))

	for _, msg := range history {
		switch msg.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		}
	}

	messages = append(messages, schema.UserMessage(userMessage))
	return messages
}
