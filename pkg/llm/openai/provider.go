package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/reelpilot-org/reelpilot/pkg/llm"
	"github.com/reelpilot-org/reelpilot/pkg/types"
	"github.com/sashabaranov/go-openai"
)

type Provider struct {
	client *openai.Client
	config Config
}

type Config struct {
	APIKey  string
	BaseURL string
}

func New(cfg Config) *Provider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

func (p *Provider) ID() string {
	return "openai"
}

func (p *Provider) Call(ctx context.Context, req *llm.ProviderRequest) (*llm.ProviderResponse, error) {
	msgs, err := convertMessages(req.Messages)
	if err != nil {
		return nil, fmt.Errorf("convert messages: %w", err)
	}

	openAIReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Tools:       convertTools(req.Tools),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}
	if req.ToolChoice != "" {
		openAIReq.ToolChoice = req.ToolChoice
	}
	if req.JSONMode {
		openAIReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openAIReq)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: response carried no choices")
	}

	choice := resp.Choices[0]
	return &llm.ProviderResponse{
		ID:           resp.ID,
		Model:        resp.Model,
		Content:      choice.Message.Content,
		ToolCalls:    convertToolCalls(choice.Message.ToolCalls),
		FinishReason: string(choice.FinishReason),
		Usage:        convertUsage(resp.Usage),
	}, nil
}

// mapError converts SDK failures into the shared taxonomy: any non-2xx
// response becomes *llm.APIError with the status code and body; context
// errors pass through so the client can stamp them as timeouts.
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &llm.APIError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &llm.APIError{StatusCode: reqErr.HTTPStatusCode, Body: string(reqErr.Body)}
	}
	return err
}

// Helpers

func convertMessages(msgs []types.Message) ([]openai.ChatCompletionMessage, error) {
	var result []openai.ChatCompletionMessage
	for _, m := range msgs {
		if len(m.Images) > 0 && m.Role != types.RoleUser {
			return nil, fmt.Errorf("image content is only valid on user messages (got role %q)", m.Role)
		}

		msg := openai.ChatCompletionMessage{Role: m.Role}

		if len(m.Images) > 0 {
			// Vision content rides in MultiContent; plain Content must stay
			// empty or the SDK rejects the message.
			parts := []openai.ChatMessagePart{}
			if m.Content != "" {
				parts = append(parts, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeText,
					Text: m.Content,
				})
			}
			for _, img := range m.Images {
				parts = append(parts, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    fmt.Sprintf("data:%s;base64,%s", img.MIMEType, img.Data),
						Detail: openai.ImageURLDetailAuto,
					},
				})
			}
			msg.MultiContent = parts
		} else {
			// Ensure content is never empty for API compatibility: go-openai
			// marks Content omitempty and some backends require the field.
			content := m.Content
			if content == "" {
				content = " "
			}
			msg.Content = content
		}

		if m.Role == types.RoleTool {
			msg.ToolCallID = m.ToolCallID
		}

		if len(m.ToolCalls) > 0 {
			msg.ToolCalls = make([]openai.ToolCall, len(m.ToolCalls))
			for i, tc := range m.ToolCalls {
				msg.ToolCalls[i] = openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				}
			}
		}

		result = append(result, msg)
	}
	return result, nil
}

func convertTools(tools []types.Tool) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}
	result := make([]openai.Tool, len(tools))
	for i, t := range tools {
		result[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return result
}

func convertUsage(u openai.Usage) types.Usage {
	return types.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

func convertToolCalls(calls []openai.ToolCall) []types.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	result := make([]types.ToolCall, len(calls))
	for i, c := range calls {
		result[i] = types.ToolCall{
			ID:        c.ID,
			Name:      c.Function.Name,
			Arguments: c.Function.Arguments,
		}
	}
	return result
}
