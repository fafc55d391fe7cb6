package openai

import (
	"context"
	"fmt"
	"time"

	"ai-learning-be/pkg/llm"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const defaultTimeout = 120 * time.Second

// Provider implements llm.LLMProvider on the OpenAI chat completions API.
// A custom base URL makes it work against any OpenAI-compatible endpoint
// (OpenRouter, vLLM, etc).
type Provider struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// Ensure Provider implements LLMProvider
var _ llm.LLMProvider = (*Provider)(nil)

func NewProvider(apiKey, baseURL, model string) *Provider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Provider{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: defaultTimeout,
	}
}

func (p *Provider) buildParams(history []llm.Message, options *llm.Options) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case llm.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(options.Temperature),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	return params
}

// Chat sends the full history and blocks for the complete response.
func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	completion, err := p.client.Chat.Completions.New(ctx, p.buildParams(history, options))
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return completion.Choices[0].Message.Content, nil
}

// ChatStream sends the history and forwards deltas as they arrive. Tokens are
// delivered in generation order with no buffering; a mid-stream failure is
// sent as a final StreamDelta with Err set before the channel closes.
func (p *Provider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamDelta, error) {
	options := &llm.Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, p.buildParams(history, options))

	ch := make(chan llm.StreamDelta)
	go func() {
		defer close(ch)
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			token := chunk.Choices[0].Delta.Content
			if token == "" {
				continue
			}
			select {
			case ch <- llm.StreamDelta{Token: token}:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil {
			select {
			case ch <- llm.StreamDelta{Err: err}:
			case <-ctx.Done():
			}
		}
	}()

	return ch, nil
}

// Generate sends a single prompt to the model (convenience method)
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
