package provider

import (
	"context"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"
)

/*
AnthropicProvider generates directive text via the Anthropic API.
*/
type AnthropicProvider struct {
	client *anthropic.Client
}

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{client: &client}
}

func (prvdr *AnthropicProvider) Generate(ctx context.Context, params Params) (string, error) {
	message, err := prvdr.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(params.Model),
		MaxTokens: params.MaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: params.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(params.User)),
		},
		Temperature: anthropic.Float(params.Temperature),
	})

	if err != nil {
		log.Error("anthropic generation failed", "error", err)
		return "", err
	}

	var sb strings.Builder

	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}

	return sb.String(), nil
}
