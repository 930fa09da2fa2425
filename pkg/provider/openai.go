package provider

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

/*
OpenAIProvider generates directive text via the OpenAI API.
*/
type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{client: &client}
}

func (prvdr *OpenAIProvider) Generate(ctx context.Context, params Params) (string, error) {
	completion, err := prvdr.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(params.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(params.System),
			openai.UserMessage(params.User),
		},
		Temperature: openai.Float(params.Temperature),
		MaxTokens:   openai.Int(params.MaxTokens),
	})

	if err != nil {
		log.Error("openai generation failed", "error", err)
		return "", err
	}

	if len(completion.Choices) == 0 {
		log.Warn("openai returned no choices")
		return "", nil
	}

	return completion.Choices[0].Message.Content, nil
}
