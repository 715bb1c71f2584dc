package aisvc

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/zenkai/taiji/core"
)

const systemPrompt = "You are a wise and supportive Tai Chi instructor providing gentle guidance to students reflecting on their practice."

const feedbackPrompt = `Please provide supportive feedback for this Tai Chi practice reflection. Give a 2-sentence summary, a supportive affirmation, and a suggested next practice or question. Keep it warm and encouraging.

Reflection: %q`

type openaiService struct {
	client *openai.Client
	model  string
	logger core.Logger
}

// NewOpenAIService builds the journal feedback generator backed by the
// OpenAI chat completions API.
func NewOpenAIService(conf *core.Config, logger core.Logger) (*openaiService, error) {
	if conf.OpenAI.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	return &openaiService{
		client: openai.NewClient(conf.OpenAI.APIKey),
		model:  conf.OpenAI.Model,
		logger: logger,
	}, nil
}

func (svc *openaiService) GenerateFeedback(ctx context.Context, reflection string) (string, error) {
	resp, err := svc.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: svc.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(feedbackPrompt, reflection)},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		svc.logger.Error(fmt.Sprintf("openai chat completion: %v", err), err)
		return "", errors.Wrap(err, "requesting feedback")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
