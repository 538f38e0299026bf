package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// classifyPrompt требует от модели строго JSON без преамбулы и markdown:
// такой ответ парсится напрямую.
const classifyPrompt = `You are an intent classifier for a task management bot.
Determine which operation the user requests: create, read, update, delete or list.
Extract the relevant fields: "description" (the task text) and "id" (the task number).
Respond with ONLY valid JSON (no markdown, no preamble):
{"label":"create|read|update|delete|list","slots":{"description":"...","id":"..."}}
Omit slots that are not present in the message.
If the message is not a task operation at all, respond {"label":"unknown","slots":{}}.`

// OpenAIClassifier — продакшен-бэкенд поверх chat completions.
// Температура нулевая: классификация должна быть воспроизводимой.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   200,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifyPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return Classification{}, fmt.Errorf("запрос к классификатору: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Classification{}, errors.New("пустой ответ классификатора")
	}

	var parsed struct {
		Label string            `json:"label"`
		Slots map[string]string `json:"slots"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Classification{}, fmt.Errorf("некорректный JSON от классификатора: %w", err)
	}

	return Classification{Label: parsed.Label, Slots: parsed.Slots}, nil
}
