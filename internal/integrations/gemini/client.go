package gemini

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// ErrGeneration — любой сбой генерации. Ретраев нет: пользователь
// повторяет вручную.
var ErrGeneration = errors.New("gemini: generation failed")

type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "gemini: new client")
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", errors.Wrapf(ErrGeneration, "%v", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.Wrap(ErrGeneration, "empty response")
	}
	return text, nil
}

// StripCodeFences снимает markdown-ограждения с JSON-ответов модели.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
