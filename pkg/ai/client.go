package ai

import (
	"context"
	"os"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/bundlewise/go-api/pkg/global"
)

// Client is a thin handle over the generative service, constructed once at
// process start and injected into the pipeline.
type Client struct {
	api        openai.Client
	textModel  string
	imageModel string
}

// NewClientFromEnv builds the client from OPENAI_API_KEY and the optional
// OPENAI_BASE_URL / model overrides.
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, &AIError{Message: "OPENAI_API_KEY is not set"}
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		api:        openai.NewClient(opts...),
		textModel:  global.GetEnvOrDefault("OPENAI_TEXT_MODEL", "gpt-4o-mini"),
		imageModel: global.GetEnvOrDefault("OPENAI_IMAGE_MODEL", "dall-e-3"),
	}, nil
}

// GenerateCompletion runs a plain chat completion and returns the raw text.
func (c *Client) GenerateCompletion(ctx context.Context, systemMessage, userMessage string) (string, error) {
	return c.complete(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.textModel),
		Messages:    chatMessages(systemMessage, userMessage),
		MaxTokens:   openai.Int(1500),
		Temperature: openai.Float(0.7),
	})
}

// GenerateJSON runs a chat completion constrained to the given JSON schema.
// The model is still not guaranteed to comply, so callers must clean and
// parse the returned text defensively.
func (c *Client) GenerateJSON(ctx context.Context, systemMessage, userMessage, schemaName string, schema map[string]any) (string, error) {
	return c.complete(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.textModel),
		Messages:    chatMessages(systemMessage, userMessage),
		MaxTokens:   openai.Int(1500),
		Temperature: openai.Float(0.2),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   schemaName,
					Schema: schema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
}

// GenerateImage produces one logo image and returns it base64-encoded.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(c.imageModel),
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return "", &AIError{Message: "Failed to generate image", Cause: err}
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", &GenerationFailure{Message: "AI returned an empty image"}
	}
	return resp.Data[0].B64JSON, nil
}

func (c *Client) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &AIError{Message: "Failed to generate AI response", Cause: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &GenerationFailure{Message: "AI returned empty response"}
	}
	return resp.Choices[0].Message.Content, nil
}

func chatMessages(systemMessage, userMessage string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(systemMessage),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(userMessage),
				},
			},
		},
	}
}
