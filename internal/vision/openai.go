package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI image edits cap the prompt length.
const maxOpenAIPromptRunes = 1000

// OpenAIRenderer renders through the OpenAI image edit endpoint.
type OpenAIRenderer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIRenderer constructs a renderer for apiKey. baseURL may point at an
// OpenAI compatible gateway.
func NewOpenAIRenderer(apiKey, baseURL, model string, timeout time.Duration) *OpenAIRenderer {
	cfg := openai.DefaultConfig(strings.TrimSpace(apiKey))
	if base := strings.TrimSpace(baseURL); base != "" {
		cfg.BaseURL = base
	}
	if strings.TrimSpace(model) == "" {
		model = openai.CreateImageModelDallE2
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &OpenAIRenderer{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

// Info implements Renderer.
func (o *OpenAIRenderer) Info() Info {
	return Info{Provider: "openai", Model: o.model, Device: "remote", Mode: "live"}
}

// Render implements Renderer. The edit API takes the image as a file upload.
func (o *OpenAIRenderer) Render(ctx context.Context, input RenderInput) (Image, error) {
	if err := input.Validate(); err != nil {
		return Image{}, err
	}

	tmp, err := os.CreateTemp("", "homelytics-base-*.png")
	if err != nil {
		return Image{}, fmt.Errorf("vision: create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(input.Base.Data); err != nil {
		return Image{}, fmt.Errorf("vision: write temp image: %w", err)
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		return Image{}, fmt.Errorf("vision: rewind temp image: %w", err)
	}

	childCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateEditImage(childCtx, openai.ImageEditRequest{
		Image:          tmp,
		Prompt:         openAIPrompt(input),
		Model:          o.model,
		N:              1,
		Size:           openAISize(input.Base.Width),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return Image{}, fmt.Errorf("vision: openai edit: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return Image{}, fmt.Errorf("vision: openai returned no image data")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return Image{}, fmt.Errorf("vision: decode openai image: %w", err)
	}
	return Normalize(data)
}

func openAIPrompt(input RenderInput) string {
	prompt := input.Prompt
	if neg := strings.TrimSpace(input.NegativePrompt); neg != "" {
		prompt += ". Avoid: " + neg
	}
	runes := []rune(prompt)
	if len(runes) > maxOpenAIPromptRunes {
		prompt = string(runes[:maxOpenAIPromptRunes])
	}
	return prompt
}

func openAISize(width int) string {
	switch {
	case width <= 256:
		return openai.CreateImageSize256x256
	case width <= 512:
		return openai.CreateImageSize512x512
	default:
		return openai.CreateImageSize1024x1024
	}
}
