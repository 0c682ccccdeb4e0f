package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiImageModel = "gemini-2.5-flash-image"

// GeminiRenderer edits the room photo through Gemini image output.
type GeminiRenderer struct {
	apiKey  string
	model   string
	timeout time.Duration
}

// NewGeminiRenderer constructs a renderer able to request inline images.
func NewGeminiRenderer(apiKey, model string, timeout time.Duration) *GeminiRenderer {
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiImageModel
	}
	model = strings.TrimPrefix(strings.TrimSpace(model), "models/")
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &GeminiRenderer{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// Info implements Renderer.
func (g *GeminiRenderer) Info() Info {
	return Info{Provider: "gemini", Model: g.model, Device: "remote", Mode: "live"}
}

// Render sends the photo and instructions as one user turn and returns the
// first inline image of the reply. Gemini has no negative prompt or
// sampler settings, so those are folded into the instruction text.
func (g *GeminiRenderer) Render(ctx context.Context, input RenderInput) (Image, error) {
	if g == nil || g.apiKey == "" {
		return Image{}, fmt.Errorf("vision: gemini renderer unavailable")
	}
	if err := input.Validate(); err != nil {
		return Image{}, err
	}

	childCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(childCtx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return Image{}, fmt.Errorf("vision: create genai client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(geminiInstruction(input)),
			genai.NewPartFromBytes(input.Base.Data, input.Base.MIME),
		}, genai.RoleUser),
	}
	resp, err := client.Models.GenerateContent(childCtx, g.model, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return Image{}, fmt.Errorf("vision: gemini render failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Image{}, fmt.Errorf("vision: gemini returned no candidates")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return Normalize(part.InlineData.Data)
	}
	return Image{}, fmt.Errorf("vision: gemini returned no image data")
}

func geminiInstruction(input RenderInput) string {
	var b strings.Builder
	b.WriteString("Redecorate the room in this photo. Keep walls, windows and camera angle.\n")
	fmt.Fprintf(&b, "Change roughly %.0f%% of the scene.\n", input.Strength*100)
	b.WriteString(input.Prompt)
	if neg := strings.TrimSpace(input.NegativePrompt); neg != "" {
		fmt.Fprintf(&b, "\nAvoid: %s", neg)
	}
	return b.String()
}
