package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultDiffusionModel    = "Realistic_Vision_V5.1_noVAE"
	defaultDiffusionEndpoint = "http://127.0.0.1:7860"
)

// StableDiffusion calls a stable-diffusion-webui compatible img2img endpoint.
type StableDiffusion struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewStableDiffusion constructs a client for the API rooted at endpoint.
func NewStableDiffusion(endpoint, model string, timeout time.Duration) *StableDiffusion {
	if strings.TrimSpace(model) == "" {
		model = defaultDiffusionModel
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultDiffusionEndpoint
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &StableDiffusion{
		endpoint: strings.TrimSuffix(strings.TrimSpace(endpoint), "/"),
		model:    strings.TrimSpace(model),
		client:   &http.Client{Timeout: timeout},
	}
}

// Info implements Renderer.
func (s *StableDiffusion) Info() Info {
	return Info{Provider: "stable-diffusion", Model: s.model, Device: "remote", Mode: "live"}
}

type img2imgRequest struct {
	InitImages        []string       `json:"init_images"`
	Prompt            string         `json:"prompt"`
	NegativePrompt    string         `json:"negative_prompt"`
	DenoisingStrength float64        `json:"denoising_strength"`
	CFGScale          float64        `json:"cfg_scale"`
	Steps             int            `json:"steps"`
	Width             int            `json:"width,omitempty"`
	Height            int            `json:"height,omitempty"`
	BatchSize         int            `json:"batch_size"`
	OverrideSettings  map[string]any `json:"override_settings,omitempty"`
}

// Render implements Renderer.
func (s *StableDiffusion) Render(ctx context.Context, input RenderInput) (Image, error) {
	if s == nil || s.endpoint == "" {
		return Image{}, fmt.Errorf("vision: stable diffusion endpoint not configured")
	}
	if err := input.Validate(); err != nil {
		return Image{}, err
	}

	payload := img2imgRequest{
		InitImages:        []string{input.Base.Base64()},
		Prompt:            input.Prompt,
		NegativePrompt:    input.NegativePrompt,
		DenoisingStrength: input.Strength,
		CFGScale:          input.GuidanceScale,
		Steps:             input.Steps,
		Width:             input.Base.Width,
		Height:            input.Base.Height,
		BatchSize:         1,
		OverrideSettings:  map[string]any{"sd_model_checkpoint": s.model},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Image{}, fmt.Errorf("vision: marshal img2img payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/sdapi/v1/img2img", bytes.NewReader(body))
	if err != nil {
		return Image{}, fmt.Errorf("vision: img2img request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("vision: perform img2img: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var failure struct {
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		msg := failure.Error
		if msg == "" {
			msg = failure.Detail
		}
		return Image{}, fmt.Errorf("vision: img2img status %d: %s", resp.StatusCode, msg)
	}

	var result struct {
		Images []string `json:"images"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Image{}, fmt.Errorf("vision: decode img2img response: %w", err)
	}
	if len(result.Images) == 0 {
		return Image{}, fmt.Errorf("vision: img2img returned no images")
	}

	encoded, err := stripDataPrefix(result.Images[0])
	if err != nil {
		return Image{}, err
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Image{}, fmt.Errorf("vision: decode img2img image: %w", err)
	}
	return Normalize(data)
}
