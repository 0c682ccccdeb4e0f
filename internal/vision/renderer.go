package vision

import (
	"context"
	"encoding/base64"
	"fmt"
)

// Default img2img settings. A lower strength keeps more of the original
// room; a high guidance scale makes the model follow the item list closely.
const (
	DefaultStrength      = 0.65
	DefaultGuidanceScale = 15.0
	DefaultSteps         = 70
)

// Renderer redecorates a room photo with an external image model.
type Renderer interface {
	Render(ctx context.Context, input RenderInput) (Image, error)
	Info() Info
}

// Info describes the active backend for health reporting.
type Info struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Device   string `json:"device"`
	Mode     string `json:"mode"`
}

// Image is an encoded picture.
type Image struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// DataURL renders the image as an inline data URL.
func (i Image) DataURL() string {
	mime := i.MIME
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(i.Data))
}

// Base64 returns the raw base64 payload.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// RenderInput is one img2img call.
type RenderInput struct {
	Base           Image
	Prompt         string
	NegativePrompt string
	Strength       float64
	GuidanceScale  float64
	Steps          int
}

// Validate checks the parameter ranges every backend relies on.
func (in RenderInput) Validate() error {
	if len(in.Base.Data) == 0 {
		return fmt.Errorf("vision: base image is required")
	}
	if in.Strength <= 0 || in.Strength > 1 {
		return fmt.Errorf("vision: strength %v outside (0,1]", in.Strength)
	}
	if in.GuidanceScale <= 0 {
		return fmt.Errorf("vision: guidance scale must be positive")
	}
	if in.Steps <= 0 {
		return fmt.Errorf("vision: step count must be positive")
	}
	return nil
}
