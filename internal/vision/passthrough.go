package vision

import "context"

// Passthrough is the demo renderer: it returns the prepared input unchanged.
type Passthrough struct{}

// Info implements Renderer.
func (Passthrough) Info() Info {
	return Info{Provider: "demo", Model: "none", Device: "cpu", Mode: "demo"}
}

// Render implements Renderer.
func (Passthrough) Render(_ context.Context, input RenderInput) (Image, error) {
	if err := input.Validate(); err != nil {
		return Image{}, err
	}
	return input.Base, nil
}
