package prompts

import (
	"fmt"
	"strings"
)

var styleAdjectives = map[string]string{
	"modern":       "sleek modern",
	"contemporary": "contemporary elegant",
	"traditional":  "classic traditional",
	"minimalist":   "minimalist clean",
	"industrial":   "industrial urban",
	"scandinavian": "scandinavian cozy",
	"bohemian":     "bohemian eclectic",
	"rustic":       "rustic warm",
}

// RenderRequest is what the render prompt is built from.
type RenderRequest struct {
	RoomType string
	Style    string
	Prompt   string
	// Items are the display names of every detected item, catalog and custom.
	Items []string
}

// RenderPrompts is the positive/negative pair sent to the image model.
type RenderPrompts struct {
	Prompt   string
	Negative string
}

// BuildRender composes the img2img prompt pair. When the user asked for
// specific furniture, every detected item is named in the prompt and its
// absence is penalized in the negative prompt; otherwise only the style is applied.
func BuildRender(req RenderRequest) RenderPrompts {
	style := strings.ToLower(strings.TrimSpace(req.Style))
	if style == "" {
		style = "modern"
	}
	styleDesc, ok := styleAdjectives[style]
	if !ok {
		styleDesc = style
	}
	room := RoomName(req.RoomType)
	userPrompt := strings.TrimSpace(req.Prompt)

	if userPrompt == "" {
		return RenderPrompts{
			Prompt: fmt.Sprintf(
				"professional interior design photography, %s %s, %s style interior, "+
					"preserve room structure and layout, photorealistic, highly detailed, 8k, perfect lighting",
				styleDesc, room, style),
			Negative: "blurry, low quality, distorted, deformed, cartoon, painting, drawing, " +
				"extra furniture, random objects, unrealistic",
		}
	}

	items := strings.Join(req.Items, ", ")
	if items == "" {
		items = userPrompt
	}

	return RenderPrompts{
		Prompt: fmt.Sprintf(
			"professional interior design photography, %s %s, "+
				"MUST include every furniture piece listed: %s, "+
				"follow user instructions exactly: %s, "+
				"show every listed item clearly and completely, "+
				"maintain exact colors and finishes from the prompt, "+
				"%s style decor, preserve room walls and structure, "+
				"ultra detailed, 8k resolution, photorealistic, perfect composition",
			styleDesc, room, items, userPrompt, style),
		Negative: fmt.Sprintf(
			"missing furniture, missing items, incomplete furniture, invisible items, "+
				"blurry, low quality, distorted, deformed, cartoon, painting, drawing, "+
				"extra items not listed, wrong furniture, different furniture, "+
				"incorrect colors, wrong colors, different colors, "+
				"missing %s, incomplete %s, "+
				"abstract, artistic, unrealistic, partial objects",
			items, items),
	}
}

// RoomName turns a room type such as "living-room" into "living room".
func RoomName(roomType string) string {
	room := strings.TrimSpace(roomType)
	if room == "" {
		return "room"
	}
	return strings.NewReplacer("-", " ", "_", " ").Replace(room)
}
