package prompts

import (
	"strings"
	"testing"
)

func TestBuildRenderListsEveryItem(t *testing.T) {
	got := BuildRender(RenderRequest{
		RoomType: "living-room",
		Style:    "scandinavian",
		Prompt:   "sofa, weird glowing chair",
		Items:    []string{"Modern Sofa", "Custom: Weird Glowing Chair"},
	})

	for _, want := range []string{
		"scandinavian cozy living room",
		"MUST include every furniture piece listed: Modern Sofa, Custom: Weird Glowing Chair",
		"follow user instructions exactly: sofa, weird glowing chair",
	} {
		if !strings.Contains(got.Prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, got.Prompt)
		}
	}
	for _, want := range []string{
		"missing Modern Sofa, Custom: Weird Glowing Chair",
		"incomplete Modern Sofa, Custom: Weird Glowing Chair",
	} {
		if !strings.Contains(got.Negative, want) {
			t.Errorf("negative missing %q:\n%s", want, got.Negative)
		}
	}
}

func TestBuildRenderFallsBackToRawPrompt(t *testing.T) {
	got := BuildRender(RenderRequest{RoomType: "bedroom", Style: "art deco", Prompt: "something cosy"})
	if !strings.Contains(got.Prompt, "listed: something cosy") {
		t.Errorf("expected raw prompt as item list: %s", got.Prompt)
	}
	if !strings.Contains(got.Prompt, "art deco bedroom") {
		t.Errorf("unknown style should be used verbatim: %s", got.Prompt)
	}
	if !strings.Contains(got.Negative, "missing something cosy") {
		t.Errorf("negative should penalize the raw prompt: %s", got.Negative)
	}
}

func TestBuildRenderStyleOnly(t *testing.T) {
	got := BuildRender(RenderRequest{RoomType: "home_office", Style: "", Prompt: "   "})
	if strings.Contains(got.Prompt, "MUST include") {
		t.Errorf("empty prompt should not request items: %s", got.Prompt)
	}
	if !strings.Contains(got.Prompt, "sleek modern home office") {
		t.Errorf("expected default style and room name: %s", got.Prompt)
	}
	if strings.Contains(got.Negative, "missing") {
		t.Errorf("style-only negative should not mention missing items: %s", got.Negative)
	}
}
