package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func validInput(t *testing.T) RenderInput {
	t.Helper()
	base, err := Prepare(testJPEG(t, 64, 48), 32)
	if err != nil {
		t.Fatal(err)
	}
	return RenderInput{
		Base:           base,
		Prompt:         "sleek modern living room with a sofa",
		NegativePrompt: "missing Modern Sofa",
		Strength:       DefaultStrength,
		GuidanceScale:  DefaultGuidanceScale,
		Steps:          DefaultSteps,
	}
}

func TestPrepareResizesToSquarePNG(t *testing.T) {
	img, err := Prepare(testJPEG(t, 64, 48), 32)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if img.MIME != "image/png" || img.Width != 32 || img.Height != 32 {
		t.Fatalf("unexpected image %s %dx%d", img.MIME, img.Width, img.Height)
	}
	decoded, format, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil || format != "png" {
		t.Fatalf("output not png: %v %s", err, format)
	}
	if decoded.Bounds().Dx() != 32 {
		t.Fatalf("width = %d", decoded.Bounds().Dx())
	}
}

func TestPrepareRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not an image")} {
		if _, err := Prepare(data, 0); !errors.Is(err, ErrInvalidImage) {
			t.Errorf("expected ErrInvalidImage, got %v", err)
		}
	}
}

func TestRenderInputValidate(t *testing.T) {
	base := validInput(t)
	tests := []struct {
		name   string
		mutate func(*RenderInput)
	}{
		{"no image", func(in *RenderInput) { in.Base = Image{} }},
		{"zero strength", func(in *RenderInput) { in.Strength = 0 }},
		{"strength above one", func(in *RenderInput) { in.Strength = 1.2 }},
		{"zero guidance", func(in *RenderInput) { in.GuidanceScale = 0 }},
		{"zero steps", func(in *RenderInput) { in.Steps = 0 }},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	for _, tt := range tests {
		in := base
		tt.mutate(&in)
		if err := in.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestDataURL(t *testing.T) {
	img := Image{Data: []byte("abc")}
	if got := img.DataURL(); got != "data:image/png;base64,YWJj" {
		t.Fatalf("DataURL = %q", got)
	}
}

func TestPassthroughReturnsBase(t *testing.T) {
	in := validInput(t)
	out, err := Passthrough{}.Render(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Data, in.Base.Data) {
		t.Fatal("passthrough changed the image")
	}
	if (Passthrough{}).Info().Mode != "demo" {
		t.Fatal("passthrough should report demo mode")
	}
}

func TestStableDiffusionRender(t *testing.T) {
	in := validInput(t)
	var got img2imgRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sdapi/v1/img2img" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"images": []string{base64.StdEncoding.EncodeToString(in.Base.Data)},
		})
	}))
	defer srv.Close()

	sd := NewStableDiffusion(srv.URL+"/", "", time.Second)
	out, err := sd.Render(context.Background(), in)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Width != 32 || out.MIME != "image/png" {
		t.Errorf("unexpected output %dx%d %s", out.Width, out.Height, out.MIME)
	}
	if got.Prompt != in.Prompt || got.NegativePrompt != in.NegativePrompt {
		t.Errorf("prompts not forwarded: %+v", got)
	}
	if got.DenoisingStrength != DefaultStrength || got.CFGScale != DefaultGuidanceScale || got.Steps != DefaultSteps {
		t.Errorf("sampler settings not forwarded: %+v", got)
	}
	if got.OverrideSettings["sd_model_checkpoint"] != defaultDiffusionModel {
		t.Errorf("model not forwarded: %v", got.OverrideSettings)
	}
}

func TestStableDiffusionPropagatesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"CUDA out of memory"}`))
	}))
	defer srv.Close()

	_, err := NewStableDiffusion(srv.URL, "", time.Second).Render(context.Background(), validInput(t))
	if err == nil || !strings.Contains(err.Error(), "CUDA out of memory") {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestOpenAIPromptFoldsNegative(t *testing.T) {
	in := RenderInput{Prompt: "a sofa", NegativePrompt: "blurry"}
	if got := openAIPrompt(in); got != "a sofa. Avoid: blurry" {
		t.Fatalf("openAIPrompt = %q", got)
	}
	in.Prompt = strings.Repeat("x", 2000)
	if got := openAIPrompt(in); len([]rune(got)) != maxOpenAIPromptRunes {
		t.Fatalf("prompt not truncated: %d", len(got))
	}
	if openAISize(512) != "512x512" || openAISize(2048) != "1024x1024" {
		t.Fatal("unexpected size mapping")
	}
}

func TestGeminiInstruction(t *testing.T) {
	got := geminiInstruction(RenderInput{Prompt: "add a sofa", NegativePrompt: "clutter", Strength: 0.65})
	for _, want := range []string{"add a sofa", "Avoid: clutter", "65%"} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q: %s", want, got)
		}
	}
}
