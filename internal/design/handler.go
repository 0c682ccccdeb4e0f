// Package design serves the room redesign HTTP API.
package design

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"homelytics/internal/budget"
	"homelytics/internal/catalog"
	"homelytics/internal/events"
	"homelytics/internal/media"
	"homelytics/internal/pricing"
	"homelytics/internal/prompts"
	"homelytics/internal/vision"
)

const (
	defaultRoomType   = "living-room"
	defaultStyle      = "modern"
	defaultBudgetRoom = "living_room"
	defaultBudget     = 100000
)

// RenderSettings are the img2img parameters applied to every request.
type RenderSettings struct {
	Strength      float64
	GuidanceScale float64
	Steps         int
	Size          int
}

// DefaultRenderSettings mirrors the tuned defaults of the vision package.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Strength:      vision.DefaultStrength,
		GuidanceScale: vision.DefaultGuidanceScale,
		Steps:         vision.DefaultSteps,
		Size:          vision.DefaultSize,
	}
}

// Handler bundles dependencies for the redesign endpoints.
type Handler struct {
	Catalog   *catalog.Catalog
	Estimator *pricing.Estimator
	Renderer  vision.Renderer
	Uploader  media.Uploader
	Events    *events.Broker
	Settings  RenderSettings
}

// GenerateResponse is returned by POST /api/generate.
type GenerateResponse struct {
	Image          string         `json:"image"`
	ImageURL       string         `json:"image_url,omitempty"`
	Pricing        pricing.Result `json:"pricing"`
	Prompt         string         `json:"prompt"`
	NegativePrompt string         `json:"negative_prompt"`
	Message        string         `json:"message"`
	Mode           string         `json:"mode"`
}

// Generate handles POST /api/generate.
func (h Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.Renderer == nil || h.Estimator == nil {
		http.Error(w, "image generation inactive", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(vision.MaxUploadBytes + (1 << 20)); err != nil {
		http.Error(w, fmt.Sprintf("could not parse form: %v", err), http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "No image uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, vision.MaxUploadBytes+1))
	if err != nil {
		http.Error(w, "could not read image", http.StatusBadRequest)
		return
	}
	if len(data) > vision.MaxUploadBytes {
		http.Error(w, fmt.Sprintf("image exceeds %d bytes", vision.MaxUploadBytes), http.StatusBadRequest)
		return
	}

	base, err := vision.Prepare(data, h.Settings.Size)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, vision.ErrInvalidImage) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	prompt := r.FormValue("prompt")
	roomType := formValueOr(r, "room_type", defaultRoomType)
	style := formValueOr(r, "style", defaultStyle)

	estimate := h.Estimator.Estimate(prompt)
	renderPrompts := prompts.BuildRender(prompts.RenderRequest{
		RoomType: roomType,
		Style:    style,
		Prompt:   prompt,
		Items:    estimate.Names(),
	})

	id := requestID(r)
	h.Events.Publish(events.Event{ID: id, Stage: events.StageReceived, Detail: fmt.Sprintf("%d items detected", len(estimate.Items))})
	h.Events.Publish(events.Event{ID: id, Stage: events.StageRendering, Detail: h.Renderer.Info().Provider})

	rendered, err := h.Renderer.Render(r.Context(), vision.RenderInput{
		Base:           base,
		Prompt:         renderPrompts.Prompt,
		NegativePrompt: renderPrompts.Negative,
		Strength:       h.Settings.Strength,
		GuidanceScale:  h.Settings.GuidanceScale,
		Steps:          h.Settings.Steps,
	})
	if err != nil {
		log.Printf("render %s failed: %v", id, err)
		h.Events.Publish(events.Event{ID: id, Stage: events.StageFailed})
		http.Error(w, "image generation failed", http.StatusInternalServerError)
		return
	}

	resp := GenerateResponse{
		Image:          rendered.DataURL(),
		Pricing:        estimate,
		Prompt:         renderPrompts.Prompt,
		NegativePrompt: renderPrompts.Negative,
		Mode:           h.Renderer.Info().Mode,
		Message:        "Image generated successfully",
	}
	if resp.Mode == "demo" {
		resp.Message = "Demo mode active"
	}

	if h.Uploader != nil {
		archived, err := media.ArchiveRender(r.Context(), h.Uploader, rendered.Data)
		switch {
		case err == nil:
			resp.ImageURL = archived.URL
		case !errors.Is(err, media.ErrUploaderDisabled):
			log.Printf("render %s: %v", id, err)
		}
	}

	h.Events.Publish(events.Event{ID: id, Stage: events.StageCompleted})
	writeJSON(w, resp)
}

// EstimateRequest is the body of POST /api/estimate.
type EstimateRequest struct {
	Prompt string `json:"prompt"`
}

// Estimate handles POST /api/estimate.
func (h Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	if h.Estimator == nil {
		http.Error(w, "pricing inactive", http.StatusServiceUnavailable)
		return
	}
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, h.Estimator.Estimate(req.Prompt))
}

// SuggestRequest is the body of POST /api/suggest-furniture.
type SuggestRequest struct {
	RoomType   string             `json:"room_type"`
	Budget     *float64           `json:"budget"`
	Dimensions *budget.Dimensions `json:"dimensions"`
}

// SuggestFurniture handles POST /api/suggest-furniture.
func (h Handler) SuggestFurniture(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		http.Error(w, "budget suggestions inactive", http.StatusServiceUnavailable)
		return
	}
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	room := req.RoomType
	if strings.TrimSpace(room) == "" {
		room = defaultBudgetRoom
	}
	amount := defaultBudget
	if req.Budget != nil {
		if math.IsNaN(*req.Budget) || math.IsInf(*req.Budget, 0) {
			http.Error(w, "budget must be a finite number", http.StatusBadRequest)
			return
		}
		amount = clampBudget(math.Floor(*req.Budget))
	}

	writeJSON(w, struct {
		Success     bool              `json:"success"`
		Suggestions budget.Suggestion `json:"suggestions"`
	}{
		Success:     true,
		Suggestions: budget.Suggest(h.Catalog, room, amount, req.Dimensions),
	})
}

// Health handles GET /api/health.
func (h Handler) Health(w http.ResponseWriter, _ *http.Request) {
	info := vision.Info{Mode: "disabled"}
	if h.Renderer != nil {
		info = h.Renderer.Info()
	}
	items := 0
	if h.Catalog != nil {
		items = h.Catalog.Len()
	}
	writeJSON(w, struct {
		Status       string `json:"status"`
		Provider     string `json:"provider"`
		Model        string `json:"model"`
		Device       string `json:"device"`
		Mode         string `json:"mode"`
		GPUAvailable bool   `json:"gpu_available"`
		CatalogItems int    `json:"catalog_items"`
	}{
		Status:       "healthy",
		Provider:     info.Provider,
		Model:        info.Model,
		Device:       info.Device,
		Mode:         info.Mode,
		GPUAvailable: info.Device == "gpu",
		CatalogItems: items,
	})
}

// clampBudget converts a floored JSON budget to int, saturating instead of
// overflowing.
func clampBudget(v float64) int {
	switch {
	case v >= float64(math.MaxInt):
		return math.MaxInt
	case v <= float64(math.MinInt):
		return math.MinInt
	default:
		return int(v)
	}
}

func formValueOr(r *http.Request, key, fallback string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return fallback
}

func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
