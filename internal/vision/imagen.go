package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

const defaultImagenModel = "imagegeneration@006"

// VertexImagen renders through the Vertex AI Imagen edit API.
type VertexImagen struct {
	projectID          string
	location           string
	model              string
	apiKey             string
	serviceAccount     string
	serviceAccountJSON string
	tokenSource        oauth2.TokenSource
	timeout            time.Duration
}

// VertexImagenConfig describes how to connect to Imagen.
type VertexImagenConfig struct {
	ProjectID          string
	Location           string
	Model              string
	APIKey             string
	ServiceAccount     string
	ServiceAccountJSON string
	// TokenSource takes precedence over the other credential fields.
	TokenSource oauth2.TokenSource
	Timeout     time.Duration
}

// NewVertexImagen wires a VertexImagen client.
func NewVertexImagen(cfg VertexImagenConfig) *VertexImagen {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultImagenModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &VertexImagen{
		projectID:          strings.TrimSpace(cfg.ProjectID),
		location:           strings.TrimSpace(cfg.Location),
		model:              model,
		apiKey:             strings.TrimSpace(cfg.APIKey),
		serviceAccount:     strings.TrimSpace(cfg.ServiceAccount),
		serviceAccountJSON: strings.TrimSpace(cfg.ServiceAccountJSON),
		tokenSource:        cfg.TokenSource,
		timeout:            timeout,
	}
}

// Info implements Renderer.
func (v *VertexImagen) Info() Info {
	return Info{Provider: "vertex-imagen", Model: v.model, Device: "remote", Mode: "live"}
}

// Render runs an Imagen edit request seeded with the room photo.
func (v *VertexImagen) Render(ctx context.Context, input RenderInput) (Image, error) {
	if v == nil {
		return Image{}, fmt.Errorf("imagen: client not configured")
	}
	if v.projectID == "" || v.location == "" {
		return Image{}, fmt.Errorf("imagen: missing project/location")
	}
	if err := input.Validate(); err != nil {
		return Image{}, err
	}

	instance, err := structpb.NewValue(map[string]any{
		"prompt": input.Prompt,
		"image": map[string]any{
			"bytesBase64Encoded": input.Base.Base64(),
		},
	})
	if err != nil {
		return Image{}, fmt.Errorf("imagen: build instance: %w", err)
	}

	// Imagen has no denoising strength; steps and guidance map directly.
	params, err := structpb.NewValue(map[string]any{
		"sampleCount":    1,
		"editMode":       "inpainting-free-form",
		"negativePrompt": input.NegativePrompt,
		"guidanceScale":  input.GuidanceScale,
		"editConfig": map[string]any{
			"baseSteps": input.Steps,
		},
	})
	if err != nil {
		return Image{}, fmt.Errorf("imagen: build parameters: %w", err)
	}

	childCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	client, err := aiplatform.NewPredictionClient(childCtx, v.clientOptions()...)
	if err != nil {
		return Image{}, fmt.Errorf("imagen: prediction client: %w", err)
	}
	defer client.Close()

	endpoint := fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s", v.projectID, v.location, v.model)
	resp, err := client.Predict(childCtx, &aiplatformpb.PredictRequest{
		Endpoint:   endpoint,
		Instances:  []*structpb.Value{instance},
		Parameters: params,
	})
	if err != nil {
		return Image{}, fmt.Errorf("imagen: predict: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return Image{}, fmt.Errorf("imagen: empty prediction response")
	}

	field := resp.Predictions[0].GetStructValue().GetFields()["bytesBase64Encoded"]
	if field == nil {
		return Image{}, fmt.Errorf("imagen: prediction missing bytes")
	}
	data, err := base64.StdEncoding.DecodeString(field.GetStringValue())
	if err != nil {
		return Image{}, fmt.Errorf("imagen: decode result: %w", err)
	}
	return Normalize(data)
}

func (v *VertexImagen) clientOptions() []option.ClientOption {
	options := []option.ClientOption{option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", v.location))}
	switch {
	case v.tokenSource != nil:
		options = append(options, option.WithTokenSource(v.tokenSource))
	case v.serviceAccountJSON != "":
		options = append(options, option.WithCredentialsJSON([]byte(v.serviceAccountJSON)))
	case v.serviceAccount != "":
		options = append(options, option.WithCredentialsFile(v.serviceAccount))
	case v.apiKey != "":
		options = append(options, option.WithAPIKey(v.apiKey))
	}
	return options
}

func stripDataPrefix(raw string) (string, error) {
	if !strings.HasPrefix(raw, "data:") {
		return raw, nil
	}
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("vision: invalid data URL")
	}
	return parts[1], nil
}
