// Package imagen wraps the Google GenAI SDK for Imagen image generation.
package imagen

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Request is the validated, normalized form of a single generation call.
// String fields left empty are omitted from the upstream configuration so
// the service applies its own default.
type Request struct {
	Prompt           string
	NumberOfImages   int32
	AspectRatio      string
	SampleImageSize  string
	PersonGeneration string
}

// Models is the slice of the GenAI SDK surface the client depends on.
// *genai.Models satisfies it.
type Models interface {
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// Client invokes the Imagen API with a fixed model identifier.
type Client struct {
	models Models
	model  string
	logger zerolog.Logger
}

// New constructs a Client backed by the Gemini API with API key auth.
func New(ctx context.Context, apiKey, model string, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("imagen: api key is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("imagen: create genai client: %w", err)
	}
	return NewWithModels(gc.Models, model, logger), nil
}

// NewWithModels constructs a Client over an explicit Models implementation.
func NewWithModels(models Models, model string, logger zerolog.Logger) *Client {
	return &Client{models: models, model: model, logger: logger}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate issues exactly one synchronous upstream call and returns the raw
// bytes of every image the service produced, in response order. The service
// may return fewer images than requested, never more.
func (c *Client) Generate(ctx context.Context, req Request) ([][]byte, error) {
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: req.NumberOfImages,
	}
	if req.AspectRatio != "" {
		cfg.AspectRatio = req.AspectRatio
	}
	if req.PersonGeneration != "" {
		cfg.PersonGeneration = genai.PersonGeneration(req.PersonGeneration)
	}
	if req.SampleImageSize != "" {
		cfg.ImageSize = req.SampleImageSize
	}

	resp, err := c.models.GenerateImages(ctx, c.model, req.Prompt, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate images: %w", err)
	}

	var images [][]byte
	if resp != nil {
		for _, gi := range resp.GeneratedImages {
			// Safety-filtered candidates carry no payload.
			if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
				continue
			}
			images = append(images, gi.Image.ImageBytes)
		}
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no images were generated")
	}

	c.logger.Debug().
		Str("model", c.model).
		Int32("requested", req.NumberOfImages).
		Int("returned", len(images)).
		Msg("imagen: generation call completed")

	return images, nil
}
