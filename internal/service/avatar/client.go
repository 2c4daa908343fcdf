package avatar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/evateli/globetalk/internal/config"
)

// PlaceholderURL stands in for the avatar whenever generation fails.
const PlaceholderURL = "https://via.placeholder.com/300"

// Client calls the OpenAI image-generation endpoint to render a persona
// portrait in traditional dress.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	size       string
	quality    string
	httpClient *http.Client
}

// NewClient builds the avatar client. The OpenAI credentials are shared
// with the chat model.
func NewClient(ai config.AIConfig, image config.ImageConfig) *Client {
	return &Client{
		apiKey:     ai.APIKey,
		baseURL:    ai.BaseURL,
		model:      image.Model,
		size:       image.Size,
		quality:    image.Quality,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type generationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality,omitempty"`
}

type generationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate renders a portrait for the persona's country and gender and
// returns its URL. Callers treat any error as non-fatal and fall back to
// PlaceholderURL.
func (c *Client) Generate(ctx context.Context, country, gender string) (string, error) {
	body, err := json.Marshal(generationRequest{
		Model:   c.model,
		Prompt:  portraitPrompt(country, gender),
		N:       1,
		Size:    c.size,
		Quality: c.quality,
	})
	if err != nil {
		return "", fmt.Errorf("encode image request: %w", err)
	}

	endpoint := c.baseURL + "/images/generations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("image api returned status %d: %s", resp.StatusCode, snippet)
	}

	var payload generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if len(payload.Data) == 0 || payload.Data[0].URL == "" {
		return "", fmt.Errorf("image api returned no image")
	}

	return payload.Data[0].URL, nil
}

func portraitPrompt(country, gender string) string {
	return fmt.Sprintf(`Professional portrait photo of an attractive and friendly-looking %s from %s.
Must have:
- Beautiful traditional/cultural clothing specific to %s
- Traditional hairstyle appropriate for the culture
- Authentic cultural jewelry or accessories
- Warm, genuine smile and friendly expression
- High-quality studio lighting with soft, flattering angles
- Simple, elegant background that complements traditional attire
Style: High-end cultural portrait photography with perfect lighting
Note: Ensure clothing and accessories are specific to %s's cultural heritage`,
		gender, country, country, country)
}
