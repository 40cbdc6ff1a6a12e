package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/thumbforge/thumbforge/internal/config"
	"github.com/thumbforge/thumbforge/pkg/clients"
	"go.uber.org/zap"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1

	// Prefix kept compact: inline images carry the real signal.
	promptPrefix = "Create YouTube thumbnail 16:9. Include face, style reference, and object. "
)

var ErrGenerationFailed = errors.New("generation failed")

// Request carries the reference images (data URLs or raw base64) and the
// sanitized prompt for one generation batch.
type Request struct {
	FaceImage        string
	InspirationImage string
	ExtraImage       string
	Prompt           string
	Count            int
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	baseURL string
	model   string
	apiKey  string
	client  clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		baseURL: cfg.GeminiBaseURL,
		model:   cfg.GeminiModel,
		apiKey:  cfg.GeminiAPIKey,
		client:  client,
	}
}

var dataURLPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// parseDataURL splits a data URL into mime type and base64 payload. Raw
// base64 without the data: prefix is assumed to be a jpeg.
func parseDataURL(dataURL string) inlineData {
	matches := dataURLPattern.FindStringSubmatch(dataURL)
	if matches == nil {
		return inlineData{MimeType: "image/jpeg", Data: dataURL}
	}
	return inlineData{MimeType: matches[1], Data: matches[2]}
}

// Generate produces req.Count images, one provider call per image, in
// order. Artifacts are returned as data URLs.
func (c *Client) Generate(ctx context.Context, req Request) ([]string, error) {
	parts := []part{
		{Text: promptPrefix + req.Prompt},
	}
	for _, img := range []string{req.FaceImage, req.InspirationImage, req.ExtraImage} {
		if img == "" {
			continue
		}
		inline := parseDataURL(img)
		parts = append(parts, part{InlineData: &inline})
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{ResponseModalities: []string{"IMAGE", "TEXT"}},
	})
	if err != nil {
		return nil, fmt.Errorf("can't marshal generation request: %w", err)
	}

	var images []string
	for i := 0; i < req.Count; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch, err := c.generateOne(ctx, body)
		if err != nil {
			return nil, err
		}
		images = append(images, batch...)
	}
	return images, nil
}

func (c *Client) generateOne(ctx context.Context, body []byte) ([]string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	headers := http.Header{"Content-Type": []string{"application/json"}}

	var statusCode int
	var respBody []byte
	var respHeaders http.Header
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		statusCode, respBody, respHeaders, err = c.client.Post(url, headers, body)
		if err != nil {
			if attempt < maxRetries {
				time.Sleep(retryInterval * time.Duration(attempt))
				continue
			}
			return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, err)
		}

		switch statusCode {
		case http.StatusOK:
			return parseImages(respBody)
		case http.StatusTooManyRequests:
			retryAfter := retryInterval * time.Duration(attempt)
			if header := respHeaders.Get("Retry-After"); header != "" {
				if seconds, err := strconv.Atoi(header); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			}
			zap.L().Warn("provider rate limit, retrying", zap.Int("attempt", attempt), zap.Duration("retryAfter", retryAfter))
			time.Sleep(retryAfter)
		default:
			return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, providerMessage(statusCode, respBody))
		}
	}
	return nil, fmt.Errorf("%w: rate limited after %d retries", ErrGenerationFailed, maxRetries)
}

func parseImages(respBody []byte) ([]string, error) {
	var response generateResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("%w: can't parse provider response: %s", ErrGenerationFailed, err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, response.Error.Message)
	}

	var images []string
	for _, candidate := range response.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			mimeType := p.InlineData.MimeType
			if mimeType == "" {
				mimeType = "image/png"
			}
			images = append(images, fmt.Sprintf("data:%s;base64,%s", mimeType, p.InlineData.Data))
		}
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: provider returned no image data", ErrGenerationFailed)
	}
	return images, nil
}

func providerMessage(statusCode int, respBody []byte) string {
	var response generateResponse
	if err := json.Unmarshal(respBody, &response); err == nil && response.Error != nil {
		return response.Error.Message
	}
	return fmt.Sprintf("unexpected status code %d", statusCode)
}
