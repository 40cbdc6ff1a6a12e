package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/thumbforge/thumbforge/internal/config"
	"github.com/thumbforge/thumbforge/pkg/clients"
	"go.uber.org/zap"
)

var (
	ErrUploadFailed = errors.New("artifact upload failed")
	ErrDeleteFailed = errors.New("artifact delete failed")
)

// Client talks to a Supabase-compatible object store over its REST surface.
type Client struct {
	baseURL    string
	bucket     string
	serviceKey string
	client     clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		baseURL:    cfg.StorageURL,
		bucket:     cfg.StorageBucket,
		serviceKey: cfg.StorageServiceKey,
		client:     client,
	}
}

// Upload persists one artifact (a data URL) and returns its public URL.
func (c *Client) Upload(ctx context.Context, userID int, dataURL string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	mimeType, payload, err := decodeDataURL(dataURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, err)
	}

	path := fmt.Sprintf("%d/generation-%s.png", userID, uuid.NewString())
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	headers := http.Header{
		"Authorization": []string{"Bearer " + c.serviceKey},
		"Content-Type":  []string{mimeType},
		"Cache-Control": []string{"max-age=3600"},
	}

	statusCode, respBody, _, err := c.client.Post(url, headers, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, err)
	}
	if statusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, statusCode, respBody)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path), nil
}

// Delete removes the object behind a public URL. URLs that do not point
// into the bucket are ignored, mirroring the tolerant delete of the web app.
func (c *Client) Delete(ctx context.Context, imageURL string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path, ok := c.objectPath(imageURL)
	if !ok {
		zap.L().Warn("image url outside storage bucket, skipping delete", zap.String("imageURL", imageURL))
		return nil
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDeleteFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDeleteFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrDeleteFailed, resp.StatusCode)
	}
	return nil
}

func (c *Client) objectPath(imageURL string) (string, bool) {
	marker := "/" + c.bucket + "/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return "", false
	}
	path := imageURL[idx+len(marker):]
	if q := strings.Index(path, "?"); q >= 0 {
		path = path[:q]
	}
	if path == "" {
		return "", false
	}
	return path, true
}

func decodeDataURL(dataURL string) (string, []byte, error) {
	mimeType := "image/png"
	data := dataURL
	if strings.HasPrefix(dataURL, "data:") {
		semicolon := strings.Index(dataURL, ";base64,")
		if semicolon < 0 {
			return "", nil, errors.New("not a base64 data url")
		}
		mimeType = dataURL[len("data:"):semicolon]
		data = dataURL[semicolon+len(";base64,"):]
	}

	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("can't decode image payload: %w", err)
	}
	return mimeType, payload, nil
}
