package storage

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/thumbforge/thumbforge/internal/config"
	"github.com/thumbforge/thumbforge/pkg/clients"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Client, *clients.MockHTTPClientI) {
	ctrl := gomock.NewController(t)
	httpClient := clients.NewMockHTTPClientI(ctrl)
	client := New(&config.Config{
		StorageURL:        "https://store.test",
		StorageBucket:     "generations",
		StorageServiceKey: "service-key",
	}, httpClient)
	defer ctrl.Finish()
	return client, httpClient
}

func TestUpload(t *testing.T) {
	client, httpClient := NewMock(t)

	payload := []byte("png bytes")
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	var uploadedTo string
	httpClient.EXPECT().
		Post(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(url string, headers http.Header, body []byte) (int, []byte, http.Header, error) {
			uploadedTo = url
			assert.True(t, strings.HasPrefix(url, "https://store.test/storage/v1/object/generations/1/generation-"))
			assert.Equal(t, "Bearer service-key", headers.Get("Authorization"))
			assert.Equal(t, "image/png", headers.Get("Content-Type"))
			assert.Equal(t, payload, body)
			return http.StatusOK, nil, nil, nil
		})

	publicURL, err := client.Upload(context.Background(), 1, dataURL)
	assert.NoError(t, err)

	objectPath := strings.TrimPrefix(uploadedTo, "https://store.test/storage/v1/object/")
	assert.Equal(t, "https://store.test/storage/v1/object/public/"+objectPath, publicURL)
}

func TestUploadFailures(t *testing.T) {
	client, httpClient := NewMock(t)

	t.Run("Not a data url", func(t *testing.T) {
		_, err := client.Upload(context.Background(), 1, "data:image/png;AAAA")
		assert.ErrorIs(t, err, ErrUploadFailed)
	})

	t.Run("Invalid base64", func(t *testing.T) {
		_, err := client.Upload(context.Background(), 1, "data:image/png;base64,@@@")
		assert.ErrorIs(t, err, ErrUploadFailed)
	})

	t.Run("Store rejects the object", func(t *testing.T) {
		httpClient.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusForbidden, []byte(`{"message": "bucket policy"}`), nil, nil)

		_, err := client.Upload(context.Background(), 1, "data:image/png;base64,AAAA")
		assert.ErrorIs(t, err, ErrUploadFailed)
	})
}

func TestDelete(t *testing.T) {
	client, httpClient := NewMock(t)

	publicURL := "https://store.test/storage/v1/object/public/generations/1/generation-abc.png"

	tests := []struct {
		name        string
		imageURL    string
		prepareMock func()
		wantErr     error
	}{
		{
			name:     "Successful delete",
			imageURL: publicURL,
			prepareMock: func() {
				httpClient.EXPECT().
					Do(gomock.Any()).
					DoAndReturn(func(req *http.Request) (*http.Response, error) {
						assert.Equal(t, http.MethodDelete, req.Method)
						assert.Equal(t, "https://store.test/storage/v1/object/generations/1/generation-abc.png", req.URL.String())
						assert.Equal(t, "Bearer service-key", req.Header.Get("Authorization"))
						return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(""))}, nil
					})
			},
		},
		{
			name:        "URL outside the bucket is skipped",
			imageURL:    "https://elsewhere.test/some/image.png",
			prepareMock: func() {},
		},
		{
			name:     "Store rejects the delete",
			imageURL: publicURL,
			prepareMock: func() {
				httpClient.EXPECT().
					Do(gomock.Any()).
					Return(&http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(""))}, nil)
			},
			wantErr: ErrDeleteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := client.Delete(context.Background(), tt.imageURL)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestObjectPath(t *testing.T) {
	client, _ := NewMock(t)

	tests := []struct {
		name     string
		imageURL string
		wantPath string
		wantOK   bool
	}{
		{
			name:     "Public url",
			imageURL: "https://store.test/storage/v1/object/public/generations/1/a.png",
			wantPath: "1/a.png",
			wantOK:   true,
		},
		{
			name:     "Query string stripped",
			imageURL: "https://store.test/storage/v1/object/public/generations/1/a.png?token=xyz",
			wantPath: "1/a.png",
			wantOK:   true,
		},
		{
			name:     "Different bucket",
			imageURL: "https://store.test/storage/v1/object/public/avatars/1/a.png",
			wantOK:   false,
		},
		{
			name:     "Empty path",
			imageURL: "https://store.test/storage/v1/object/public/generations/",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := client.objectPath(tt.imageURL)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}
