package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thumbforge/thumbforge/internal/dto"
	creditservice "github.com/thumbforge/thumbforge/internal/service/creditservice"
	generationservice "github.com/thumbforge/thumbforge/internal/service/generationservice"
	"github.com/thumbforge/thumbforge/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*GenerateHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestGenerateHandler(t *testing.T) {
	handler, service := NewMock(t)

	validBody := dto.GenerateRequestDTO{
		FaceImageURL:        "data:image/png;base64,AAAA",
		InspirationImageURL: "data:image/png;base64,BBBB",
		Prompt:              "dramatic reveal with bold yellow text",
		Count:               2,
	}

	tests := []struct {
		name         string
		body         any
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful generation",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().
					Generate(gomock.Any(), 1, gomock.Any()).
					Return([]string{"https://store/1/a.png", "https://store/1/b.png"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         "not json",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Missing input",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().
					Generate(gomock.Any(), 1, gomock.Any()).
					Return(nil, generationservice.ErrMissingInput)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Rate limited",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().
					Generate(gomock.Any(), 1, gomock.Any()).
					Return(nil, generationservice.ErrRateLimited)
			},
			expectedCode: http.StatusTooManyRequests,
		},
		{
			name: "No credits",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().
					Generate(gomock.Any(), 1, gomock.Any()).
					Return(nil, generationservice.ErrNoCredits)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Profile missing",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().
					Generate(gomock.Any(), 1, gomock.Any()).
					Return(nil, creditservice.ErrProfileNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Provider failure",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().
					Generate(gomock.Any(), 1, gomock.Any()).
					Return(nil, errors.New("provider down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			var body []byte
			switch v := tt.body.(type) {
			case string:
				body = []byte(v)
			default:
				body, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
			req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, 1))
			rec := httptest.NewRecorder()

			handler.Generate(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.GenerateResponseDTO
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Len(t, resp.Images, 2)
			}
		})
	}
}
