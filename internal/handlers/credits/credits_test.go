package credits

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thumbforge/thumbforge/internal/domain"
	"github.com/thumbforge/thumbforge/internal/dto"
	creditservice "github.com/thumbforge/thumbforge/internal/service/creditservice"
	"github.com/thumbforge/thumbforge/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*CreditsHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authedRequest(method, url string, body []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	return req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, 1))
}

func TestGetCredits(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody *dto.CreditsResponseDTO
	}{
		{
			name: "Balance returned",
			prepareMock: func() {
				service.EXPECT().GetProfile(gomock.Any(), 1).Return(&domain.Profile{
					UserID:           1,
					Credits:          5,
					SubscriptionTier: "starter",
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.CreditsResponseDTO{Credits: 5, SubscriptionTier: "starter"},
		},
		{
			name: "Profile missing",
			prepareMock: func() {
				service.EXPECT().GetProfile(gomock.Any(), 1).Return(nil, creditservice.ErrProfileNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Internal error",
			prepareMock: func() {
				service.EXPECT().GetProfile(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rec := httptest.NewRecorder()
			handler.GetCredits(rec, authedRequest(http.MethodGet, "/api/credits", nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedBody != nil {
				var resp dto.CreditsResponseDTO
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, *tt.expectedBody, resp)
			}
		})
	}
}

func TestGetTransactions(t *testing.T) {
	handler, service := NewMock(t)

	now := time.Now()
	service.EXPECT().GetTransactions(gomock.Any(), 1).Return([]domain.CreditTransaction{
		{ID: 2, UserID: 1, Amount: -2, Type: "generation", Description: "Generated 2 thumbnail(s)", CreatedAt: now},
		{ID: 1, UserID: 1, Amount: 10, Type: "purchase", Description: "Purchased starter pack (10 credits)", CreatedAt: now.Add(-time.Hour)},
	}, nil)

	rec := httptest.NewRecorder()
	handler.GetTransactions(rec, authedRequest(http.MethodGet, "/api/credits/transactions", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []dto.TransactionResponseDTO
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, -2, resp[0].Amount)
}

func TestDecrement(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful debit",
			body: `{"count": 2}`,
			prepareMock: func() {
				service.EXPECT().Debit(gomock.Any(), 1, 2, gomock.Any()).Return(3, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid body",
			body:         `{`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Non-positive count",
			body:         `{"count": 0}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Insufficient credits",
			body: `{"count": 10}`,
			prepareMock: func() {
				service.EXPECT().Debit(gomock.Any(), 1, 10, gomock.Any()).Return(0, creditservice.ErrInsufficientCredits)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Profile missing",
			body: `{"count": 1}`,
			prepareMock: func() {
				service.EXPECT().Debit(gomock.Any(), 1, 1, gomock.Any()).Return(0, creditservice.ErrProfileNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Internal error",
			body: `{"count": 1}`,
			prepareMock: func() {
				service.EXPECT().Debit(gomock.Any(), 1, 1, gomock.Any()).Return(0, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rec := httptest.NewRecorder()
			handler.Decrement(rec, authedRequest(http.MethodPost, "/api/credits/decrement", []byte(tt.body)))

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.DecrementResponseDTO
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.True(t, resp.Success)
				assert.Equal(t, 3, resp.NewCredits)
			}
		})
	}
}
