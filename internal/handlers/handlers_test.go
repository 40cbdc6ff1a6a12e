package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/thumbforge/thumbforge/docs"
	"github.com/thumbforge/thumbforge/internal/config"
	"github.com/thumbforge/thumbforge/internal/handlers/auth"
	"github.com/thumbforge/thumbforge/internal/handlers/credits"
	"github.com/thumbforge/thumbforge/internal/handlers/generate"
	"github.com/thumbforge/thumbforge/internal/handlers/storage"
	"github.com/thumbforge/thumbforge/internal/handlers/webhook"
	"github.com/thumbforge/thumbforge/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:       auth.NewMockService(ctrl),
		CreditService:     credits.NewMockService(ctrl),
		GenerationService: generate.NewMockService(ctrl),
		StorageService:    storage.NewMockService(ctrl),
		WebhookService:    webhook.NewMockService(ctrl),
	}

	h := New(services, &config.Config{StripeWebhookSecret: "whsec_test"})
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockGenerateHandler := NewMockGenerateHandler(ctrl)
	mockCreditsHandler := NewMockCreditsHandler(ctrl)
	mockStorageHandler := NewMockStorageHandler(ctrl)
	mockWebhookHandler := NewMockWebhookHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockGenerateHandler.EXPECT().Generate(gomock.Any(), gomock.Any()).AnyTimes()
	mockCreditsHandler.EXPECT().GetCredits(gomock.Any(), gomock.Any()).AnyTimes()
	mockCreditsHandler.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).AnyTimes()
	mockCreditsHandler.EXPECT().Decrement(gomock.Any(), gomock.Any()).AnyTimes()
	mockStorageHandler.EXPECT().GetGenerations(gomock.Any(), gomock.Any()).AnyTimes()
	mockStorageHandler.EXPECT().DeleteGeneration(gomock.Any(), gomock.Any()).AnyTimes()
	mockWebhookHandler.EXPECT().HandleEvent(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:     mockAuthHandler,
		GenerateHandler: mockGenerateHandler,
		CreditsHandler:  mockCreditsHandler,
		StorageHandler:  mockStorageHandler,
		WebhookHandler:  mockWebhookHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"POST", "/api/stripe/webhook", http.StatusOK},
		{"GET", "/api/health", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"POST", "/api/generate", http.StatusUnauthorized},
		{"GET", "/api/credits", http.StatusUnauthorized},
		{"GET", "/api/credits/transactions", http.StatusUnauthorized},
		{"POST", "/api/credits/decrement", http.StatusUnauthorized},
		{"GET", "/api/storage", http.StatusUnauthorized},
		{"DELETE", "/api/storage/1", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
