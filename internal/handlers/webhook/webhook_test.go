package webhook

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	webhookservice "github.com/thumbforge/thumbforge/internal/service/webhookservice"
	"github.com/thumbforge/thumbforge/pkg/stripesig"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

const testSecret = "whsec_test"

func NewMock(t *testing.T) (*WebhookHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service, testSecret)
	defer ctrl.Finish()
	return handler, service
}

func signedRequest(payload string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(payload))
	req.Header.Set("Stripe-Signature", stripesig.Sign([]byte(payload), testSecret, time.Now()))
	return req
}

const checkoutPayload = `{
	"type": "checkout.session.completed",
	"data": {
		"object": {
			"id": "cs_test_123",
			"payment_intent": "pi_test_456",
			"amount_total": 499,
			"currency": "usd",
			"customer_email": "buyer@example.com"
		}
	}
}`

func TestHandleEventSignature(t *testing.T) {
	handler, _ := NewMock(t)

	t.Run("Missing signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(checkoutPayload))
		rec := httptest.NewRecorder()

		handler.HandleEvent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(checkoutPayload))
		req.Header.Set("Stripe-Signature", stripesig.Sign([]byte(checkoutPayload), "whsec_other", time.Now()))
		rec := httptest.NewRecorder()

		handler.HandleEvent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Signature over different payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(checkoutPayload))
		req.Header.Set("Stripe-Signature", stripesig.Sign([]byte(`{}`), testSecret, time.Now()))
		rec := httptest.NewRecorder()

		handler.HandleEvent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleEvent(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		payload      string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:    "Checkout completed",
			payload: checkoutPayload,
			prepareMock: func() {
				service.EXPECT().
					HandleCheckoutCompleted(gomock.Any(), webhookservice.CheckoutSession{
						ID:            "cs_test_123",
						PaymentIntent: "pi_test_456",
						CustomerEmail: "buyer@example.com",
						AmountTotal:   499,
						Currency:      "usd",
					}).
					Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Unrelated event type",
			payload:      `{"type": "invoice.paid", "data": {"object": {"id": "in_1"}}}`,
			prepareMock:  func() {},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Malformed payload",
			payload:      `{not json`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "Replayed event",
			payload: checkoutPayload,
			prepareMock: func() {
				service.EXPECT().
					HandleCheckoutCompleted(gomock.Any(), gomock.Any()).
					Return(webhookservice.ErrAlreadyProcessed)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "Unknown pack is acknowledged",
			payload: checkoutPayload,
			prepareMock: func() {
				service.EXPECT().
					HandleCheckoutCompleted(gomock.Any(), gomock.Any()).
					Return(webhookservice.ErrUnknownPack)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "Missing account is acknowledged",
			payload: checkoutPayload,
			prepareMock: func() {
				service.EXPECT().
					HandleCheckoutCompleted(gomock.Any(), gomock.Any()).
					Return(webhookservice.ErrAccountNotFound)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "Missing email is acknowledged",
			payload: checkoutPayload,
			prepareMock: func() {
				service.EXPECT().
					HandleCheckoutCompleted(gomock.Any(), gomock.Any()).
					Return(webhookservice.ErrMissingEmail)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "Transient failure triggers redelivery",
			payload: checkoutPayload,
			prepareMock: func() {
				service.EXPECT().
					HandleCheckoutCompleted(gomock.Any(), gomock.Any()).
					Return(errors.New("db unavailable"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rec := httptest.NewRecorder()
			handler.HandleEvent(rec, signedRequest(tt.payload))

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestHandleEventEmailFallback(t *testing.T) {
	handler, service := NewMock(t)

	payload := `{
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_789",
				"payment_intent": "pi_test_789",
				"amount_total": 999,
				"currency": "usd",
				"customer_details": {"email": "details@example.com"}
			}
		}
	}`

	service.EXPECT().
		HandleCheckoutCompleted(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, session webhookservice.CheckoutSession) error {
			assert.Equal(t, "details@example.com", session.CustomerEmail)
			return nil
		})

	rec := httptest.NewRecorder()
	handler.HandleEvent(rec, signedRequest(payload))

	assert.Equal(t, http.StatusOK, rec.Code)
}
