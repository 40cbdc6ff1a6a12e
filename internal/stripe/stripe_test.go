package stripe

import (
	"context"
	"errors"
	"net/http"
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
		StripeAPIURL:    "https://stripe.test",
		StripeSecretKey: "sk_test_123",
	}, httpClient)
	defer ctrl.Finish()
	return client, httpClient
}

func TestFirstLineItemPriceID(t *testing.T) {
	client, httpClient := NewMock(t)

	tests := []struct {
		name        string
		prepareMock func()
		want        string
		wantErr     bool
	}{
		{
			name: "Price resolved",
			prepareMock: func() {
				httpClient.EXPECT().
					Get("https://stripe.test/v1/checkout/sessions/cs_test_123/line_items",
						http.Header{"Authorization": []string{"Bearer sk_test_123"}}).
					Return(http.StatusOK, []byte(`{"data": [{"price": {"id": "price_starter"}}]}`), nil, nil)
			},
			want: "price_starter",
		},
		{
			name: "Transport failure",
			prepareMock: func() {
				httpClient.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(0, nil, nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
		{
			name: "Unexpected status",
			prepareMock: func() {
				httpClient.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(http.StatusUnauthorized, []byte(`{}`), nil, nil)
			},
			wantErr: true,
		},
		{
			name: "No line items",
			prepareMock: func() {
				httpClient.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(http.StatusOK, []byte(`{"data": []}`), nil, nil)
			},
			wantErr: true,
		},
		{
			name: "Malformed response",
			prepareMock: func() {
				httpClient.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(http.StatusOK, []byte(`{not json`), nil, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			priceID, err := client.FirstLineItemPriceID(context.Background(), "cs_test_123")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrLineItemsUnavailable)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, priceID)
			}
		})
	}
}
