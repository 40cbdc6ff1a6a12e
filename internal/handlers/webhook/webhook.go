package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/thumbforge/thumbforge/internal/observability"
	webhookservice "github.com/thumbforge/thumbforge/internal/service/webhookservice"
	"github.com/thumbforge/thumbforge/pkg/stripesig"
	"github.com/thumbforge/thumbforge/pkg/utils"
	"go.uber.org/zap"
)

//go:generate mockgen -source=webhook.go -destination=webhook_mock.go -package=webhook

const maxBodySize = 1 << 20

type Service interface {
	HandleCheckoutCompleted(ctx context.Context, session webhookservice.CheckoutSession) error
}

type WebhookHandler struct {
	webhookService Service
	signingSecret  string
}

func New(webhookService Service, signingSecret string) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		signingSecret:  signingSecret,
	}
}

type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentIntent string `json:"payment_intent"`
			AmountTotal   int64  `json:"amount_total"`
			Currency      string `json:"currency"`
			CustomerEmail string `json:"customer_email"`
			CustomerInfo  struct {
				Email string `json:"email"`
			} `json:"customer_details"`
		} `json:"object"`
	} `json:"data"`
}

// HandleEvent godoc
//
//	@Summary		Receive payment gateway events
//	@Description	Verify the gateway signature and reconcile completed checkouts into credits. Events that can never succeed are acknowledged so the gateway stops retrying; transient failures return 500 to trigger redelivery.
//	@Tags			Webhook
//	@Accept			json
//	@Produce		json
//	@Success		200	{string}	string			"Event acknowledged"
//	@Failure		400	{object}	utils.Response	"Missing or invalid signature"
//	@Failure		500	{object}	utils.Response	"Transient processing failure"
//	@Router			/api/stripe/webhook [post]
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Can't read request body")
		return
	}

	if err := stripesig.Verify(payload, r.Header.Get("Stripe-Signature"), h.signingSecret, stripesig.DefaultTolerance); err != nil {
		observability.WebhookEventsTotal.WithLabelValues("bad_signature").Inc()
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event payload")
		return
	}

	if event.Type != "checkout.session.completed" {
		observability.WebhookEventsTotal.WithLabelValues("ignored").Inc()
		utils.RespondWithJSON(w, http.StatusOK, "event ignored")
		return
	}

	email := event.Data.Object.CustomerEmail
	if email == "" {
		email = event.Data.Object.CustomerInfo.Email
	}

	err = h.webhookService.HandleCheckoutCompleted(r.Context(), webhookservice.CheckoutSession{
		ID:            event.Data.Object.ID,
		PaymentIntent: event.Data.Object.PaymentIntent,
		CustomerEmail: email,
		AmountTotal:   event.Data.Object.AmountTotal,
		Currency:      event.Data.Object.Currency,
	})
	if err != nil {
		// Permanent failures are acknowledged: redelivery can't fix an
		// unknown pack or a missing account.
		switch {
		case errors.Is(err, webhookservice.ErrAlreadyProcessed):
			observability.WebhookEventsTotal.WithLabelValues("duplicate").Inc()
			utils.RespondWithJSON(w, http.StatusOK, "event already processed")
		case errors.Is(err, webhookservice.ErrUnknownPack),
			errors.Is(err, webhookservice.ErrAccountNotFound),
			errors.Is(err, webhookservice.ErrMissingEmail):
			observability.WebhookEventsTotal.WithLabelValues("unprocessable").Inc()
			zap.L().Warn("acknowledged unprocessable payment event", zap.Error(err))
			utils.RespondWithJSON(w, http.StatusOK, "event acknowledged")
		default:
			observability.WebhookEventsTotal.WithLabelValues("error").Inc()
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	observability.WebhookEventsTotal.WithLabelValues("processed").Inc()
	utils.RespondWithJSON(w, http.StatusOK, "event processed")
}
