package webhooks

import (
	"context"
	"io"
	"net/http"

	"github.com/teachniche/marketplace/internal/dto"
	"github.com/teachniche/marketplace/internal/gateway"
	"github.com/teachniche/marketplace/pkg/utils"
	"go.uber.org/zap"
)

// maxPayloadBytes caps webhook bodies; Stripe events are far smaller.
const maxPayloadBytes = 1 << 20

type Service interface {
	HandleEvent(ctx context.Context, event *gateway.Event) error
}

type Verifier interface {
	ConstructEvent(payload []byte, signature string) (*gateway.Event, error)
}

type WebhookHandler struct {
	webhookService Service
	verifier       Verifier
}

func New(webhookService Service, verifier Verifier) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		verifier:       verifier,
	}
}

// HandleStripeWebhook godoc
//
//	@Summary		Receive Stripe webhook events
//	@Description	Verify the event signature and reconcile the purchase ledger. Processing failures still return 200 so the gateway does not retry events that cannot succeed.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string	true	"Event signature"
//	@Success		200					{object}	dto.WebhookResponseDTO
//	@Failure		400					{object}	utils.Response	"Missing or invalid signature"
//	@Router			/api/webhooks/stripe [post]
func (h *WebhookHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing Stripe-Signature header")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Can't read request body")
		return
	}

	event, err := h.verifier.ConstructEvent(payload, signature)
	if err != nil {
		zap.L().Warn("webhook signature verification failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusBadRequest, "Webhook signature verification failed")
		return
	}

	if err := h.webhookService.HandleEvent(r.Context(), event); err != nil {
		// Acknowledged anyway. A retry of a persistently failing event would
		// only fail again; the reconciler catches genuinely missed payments.
		zap.L().Error("webhook event processing failed", zap.String("type", event.Type), zap.Error(err))
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WebhookResponseDTO{Received: true})
}
