package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"coin-custody.backend/internal/config"
	"coin-custody.backend/internal/domain/entities"
	"coin-custody.backend/internal/interfaces/http/response"
	"coin-custody.backend/internal/usecases"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Webhook-Signature"

type webhookService interface {
	HandleTransactionNotification(ctx context.Context, notif *entities.TransactionNotification, rawPayload, signature string) error
	RecordRejectedDelivery(ctx context.Context, rawPayload, signature, reason string)
}

// WebhookHandler handles chain monitor webhook endpoints
type WebhookHandler struct {
	webhookUsecase webhookService
	networks       map[string]config.NetworkConfig
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookUsecase *usecases.WebhookUsecase, networks map[string]config.NetworkConfig) *WebhookHandler {
	return &WebhookHandler{
		webhookUsecase: webhookUsecase,
		networks:       networks,
	}
}

// HandleChainWebhook handles transaction notifications from the chain monitor
// POST /api/v1/webhooks/chain
//
// The signature is verified against the raw body before anything is parsed
// into the domain. Unverifiable requests get a 401 and are never processed;
// verified requests are always acknowledged with a 200 so the provider does
// not redeliver events we have already recorded.
func (h *WebhookHandler) HandleChainWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "BAD_REQUEST", "Unreadable body")
		return
	}

	var notif entities.TransactionNotification
	if err := json.Unmarshal(body, &notif); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "BAD_REQUEST", "Malformed payload")
		return
	}

	signature := c.GetHeader(SignatureHeader)
	netCfg, ok := h.networks[string(notif.Network)]
	if !ok || netCfg.WebhookSecret == "" {
		h.webhookUsecase.RecordRejectedDelivery(c.Request.Context(), string(body), signature,
			"no webhook secret for network "+string(notif.Network))
		response.ErrorWithStatus(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid webhook signature")
		return
	}
	if !verifySignature(body, signature, netCfg.WebhookSecret) {
		h.webhookUsecase.RecordRejectedDelivery(c.Request.Context(), string(body), signature,
			"signature mismatch")
		response.ErrorWithStatus(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid webhook signature")
		return
	}

	if err := h.webhookUsecase.HandleTransactionNotification(c.Request.Context(), &notif, string(body), signature); err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, "INTERNAL", "Failed to process webhook")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}

func verifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
