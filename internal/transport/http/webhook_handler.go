package handlers

import (
	"errors"
	"log"
	"net/http"

	"coursemarket/internal/domain"
	"coursemarket/internal/service"
	"coursemarket/internal/webhook"

	"github.com/gin-gonic/gin"
)

// WebhookHandler принимает доставки от Clerk и Stripe. Оба провайдера
// шлют повторно до первого 2xx, поэтому: подпись не сошлась — 4xx без
// мутаций; обработка упала — 5xx, пусть доставляют еще раз; все прошло
// (включая дубли) — 2xx, чтобы ретраи остановились.
type WebhookHandler struct {
	clerk     *webhook.ClerkVerifier
	stripe    *webhook.StripeVerifier
	identity  *service.IdentityService
	purchases *service.PurchaseService
}

func NewWebhookHandler(clerk *webhook.ClerkVerifier, stripe *webhook.StripeVerifier, identity *service.IdentityService, purchases *service.PurchaseService) *WebhookHandler {
	return &WebhookHandler{
		clerk:     clerk,
		stripe:    stripe,
		identity:  identity,
		purchases: purchases,
	}
}

// POST /clerk
func (h *WebhookHandler) Clerk(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	event, err := h.clerk.Verify(payload, c.Request.Header)
	if err != nil {
		log.Printf("clerk webhook rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.identity.HandleEvent(c.Request.Context(), event); err != nil {
		log.Printf("clerk event %s failed: %v", event.Type, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /stripe
func (h *WebhookHandler) Stripe(c *gin.Context) {
	// Тело нужно сырым: подпись считается до разбора JSON
	payload, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: %v", err)
		return
	}

	event, err := h.stripe.Verify(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			log.Printf("stripe webhook rejected: %v", err)
		}
		c.String(http.StatusBadRequest, "Webhook Error: %v", err)
		return
	}

	if err := h.purchases.HandlePaymentEvent(c.Request.Context(), event); err != nil {
		log.Printf("stripe event %s failed: %v", event.Type, err)
		c.String(http.StatusInternalServerError, "Webhook Error: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
