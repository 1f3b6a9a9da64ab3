package payments

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type PaymentsHandler struct {
	Service                *PaymentsService
	SubscriptionRepository *SubscriptionRepository
	logger                 *zap.Logger
}

func NewPaymentsHandler(service *PaymentsService, sr *SubscriptionRepository, logger *zap.Logger) *PaymentsHandler {
	return &PaymentsHandler{
		Service:                service,
		SubscriptionRepository: sr,
		logger:                 logger,
	}
}

func (h *PaymentsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/payments/checkout", security.Authorize(roles.Member), h.CreateCheckout)
	router.GET("/payments/subscription", security.Authorize(roles.Viewer), h.GetSubscription)
}

// RegisterPublicRoutes mounts the webhook outside JWT auth; the provider
// authenticates with the signature header instead.
func (h *PaymentsHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/payments/webhook", h.Webhook)
}

func (h *PaymentsHandler) CreateCheckout(c *gin.Context) {
	var request CheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	session, err := h.Service.CreateCheckoutSession(request, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not configured") {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Checkout session creation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *PaymentsHandler) GetSubscription(c *gin.Context) {
	userID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	subscription, err := h.SubscriptionRepository.GetSubscription(userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusOK, gin.H{"plan": "free", "status": "none"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, subscription)
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		UserID json.Number `json:"user_id"`
		Plan   string      `json:"plan"`
		Status string      `json:"status"`
	} `json:"data"`
}

func (h *PaymentsHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read request body"})
		return
	}

	if !h.Service.VerifySignature(body, c.GetHeader("X-Webhook-Signature")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	switch event.Type {
	case "checkout.completed", "subscription.updated", "subscription.cancelled":
		userID, err := strconv.Atoi(event.Data.UserID.String())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id in event"})
			return
		}
		if err := h.SubscriptionRepository.UpsertFromEvent(userID, event.Data.Plan, event.Data.Status); err != nil {
			h.logger.Error("failed to sync subscription from webhook", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync subscription"})
			return
		}
	default:
		h.logger.Info("ignoring unhandled webhook event", zap.String("type", event.Type))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
