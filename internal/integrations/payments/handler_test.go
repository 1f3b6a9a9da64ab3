package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func setupWebhookRouter(t *testing.T, secret string) *gin.Engine {
	t.Setenv("PAYMENTS_WEBHOOK_SECRET", secret)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewPaymentsHandler(NewPaymentsService(), nil, zap.NewNop())
	handler.RegisterPublicRoutes(router.Group(""))

	return router
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	router := setupWebhookRouter(t, "testsecret")

	body := []byte(`{"type":"ping"}`)
	req, _ := http.NewRequest("POST", "/payments/webhook", bytes.NewBuffer(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	router := setupWebhookRouter(t, "testsecret")

	body := []byte(`{"type":"ping"}`)
	req, _ := http.NewRequest("POST", "/payments/webhook", bytes.NewBuffer(body))
	req.Header.Set("X-Webhook-Signature", sign("wrongsecret", body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestWebhookAcknowledgesUnhandledEvent(t *testing.T) {
	router := setupWebhookRouter(t, "testsecret")

	body := []byte(`{"type":"invoice.finalized"}`)
	req, _ := http.NewRequest("POST", "/payments/webhook", bytes.NewBuffer(body))
	req.Header.Set("X-Webhook-Signature", sign("testsecret", body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "received")
}

func TestVerifySignature(t *testing.T) {
	t.Setenv("PAYMENTS_WEBHOOK_SECRET", "testsecret")
	service := NewPaymentsService()

	body := []byte(`{"type":"checkout.completed"}`)

	assert.True(t, service.VerifySignature(body, sign("testsecret", body)))
	assert.False(t, service.VerifySignature(body, sign("other", body)))
	assert.False(t, service.VerifySignature(body, ""))
}
