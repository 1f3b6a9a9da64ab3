package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

// PaymentsService is a thin pass-through to the hosted payments provider.
// No payment state lives in this service; the provider is the source of
// truth and notifies us through the webhook.
type PaymentsService struct {
	baseURL       string
	apiKey        string
	webhookSecret string
}

func NewPaymentsService() *PaymentsService {
	_ = godotenv.Load()

	return &PaymentsService{
		baseURL:       os.Getenv("PAYMENTS_BASE_URL"),
		apiKey:        os.Getenv("PAYMENTS_API_KEY"),
		webhookSecret: os.Getenv("PAYMENTS_WEBHOOK_SECRET"),
	}
}

type CheckoutRequest struct {
	PriceID    string `json:"price_id" binding:"required"`
	SuccessURL string `json:"success_url" binding:"required,url"`
	CancelURL  string `json:"cancel_url" binding:"required,url"`
}

type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

func (s *PaymentsService) CreateCheckoutSession(req CheckoutRequest, userID int) (*CheckoutSession, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("payments provider is not configured")
	}

	payload := map[string]interface{}{
		"price_id":    req.PriceID,
		"success_url": req.SuccessURL,
		"cancel_url":  req.CancelURL,
		"metadata":    map[string]interface{}{"user_id": userID},
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", s.baseURL+"/v1/checkout/sessions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("payments provider returned %s", resp.Status)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}

	return &session, nil
}

// VerifySignature checks the webhook signature header against an
// HMAC-SHA256 of the raw body keyed with the shared secret.
func (s *PaymentsService) VerifySignature(body []byte, signature string) bool {
	if s.webhookSecret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
