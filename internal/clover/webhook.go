package clover

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Webhook event types this service reacts to.
const (
	EventPaymentCreated  = "payment.created"
	EventPaymentFailed   = "payment.failed"
	EventPaymentRefunded = "payment.refunded"
)

// WebhookEvent is the payload Clover posts when a payment settles.
type WebhookEvent struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
}

// ParseWebhook decodes a raw event body.
func ParseWebhook(body []byte) (WebhookEvent, error) {
	var ev WebhookEvent
	err := json.Unmarshal(body, &ev)
	return ev, err
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex signature header against
// the raw request body using a constant-time compare.
func VerifyWebhookSignature(secret string, signature string, body []byte) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
