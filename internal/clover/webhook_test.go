package clover

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"type":"payment.created","orderId":"ABC123"}`)

	assert.True(t, VerifyWebhookSignature("topsecret", sign("topsecret", body), body))
	assert.False(t, VerifyWebhookSignature("topsecret", sign("wrong", body), body))
	assert.False(t, VerifyWebhookSignature("topsecret", "", body))
	assert.False(t, VerifyWebhookSignature("topsecret", sign("topsecret", body), []byte("tampered")))
}

func TestParseWebhook(t *testing.T) {
	ev, err := ParseWebhook([]byte(`{"type":"payment.created","orderId":"ABC123"}`))
	require.NoError(t, err)
	assert.Equal(t, EventPaymentCreated, ev.Type)
	assert.Equal(t, "ABC123", ev.OrderID)

	_, err = ParseWebhook([]byte(`{not json`))
	assert.Error(t, err)
}
