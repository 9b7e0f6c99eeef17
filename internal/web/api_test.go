package web

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/parkave-bakery/internal/auth"
	"github.com/example/parkave-bakery/internal/clock"
	"github.com/example/parkave-bakery/internal/clover"
	"github.com/example/parkave-bakery/internal/orders"
	"github.com/example/parkave-bakery/internal/rules"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory orders.Store for handler tests.
type fakeStore struct {
	unitsSold map[string]int
	booked    map[string]int
	committed []orders.Order
	commitErr error
	statuses  map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		unitsSold: map[string]int{},
		booked:    map[string]int{},
		statuses:  map[string]string{},
	}
}

func (f *fakeStore) UnitsSold(ctx context.Context, date string) (map[string]int, error) {
	return f.unitsSold, nil
}

func (f *fakeStore) BookedBySlot(ctx context.Context, date string) (map[string]int, error) {
	return f.booked, nil
}

func (f *fakeStore) CommitOrder(ctx context.Context, o orders.Order, slotMax int, dailyLimits map[string]int) (int64, error) {
	if f.commitErr != nil {
		return 0, f.commitErr
	}
	f.committed = append(f.committed, o)
	return int64(len(f.committed)), nil
}

func (f *fakeStore) SetStatusByCloverID(ctx context.Context, cloverOrderID, status string) error {
	f.statuses[cloverOrderID] = status
	return nil
}

func (f *fakeStore) UpsertMirrored(ctx context.Context, o orders.Order) error { return nil }

func (f *fakeStore) ListForDate(ctx context.Context, date string) ([]orders.Order, error) {
	return nil, nil
}

// fixture: the clock reads Thursday 2026-06-04 09:00 Denver time.
func newTestServer(t *testing.T, store *fakeStore, cloverCreds clover.Credentials) *Server {
	t.Helper()
	tz, err := clock.New("America/Denver")
	require.NoError(t, err)
	catalog, err := rules.NewCatalog(rules.DefaultItems())
	require.NoError(t, err)

	now := time.Date(2026, 6, 4, 9, 0, 0, 0, tz.Location())

	return NewServer(Server{
		Engine:        rules.NewEngine(catalog, rules.DefaultCalendar(), rules.DefaultSlotTable(), tz),
		Store:         store,
		Auth:          auth.NewStore(nil, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32)),
		Clover:        clover.New(cloverCreds),
		TZ:            tz,
		Clock:         clock.Fixed{T: now},
		WebhookSecret: "hooksecret",
		DemoMode:      true,
	})
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestOrderRulesMenu(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})
	w := doJSON(t, srv.Routes(), http.MethodGet, "/api/order-rules?pickupDate=2026-06-05", "")
	require.Equal(t, http.StatusOK, w.Code)

	var menu rules.Menu
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	require.NotEmpty(t, menu.Breads)
	// Friday menu leads with the specialty bakes
	assert.Equal(t, "specialty-bread", menu.Breads[0].Category)
}

func TestOrderRulesMenuRequiresDate(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})
	w := doJSON(t, srv.Routes(), http.MethodGet, "/api/order-rules", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv.Routes(), http.MethodGet, "/api/order-rules?pickupDate=junk", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderRulesSlots(t *testing.T) {
	store := newFakeStore()
	store.booked = map[string]int{"07:00": 4}
	srv := newTestServer(t, store, clover.Credentials{})

	w := doJSON(t, srv.Routes(), http.MethodGet, "/api/order-rules?pickupDate=2026-06-05&type=slots", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got rules.SlotAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.True(t, got.Available)
	for _, s := range got.Slots {
		assert.NotEqual(t, "07:00", s.Time, "fully booked slot must not be listed")
	}
}

func TestValidateCart(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})

	// Old World Italian for a Thursday pickup is off-schedule
	body := `{"order":{"pickupDate":"2026-06-04","pickupTime":"10:00","items":[{"id":"bread-17","quantity":1}]}}`
	w := doJSON(t, srv.Routes(), http.MethodPost, "/api/order-rules", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var result rules.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Old World Italian is only available on Wednesday & Friday"}, result.Errors)

	// Friday is fine
	body = `{"order":{"pickupDate":"2026-06-05","pickupTime":"10:00","items":[{"id":"bread-17","quantity":1}]}}`
	w = doJSON(t, srv.Routes(), http.MethodPost, "/api/order-rules", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Valid)
}

func TestValidateCartRejectsBadShape(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})
	for _, body := range []string{
		`{not json`,
		`{"order":{"pickupDate":"2026-06-05","pickupTime":"10:00","items":[]}}`,
		`{"order":{"pickupDate":"2026-06-05","pickupTime":"10:00","items":[{"id":"bread-17","quantity":0}]}}`,
		`{"order":{"pickupTime":"10:00","items":[{"id":"bread-17","quantity":1}]}}`,
	} {
		w := doJSON(t, srv.Routes(), http.MethodPost, "/api/order-rules", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

const checkoutBody = `{"order":{
	"customer":{"fullName":"Jane Q Baker","email":"jane@example.com"},
	"pickupDate":"2026-06-05","pickupTime":"09:00",
	"items":[{"id":"challah","quantity":2}]}}`

func TestCheckoutDisabledWithoutCredentials(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})
	w := doJSON(t, srv.Routes(), http.MethodPost, "/api/checkout", checkoutBody)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCheckoutRequiresCustomer(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{APIKey: "k", MerchantID: "m"})
	body := `{"order":{"pickupDate":"2026-06-05","pickupTime":"09:00","items":[{"id":"challah","quantity":2}]}}`
	w := doJSON(t, srv.Routes(), http.MethodPost, "/api/checkout", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutRejectsUnknownSlot(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{APIKey: "k", MerchantID: "m"})
	body := strings.Replace(checkoutBody, "09:00", "06:00", 1)
	w := doJSON(t, srv.Routes(), http.MethodPost, "/api/checkout", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutSlotFullConflict(t *testing.T) {
	store := newFakeStore()
	store.commitErr = orders.ErrSlotFull
	srv := newTestServer(t, store, clover.Credentials{APIKey: "k", MerchantID: "m"})

	w := doJSON(t, srv.Routes(), http.MethodPost, "/api/checkout", checkoutBody)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutDailyLimitConflict(t *testing.T) {
	store := newFakeStore()
	store.commitErr = orders.ErrDailyLimitReached
	srv := newTestServer(t, store, clover.Credentials{APIKey: "k", MerchantID: "m"})

	w := doJSON(t, srv.Routes(), http.MethodPost, "/api/checkout", checkoutBody)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBuildCheckoutUsesCatalogPricesAndMarker(t *testing.T) {
	o := orders.Order{
		PickupDate:    "2026-06-05",
		PickupTime:    "09:00",
		CustomerName:  "Jane Q Baker",
		CustomerEmail: "jane@example.com",
		Lines: []orders.Line{
			{ItemID: "challah", ItemName: "Challah", Quantity: 2, UnitPriceCents: 900},
		},
	}
	req := buildCheckout(o)

	assert.Equal(t, "Jane", req.Customer.FirstName)
	assert.Equal(t, "Q Baker", req.Customer.LastName)
	require.Len(t, req.ShoppingCart.LineItems, 2)
	assert.Equal(t, 900, req.ShoppingCart.LineItems[0].PriceCents)
	assert.Equal(t, 2000, req.ShoppingCart.LineItems[0].UnitQty)

	marker := req.ShoppingCart.LineItems[1]
	assert.Equal(t, "[PICKUP: 2026-06-05 @ 09:00]", marker.Name)
	assert.Equal(t, 0, marker.PriceCents)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Jane Baker")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Baker", last)

	first, last = splitName("Prince")
	assert.Equal(t, "Prince", first)
	assert.Equal(t, "", last)

	first, _ = splitName("  ")
	assert.Equal(t, "Guest", first)
}

func signHook(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookSignature(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store, clover.Credentials{})
	body := `{"type":"payment.created","orderId":"ORD1"}`

	r := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(body))
	r.Header.Set("X-Clover-Signature", "deadbeef")
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(body))
	r.Header.Set("X-Clover-Signature", signHook("hooksecret", body))
	w = httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, orders.StatusPaid, store.statuses["ORD1"])
}

func TestWebhookPaymentFailedCancels(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store, clover.Credentials{})
	body := `{"type":"payment.failed","orderId":"ORD2"}`

	r := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(body))
	r.Header.Set("X-Clover-Signature", signHook("hooksecret", body))
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, orders.StatusCanceled, store.statuses["ORD2"])
}

func TestWebhookIgnoresUnknownEvents(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store, clover.Credentials{})
	body := `{"type":"inventory.updated","orderId":"ORD3"}`

	r := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(body))
	r.Header.Set("X-Clover-Signature", signHook("hooksecret", body))
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.statuses)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})
	w := doJSON(t, srv.Routes(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})
	srv.AllowedOrigin = "https://parkavebakery.example"

	r := httptest.NewRequest(http.MethodOptions, "/api/order-rules", nil)
	r.Header.Set("Origin", "https://parkavebakery.example")
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://parkavebakery.example", w.Header().Get("Access-Control-Allow-Origin"))

	// other origins get no allow header
	r = httptest.NewRequest(http.MethodOptions, "/api/order-rules", nil)
	r.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
