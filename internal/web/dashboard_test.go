package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/parkave-bakery/internal/clover"
	"github.com/example/parkave-bakery/internal/orders"
	"github.com/example/parkave-bakery/internal/preplist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionCookie mints a valid staff session for handler tests.
func sessionCookie(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, srv.Auth.SetSession(w, r, 1))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestDashboardAPIRequiresAuth(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})
	w := doJSON(t, srv.Routes(), http.MethodGet, "/dashboard/api/orders", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestDashboardRedirectsBrowsersToLogin(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})
	w := doJSON(t, srv.Routes(), http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPrepOrdersDemoMode(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})

	r := httptest.NewRequest(http.MethodGet, "/dashboard/api/orders?date=2026-06-05", nil)
	r.AddCookie(sessionCookie(t, srv))
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got preplist.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "2026-06-05", got.Date)
	assert.Greater(t, got.Totals.Orders, 0)
	assert.NotEmpty(t, got.BakeList.Breads)
}

func TestPrepOrdersFallsBackToLocalMirror(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store, clover.Credentials{})
	srv.DemoMode = false // no clover creds either, so the local mirror serves

	r := httptest.NewRequest(http.MethodGet, "/dashboard/api/orders?date=2026-06-05", nil)
	r.AddCookie(sessionCookie(t, srv))
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got preplist.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0, got.Totals.Orders)
}

func TestLocalToCloverKeepsPickupMetadata(t *testing.T) {
	in := []orders.Order{{
		Ref:        "ref-1",
		PickupDate: "2026-06-05",
		PickupTime: "09:00",
		Lines: []orders.Line{
			{ItemName: "Challah", Quantity: 2, UnitPriceCents: 900},
		},
	}}

	out := localToClover(in)
	require.Len(t, out, 1)
	date, tm, ok := clover.PickupInfo(out[0])
	require.True(t, ok)
	assert.Equal(t, "2026-06-05", date)
	assert.Equal(t, "09:00", tm)

	// marker plus the real line
	require.Len(t, out[0].LineItems.Elements, 2)
	assert.Equal(t, 2, out[0].LineItems.Elements[1].EffectiveQuantity())
}

func TestTargetDateDefaultsToToday(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), clover.Credentials{})

	r := httptest.NewRequest(http.MethodGet, "/dashboard/api/orders", nil)
	assert.Equal(t, "2026-06-04", srv.targetDate(r))

	r = httptest.NewRequest(http.MethodGet, "/dashboard/api/orders?date=2026-07-01", nil)
	assert.Equal(t, "2026-07-01", srv.targetDate(r))

	r = httptest.NewRequest(http.MethodGet, "/dashboard/api/orders?date=bogus", nil)
	assert.Equal(t, "2026-06-04", srv.targetDate(r))
}
