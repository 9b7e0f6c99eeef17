package web

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/example/parkave-bakery/internal/clover"
	"github.com/example/parkave-bakery/internal/orders"
	"github.com/example/parkave-bakery/internal/rules"
	"github.com/google/uuid"
)

// handleOrderRules is the storefront's availability endpoint.
//
//	GET  /api/order-rules?pickupDate=YYYY-MM-DD             -> menu of orderable items
//	GET  /api/order-rules?pickupDate=YYYY-MM-DD&type=slots  -> open pickup windows
//	POST /api/order-rules                                   -> validate a cart
func (s *Server) handleOrderRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleAvailability(w, r)
	case http.MethodPost:
		s.handleValidate(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("pickupDate")
	if dateStr == "" {
		s.writeError(w, http.StatusBadRequest, "pickupDate is required")
		return
	}
	pickupDate, err := s.TZ.ParseDate(dateStr)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "pickupDate must be YYYY-MM-DD")
		return
	}
	now := s.Clock.Now()

	if r.URL.Query().Get("type") == "slots" {
		booked, err := s.Store.BookedBySlot(r.Context(), dateStr)
		if err != nil {
			log.Printf("web: booked-by-slot query failed: %v", err)
			s.writeError(w, http.StatusInternalServerError, "could not load slot availability")
			return
		}
		s.writeJSON(w, http.StatusOK, s.Engine.OpenSlots(pickupDate, booked, now))
		return
	}

	s.writeJSON(w, http.StatusOK, s.Engine.ListAvailable(pickupDate, now))
}

type cartItem struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

type orderPayload struct {
	PickupDate string     `json:"pickupDate" validate:"required,datetime=2006-01-02"`
	PickupTime string     `json:"pickupTime" validate:"required"`
	Items      []cartItem `json:"items" validate:"required,min=1,dive"`
}

type validateRequest struct {
	Order orderPayload `json:"order" validate:"required"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, "order must include pickupDate, pickupTime and at least one item")
		return
	}

	pickupDate, err := s.TZ.ParseDate(req.Order.PickupDate)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "pickupDate must be YYYY-MM-DD")
		return
	}

	result := s.Engine.ValidateOrder(toCartLines(req.Order.Items), pickupDate, req.Order.PickupTime, s.Clock.Now())
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, result)
}

type checkoutRequest struct {
	Order struct {
		orderPayload
		Customer struct {
			FullName string `json:"fullName" validate:"required"`
			Email    string `json:"email" validate:"required,email"`
		} `json:"customer" validate:"required"`
	} `json:"order" validate:"required"`
}

// handleCheckout is the one write path for customer orders: re-validate the
// cart server-side, commit a pending order under the slot lock, then hand the
// customer to Clover's hosted checkout. Prices always come from the catalog.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.Clover.Enabled() {
		s.writeError(w, http.StatusServiceUnavailable, "Online checkout is not available right now. Please call the bakery.")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, "order must include customer name, email, pickupDate, pickupTime and at least one item")
		return
	}

	pickupDate, err := s.TZ.ParseDate(req.Order.PickupDate)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "pickupDate must be YYYY-MM-DD")
		return
	}
	now := s.Clock.Now()

	if result := s.Engine.ValidateOrder(toCartLines(req.Order.Items), pickupDate, req.Order.PickupTime, now); !result.Valid {
		s.writeJSON(w, http.StatusBadRequest, result)
		return
	}

	slotMax, ok := s.Engine.SlotMax(pickupDate, req.Order.PickupTime)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "Selected pickup time is not offered on that date.")
		return
	}

	catalog := s.Engine.Catalog()
	o := orders.Order{
		Ref:           uuid.NewString(),
		PickupDate:    req.Order.PickupDate,
		PickupTime:    req.Order.PickupTime,
		CustomerName:  req.Order.Customer.FullName,
		CustomerEmail: req.Order.Customer.Email,
	}
	dailyLimits := map[string]int{}
	for _, it := range req.Order.Items {
		rule, _ := catalog.Lookup(it.ID) // validated above
		o.Lines = append(o.Lines, orders.Line{
			ItemID:         rule.ID,
			ItemName:       rule.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: rule.PriceCents,
		})
		dailyLimits[rule.ID] = rule.DailyLimit
	}

	if _, err := s.Store.CommitOrder(r.Context(), o, slotMax, dailyLimits); err != nil {
		switch {
		case errors.Is(err, orders.ErrSlotFull):
			s.writeError(w, http.StatusConflict, "That pickup time just filled up. Please choose another slot.")
		case errors.Is(err, orders.ErrDailyLimitReached):
			s.writeError(w, http.StatusConflict, "An item in your cart just sold out for that date.")
		default:
			log.Printf("web: order commit failed: %v", err)
			s.writeError(w, http.StatusInternalServerError, "could not reserve your order")
		}
		return
	}

	checkoutURL, err := s.Clover.CreateCheckout(r.Context(), buildCheckout(o))
	if err != nil {
		log.Printf("web: clover checkout failed: %v", err)
		s.writeError(w, http.StatusBadGateway, "Payment provider is unavailable. Please try again.")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"checkoutUrl": checkoutURL, "orderRef": o.Ref})
}

// buildCheckout maps a committed order onto Clover's checkout payload, with
// the hidden pickup-metadata line item appended last.
func buildCheckout(o orders.Order) clover.CheckoutRequest {
	var req clover.CheckoutRequest
	req.Customer.Email = o.CustomerEmail
	req.Customer.FirstName, req.Customer.LastName = splitName(o.CustomerName)
	for _, line := range o.Lines {
		req.ShoppingCart.LineItems = append(req.ShoppingCart.LineItems, clover.CheckoutLineItem{
			Name:       line.ItemName,
			PriceCents: line.UnitPriceCents,
			UnitQty:    line.Quantity * 1000,
		})
	}
	req.ShoppingCart.LineItems = append(req.ShoppingCart.LineItems, clover.CheckoutLineItem{
		Name:       clover.PickupMarkerName(o.PickupDate, o.PickupTime),
		PriceCents: 0,
		UnitQty:    1000,
	})
	return req
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "Guest", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func toCartLines(items []cartItem) []rules.CartLine {
	lines := make([]rules.CartLine, len(items))
	for i, it := range items {
		lines[i] = rules.CartLine{ID: it.ID, Quantity: it.Quantity}
	}
	return lines
}

// handleWebhook receives Clover payment events. Unknown event types are
// acknowledged and dropped; a bad signature is rejected before parsing.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "could not read body")
		return
	}

	if s.WebhookSecret != "" {
		sig := r.Header.Get("X-Clover-Signature")
		if !clover.VerifyWebhookSignature(s.WebhookSecret, sig, body) {
			s.writeError(w, http.StatusUnauthorized, "invalid signature")
			return
		}
	}

	ev, err := clover.ParseWebhook(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	switch ev.Type {
	case clover.EventPaymentCreated:
		if ev.OrderID != "" {
			if err := s.Store.SetStatusByCloverID(r.Context(), ev.OrderID, orders.StatusPaid); err != nil {
				log.Printf("web: webhook paid update for %s failed: %v", ev.OrderID, err)
			}
		}
	case clover.EventPaymentFailed, clover.EventPaymentRefunded:
		if ev.OrderID != "" {
			if err := s.Store.SetStatusByCloverID(r.Context(), ev.OrderID, orders.StatusCanceled); err != nil {
				log.Printf("web: webhook cancel update for %s failed: %v", ev.OrderID, err)
			}
		}
	default:
		// acknowledged, ignored
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
