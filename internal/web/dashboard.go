package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/example/parkave-bakery/internal/checklists"
	"github.com/example/parkave-bakery/internal/clover"
	"github.com/example/parkave-bakery/internal/db"
	"github.com/example/parkave-bakery/internal/orders"
	"github.com/example/parkave-bakery/internal/preplist"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := s.Auth.StaffID(r); ok {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		s.render(w, "templates/login.html", tmplData{Title: "Staff Login"})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		id, err := s.Auth.Authenticate(r.Context(), r.FormValue("username"), r.FormValue("password"))
		if err != nil {
			s.render(w, "templates/login.html", tmplData{Title: "Staff Login", Flash: "Invalid username or password"})
			return
		}
		if err := s.Auth.SetSession(w, r, id); err != nil {
			http.Error(w, "session error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

type checklistStatus struct {
	checklists.Template
	Session checklists.Session `json:"session"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	date := s.targetDate(r)
	staffID, _ := s.Auth.StaffID(r)

	summary, err := s.prepSummary(r, date)
	if err != nil {
		log.Printf("web: prep summary for %s failed: %v", date, err)
	}

	s.render(w, "templates/dashboard.html", tmplData{
		Title:      "Prep Dashboard",
		Staff:      staffID,
		Date:       date,
		Summary:    summary,
		Checklists: s.checklistStatuses(r, date),
	})
}

// handlePrepOrders serves the bake-list summary the dashboard polls.
func (s *Server) handlePrepOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	date := s.targetDate(r)
	summary, err := s.prepSummary(r, date)
	if err != nil {
		log.Printf("web: prep summary for %s failed: %v", date, err)
		s.writeError(w, http.StatusInternalServerError, "could not load orders")
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// prepSummary picks the best available order source. Clover is authoritative
// when configured; otherwise the local mirror serves, and demo mode substitutes
// fixture orders so the dashboard can be exercised without credentials.
func (s *Server) prepSummary(r *http.Request, date string) (preplist.Summary, error) {
	now := s.Clock.Now()

	if s.DemoMode {
		return preplist.Build(preplist.MockOrders(date, s.TZ), date, s.TZ, now), nil
	}

	if s.Clover.Enabled() {
		fetched, err := s.Clover.ListOrders(r.Context(), now.Add(-14*24*time.Hour), now.Add(24*time.Hour))
		if err == nil {
			return preplist.Build(fetched, date, s.TZ, now), nil
		}
		log.Printf("web: clover order fetch failed, falling back to local mirror: %v", err)
	}

	local, err := s.Store.ListForDate(r.Context(), date)
	if err != nil {
		return preplist.Summary{}, err
	}
	return preplist.Build(localToClover(local), date, s.TZ, now), nil
}

// localToClover adapts mirror rows to the Clover order shape the prep
// aggregator consumes, synthesizing the pickup marker line item.
func localToClover(in []orders.Order) []clover.Order {
	out := make([]clover.Order, 0, len(in))
	for _, o := range in {
		co := clover.Order{ID: o.Ref, CreatedTime: o.CreatedAt.UnixMilli()}
		co.LineItems.Elements = append(co.LineItems.Elements, clover.LineItem{
			Name: clover.PickupMarkerName(o.PickupDate, o.PickupTime),
		})
		for _, line := range o.Lines {
			qty := line.Quantity
			co.LineItems.Elements = append(co.LineItems.Elements, clover.LineItem{
				Name:       line.ItemName,
				PriceCents: line.UnitPriceCents,
				Quantity:   &qty,
			})
		}
		out = append(out, co)
	}
	return out
}

func (s *Server) checklistStatuses(r *http.Request, date string) []checklistStatus {
	out := make([]checklistStatus, 0, len(checklists.Templates()))
	for _, tmpl := range checklists.Templates() {
		sess, err := s.Checklists.Session(r.Context(), date, tmpl.ID)
		if err != nil {
			log.Printf("web: checklist session %s/%s failed: %v", date, tmpl.ID, err)
			sess = checklists.Session{Responses: map[string]string{}, Total: tmpl.TotalItems()}
		}
		out = append(out, checklistStatus{Template: tmpl, Session: sess})
	}
	return out
}

// handleChecklistIndex lists every checklist with its progress for a date.
func (s *Server) handleChecklistIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	date := s.targetDate(r)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"date":       date,
		"checklists": s.checklistStatuses(r, date),
	})
}

// handleChecklist routes the per-checklist operations:
//
//	GET  /dashboard/api/checklists/history            -> completion history
//	GET  /dashboard/api/checklists/{id}               -> template + session
//	POST /dashboard/api/checklists/{id}/response      -> save one answer
//	POST /dashboard/api/checklists/{id}/complete      -> sign off
func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/dashboard/api/checklists/")
	if rest == "history" {
		s.handleChecklistHistory(w, r)
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	templateID := parts[0]
	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}
	date := s.targetDate(r)

	switch {
	case action == "" && r.Method == http.MethodGet:
		tmpl, ok := checklists.TemplateByID(templateID)
		if !ok {
			s.writeError(w, http.StatusNotFound, "unknown checklist")
			return
		}
		sess, err := s.Checklists.Session(r.Context(), date, templateID)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "could not load checklist")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"template": tmpl, "session": sess, "date": date})

	case action == "response" && r.Method == http.MethodPost:
		var body struct {
			ItemID string `json:"itemId"`
			Value  string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ItemID == "" {
			s.writeError(w, http.StatusBadRequest, "itemId is required")
			return
		}
		sess, err := s.Checklists.SaveResponse(r.Context(), date, templateID, body.ItemID, body.Value)
		if err != nil {
			if db.IsNotFound(err) {
				s.writeError(w, http.StatusNotFound, "unknown checklist")
				return
			}
			s.writeError(w, http.StatusInternalServerError, "could not save response")
			return
		}
		s.writeJSON(w, http.StatusOK, sess)

	case action == "complete" && r.Method == http.MethodPost:
		var body struct {
			CompletedBy string `json:"completedBy"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		completion, err := s.Checklists.MarkComplete(r.Context(), date, templateID, body.CompletedBy)
		if err != nil {
			if db.IsNotFound(err) {
				s.writeError(w, http.StatusNotFound, "unknown checklist")
				return
			}
			s.writeError(w, http.StatusInternalServerError, "could not complete checklist")
			return
		}
		s.writeJSON(w, http.StatusOK, completion)

	default:
		s.writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleChecklistHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	now := s.Clock.Now()
	to := r.URL.Query().Get("to")
	if to == "" {
		to = s.TZ.DateString(now)
	}
	from := r.URL.Query().Get("from")
	if from == "" {
		from = s.TZ.DateString(now.AddDate(0, 0, -30))
	}
	history, err := s.Checklists.History(r.Context(), from, to)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"from": from, "to": to, "completions": history})
}

// targetDate reads ?date= or defaults to today in the bakery's zone.
func (s *Server) targetDate(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		if _, err := s.TZ.ParseDate(d); err == nil {
			return d
		}
	}
	return s.TZ.DateString(s.Clock.Now())
}
