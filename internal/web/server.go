package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/example/parkave-bakery/internal/auth"
	"github.com/example/parkave-bakery/internal/checklists"
	"github.com/example/parkave-bakery/internal/clock"
	"github.com/example/parkave-bakery/internal/clover"
	"github.com/example/parkave-bakery/internal/orders"
	"github.com/example/parkave-bakery/internal/preplist"
	"github.com/example/parkave-bakery/internal/rules"
	"github.com/go-playground/validator/v10"
)

//go:embed templates/*.html static/*
var fs embed.FS

// Server wires the availability engine and its collaborators to HTTP. All
// dependencies are injected; nothing here is package-level state.
type Server struct {
	Engine     *rules.Engine
	Store      orders.Store
	Auth       *auth.Store
	Checklists *checklists.Repo
	Clover     *clover.Client
	TZ         *clock.Bakery
	Clock      clock.Clock

	BaseURL       string
	AllowedOrigin string
	WebhookSecret string
	DemoMode      bool

	validate *validator.Validate
}

func NewServer(s Server) *Server {
	s.validate = validator.New()
	return &s
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.FileServer(http.FS(fs)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	// public storefront API
	mux.HandleFunc("/api/order-rules", s.cors(s.handleOrderRules))
	mux.HandleFunc("/api/checkout", s.cors(s.handleCheckout))
	mux.HandleFunc("/api/webhook", s.handleWebhook)

	// staff dashboard
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.Handle("/dashboard", s.Auth.RequireAuth(http.HandlerFunc(s.handleDashboard)))
	mux.Handle("/dashboard/api/orders", s.Auth.RequireAuth(http.HandlerFunc(s.handlePrepOrders)))
	mux.Handle("/dashboard/api/checklists", s.Auth.RequireAuth(http.HandlerFunc(s.handleChecklistIndex)))
	mux.Handle("/dashboard/api/checklists/", s.Auth.RequireAuth(http.HandlerFunc(s.handleChecklist)))

	return mux
}

// cors mirrors the origin policy of the original deployment: echo the single
// allowed origin, answer preflights, pass everything else through.
func (s *Server) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AllowedOrigin != "" && r.Header.Get("Origin") == s.AllowedOrigin {
			w.Header().Set("Access-Control-Allow-Origin", s.AllowedOrigin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

type tmplData struct {
	Title string
	Staff int64
	Flash string

	Date       string
	Summary    preplist.Summary
	Checklists []checklistStatus
}

func (s *Server) render(w http.ResponseWriter, name string, data tmplData) {
	t, err := template.ParseFS(fs,
		"templates/base.html",
		name,
	)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
	}
}

func Start(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	fmt.Printf("listening on %s\n", addr)
	return srv.ListenAndServe()
}
