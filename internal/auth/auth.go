package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/parkave-bakery/internal/db"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

// Store gates the prep dashboard behind staff accounts. Sessions ride in a
// securecookie-encoded HttpOnly cookie; passwords are bcrypt hashes in the
// staff_users table.
type Store struct {
	sc *securecookie.SecureCookie
	db *db.DB
}

type ctxKey string

const staffIDKey ctxKey = "staffID"

const cookieName = "bakery_dashboard"

const sessionTTL = 7 * 24 * time.Hour

func NewStore(d *db.DB, hashKey, blockKey []byte) *Store {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(sessionTTL.Seconds()))
	return &Store{sc: sc, db: d}
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func (s *Store) CreateStaff(ctx context.Context, username, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.db.Exec(ctx, `INSERT INTO staff_users(username, password_bcrypt) VALUES ($1,$2)`, username, hash)
}

func (s *Store) Authenticate(ctx context.Context, username, password string) (int64, error) {
	var id int64
	var hash string
	err := s.db.QueryRow(ctx, `SELECT id, password_bcrypt FROM staff_users WHERE username=$1`, username).Scan(&id, &hash)
	if err != nil {
		return 0, db.WrapNotFound(err)
	}
	if !CheckPassword(hash, password) {
		return 0, errors.New("invalid credentials")
	}
	return id, nil
}

type session struct {
	StaffID int64 `json:"sid"`
	V       int   `json:"v"`
}

func (s *Store) SetSession(w http.ResponseWriter, r *http.Request, staffID int64) error {
	encoded, err := s.sc.Encode(cookieName, session{StaffID: staffID, V: 1})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(sessionTTL.Seconds()),
	})
	return nil
}

func (s *Store) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func (s *Store) StaffID(r *http.Request) (int64, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return 0, false
	}
	var sess session
	if err := s.sc.Decode(cookieName, c.Value, &sess); err != nil {
		return 0, false
	}
	if sess.StaffID <= 0 {
		return 0, false
	}
	return sess.StaffID, true
}

// RequireAuth redirects browsers to /login and answers API clients with a 401
// JSON body, matching how the dashboard front end consumes these routes.
func (s *Store) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.StaffID(r)
		if !ok {
			if wantsJSON(r) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), staffIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func StaffIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey).(int64)
	return id, ok
}

func wantsJSON(r *http.Request) bool {
	if r.Header.Get("Accept") == "application/json" {
		return true
	}
	// dashboard API routes are JSON regardless of Accept
	return len(r.URL.Path) >= 15 && r.URL.Path[:15] == "/dashboard/api/"
}
