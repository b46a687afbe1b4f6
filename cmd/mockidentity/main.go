// Command mockidentity is a local stand-in for the hosted identity provider.
// It implements the subset of the provider's REST API the service delegates
// to (signup, password-grant token, admin user lookup) with an in-memory
// account store, so the API runs end-to-end in development and tests.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	ID           string
	Email        string
	PasswordHash []byte
	Name         string
	Phone        string
	Role         string
	Confirmed    bool
	CreatedAt    time.Time
}

type store struct {
	mu      sync.Mutex
	byEmail map[string]*account
	byID    map[string]*account
}

func newStore() *store {
	return &store{
		byEmail: make(map[string]*account),
		byID:    make(map[string]*account),
	}
}

func (s *store) add(a *account) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[a.Email]; exists {
		return false
	}
	s.byEmail[a.Email] = a
	s.byID[a.ID] = a
	return true
}

func (s *store) findByEmail(email string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byEmail[email]
	return a, ok
}

func (s *store) findByID(id string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	return a, ok
}

// userJSON mirrors the provider's wire representation of an account.
type userJSON struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	ConfirmedAt string         `json:"confirmed_at"`
	Metadata    map[string]any `json:"user_metadata"`
}

func toUserJSON(a *account) userJSON {
	confirmed := ""
	if a.Confirmed {
		confirmed = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	return userJSON{
		ID:          a.ID,
		Email:       a.Email,
		Role:        a.Role,
		ConfirmedAt: confirmed,
		Metadata:    map[string]any{"name": a.Name, "phone": a.Phone},
	}
}

func main() {
	addr := envOr("IDENTITY_ADDR", ":8081")
	autoConfirm := envOr("AUTO_CONFIRM", "true") == "true"

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	accounts := newStore()
	seed(accounts)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /signup", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string            `json:"email"`
			Password string            `json:"password"`
			Data     map[string]string `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "password not acceptable")
			return
		}

		a := &account{
			ID:           uuid.New().String(),
			Email:        strings.ToLower(req.Email),
			PasswordHash: hash,
			Name:         req.Data["name"],
			Role:         "USER",
			Confirmed:    autoConfirm,
			CreatedAt:    time.Now(),
		}
		if !accounts.add(a) {
			writeError(w, http.StatusUnprocessableEntity, "user already registered")
			return
		}

		slog.Info("account registered", "email", a.Email, "confirmed", a.Confirmed)
		writeJSON(w, http.StatusOK, toUserJSON(a))
	})

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "password" {
			writeError(w, http.StatusBadRequest, "unsupported grant type")
			return
		}

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		a, ok := accounts.findByEmail(strings.ToLower(req.Email))
		if !ok || bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(req.Password)) != nil {
			writeError(w, http.StatusBadRequest, "invalid login credentials")
			return
		}
		if !a.Confirmed {
			writeError(w, http.StatusBadRequest, "email not confirmed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": uuid.New().String(),
			"token_type":   "bearer",
			"user":         toUserJSON(a),
		})
	})

	mux.HandleFunc("GET /admin/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		a, ok := accounts.findByID(r.PathValue("id"))
		if !ok {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeJSON(w, http.StatusOK, toUserJSON(a))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("mock identity provider starting", "addr", addr, "autoConfirm", autoConfirm)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

// seed creates the development accounts announced at startup.
func seed(s *store) {
	seeds := []struct {
		email, password, name, role string
	}{
		{"admin@pitstop.local", "admin-password", "Admin", "ADMIN"},
		{"driver@pitstop.local", "driver-password", "Driver", "USER"},
	}

	for _, sd := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(sd.password), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("seeding account", "error", err)
			os.Exit(1)
		}
		s.add(&account{
			ID:           uuid.New().String(),
			Email:        sd.email,
			PasswordHash: hash,
			Name:         sd.name,
			Role:         sd.role,
			Confirmed:    true,
			CreatedAt:    time.Now(),
		})
		slog.Info("seeded account", "email", sd.email, "password", sd.password, "role", sd.role)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error":             http.StatusText(status),
		"error_description": msg,
		"msg":               msg,
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
