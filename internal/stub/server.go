package stub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hoppin-app/hoppin-go/internal/domain"
)

// ctxKey is the context key type for the authenticated account.
type ctxKey struct{}

// Server implements the six endpoints of the backend contract. Construct it
// with NewServer and mount Routes on an http.Server or httptest.Server.
type Server struct {
	store       *memoryStore
	tokens      *tokenIssuer
	logger      *slog.Logger
	adminEmails map[string]bool
}

// NewServer builds a stub with an empty store. Accounts whose email appears
// in adminEmails (case-insensitive) are registered as admins. logger may be
// nil, in which case the process-default logger is used.
func NewServer(jwtSecret string, adminEmails []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(email)] = true
	}
	return &Server{
		store:       newMemoryStore(),
		tokens:      newTokenIssuer(jwtSecret),
		logger:      logger,
		adminEmails: admins,
	}
}

// Routes returns the stub's router. Paths keep the trailing slashes the real
// backend requires.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register/", s.handleRegister)
		r.Post("/auth/login/", s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/trips/", s.handleListAll)
			r.Get("/trips/my/", s.handleListMine)
			r.Post("/trips/", s.handleCreateTrip)
			r.Patch("/trips/{id}/match/", s.handleToggleMatched)
		})
	})
	return r
}

// requireAuth authenticates the bearer token and stashes the account in the
// request context. The 401 messages ("Unauthorized", "Invalid token") are
// load-bearing: the client's forced-logout trigger matches on them.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		userID, err := s.tokens.Verify(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		user, found := s.store.UserByID(userID)
		if !found {
			writeMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the account installed by requireAuth.
func currentUser(r *http.Request) domain.User {
	user, _ := r.Context().Value(ctxKey{}).(domain.User)
	return user
}

// handleRegister handles POST /api/auth/register/.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(reg.Email) == "" || reg.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	isAdmin := s.adminEmails[strings.ToLower(reg.Email)]
	user, err := s.store.CreateUser(reg, isAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeMessage(w, http.StatusBadRequest, "A user with this email already exists")
			return
		}
		s.internalError(w, err)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	user.Token = token
	s.logger.Info("user registered", "email", user.Email, "admin", user.IsAdmin)
	writeJSON(w, http.StatusCreated, user)
}

// handleLogin handles POST /api/auth/login/.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, ok := s.store.Authenticate(creds.Email, creds.Password)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	user.Token = token
	writeJSON(w, http.StatusOK, user)
}

// handleListAll handles GET /api/trips/. Admin only.
func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if !user.IsAdmin {
		writeMessage(w, http.StatusForbidden, "Admin access required")
		return
	}
	writeJSON(w, http.StatusOK, s.store.AllTrips())
}

// handleListMine handles GET /api/trips/my/.
func (s *Server) handleListMine(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.TripsByUser(currentUser(r).ID))
}

// handleCreateTrip handles POST /api/trips/.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var draft domain.TripDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := draft.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	trip := s.store.AddTrip(currentUser(r), draft)
	writeJSON(w, http.StatusCreated, trip)
}

// handleToggleMatched handles PATCH /api/trips/{id}/match/. Admin only.
func (s *Server) handleToggleMatched(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if !user.IsAdmin {
		writeMessage(w, http.StatusForbidden, "Admin access required")
		return
	}
	trip, err := s.store.ToggleMatched(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("stub internal error", "error", err)
	writeMessage(w, http.StatusInternalServerError, "An unknown error occurred")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage writes the backend's error envelope: {"message": "..."}.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
