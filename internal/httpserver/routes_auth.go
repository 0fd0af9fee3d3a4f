// internal/httpserver/routes_auth.go
//
// Account routes, mounted only when an auth.Service is configured:
//   - POST /auth/signup → create account, set cookie, claim guest session
//   - POST /auth/login  → verify credentials, set cookie, claim guest session
//   - POST /auth/logout → clear cookie
//   - GET  /auth/me     → current user (requires auth)

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordsmith/internal/auth"
)

// credentialsReq is the payload for signup/login.
type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mountAuthRoutes registers /auth/*.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)
	s.r.With(s.requireAuth).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, playerFrom(r).User)
	})
}

// handleSignup creates a user, sets the auth cookie, and claims the guest session.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.auth.Signup(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username_taken")
		return
	case errors.Is(err, auth.ErrInvalidSignup):
		writeError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), auth.ErrInvalidSignup.Error()+": "))
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("signup")
		writeError(w, http.StatusInternalServerError, "signup_failed")
		return
	}
	if !s.issueToken(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// handleLogin authenticates, sets the auth cookie, and claims the guest session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.auth.Login(r.Context(), body.Username, body.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("login")
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}
	if !s.issueToken(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": u.ID, "username": u.Username})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.expiredCookie(s.cfg.CookieName))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// issueToken signs a token for u, sets it as a cookie, and hands any guest
// session to the account. It writes the error response itself on failure.
func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, u *auth.User) bool {
	tok, exp, err := s.auth.SignToken(u)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	http.SetCookie(w, s.cookie(s.cfg.CookieName, tok, exp))

	if guest := anonID(r); guest != "" {
		moved, err := s.sessions.Claim(r.Context(), anonOwner(guest), userOwner(u.ID))
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Str("user", u.ID).Msg("claim guest session")
		} else if moved {
			hlog.FromRequest(r).Info().Str("user", u.ID).Msg("claimed guest session")
		}
	}
	return true
}

// requireAuth 401s unless the request carries a valid token for an existing user.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := s.tokenUser(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := contextWithPlayer(r, player{ID: userOwner(c.ID), User: &c})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenUser verifies the bearer/cookie token and checks the user still exists.
func (s *Server) tokenUser(r *http.Request) (auth.Claims, bool) {
	if s.auth == nil {
		return auth.Claims{}, false
	}
	tok := s.bearerOrCookie(r)
	if tok == "" {
		return auth.Claims{}, false
	}
	c, err := s.auth.ParseToken(tok)
	if err != nil {
		return auth.Claims{}, false
	}
	if _, err := s.auth.FindByID(r.Context(), c.ID); err != nil {
		return auth.Claims{}, false
	}
	return c, true
}

// bearerOrCookie extracts a token from the Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// cookie builds an HttpOnly cookie with production-aware security attributes.
func (s *Server) cookie(name, value string, exp time.Time) *http.Cookie {
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	}
}

// expiredCookie deletes name on the client.
func (s *Server) expiredCookie(name string) *http.Cookie {
	c := s.cookie(name, "", time.Time{})
	c.MaxAge = -1
	return c
}
