// internal/httpserver/server.go
//
// HTTP server wiring for the word game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): GET /game, POST /game/new, POST /game/submit.
//   - Auth endpoints, when accounts are enabled: /auth/*.
//
// Notes:
//   - Every request plays as a player: the logged-in user, else an anonymous
//     cookie id. Guests keep their session when they sign up or log in.
//   - The engine returns outcomes only; this package owns all message text.
//   - CORS is origin-aware and credentials-enabled (so cookies work).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsmith/internal/auth"
	"github.com/robalobadob/wordsmith/internal/config"
	"github.com/robalobadob/wordsmith/internal/game"
	"github.com/robalobadob/wordsmith/internal/session"
)

const anonCookieName = "wordsmith_anon"

// WordStats reports loaded word list sizes.
type WordStats interface {
	Stats() (startCount int, dictionaryCount int)
}

// Server bundles router, session manager and optional accounts.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	sessions *session.Manager
	words    WordStats
	auth     *auth.Service // nil when accounts are disabled
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// authSvc may be nil, in which case /auth/* is not mounted.
func New(cfg config.Config, sessions *session.Manager, words WordStats, authSvc *auth.Service) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		sessions: sessions,
		words:    words,
		auth:     authSvc,
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordsmith","endpoints":["/health","GET /game","POST /game/new","POST /game/submit","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		start, dict := s.words.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"start": start, "dictionary": dict})
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withPlayer)
		r.Get("/game", s.handleGame)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/submit", s.handleSubmit)
	})

	if s.auth != nil {
		s.mountAuthRoutes()
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog logs method, path, status and latency through the request logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ PLAYER -------------------------------------

// player identifies whose session a request acts on. ID is the store owner.
type player struct {
	ID   string
	User *auth.Claims // nil for guests
}

// Accounts and guests live in separate owner namespaces, so a guest cookie
// can never name an account's session.
func userOwner(id string) string { return "user:" + id }
func anonOwner(id string) string { return "anon:" + id }

// ctxPlayerKey is the context key type for storing player.
type ctxPlayerKey struct{}

// withPlayer resolves the player: a valid token wins, otherwise the anon cookie.
// It never 401s.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := player{}
		if c, ok := s.tokenUser(r); ok {
			p = player{ID: userOwner(c.ID), User: &c}
		} else {
			p.ID = anonOwner(s.ensureAnonID(w, r))
		}
		next.ServeHTTP(w, r.WithContext(contextWithPlayer(r, p)))
	})
}

func contextWithPlayer(r *http.Request, p player) context.Context {
	return context.WithValue(r.Context(), ctxPlayerKey{}, p)
}

// playerFrom returns the player set by withPlayer.
func playerFrom(r *http.Request) player {
	p, _ := r.Context().Value(ctxPlayerKey{}).(player)
	return p
}

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if id := anonID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, s.cookie(anonCookieName, id, time.Now().Add(180*24*time.Hour)))
	return id
}

// anonID reads the anon cookie without setting one. Values that are not
// a UUID we could have issued are ignored.
func anonID(r *http.Request) string {
	c, err := r.Cookie(anonCookieName)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

// ------------------------------ GAME ---------------------------------------

// sessionRes is the rendering of a session.
type sessionRes struct {
	StartingWord string   `json:"startingWord"`
	UsedWords    []string `json:"usedWords"`
}

func toSessionRes(s game.Session) sessionRes {
	return sessionRes{StartingWord: s.StartingWord, UsedWords: s.UsedWords}
}

// handleGame returns the saved session, starting one if needed.
func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	p := playerFrom(r)
	sess, err := s.sessions.Open(r.Context(), p.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("player", p.ID).Msg("open session")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	writeJSON(w, http.StatusOK, toSessionRes(sess))
}

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}

// handleNewGame discards the player's session and starts another.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// An empty body, sized or chunked, means the default mode.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	p := playerFrom(r)
	var (
		sess game.Session
		err  error
	)
	switch req.Mode {
	case "", "random":
		sess, err = s.sessions.NewGame(r.Context(), p.ID)
	case "daily":
		sess, err = s.sessions.NewDaily(r.Context(), p.ID, s.now())
	default:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("player", p.ID).Msg("new game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, toSessionRes(sess))
}

// submitReq/Res payloads for POST /game/submit.
type submitReq struct {
	Word string `json:"word"`
}
type submitRes struct {
	Outcome game.Outcome `json:"outcome"`
	Word    string       `json:"word,omitempty"`
	Title   string       `json:"title,omitempty"`
	Message string       `json:"message,omitempty"`
	sessionRes
}

// handleSubmit runs a word through the rules. Rejections are 200 responses
// carrying the outcome and its alert text.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	p := playerFrom(r)
	res, sess, err := s.sessions.Submit(r.Context(), p.ID, req.Word)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("player", p.ID).Msg("submit")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	out := submitRes{Outcome: res.Outcome, Word: res.Word, sessionRes: toSessionRes(sess)}
	if a, ok := alertFor(res); ok {
		out.Title, out.Message = a.Title, a.Message
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------- util --------------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError sends {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
