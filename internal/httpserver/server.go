// internal/httpserver/server.go
//
// HTTP server wiring for the WordScramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, compression, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /rounds, GET /rounds/{id}, POST /rounds/{id}/{words,start,skip,reset}.
//   - Daily round endpoint: POST /daily/new (routes_daily.go).
//   - Admin endpoint: POST /admin/words (basic auth, bcrypt-checked password).
//   - Round tokens: HS256 JWTs binding a client to the round it created.
//
// Notes:
//   - Games live in a store.Store; handlers only mutate them through Update.
//   - Submissions are rate limited per client IP (token bucket).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordscramble/server/internal/game"
	"github.com/robalobadob/wordscramble/server/internal/store"
)

// WordAdder accepts new dictionary words (implemented by dictdb.Store).
type WordAdder interface {
	Add(ctx context.Context, locale string, words ...string) (int, error)
}

// Options configures a Server. Zero values fall back to development defaults.
type Options struct {
	Dictionary   game.Dictionary
	Locale       string
	RoundSeconds int

	RandomRoot func() string
	DailyRoot  func(t time.Time, salt string) string
	DailySalt  string
	WordStats  func() (roots, known int)

	JWTSecret string
	TokenTTL  time.Duration

	ClientOrigin string
	SubmitRPS    float64
	SubmitBurst  int

	Admin             WordAdder // nil disables /admin
	AdminUser         string
	AdminPasswordHash string

	Now func() time.Time
}

// Server bundles router, game store and options.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options

	limMu    sync.Mutex
	limiters map[string]*rate.Limiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Locale == "" {
		opts.Locale = game.DefaultLocale
	}
	if opts.RoundSeconds <= 0 {
		opts.RoundSeconds = game.DefaultTimeBudget
	}
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 2 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.SubmitRPS <= 0 {
		opts.SubmitRPS = 5
	}
	if opts.SubmitBurst <= 0 {
		opts.SubmitBurst = 10
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WordStats == nil {
		opts.WordStats = func() (int, int) { return 0, 0 }
	}

	s := &Server{r: chi.NewRouter(), store: st, opts: opts, limiters: make(map[string]*rate.Limiter)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(chimw.Compress(5))               // gzip JSON bodies
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordscramble-go","endpoints":["/health","POST /rounds","POST /rounds/{id}/words","POST /daily/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		roots, known := s.opts.WordStats()
		_ = json.NewEncoder(w).Encode(map[string]int{"roots": roots, "known": known, "games": s.store.Len()})
	})

	s.mountRounds()
	s.mountDaily()
	s.mountAdmin()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
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

// limiter returns the token bucket for key, creating it on first use.
func (s *Server) limiter(key string) *rate.Limiter {
	s.limMu.Lock()
	defer s.limMu.Unlock()
	if lim, ok := s.limiters[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(s.opts.SubmitRPS), s.opts.SubmitBurst)
	s.limiters[key] = lim
	return lim
}

// rateLimit rejects requests beyond the per-IP submission rate.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(key); err == nil {
			key = host
		}
		if !s.limiter(key).Allow() {
			log.Debug().Str("client", key).Msg("submission rate limited")
			http.Error(w, `{"error":"rate_limited"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ tokens -------------------------------------

const roundCookieName = "wordscramble_round"

// signRoundToken creates an HS256 JWT bound to a game ID.
func (s *Server) signRoundToken(gameID string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseRoundToken verifies tok and returns the game ID it was issued for.
func (s *Server) parseRoundToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	gid, _ := claims["gid"].(string)
	if gid == "" {
		return "", errors.New("token without game id")
	}
	return gid, nil
}

// setRoundCookie stores the round token for browser clients.
func setRoundCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     roundCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or round cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(roundCookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireRoundToken enforces a valid token whose game ID matches {id}.
func (s *Server) requireRoundToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		gid, err := s.parseRoundToken(tok)
		if err != nil || gid != chi.URLParam(r, "id") {
			http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- ADMIN -------------------------------------

// mountAdmin registers /admin routes when a dictionary store and password hash are configured.
func (s *Server) mountAdmin() {
	if s.opts.Admin == nil || s.opts.AdminPasswordHash == "" {
		return
	}
	s.r.With(s.requireAdmin).Post("/admin/words", s.handleAddWords)
}

// requireAdmin checks HTTP basic auth against the configured user and bcrypt hash.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pw, ok := r.BasicAuth()
		if !ok || user != s.opts.AdminUser || !checkPassword(s.opts.AdminPasswordHash, pw) {
			w.Header().Set("WWW-Authenticate", `Basic realm="wordscramble-admin"`)
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

type addWordsReq struct {
	Locale string   `json:"locale"`
	Words  []string `json:"words"`
}

// handleAddWords inserts words into the SQLite dictionary.
func (s *Server) handleAddWords(w http.ResponseWriter, r *http.Request) {
	var req addWordsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Locale == "" {
		req.Locale = s.opts.Locale
	}
	n, err := s.opts.Admin.Add(r.Context(), req.Locale, req.Words...)
	if err != nil {
		log.Error().Err(err).Msg("add dictionary words")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Int("added", n).Str("locale", req.Locale).Msg("dictionary words added")
	_ = json.NewEncoder(w).Encode(map[string]any{"added": n, "locale": req.Locale})
}
