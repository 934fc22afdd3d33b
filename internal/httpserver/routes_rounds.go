// internal/httpserver/routes_rounds.go
//
// HTTP routes for playing rounds.
//   - POST /rounds              → new game, round started on a given or random root
//   - GET  /rounds/{id}         → current snapshot
//   - POST /rounds/{id}/words   → submit a word (rate limited)
//   - POST /rounds/{id}/start   → "Start Game" on an idle or expired game
//   - POST /rounds/{id}/skip    → "Skip Word": reset, then start on a new root
//   - POST /rounds/{id}/reset   → "Reset": back to idle
//
// Everything under /rounds/{id} requires the round token issued by POST /rounds.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/server/internal/game"
	"github.com/robalobadob/wordscramble/server/internal/store"
)

// errRoundRunning is returned by /start while a round is still active.
var errRoundRunning = errors.New("round already running")

// mountRounds registers the /rounds routes.
func (s *Server) mountRounds() {
	s.r.Post("/rounds", s.handleNewRound)
	s.r.Route("/rounds/{id}", func(r chi.Router) {
		r.Use(s.requireRoundToken)
		r.Get("/", s.handleGetRound)
		r.With(s.rateLimit).Post("/words", s.handleSubmit)
		r.Post("/start", s.handleStart)
		r.Post("/skip", s.handleSkip)
		r.Post("/reset", s.handleReset)
	})
}

// roundView is the JSON shape of a game returned by every round endpoint.
// Title/Message are filled once the round has expired.
type roundView struct {
	game.Snapshot
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

func viewOf(snap game.Snapshot) roundView {
	v := roundView{Snapshot: snap}
	if snap.State == game.StateExpired {
		v.Title = fmt.Sprintf("Your total points is %d", snap.Score)
		v.Message = "Time's Up!"
	}
	return v
}

// newRoundReq/Res payloads for POST /rounds.
type newRoundReq struct {
	Root string `json:"root"` // optional fixed root (testing)
}
type newRoundRes struct {
	roundView
	Token string `json:"token"`
}

// newGame builds a game with the server's dictionary, locale and budget.
func (s *Server) newGame() *game.Game {
	return game.New(s.opts.Dictionary,
		game.WithTimeBudget(s.opts.RoundSeconds),
		game.WithLocale(s.opts.Locale),
		game.WithClock(s.opts.Now),
	)
}

// randomRoot picks a root via the configured source.
func (s *Server) randomRoot() string {
	if s.opts.RandomRoot == nil {
		return ""
	}
	return s.opts.RandomRoot()
}

// handleNewRound creates a game, starts its first round and issues a token.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	root := req.Root
	if root == "" {
		root = s.randomRoot()
	}
	s.startNewGame(w, r, root)
}

// startNewGame is shared by POST /rounds and POST /daily/new.
func (s *Server) startNewGame(w http.ResponseWriter, r *http.Request, root string) {
	g := s.newGame()
	if err := g.StartRound(root); err != nil {
		http.Error(w, `{"error":"no_root_word"}`, http.StatusBadRequest)
		return
	}
	// Once saved, the game belongs to the store and the countdown may tick it.
	snap := g.Snapshot()
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.signRoundToken(snap.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign round token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	setRoundCookie(w, tok, exp)
	log.Info().Str("gameId", snap.ID).Str("root", snap.RootWord).Msg("round started")
	_ = json.NewEncoder(w).Encode(newRoundRes{roundView: viewOf(snap), Token: tok})
}

// handleGetRound returns the current snapshot.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(snap))
}

// submitReq/Res payloads for POST /rounds/{id}/words.
type submitReq struct {
	Word string `json:"word"`
}
type submitRes struct {
	game.Result
	Title   string    `json:"title,omitempty"`
	Message string    `json:"message,omitempty"`
	Round   roundView `json:"round"`
}

// handleSubmit validates a word against the round and reports the outcome.
// Rejections are 200 responses carrying a reason; only a round that is not
// running yields 409.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	var res game.Result
	snap, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		var err error
		res, err = g.Submit(req.Word)
		return err
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	case errors.Is(err, game.ErrRoundNotActive):
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "round_not_active", "round": viewOf(snap)})
		return
	case err != nil:
		http.Error(w, `{"error":"submit_failed"}`, http.StatusInternalServerError)
		return
	}

	out := submitRes{Result: res, Round: viewOf(snap)}
	if !res.Accepted {
		m := messageFor(res.Reason)
		out.Title, out.Message = m.Title, m.Message
		log.Debug().Str("gameId", snap.ID).Str("word", res.Word).Str("reason", string(res.Reason)).Msg("word rejected")
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleStart starts a new round on an idle or expired game.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	root := s.randomRoot()
	s.mutate(w, r, func(g *game.Game) error {
		if g.State() == game.StateActive {
			return errRoundRunning
		}
		return g.StartRound(root)
	})
}

// handleSkip abandons the current round and starts over on a new root.
func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	root := s.randomRoot()
	s.mutate(w, r, func(g *game.Game) error {
		if game.Normalize(root) == "" {
			return game.ErrEmptyRoot
		}
		g.Reset()
		return g.StartRound(root)
	})
}

// handleReset returns the game to idle.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(g *game.Game) error {
		g.Reset()
		return nil
	})
}

// mutate applies fn to the game named by {id} and writes the resulting view.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(g *game.Game) error) {
	snap, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), fn)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	case errors.Is(err, errRoundRunning):
		http.Error(w, `{"error":"round_running"}`, http.StatusConflict)
		return
	case errors.Is(err, game.ErrEmptyRoot):
		http.Error(w, `{"error":"no_root_word"}`, http.StatusInternalServerError)
		return
	case err != nil:
		http.Error(w, `{"error":"update_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(snap))
}
