// internal/httpserver/routes_daily.go
//
// HTTP route for the "daily root" mode.
//   - POST /daily/new → start a round on today's root word
//   - GET  /daily     → today's date key
//
// Every client starting a daily round on the same UTC date gets the same
// root word (HMAC of the date with DAILY_SALT, see the daily package). The
// round itself is an ordinary round played through /rounds/{id}.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordscramble/server/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily() {
	s.r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", s.handleDailyNew)
	})
}

// dailyRoot returns today's date key and root word.
func (s *Server) dailyRoot() (date, root string) {
	now := s.opts.Now().UTC()
	date = daily.DateKey(now)
	if s.opts.DailyRoot == nil {
		return date, ""
	}
	return date, s.opts.DailyRoot(now, s.opts.DailySalt)
}

// handleDailyInfo reports the current daily date key.
func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	date, _ := s.dailyRoot()
	_ = json.NewEncoder(w).Encode(map[string]string{"date": date})
}

// handleDailyNew creates a game whose first round uses today's root.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	_, root := s.dailyRoot()
	s.startNewGame(w, r, root)
}
