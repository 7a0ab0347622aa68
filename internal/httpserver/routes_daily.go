// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's round (creates or reuses session)
//   - POST /daily/guess       → submit a letter for today's round
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB when
// the round finishes. Word selection is deterministic from date + salt,
// so every player fights the same word.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mveldt/endgame/internal/daily"
	"github.com/mveldt/endgame/internal/game"
	"github.com/mveldt/endgame/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily round.
type dailySession struct {
	Round     *game.Round
	UserID    string
	Date      string
	WordIndex int
	Start     time.Time
	Recorded  bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key, deterministic word index, and word.
func (d *dailyServer) dateKeyNow() (date string, idx int, word string) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	candidates := words.Candidates()
	if len(candidates) == 0 {
		return date, 0, ""
	}
	idx = daily.WordIndex(now, d.salt, len(candidates))
	return date, idx, candidates[idx]
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string         `json:"gameId"`
	Date   string         `json:"date"`
	Played bool           `json:"played"`
	State  *game.Snapshot `json:"state,omitempty"`
}

// handleNew creates or reuses the daily session for the current date.
// - If the user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return its snapshot.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)
	date, idx, word := d.dateKeyNow()
	if word == "" {
		http.Error(w, `{"error":"no_words"}`, http.StatusInternalServerError)
		return
	}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: "", Date: date, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok {
		sess = &dailySession{
			Round:     game.New(word),
			UserID:    uid,
			Date:      date,
			WordIndex: idx,
			Start:     time.Now(),
		}
		d.sessions[key] = sess
	}
	d.mu.Unlock()

	snap := sess.Round.Snapshot()
	_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: sess.Round.ID, Date: date, Played: false, State: &snap})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	State game.Snapshot `json:"state"`
}

// handleGuess applies a letter to today's daily round.
// - Rejects if there is no session, the session belongs to another round
//   ID, or the round already finished.
// - Persists the result to DB exactly once when the round finishes.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	date, _, _ := d.dateKeyNow()
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || (p.GameID != "" && sess.Round.ID != p.GameID) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	if err := sess.Round.Guess(p.Letter); err != nil {
		var invalid *game.InvalidInputError
		switch {
		case errors.As(err, &invalid):
			http.Error(w, `{"error":"invalid_letter"}`, http.StatusBadRequest)
		case errors.Is(err, game.ErrRoundOver):
			http.Error(w, `{"error":"round_over"}`, http.StatusConflict)
		default:
			http.Error(w, `{"error":"guess_failed"}`, http.StatusInternalServerError)
		}
		return
	}

	snap := sess.Round.Snapshot()
	if snap.Phase != game.PhasePlaying {
		d.mu.Lock()
		already := sess.Recorded
		sess.Recorded = true
		d.mu.Unlock()
		if !already {
			res := daily.Result{
				UserID:     uid,
				Date:       sess.Date,
				WordIndex:  sess.WordIndex,
				Won:        snap.Phase == game.PhaseWon,
				WrongCount: snap.WrongCount,
				ElapsedMs:  int(time.Since(sess.Start).Milliseconds()),
			}
			if err := d.store.InsertResult(r.Context(), res); err != nil {
				log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
			}
		}
	}

	_ = json.NewEncoder(w).Encode(dailyGuessRes{State: snap})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is the response payload for /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the top results for today or ?date=YYYY-MM-DD.
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.dateKeyNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
