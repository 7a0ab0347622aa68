package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mveldt/endgame/internal/game"
	"github.com/mveldt/endgame/internal/store"
	"github.com/mveldt/endgame/internal/words"
)

const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL,
    games_played INTEGER NOT NULL DEFAULT 0,
    wins INTEGER NOT NULL DEFAULT 0,
    streak INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE rounds (
    id TEXT PRIMARY KEY,
    user_id TEXT,
    anonymous_id TEXT,
    word_length INTEGER NOT NULL DEFAULT 0,
    wrong_count INTEGER NOT NULL DEFAULT 0,
    guesses INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'playing',
    started_at TEXT NOT NULL,
    finished_at TEXT
);
CREATE TABLE daily_results (
    user_id TEXT NOT NULL,
    date TEXT NOT NULL,
    word_index INTEGER NOT NULL,
    won INTEGER NOT NULL DEFAULT 0,
    wrong_count INTEGER NOT NULL DEFAULT 0,
    elapsed_ms INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT '',
    UNIQUE(user_id, date)
);
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return New(store.NewMemoryStore(), db)
}

// doJSON posts body to path carrying cookies between calls via jar.
func doJSON(t *testing.T, s *Server, method, path string, body any, cookies []*http.Cookie) (*httptest.ResponseRecorder, []*http.Cookie) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec, append(cookies, rec.Result().Cookies()...)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec, _ := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}

func TestGameFlow_Win(t *testing.T) {
	s := newTestServer(t)

	rec, cookies := doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Word: "cat"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("new game status %d: %s", rec.Code, rec.Body.String())
	}
	var created newGameRes
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.GameID == "" {
		t.Fatal("empty gameId")
	}
	if created.State.Phase != game.PhasePlaying {
		t.Fatalf("phase %q, want playing", created.State.Phase)
	}
	if created.State.WordLength != 3 {
		t.Fatalf("wordLength %d, want 3", created.State.WordLength)
	}

	var last guessRes
	for _, l := range []string{"c", "a", "t"} {
		rec, cookies = doJSON(t, s, http.MethodPost, "/game/guess", guessReq{GameID: created.GameID, Letter: l}, cookies)
		if rec.Code != http.StatusOK {
			t.Fatalf("guess %q status %d: %s", l, rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &last); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	if last.State.Phase != game.PhaseWon {
		t.Errorf("phase %q, want won", last.State.Phase)
	}
	if last.State.WrongCount != 0 {
		t.Errorf("wrongCount %d, want 0", last.State.WrongCount)
	}

	// Further guesses are rejected with 409.
	rec, _ = doJSON(t, s, http.MethodPost, "/game/guess", guessReq{GameID: created.GameID, Letter: "z"}, cookies)
	if rec.Code != http.StatusConflict {
		t.Errorf("guess after win status %d, want 409", rec.Code)
	}
}

func TestGuess_InvalidLetter(t *testing.T) {
	s := newTestServer(t)

	rec, cookies := doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Word: "cat"}, nil)
	var created newGameRes
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	for _, l := range []string{"", "ab", "7", "A"} {
		rec, _ = doJSON(t, s, http.MethodPost, "/game/guess", guessReq{GameID: created.GameID, Letter: l}, cookies)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("guess %q status %d, want 400", l, rec.Code)
		}
	}
}

func TestGuess_UnknownGame(t *testing.T) {
	s := newTestServer(t)
	rec, _ := doJSON(t, s, http.MethodPost, "/game/guess", guessReq{GameID: "missing", Letter: "a"}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestGetState(t *testing.T) {
	s := newTestServer(t)

	rec, cookies := doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Word: "dog"}, nil)
	var created newGameRes
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	_, cookies = doJSON(t, s, http.MethodPost, "/game/guess", guessReq{GameID: created.GameID, Letter: "o"}, cookies)

	rec, _ = doJSON(t, s, http.MethodGet, "/game/"+created.GameID, nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("state status %d: %s", rec.Code, rec.Body.String())
	}
	var got guessRes
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.State.RevealMap[1] != "O" {
		t.Errorf("revealMap %v, want position 1 = O", got.State.RevealMap)
	}
	if got.State.RevealMap[0] != "" || got.State.RevealMap[2] != "" {
		t.Errorf("revealMap %v leaks unguessed letters", got.State.RevealMap)
	}
}

func TestAuthSignupLoginStats(t *testing.T) {
	s := newTestServer(t)

	rec, cookies := doJSON(t, s, http.MethodPost, "/auth/signup",
		map[string]string{"username": "player_one", "password": "hunter2hunter2"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup status %d: %s", rec.Code, rec.Body.String())
	}

	rec, cookies = doJSON(t, s, http.MethodGet, "/auth/me", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status %d: %s", rec.Code, rec.Body.String())
	}

	// Win a round while logged in; stats should move.
	rec, cookies = doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Word: "a"}, cookies)
	var created newGameRes
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	rec, cookies = doJSON(t, s, http.MethodPost, "/game/guess", guessReq{GameID: created.GameID, Letter: "a"}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("guess status %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, s, http.MethodGet, "/stats/me", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status %d: %s", rec.Code, rec.Body.String())
	}
	var stats struct {
		GamesPlayed int `json:"gamesPlayed"`
		Wins        int `json:"wins"`
		Streak      int `json:"streak"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.GamesPlayed != 1 || stats.Wins != 1 || stats.Streak != 1 {
		t.Errorf("stats %+v, want 1/1/1", stats)
	}
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)
	rec, _ := doJSON(t, s, http.MethodGet, "/stats/me", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestDailyFlow(t *testing.T) {
	if err := words.Init(); err != nil {
		t.Fatalf("words.Init: %v", err)
	}
	s := newTestServer(t)

	rec, cookies := doJSON(t, s, http.MethodPost, "/daily/new", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("daily new status %d: %s", rec.Code, rec.Body.String())
	}
	var created dailyNewRes
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Played {
		t.Fatal("fresh user marked as already played")
	}
	if created.GameID == "" || created.State == nil {
		t.Fatalf("daily new response incomplete: %+v", created)
	}

	// Same user asking again reuses the session.
	rec, cookies = doJSON(t, s, http.MethodPost, "/daily/new", nil, cookies)
	var again dailyNewRes
	_ = json.Unmarshal(rec.Body.Bytes(), &again)
	if again.GameID != created.GameID {
		t.Errorf("second /daily/new gameId %q, want reused %q", again.GameID, created.GameID)
	}

	rec, cookies = doJSON(t, s, http.MethodPost, "/daily/guess",
		dailyGuessReq{GameID: created.GameID, Letter: "e"}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("daily guess status %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, s, http.MethodGet, "/daily/leaderboard", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard status %d: %s", rec.Code, rec.Body.String())
	}
	var lb lbRes
	if err := json.Unmarshal(rec.Body.Bytes(), &lb); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if lb.Date == "" {
		t.Error("leaderboard missing date")
	}
}
