package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/calric/gameshelf/internal/model"
	"github.com/calric/gameshelf/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "gameshelf.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, zap.NewNop(), 0), st
}

func TestHandleGames(t *testing.T) {
	srv, st := newTestServer(t)
	for _, title := range []string{"Doom", "Quake", "Myst"} {
		if err := st.Add(&model.Game{Title: title, Platform: "PC"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/games?q=oo&sort=title", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Games []gameJSON `json:"games"`
		Total int        `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || len(resp.Games) != 1 || resp.Games[0].Title != "Doom" {
		t.Errorf("unexpected response: %+v", resp)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/games?sort=bogus", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad sort key: status = %d", rec.Code)
	}
}

func TestHandleGameByID(t *testing.T) {
	srv, st := newTestServer(t)
	g := &model.Game{Title: "Doom", Status: model.StatusPlaying}
	st.Add(g)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/games/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got gameJSON
	json.NewDecoder(rec.Body).Decode(&got)
	if got.Title != "Doom" || got.Status != model.StatusPlaying {
		t.Errorf("unexpected game: %+v", got)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/games/999", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing id: status = %d", rec.Code)
	}
}

func TestHandleStatsAndPlatforms(t *testing.T) {
	srv, st := newTestServer(t)
	st.Add(&model.Game{Title: "A", Platform: "SNES", Status: model.StatusCompleted})
	st.Add(&model.Game{Title: "B", Platform: "PC"})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/stats", nil))
	var stats store.Stats
	json.NewDecoder(rec.Body).Decode(&stats)
	if stats.Total != 2 || stats.ByStatus[model.StatusCompleted] != 1 {
		t.Errorf("stats = %+v", stats)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/platforms", nil))
	var platforms []string
	json.NewDecoder(rec.Body).Decode(&platforms)
	if len(platforms) != 2 {
		t.Errorf("platforms = %v", platforms)
	}
}
