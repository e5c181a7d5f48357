// Package server exposes the collection over a small read-only JSON API
// for a local browser front end.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/calric/gameshelf/internal/model"
	"github.com/calric/gameshelf/internal/store"
)

type Server struct {
	store *store.Store
	log   *zap.Logger
	port  int
}

func New(st *store.Store, log *zap.Logger, port int) *Server {
	return &Server{store: st, log: log, port: port}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/games", s.handleGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleGame)
	mux.HandleFunc("GET /api/platforms", s.handlePlatforms)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	return mux
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	s.log.Info("server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

type gameJSON struct {
	ID          int64  `json:"id"`
	MobyID      int64  `json:"moby_id,omitempty"`
	Title       string `json:"title"`
	Developer   string `json:"developer"`
	Publisher   string `json:"publisher"`
	ReleaseDate string `json:"release_date,omitempty"`
	Genre       string `json:"genre"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	CoverPath   string `json:"cover_path,omitempty"`
}

func toJSON(g *model.Game) gameJSON {
	j := gameJSON{
		ID: g.ID, MobyID: g.MobyID, Title: g.Title,
		Developer: g.Developer, Publisher: g.Publisher,
		Genre: g.Genre, Platform: g.Platform, Status: g.Status,
		Notes: g.Notes, CoverURL: g.CoverURL, CoverPath: g.CoverPath,
	}
	if g.ReleaseDate != nil {
		j.ReleaseDate = g.ReleaseDate.Format("2006-01-02")
	}
	return j
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = 50
	}

	games, total, err := s.store.List(store.ListOptions{
		Query:    q.Get("q"),
		Status:   q.Get("status"),
		Platform: q.Get("platform"),
		Genre:    q.Get("genre"),
		SortBy:   q.Get("sort"),
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]gameJSON, 0, len(games))
	for i := range games {
		out = append(out, toJSON(&games[i]))
	}
	writeJSON(w, map[string]any{
		"games": out, "total": total, "page": page, "per_page": perPage,
	})
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	g, err := s.store.Get(id)
	if err == store.ErrNotFound {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, toJSON(g))
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := s.store.Platforms()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if platforms == nil {
		platforms = []string{}
	}
	writeJSON(w, platforms)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
