package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/calric/gameshelf/internal/model"
)

// ErrNotFound is returned when a game id does not exist in the collection.
var ErrNotFound = errors.New("game not found")

type Store struct {
	*sql.DB
}

// Open opens (creating if needed) the collection database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY,
		moby_id INTEGER,
		title TEXT NOT NULL,
		developer TEXT,
		publisher TEXT,
		release_date TEXT,
		genre TEXT,
		platform TEXT,
		status TEXT NOT NULL DEFAULT 'Not Started',
		notes TEXT,
		cover_url TEXT,
		cover_path TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_games_title ON games(title);
	CREATE INDEX IF NOT EXISTS idx_games_status ON games(status);
	CREATE INDEX IF NOT EXISTS idx_games_platform ON games(platform);
	`
	_, err := db.Exec(schema)
	return err
}

func releaseDateArg(g *model.Game) any {
	if g.ReleaseDate == nil {
		return nil
	}
	return g.ReleaseDate.Format("2006-01-02")
}

// Add inserts g and fills in its ID.
func (s *Store) Add(g *model.Game) error {
	if g.Title == "" {
		return fmt.Errorf("title is required")
	}
	if g.Status == "" {
		g.Status = model.StatusNotStarted
	}
	if !model.ValidStatus(g.Status) {
		return fmt.Errorf("invalid status %q", g.Status)
	}
	res, err := s.Exec(`
		INSERT INTO games (moby_id, title, developer, publisher, release_date, genre, platform, status, notes, cover_url, cover_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.MobyID, g.Title, g.Developer, g.Publisher, releaseDateArg(g),
		g.Genre, g.Platform, g.Status, g.Notes, g.CoverURL, g.CoverPath)
	if err != nil {
		return fmt.Errorf("insert game %q: %w", g.Title, err)
	}
	g.ID, err = res.LastInsertId()
	return err
}

// Get returns the game with the given id, or ErrNotFound.
func (s *Store) Get(id int64) (*model.Game, error) {
	row := s.QueryRow(`
		SELECT id, moby_id, title, developer, publisher, release_date, genre, platform, status, notes, cover_url, cover_path
		FROM games WHERE id = ?
	`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

// Update rewrites every editable field of g, matched by ID.
func (s *Store) Update(g *model.Game) error {
	if !model.ValidStatus(g.Status) {
		return fmt.Errorf("invalid status %q", g.Status)
	}
	res, err := s.Exec(`
		UPDATE games SET moby_id=?, title=?, developer=?, publisher=?, release_date=?,
			genre=?, platform=?, status=?, notes=?, cover_url=?, cover_path=?,
			updated_at=CURRENT_TIMESTAMP
		WHERE id=?
	`, g.MobyID, g.Title, g.Developer, g.Publisher, releaseDateArg(g),
		g.Genre, g.Platform, g.Status, g.Notes, g.CoverURL, g.CoverPath, g.ID)
	if err != nil {
		return fmt.Errorf("update game %d: %w", g.ID, err)
	}
	return affectedOrNotFound(res)
}

// SetStatus updates only the completion status.
func (s *Store) SetStatus(id int64, status string) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	res, err := s.Exec(`UPDATE games SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// SetCoverPath records the local path of a downloaded cover.
func (s *Store) SetCoverPath(id int64, path string) error {
	res, err := s.Exec(`UPDATE games SET cover_path=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, path, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Delete removes the game with the given id.
func (s *Store) Delete(id int64) error {
	res, err := s.Exec(`DELETE FROM games WHERE id=?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Sort keys accepted by ListOptions.SortBy.
var sortColumns = map[string]string{
	"":         "title COLLATE NOCASE",
	"title":    "title COLLATE NOCASE",
	"release":  "release_date IS NULL, release_date",
	"platform": "platform COLLATE NOCASE, title COLLATE NOCASE",
	"status":   "status, title COLLATE NOCASE",
	"added":    "created_at",
}

type ListOptions struct {
	Query    string // case-insensitive title substring
	Status   string
	Platform string // substring match against the comma-joined field
	Genre    string
	SortBy   string // title | release | platform | status | added
	Limit    int
	Offset   int
}

// List returns the matching slice of the collection and the total number of
// matches before Limit/Offset.
func (s *Store) List(opts ListOptions) ([]model.Game, int, error) {
	order, ok := sortColumns[opts.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unknown sort key %q", opts.SortBy)
	}

	where := []string{"1=1"}
	var args []any
	if opts.Query != "" {
		where = append(where, "title LIKE ? COLLATE NOCASE")
		args = append(args, "%"+opts.Query+"%")
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, opts.Status)
	}
	if opts.Platform != "" {
		where = append(where, "platform LIKE ? COLLATE NOCASE")
		args = append(args, "%"+opts.Platform+"%")
	}
	if opts.Genre != "" {
		where = append(where, "genre = ?")
		args = append(args, opts.Genre)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.QueryRow(`SELECT COUNT(*) FROM games WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, moby_id, title, developer, publisher, release_date, genre, platform, status, notes, cover_url, cover_path
		FROM games WHERE ` + cond + ` ORDER BY ` + order
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, opts.Offset)
	}

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, 0, err
		}
		games = append(games, *g)
	}
	return games, total, rows.Err()
}

// Platforms returns the distinct platform values present in the collection.
func (s *Store) Platforms() ([]string, error) {
	rows, err := s.Query(`SELECT DISTINCT platform FROM games WHERE platform != '' ORDER BY platform`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var platforms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}
	return platforms, rows.Err()
}

type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{ByStatus: make(map[string]int)}
	rows, err := s.Query(`SELECT status, COUNT(*) FROM games GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
		stats.Total += n
	}
	return stats, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanGame(row scannable) (*model.Game, error) {
	var g model.Game
	var release sql.NullString
	err := row.Scan(&g.ID, &g.MobyID, &g.Title, &g.Developer, &g.Publisher,
		&release, &g.Genre, &g.Platform, &g.Status, &g.Notes, &g.CoverURL, &g.CoverPath)
	if err != nil {
		return nil, err
	}
	if release.Valid && release.String != "" {
		if t, err := time.Parse("2006-01-02", release.String); err == nil {
			g.ReleaseDate = &t
		}
	}
	return &g, nil
}
