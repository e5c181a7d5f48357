package model

import "time"

// Completion status values stored on a Game.
const (
	StatusNotStarted = "Not Started"
	StatusPlaying    = "Playing"
	StatusCompleted  = "Completed"
)

// ValidStatus reports whether s is one of the known completion statuses.
func ValidStatus(s string) bool {
	return s == StatusNotStarted || s == StatusPlaying || s == StatusCompleted
}

// Game is a single entry in the collection. ID is the local database key
// (0 until saved); MobyID is the upstream identifier (0 for manual entries).
// Missing optional fields imported from the API hold "Unknown", except
// CoverURL which is empty and ReleaseDate which is nil.
type Game struct {
	ID          int64
	MobyID      int64
	Title       string
	Developer   string
	Publisher   string
	ReleaseDate *time.Time
	Genre       string
	Platform    string // comma-joined when multi-platform
	Status      string
	Notes       string
	CoverURL    string
	CoverPath   string
}

// ReleaseDateString formats the release date for display, "-" when unknown.
func (g *Game) ReleaseDateString() string {
	if g.ReleaseDate == nil {
		return "-"
	}
	return g.ReleaseDate.Format("2006-01-02")
}
