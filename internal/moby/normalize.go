package moby

import (
	"strings"
	"time"

	"github.com/calric/gameshelf/internal/model"
)

// Unknown fills optional string fields the upstream record did not provide.
const Unknown = "Unknown"

// normalizeGame maps a raw game record plus its per-platform detail records
// into a Game. ID and title are copied verbatim; a missing title is the
// caller's problem, not defaulted here. Partial or garbled upstream data
// must never abort an otherwise-valid import, so every lookup degrades to a
// default instead of failing.
func normalizeGame(raw jsonObj, platforms []jsonObj) model.Game {
	g := model.Game{
		Genre:     Unknown,
		Developer: Unknown,
		Publisher: Unknown,
		Platform:  Unknown,
		Status:    model.StatusNotStarted,
	}

	if id, ok := raw.intVal("game_id"); ok {
		g.MobyID = id
	}
	if title, ok := raw.str("title"); ok {
		g.Title = title
	}

	if genres, ok := raw.arr("genres"); ok && len(genres) > 0 {
		if first, ok := asObj(genres[0]); ok {
			if name, ok := first.str("genre_name"); ok && name != "" {
				g.Genre = name
			}
		}
	}

	// Cover defaults to the empty string, not "Unknown": an absent image is
	// a distinct condition from an unknown text field.
	if cover, ok := raw.obj("sample_cover"); ok {
		if u, ok := cover.str("image"); ok {
			g.CoverURL = u
		}
	}

	var names []string
	dateSeen := false
	for _, p := range platforms {
		if name, ok := p.str("platform_name"); ok && name != "" {
			names = append(names, name)
		}

		dev, pub := releaseCompanies(p)
		if g.Developer == Unknown && dev != Unknown {
			g.Developer = dev
		}
		if g.Publisher == Unknown && pub != Unknown {
			g.Publisher = pub
		}

		// Only the first detail exposing a release date is consulted; if
		// that one is garbled the date stays nil.
		if !dateSeen {
			if s, ok := p.str("first_release_date"); ok {
				dateSeen = true
				g.ReleaseDate = parseReleaseDate(s)
			}
		}
	}
	if len(names) > 0 {
		g.Platform = strings.Join(names, ", ")
	}

	return g
}

// releaseCompanies pulls developer and publisher names out of a platform
// detail's releases. A detail without a companies section contributes
// "Unknown" for both.
func releaseCompanies(p jsonObj) (dev, pub string) {
	dev, pub = Unknown, Unknown
	releases, ok := p.arr("releases")
	if !ok {
		return
	}
	for _, r := range releases {
		ro, ok := asObj(r)
		if !ok {
			continue
		}
		companies, ok := ro.arr("companies")
		if !ok {
			continue
		}
		for _, c := range companies {
			co, ok := asObj(c)
			if !ok {
				continue
			}
			name, _ := co.str("company_name")
			if name == "" {
				continue
			}
			role, _ := co.str("role")
			switch {
			case dev == Unknown && strings.Contains(role, "Developed"):
				dev = name
			case pub == Unknown && strings.Contains(role, "Published"):
				pub = name
			}
		}
	}
	return
}

// parseReleaseDate accepts a full ISO date or a bare year (mapped to
// January 1). Anything else yields nil.
func parseReleaseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006", s); err == nil {
		return &t
	}
	return nil
}
