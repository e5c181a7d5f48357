package moby

import (
	"testing"
	"time"
)

func obj(t *testing.T, s string) jsonObj {
	t.Helper()
	o, err := decodeObject([]byte(s))
	if err != nil {
		t.Fatalf("test fixture: %v", err)
	}
	return o
}

func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string // "" means nil
	}{
		{"1995-03-11", "1995-03-11"},
		{"1998", "1998-01-01"},
		{" 2004 ", "2004-01-01"},
		{"1998-05", ""},
		{"March 1995", ""},
		{"garbage", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := parseReleaseDate(tt.in)
		if tt.want == "" {
			if got != nil {
				t.Errorf("parseReleaseDate(%q) = %v, want nil", tt.in, got)
			}
			continue
		}
		if got == nil || got.Format("2006-01-02") != tt.want {
			t.Errorf("parseReleaseDate(%q) = %v, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeVerbatimWhenDataPresent(t *testing.T) {
	raw := obj(t, `{
		"game_id": 42,
		"title": "Chrono Trigger",
		"genres": [{"genre_name": "Role-Playing (RPG)"}],
		"sample_cover": {"image": "https://img.example/ct.jpg"}
	}`)
	detail := obj(t, `{
		"platform_name": "SNES",
		"first_release_date": "1995-03-11",
		"releases": [{"companies": [
			{"company_name": "Square", "role": "Developed by"},
			{"company_name": "Squaresoft", "role": "Published by"}
		]}]
	}`)

	g := normalizeGame(raw, []jsonObj{detail})

	if g.MobyID != 42 || g.Title != "Chrono Trigger" {
		t.Errorf("id/title not copied verbatim: %+v", g)
	}
	if g.Genre != "Role-Playing (RPG)" {
		t.Errorf("genre = %q", g.Genre)
	}
	if g.CoverURL != "https://img.example/ct.jpg" {
		t.Errorf("cover = %q", g.CoverURL)
	}
	if g.Developer != "Square" || g.Publisher != "Squaresoft" {
		t.Errorf("companies: dev=%q pub=%q", g.Developer, g.Publisher)
	}
	if g.Platform != "SNES" {
		t.Errorf("platform = %q", g.Platform)
	}
	want := time.Date(1995, 3, 11, 0, 0, 0, 0, time.UTC)
	if g.ReleaseDate == nil || !g.ReleaseDate.Equal(want) {
		t.Errorf("release date = %v", g.ReleaseDate)
	}
}

func TestNormalizeDefaultsWhenFieldsMissing(t *testing.T) {
	g := normalizeGame(obj(t, `{"game_id": 7, "title": "Obscurity"}`), nil)

	if g.Genre != Unknown {
		t.Errorf("genre = %q, want Unknown", g.Genre)
	}
	if g.Developer != Unknown || g.Publisher != Unknown {
		t.Errorf("dev=%q pub=%q, want Unknown", g.Developer, g.Publisher)
	}
	if g.Platform != Unknown {
		t.Errorf("platform = %q, want Unknown", g.Platform)
	}
	if g.CoverURL != "" {
		t.Errorf("cover = %q, want empty", g.CoverURL)
	}
	if g.ReleaseDate != nil {
		t.Errorf("release date = %v, want nil", g.ReleaseDate)
	}
}

func TestNormalizeDetailWithoutCompanies(t *testing.T) {
	detail := obj(t, `{"platform_name": "PlayStation", "first_release_date": "1997"}`)
	g := normalizeGame(obj(t, `{"game_id": 9, "title": "X"}`), []jsonObj{detail})

	if g.Developer != Unknown || g.Publisher != Unknown {
		t.Errorf("dev=%q pub=%q, want Unknown for detail lacking companies",
			g.Developer, g.Publisher)
	}
	if g.ReleaseDate == nil || g.ReleaseDate.Year() != 1997 ||
		g.ReleaseDate.Month() != time.January || g.ReleaseDate.Day() != 1 {
		t.Errorf("bare year should map to January 1: %v", g.ReleaseDate)
	}
}

func TestNormalizeAggregatesPlatforms(t *testing.T) {
	first := obj(t, `{"platform_name": "SNES", "first_release_date": "bogus"}`)
	second := obj(t, `{
		"platform_name": "PlayStation",
		"first_release_date": "1999-11-02",
		"releases": [{"companies": [{"company_name": "Square", "role": "Developed by"}]}]
	}`)

	g := normalizeGame(obj(t, `{"game_id": 9, "title": "X"}`), []jsonObj{first, second})

	if g.Platform != "SNES, PlayStation" {
		t.Errorf("platform = %q", g.Platform)
	}
	// First non-default value wins across platforms.
	if g.Developer != "Square" {
		t.Errorf("developer = %q", g.Developer)
	}
	if g.Publisher != Unknown {
		t.Errorf("publisher = %q", g.Publisher)
	}
	// The first detail exposed a (garbled) date, so the date stays nil.
	if g.ReleaseDate != nil {
		t.Errorf("release date = %v, want nil from first garbled detail", g.ReleaseDate)
	}
}
