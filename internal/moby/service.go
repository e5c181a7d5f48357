package moby

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/calric/gameshelf/internal/alert"
	"github.com/calric/gameshelf/internal/model"
)

const defaultBaseURL = "https://api.mobygames.com/v1"

// Service drives searches against the metadata API: one search request,
// de-duplication by game id, then best-effort per-id enrichment through the
// lookup caches. Safe for concurrent use.
type Service struct {
	client   *Client
	notifier alert.Notifier
	log      *zap.Logger
	apiKey   string
	baseURL  string

	games     *gameCache
	platforms *platformCache
}

func NewService(client *Client, notifier alert.Notifier, log *zap.Logger, apiKey string) *Service {
	return &Service{
		client:    client,
		notifier:  notifier,
		log:       log,
		apiKey:    apiKey,
		baseURL:   defaultBaseURL,
		games:     newGameCache(),
		platforms: newPlatformCache(),
	}
}

// SearchByTitle returns normalized games matching query, in the order their
// ids were first encountered. A failing top-level request is reported once
// through the notifier and yields an empty list; a response without a
// "games" array is a valid no-results outcome, not an error. Individual
// games whose detail fetches fail are logged and dropped from the result.
func (s *Service) SearchByTitle(ctx context.Context, query string) ([]model.Game, error) {
	searchURL := fmt.Sprintf("%s/games?title=%s&api_key=%s",
		s.baseURL, url.QueryEscape(query), url.QueryEscape(s.apiKey))

	body, err := s.client.Get(ctx, searchURL)
	if err != nil {
		s.notifier.NotifyError("Search failed",
			"Could not reach the game database.", err.Error())
		return []model.Game{}, fmt.Errorf("search %q: %w", query, err)
	}

	root, err := decodeObject(body)
	if err != nil {
		s.notifier.NotifyError("Search failed",
			"Unexpected response from the game database.", err.Error())
		return []model.Game{}, fmt.Errorf("search %q: %w", query, err)
	}

	entries, ok := root.arr("games")
	if !ok {
		return []model.Game{}, nil
	}

	// The upstream API can return the same id twice; keep the first.
	seen := make(map[int64]bool, len(entries))
	results := make([]model.Game, 0, len(entries))
	for _, e := range entries {
		eo, ok := asObj(e)
		if !ok {
			continue
		}
		id, ok := eo.intVal("game_id")
		if !ok || seen[id] {
			continue
		}
		seen[id] = true

		g, err := s.fetchGame(ctx, id)
		if err != nil {
			s.log.Warn("skipping game",
				zap.Int64("game_id", id), zap.Error(err))
			continue
		}
		results = append(results, g)
	}
	return results, nil
}

// fetchGame returns the normalized game for id, consulting the game cache
// before fetching and caching the raw record on a miss.
func (s *Service) fetchGame(ctx context.Context, id int64) (model.Game, error) {
	raw, ok := s.games.get(id)
	if !ok {
		body, err := s.client.Get(ctx, fmt.Sprintf("%s/games/%d?api_key=%s",
			s.baseURL, id, url.QueryEscape(s.apiKey)))
		if err != nil {
			return model.Game{}, fmt.Errorf("game %d: %w", id, err)
		}
		raw, err = decodeObject(body)
		if err != nil {
			return model.Game{}, fmt.Errorf("game %d: %w", id, err)
		}
		s.games.put(id, raw)
	}

	var details []jsonObj
	if platforms, ok := raw.arr("platforms"); ok {
		for _, p := range platforms {
			po, ok := asObj(p)
			if !ok {
				continue
			}
			pid, ok := po.intVal("platform_id")
			if !ok {
				continue
			}
			detail, err := s.fetchPlatform(ctx, id, pid)
			if err != nil {
				return model.Game{}, fmt.Errorf("game %d platform %d: %w", id, pid, err)
			}
			details = append(details, detail)
		}
	}

	return normalizeGame(raw, details), nil
}

func (s *Service) fetchPlatform(ctx context.Context, gameID, platformID int64) (jsonObj, error) {
	key := platformKey{gameID: gameID, platformID: platformID}
	if detail, ok := s.platforms.get(key); ok {
		return detail, nil
	}
	body, err := s.client.Get(ctx, fmt.Sprintf("%s/games/%d/platforms/%d?api_key=%s",
		s.baseURL, gameID, platformID, url.QueryEscape(s.apiKey)))
	if err != nil {
		return nil, err
	}
	detail, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	s.platforms.put(key, detail)
	return detail, nil
}
