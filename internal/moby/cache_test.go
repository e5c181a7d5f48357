package moby

import (
	"sync"
	"testing"
)

func TestGameCachePresentAbsent(t *testing.T) {
	c := newGameCache()

	if _, ok := c.get(1); ok {
		t.Error("expected miss on empty cache")
	}

	c.put(1, jsonObj{"title": "first"})
	got, ok := c.get(1)
	if !ok {
		t.Fatal("expected hit after put")
	}
	if title, _ := got.str("title"); title != "first" {
		t.Errorf("title = %q", title)
	}

	// Last write wins.
	c.put(1, jsonObj{"title": "second"})
	got, _ = c.get(1)
	if title, _ := got.str("title"); title != "second" {
		t.Errorf("title after overwrite = %q", title)
	}
}

func TestPlatformCacheKeyedPerGame(t *testing.T) {
	c := newPlatformCache()
	c.put(platformKey{gameID: 1, platformID: 3}, jsonObj{"first_release_date": "1995-03-11"})

	if _, ok := c.get(platformKey{gameID: 2, platformID: 3}); ok {
		t.Error("detail for one game must not be visible under another game's key")
	}
	if _, ok := c.get(platformKey{gameID: 1, platformID: 3}); !ok {
		t.Error("expected hit for the stored key")
	}
}

func TestCachesConcurrentAccess(t *testing.T) {
	games := newGameCache()
	platforms := newPlatformCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := int64(0); j < 100; j++ {
				games.put(j, jsonObj{"n": n})
				games.get(j)
				platforms.put(platformKey{gameID: j, platformID: n}, jsonObj{})
				platforms.get(platformKey{gameID: j, platformID: n})
			}
		}(int64(i))
	}
	wg.Wait()

	if _, ok := games.get(50); !ok {
		t.Error("expected entry to survive concurrent writes")
	}
}
