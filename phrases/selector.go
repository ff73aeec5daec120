package phrases

import (
	"math/rand"
	"sync"
	"time"
)

type catalogKey struct {
	language   string
	difficulty string
}

// Selector draws random phrases with a no-immediate-repeat guarantee per
// (language, difficulty) catalog. The cursor is process-wide, not
// per-subscriber: two broadcast runs can hand the same subscriber the same
// phrase, as long as the two draws are not consecutive for the catalog.
type Selector struct {
	mu   sync.Mutex
	rand *rand.Rand
	last map[catalogKey]int
}

func NewSelector() *Selector {
	return &Selector{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		last: make(map[catalogKey]int),
	}
}

// Pick returns a random phrase for the language and difficulty, never the
// same entry twice in a row for catalogs with more than one entry. Unknown
// languages or difficulties fall back to italian/easy; an empty catalog
// yields the language's fallback phrase.
func (s *Selector) Pick(language, difficulty string) Phrase {
	// Key the cursor by the catalog actually served, so an unknown language
	// and its fallback share the no-repeat state.
	language, difficulty = ResolveCatalog(language, difficulty)
	catalog := Catalog(language, difficulty)
	if len(catalog) == 0 {
		return Fallback(language)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := catalogKey{language: language, difficulty: difficulty}
	last, seen := s.last[key]
	if !seen {
		last = -1
	}

	// Rejection sampling: with tens of entries per catalog the expected
	// number of extra draws is negligible.
	idx := s.rand.Intn(len(catalog))
	for len(catalog) > 1 && idx == last {
		idx = s.rand.Intn(len(catalog))
	}
	s.last[key] = idx
	return catalog[idx]
}
