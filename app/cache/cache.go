package cache

import (
	"sync"
	"time"

	"github.com/RJohnPaul/EchoNews/app/feed"
)

type entry struct {
	storedAt time.Time
	articles []feed.Article
}

// Store is an in-memory article snapshot cache keyed by (language, category).
// Expiry is lazy: an expired entry fails Get and is overwritten by the next
// Put; there is no eviction goroutine.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func New(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Key builds the cache key for a language/category pair. An empty category
// maps to the "all" bucket.
func Key(language, category string) string {
	if category == "" {
		category = "all"
	}
	return language + "-" + category
}

func (s *Store) Get(key string) ([]feed.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.storedAt) >= s.ttl {
		return nil, false
	}
	return e.articles, true
}

func (s *Store) Put(key string, articles []feed.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{
		storedAt: s.now(),
		articles: articles,
	}
}
