package wizard

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store keeps live wizard sessions in memory. A session that is not touched
// for ttl is dropped, which is how an abandoned wizard gets discarded.
type Store struct {
	c   *cache.Cache
	ttl time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{c: cache.New(ttl, ttl/2), ttl: ttl}
}

// Put registers a session and returns its id.
func (s *Store) Put(sess Session) string {
	id := uuid.NewString()
	s.c.Set(id, sess, cache.DefaultExpiration)
	return id
}

// Get returns a session and extends its lifetime.
func (s *Store) Get(id string) (Session, error) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess, ok := v.(Session)
	if !ok {
		return nil, ErrNotFound
	}
	s.c.Set(id, sess, cache.DefaultExpiration)
	return sess, nil
}

// Discard drops a session. An in-flight submit keeps running.
func (s *Store) Discard(id string) { s.c.Delete(id) }

func (s *Store) Len() int { return s.c.ItemCount() }

func (s *Store) TTL() time.Duration { return s.ttl }
