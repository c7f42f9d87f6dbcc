package staff

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"pehlione.com/admin/internal/shared/paging"
)

type memRepo struct {
	mu    sync.Mutex
	items map[string]Member
}

func newMemRepo(seed ...Member) *memRepo {
	r := &memRepo{items: map[string]Member{}}
	for _, m := range seed {
		r.items[m.ID] = m
	}
	return r
}

func (r *memRepo) List(_ context.Context, p paging.Params) (paging.Result[Member], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []Member
	for _, m := range r.items {
		if p.Status == "" || m.Role == p.Status {
			all = append(all, m)
		}
	}
	return paging.NewResult(all, int64(len(all)), p), nil
}

func (r *memRepo) Get(_ context.Context, id string) (Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return Member{}, ErrNotFound
	}
	return m, nil
}

func (r *memRepo) Create(_ context.Context, m *Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.Email == m.Email {
			return ErrDuplicateEmail
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	r.items[m.ID] = *m
	return nil
}

func (r *memRepo) Update(_ context.Context, m *Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[m.ID]; !ok {
		return ErrNotFound
	}
	r.items[m.ID] = *m
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
