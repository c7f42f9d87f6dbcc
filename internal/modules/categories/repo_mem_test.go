package categories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pehlione.com/admin/internal/shared/paging"
)

type memRepo struct {
	mu        sync.Mutex
	items     map[string]Category
	nameCalls int
}

func newMemRepo(seed ...Category) *memRepo {
	r := &memRepo{items: map[string]Category{}}
	for _, c := range seed {
		r.items[c.ID] = c
	}
	return r
}

func (r *memRepo) List(_ context.Context, p paging.Params) (paging.Result[Category], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []Category
	for _, c := range r.items {
		if p.Q == "" || strings.Contains(c.Name, p.Q) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paging.NewResult(all, int64(len(all)), p), nil
}

func (r *memRepo) Get(_ context.Context, id string) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func (r *memRepo) Create(_ context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.Slug == c.Slug {
			return ErrDuplicateSlug
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.items[c.ID] = *c
	return nil
}

func (r *memRepo) Update(_ context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return ErrNotFound
	}
	r.items[c.ID] = *c
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

func (r *memRepo) Names(_ context.Context, ids []string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nameCalls++
	out := map[string]string{}
	for _, id := range ids {
		if c, ok := r.items[id]; ok {
			out[id] = c.Name
		}
	}
	return out, nil
}
