package coupons

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pehlione.com/admin/internal/shared/paging"
)

type memRepo struct {
	mu    sync.Mutex
	items map[string]Coupon
}

func newMemRepo(seed ...Coupon) *memRepo {
	r := &memRepo{items: map[string]Coupon{}}
	for _, c := range seed {
		r.items[c.ID] = c
	}
	return r
}

func (r *memRepo) List(_ context.Context, p paging.Params, now time.Time) (paging.Result[Coupon], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []Coupon
	for _, c := range r.items {
		if p.Status == "" || c.Status(now) == p.Status {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return paging.NewResult(all, int64(len(all)), p), nil
}

func (r *memRepo) Get(_ context.Context, id string) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return Coupon{}, ErrNotFound
	}
	return c, nil
}

func (r *memRepo) Create(_ context.Context, c *Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.Code == c.Code {
			return ErrDuplicateCode
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.items[c.ID] = *c
	return nil
}

func (r *memRepo) Update(_ context.Context, id string, fn func(*Coupon) error) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return Coupon{}, ErrNotFound
	}
	if err := fn(&c); err != nil {
		return Coupon{}, err
	}
	r.items[id] = c
	return c, nil
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
