package products

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pehlione.com/admin/internal/shared/paging"
)

type memRepo struct {
	mu     sync.Mutex
	items  map[string]Product
	images map[string]Image
}

func newMemRepo(seed ...Product) *memRepo {
	r := &memRepo{items: map[string]Product{}, images: map[string]Image{}}
	for _, p := range seed {
		r.items[p.ID] = p
	}
	return r
}

func (r *memRepo) List(_ context.Context, p paging.Params) (paging.Result[Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []Product
	for _, it := range r.items {
		if p.Status == "" || it.Status == p.Status {
			all = append(all, it)
		}
	}
	return paging.NewResult(all, int64(len(all)), p), nil
}

func (r *memRepo) Get(_ context.Context, id string) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	p.Images = nil
	for _, im := range r.images {
		if im.ProductID == id {
			p.Images = append(p.Images, im)
		}
	}
	return p, nil
}

func (r *memRepo) Create(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.Slug == p.Slug {
			return ErrDuplicateSlug
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.items[p.ID] = *p
	return nil
}

func (r *memRepo) Update(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return ErrNotFound
	}
	r.items[p.ID] = *p
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) ([]Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return nil, ErrNotFound
	}
	var out []Image
	for k, im := range r.images {
		if im.ProductID == id {
			out = append(out, im)
			delete(r.images, k)
		}
	}
	delete(r.items, id)
	return out, nil
}

func (r *memRepo) AddImage(_ context.Context, productID, key, url string) (Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[productID]; !ok {
		return Image{}, ErrNotFound
	}
	pos := 0
	for _, im := range r.images {
		if im.ProductID == productID && im.Position >= pos {
			pos = im.Position + 1
		}
	}
	im := Image{ID: uuid.NewString(), ProductID: productID, StorageKey: key, URL: url, Position: pos, CreatedAt: time.Now()}
	r.images[im.ID] = im
	return im, nil
}

func (r *memRepo) GetImage(_ context.Context, productID, imageID string) (Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	im, ok := r.images[imageID]
	if !ok || im.ProductID != productID {
		return Image{}, ErrImageNotFound
	}
	return im, nil
}

func (r *memRepo) DeleteImage(_ context.Context, productID, imageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	im, ok := r.images[imageID]
	if !ok || im.ProductID != productID {
		return ErrImageNotFound
	}
	delete(r.images, imageID)
	return nil
}

func (r *memRepo) Names(_ context.Context, ids []string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]string{}
	for _, id := range ids {
		if p, ok := r.items[id]; ok {
			out[id] = p.Name
		}
	}
	return out, nil
}
