package categories

import (
	"context"
	"errors"

	"pehlione.com/admin/internal/notify"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/shared/paging"
)

type Service struct {
	repo     Repository
	lookup   *Lookup
	notifier notify.Notifier
}

func NewService(repo Repository, lookup *Lookup, n notify.Notifier) *Service {
	if n == nil {
		n = notify.Discard
	}
	return &Service{repo: repo, lookup: lookup, notifier: n}
}

func (s *Service) List(ctx context.Context, p paging.Params) (paging.Result[Category], error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	c, err := s.repo.Get(ctx, id)
	return c, mapErr(err)
}

func (s *Service) Create(ctx context.Context, in Input) (Category, error) {
	if errs := Form.ValidateAll(in.FormData()); len(errs) > 0 {
		return Category{}, apperr.InvalidErr("Please fix the highlighted fields.", errs)
	}
	in, _ = payload(in.FormData())

	c := Category{}
	apply(&c, in)
	if err := s.repo.Create(ctx, &c); err != nil {
		return Category{}, mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Category " + c.Name + " created."})
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Category, error) {
	if errs := Form.ValidateAll(in.FormData()); len(errs) > 0 {
		return Category{}, apperr.InvalidErr("Please fix the highlighted fields.", errs)
	}
	if in.ParentID != nil && *in.ParentID == id {
		return Category{}, apperr.InvalidErr("Please fix the highlighted fields.",
			map[string]string{"parentId": "A category cannot be its own parent"})
	}
	in, _ = payload(in.FormData())

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Category{}, mapErr(err)
	}
	apply(&c, in)
	if err := s.repo.Update(ctx, &c); err != nil {
		return Category{}, mapErr(err)
	}
	if s.lookup != nil {
		s.lookup.Forget(id)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Category " + c.Name + " updated."})
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	if s.lookup != nil {
		s.lookup.Forget(id)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Info, Message: "Category deleted."})
	return nil
}

func apply(c *Category, in Input) {
	c.Name = in.Name
	c.Slug = in.Slug
	c.ParentID = in.ParentID
	c.Description = in.Description
	c.SortOrder = in.SortOrder
	c.IsActive = in.IsActive
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperr.NotFoundErr("Category not found.").WithCause(err)
	case errors.Is(err, ErrDuplicateSlug):
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "Slug is already taken.",
			Fields: map[string]string{"slug": "Slug is already taken"}, Err: err}
	default:
		return apperr.Wrap(err)
	}
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return mapErr(err)
	}
	c.IsActive = active
	return mapErr(s.repo.Update(ctx, &c))
}
