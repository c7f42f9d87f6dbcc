package coupons

import (
	"context"
	"errors"
	"strings"
	"time"

	"pehlione.com/admin/internal/notify"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/shared/paging"
	"pehlione.com/admin/internal/wizard"
)

var errUsageBelowUsed = errors.New("usage limit below used count")

type Service struct {
	repo     Repository
	form     *wizard.Schema[Input]
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, form *wizard.Schema[Input], n notify.Notifier) *Service {
	if form == nil {
		form = Form
	}
	if n == nil {
		n = notify.Discard
	}
	return &Service{repo: repo, form: form, notifier: n, now: time.Now}
}

// Form is the wizard schema the service validates against.
func (s *Service) Form() *wizard.Schema[Input] { return s.form }

func (s *Service) List(ctx context.Context, p paging.Params) (paging.Result[Coupon], error) {
	return s.repo.List(ctx, p, s.now())
}

func (s *Service) Get(ctx context.Context, id string) (Coupon, error) {
	c, err := s.repo.Get(ctx, id)
	return c, mapErr(err)
}

func (s *Service) Create(ctx context.Context, in Input) (Coupon, error) {
	in, err := s.check(in)
	if err != nil {
		return Coupon{}, err
	}
	c := Coupon{}
	apply(&c, in)
	if err := s.repo.Create(ctx, &c); err != nil {
		return Coupon{}, mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Coupon " + c.Code + " created."})
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Coupon, error) {
	in, err := s.check(in)
	if err != nil {
		return Coupon{}, err
	}
	c, err := s.repo.Update(ctx, id, func(c *Coupon) error {
		if in.UsageLimit != nil && *in.UsageLimit < c.UsedCount {
			return errUsageBelowUsed
		}
		apply(c, in)
		return nil
	})
	if err != nil {
		return Coupon{}, mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Coupon " + c.Code + " updated."})
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Info, Message: "Coupon deleted."})
	return nil
}

// check runs the wizard rules over a payload that did not come through the
// wizard (REST, CLI) and returns it normalized. Dates are checked as the
// exact instants that get stored.
func (s *Service) check(in Input) (Input, error) {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	data := in.CheckData()
	if errs := s.form.ValidateAll(data); len(errs) > 0 {
		return Input{}, apperr.InvalidErr("Please fix the highlighted fields.", errs)
	}
	out, err := s.form.Payload(data)
	if err != nil {
		return Input{}, apperr.InvalidErr("Please fix the highlighted fields.", payloadFields(err))
	}
	if out.ValidUntil != nil && !out.ValidUntil.After(out.ValidFrom) {
		return Input{}, apperr.InvalidErr("Please fix the highlighted fields.",
			map[string]string{"validUntil": MsgUntilAfterFrom})
	}
	return out, nil
}

// CheckData is FormData with the dates as exact UTC instants, for payloads
// that carry full timestamps.
func (in Input) CheckData() wizard.FormData {
	d := in.FormData()
	d["validFrom"] = instant(&in.ValidFrom)
	d["validUntil"] = instant(in.ValidUntil)
	return d
}

func instant(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func payloadFields(err error) map[string]string {
	var pe *wizard.PayloadError
	if errors.As(err, &pe) {
		return map[string]string{pe.Field: "Invalid value"}
	}
	return nil
}

func apply(c *Coupon, in Input) {
	c.Code = in.Code
	c.Name = in.Name
	c.Description = in.Description
	c.DiscountType = in.DiscountType
	c.DiscountValue = in.DiscountValue
	c.MinOrderAmount = in.MinOrderAmount
	c.MaxDiscountAmount = in.MaxDiscountAmount
	c.ValidFrom = in.ValidFrom
	c.ValidUntil = in.ValidUntil
	c.UsageLimit = in.UsageLimit
	c.PerUserLimit = in.PerUserLimit
	c.ApplicableCategories = in.ApplicableCategories
	c.ApplicableProducts = in.ApplicableProducts
	c.IsActive = in.IsActive
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperr.NotFoundErr("Coupon not found.").WithCause(err)
	case errors.Is(err, ErrDuplicateCode):
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "Coupon code is already in use.",
			Fields: map[string]string{"code": "Coupon code is already in use"}, Err: err}
	case errors.Is(err, errUsageBelowUsed):
		return apperr.InvalidErr("Please fix the highlighted fields.",
			map[string]string{"usageLimit": "Usage limit cannot be lower than the times already used"}).WithCause(err)
	default:
		return apperr.Wrap(err)
	}
}

// SetActive flips the active flag without touching anything else.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	_, err := s.repo.Update(ctx, id, func(c *Coupon) error {
		c.IsActive = active
		return nil
	})
	return mapErr(err)
}
