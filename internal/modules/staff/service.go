package staff

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pehlione.com/admin/internal/notify"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/shared/paging"
	"pehlione.com/admin/internal/wizard"
)

type Service struct {
	repo     Repository
	inviter  *Inviter
	notifier notify.Notifier
	cost     int
}

// NewService wires the staff service. inviter may be nil.
func NewService(repo Repository, inviter *Inviter, n notify.Notifier) *Service {
	if n == nil {
		n = notify.Discard
	}
	return &Service{repo: repo, inviter: inviter, notifier: n, cost: bcrypt.DefaultCost}
}

func (s *Service) List(ctx context.Context, p paging.Params) (paging.Result[Member], error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (Member, error) {
	m, err := s.repo.Get(ctx, id)
	return m, mapErr(err)
}

func (s *Service) Create(ctx context.Context, in Input) (Member, error) {
	in, err := check(CreateForm, in)
	if err != nil {
		return Member{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Member{}, apperr.Wrap(err)
	}

	m := Member{PasswordHash: string(hash)}
	apply(&m, in)
	if err := s.repo.Create(ctx, &m); err != nil {
		return Member{}, mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Staff member " + m.FullName() + " created."})

	if s.inviter != nil {
		if err := s.inviter.Invite(ctx, m); err != nil {
			s.notifier.Notify(ctx, notify.Notice{Kind: notify.Warning, Message: "Invitation email to " + m.Email + " could not be sent."})
		}
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Member, error) {
	in, err := check(EditForm, in)
	if err != nil {
		return Member{}, err
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return Member{}, mapErr(err)
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
		if err != nil {
			return Member{}, apperr.Wrap(err)
		}
		m.PasswordHash = string(hash)
	}
	apply(&m, in)
	if err := s.repo.Update(ctx, &m); err != nil {
		return Member{}, mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Staff member " + m.FullName() + " updated."})
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Info, Message: "Staff member deleted."})
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(m Member, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) == nil
}

func check(form *wizard.Schema[Input], in Input) (Input, error) {
	in.Email = strings.TrimSpace(in.Email)
	data := in.FormData()
	if errs := form.ValidateAll(data); len(errs) > 0 {
		return Input{}, apperr.InvalidErr("Please fix the highlighted fields.", errs)
	}
	out, err := form.Payload(data)
	if err != nil {
		var pe *wizard.PayloadError
		if errors.As(err, &pe) {
			return Input{}, apperr.InvalidErr("Please fix the highlighted fields.", map[string]string{pe.Field: "Invalid value"})
		}
		return Input{}, apperr.Wrap(err)
	}
	return out, nil
}

func apply(m *Member, in Input) {
	m.FirstName = in.FirstName
	m.LastName = in.LastName
	m.Email = in.Email
	m.Phone = in.Phone
	m.Role = in.Role
	m.Department = in.Department
	m.HireDate = in.HireDate
	m.Salary = in.Salary
	m.Permissions = in.Permissions
	m.IsActive = in.IsActive
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperr.NotFoundErr("Staff member not found.").WithCause(err)
	case errors.Is(err, ErrDuplicateEmail):
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "Email is already in use.",
			Fields: map[string]string{"email": "Email is already in use"}, Err: err}
	default:
		return apperr.Wrap(err)
	}
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return mapErr(err)
	}
	m.IsActive = active
	return mapErr(s.repo.Update(ctx, &m))
}
