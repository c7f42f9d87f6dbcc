package products

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"pehlione.com/admin/internal/notify"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/shared/paging"
	"pehlione.com/admin/internal/storage"
	"pehlione.com/admin/internal/wizard"
)

// MaxImageSize caps a single upload.
const MaxImageSize = 5 << 20

var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

type Service struct {
	repo     Repository
	store    storage.Storage
	notifier notify.Notifier
}

// NewService wires the product service. store may be nil when uploads are
// disabled.
func NewService(repo Repository, store storage.Storage, n notify.Notifier) *Service {
	if n == nil {
		n = notify.Discard
	}
	return &Service{repo: repo, store: store, notifier: n}
}

func (s *Service) List(ctx context.Context, p paging.Params) (paging.Result[Product], error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.Get(ctx, id)
	return p, mapErr(err)
}

// Names resolves product ids for other hubs' detail views.
func (s *Service) Names(ctx context.Context, ids []string) (map[string]string, error) {
	return s.repo.Names(ctx, ids)
}

func (s *Service) Create(ctx context.Context, in Input) (Product, error) {
	in, err := check(in)
	if err != nil {
		return Product{}, err
	}
	p := Product{}
	apply(&p, in)
	if err := s.repo.Create(ctx, &p); err != nil {
		return Product{}, mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Product " + p.Name + " created."})
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Product, error) {
	in, err := check(in)
	if err != nil {
		return Product{}, err
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, mapErr(err)
	}
	apply(&p, in)
	if err := s.repo.Update(ctx, &p); err != nil {
		return Product{}, mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Product " + p.Name + " updated."})
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	images, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapErr(err)
	}
	s.removeFiles(ctx, images...)
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Info, Message: "Product deleted."})
	return nil
}

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AddImage stores the upload and attaches it to the product.
func (s *Service) AddImage(ctx context.Context, productID string, up Upload) (Image, error) {
	if s.store == nil {
		return Image{}, apperr.ForbiddenErr("Image uploads are disabled.")
	}
	ct := strings.ToLower(strings.TrimSpace(up.ContentType))
	if !imageTypes[ct] {
		return Image{}, apperr.InvalidErr("Unsupported image type.",
			map[string]string{"file": "Use a PNG, JPEG, WebP or GIF image"}).WithCause(ErrUnsupportedType)
	}
	if up.Size > MaxImageSize {
		return Image{}, apperr.InvalidErr("Image is too large.",
			map[string]string{"file": "Images may be at most 5 MB"})
	}
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return Image{}, mapErr(err)
	}

	res, err := s.store.Put(ctx, up.Body, storage.PutInput{
		Filename:    filepath.Base(up.Filename),
		ContentType: ct,
		Size:        up.Size,
	})
	if err != nil {
		return Image{}, apperr.Wrap(err)
	}
	im, err := s.repo.AddImage(ctx, productID, res.Key, res.URL)
	if err != nil {
		_ = s.store.Delete(ctx, res.Key)
		return Image{}, mapErr(err)
	}
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Image uploaded."})
	return im, nil
}

func (s *Service) DeleteImage(ctx context.Context, productID, imageID string) error {
	im, err := s.repo.GetImage(ctx, productID, imageID)
	if err != nil {
		return mapErr(err)
	}
	if err := s.repo.DeleteImage(ctx, productID, imageID); err != nil {
		return mapErr(err)
	}
	s.removeFiles(ctx, im)
	s.notifier.Notify(ctx, notify.Notice{Kind: notify.Info, Message: "Image removed."})
	return nil
}

func (s *Service) removeFiles(ctx context.Context, images ...Image) {
	if s.store == nil {
		return
	}
	for _, im := range images {
		if err := s.store.Delete(ctx, im.StorageKey); err != nil {
			s.notifier.Notify(ctx, notify.Notice{Kind: notify.Warning, Message: "Image file " + im.StorageKey + " could not be removed."})
		}
	}
}

func check(in Input) (Input, error) {
	data := in.FormData()
	if errs := Form.ValidateAll(data); len(errs) > 0 {
		return Input{}, apperr.InvalidErr("Please fix the highlighted fields.", errs)
	}
	out, err := Form.Payload(data)
	if err != nil {
		var pe *wizard.PayloadError
		if errors.As(err, &pe) {
			return Input{}, apperr.InvalidErr("Please fix the highlighted fields.", map[string]string{pe.Field: "Invalid value"})
		}
		return Input{}, apperr.Wrap(err)
	}
	return out, nil
}

func apply(p *Product, in Input) {
	p.Name = in.Name
	p.Slug = in.Slug
	p.Description = in.Description
	p.Status = in.Status
	p.PriceCents = in.Cents()
	p.Currency = in.Currency
	p.Stock = in.Stock
	p.Categories = in.Categories
	p.Tags = in.Tags
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperr.NotFoundErr("Product not found.").WithCause(err)
	case errors.Is(err, ErrImageNotFound):
		return apperr.NotFoundErr("Image not found.").WithCause(err)
	case errors.Is(err, ErrDuplicateSlug):
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "Slug is already taken.",
			Fields: map[string]string{"slug": "Slug is already taken"}, Err: err}
	default:
		return apperr.Wrap(err)
	}
}

// SetStatus moves a product between draft, active and archived.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	if !slices.Contains(Statuses, status) {
		return apperr.InvalidErr(MsgStatusInvalid+".", map[string]string{"status": MsgStatusInvalid})
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return mapErr(err)
	}
	p.Status = status
	return mapErr(s.repo.Update(ctx, &p))
}
