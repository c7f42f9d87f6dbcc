package products

import "errors"

var (
	ErrNotFound        = errors.New("product not found")
	ErrImageNotFound   = errors.New("product image not found")
	ErrDuplicateSlug   = errors.New("product slug already exists")
	ErrUnsupportedType = errors.New("unsupported image type")
)
