// Package storage stores uploaded product images on local disk, S3 or in
// memory.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotExist = errors.New("object does not exist")

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
