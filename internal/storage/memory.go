package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Memory keeps objects in process. Used by tests and the "memory" driver.
type Memory struct {
	URLPrefix string

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemory(urlPrefix string) *Memory {
	return &Memory{URLPrefix: urlPrefix, objects: map[string][]byte{}}
}

func (m *Memory) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return PutResult{}, err
	}
	key := uuid.NewString() + safeExt(in.Filename)

	m.mu.Lock()
	m.objects[key] = buf.Bytes()
	m.mu.Unlock()
	return PutResult{Key: key, URL: strings.TrimRight(m.URLPrefix, "/") + "/" + key}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("storage: %s: %w", key, ErrNotExist)
	}
	delete(m.objects, key)
	return nil
}

// Object returns the stored bytes for key.
func (m *Memory) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	return b, ok
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func (m *Memory) String() string { return "memory" }
