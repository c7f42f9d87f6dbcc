package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/internal/config"
)

func TestLocalPutDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")
	ctx := context.Background()

	res, err := l.Put(ctx, strings.NewReader("png-bytes"), PutInput{Filename: "../../Cat.PNG"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, l.Delete(ctx, res.Key))
	assert.ErrorIs(t, l.Delete(ctx, res.Key), ErrNotExist)
}

func TestLocalDropsUnknownExtension(t *testing.T) {
	l := NewLocal(t.TempDir(), "/u")
	res, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{Filename: "evil.php"})
	require.NoError(t, err)
	assert.Equal(t, "", filepath.Ext(res.Key))
}

func TestMemory(t *testing.T) {
	m := NewMemory("/m")
	ctx := context.Background()
	res, err := m.Put(ctx, strings.NewReader("abc"), PutInput{Filename: "a.jpg"})
	require.NoError(t, err)

	b, ok := m.Object(res.Key)
	require.True(t, ok)
	assert.Equal(t, "abc", string(b))
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(ctx, res.Key))
	assert.ErrorIs(t, m.Delete(ctx, res.Key), ErrNotExist)
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	s, err := FromConfig(ctx, config.StorageConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = FromConfig(ctx, config.StorageConfig{Driver: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = FromConfig(ctx, config.StorageConfig{Driver: "s3"})
	assert.Error(t, err)

	_, err = FromConfig(ctx, config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
