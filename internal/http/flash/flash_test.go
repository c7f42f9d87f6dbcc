package flash

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/pkg/view"
)

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec([]byte("secret"), "flash", false)

	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Saved."})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "Saved.", f.Message)
}

func TestCodecRejectsTampering(t *testing.T) {
	c := NewCodec([]byte("secret"), "flash", false)
	v, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "hi"})
	require.NoError(t, err)

	other := NewCodec([]byte("other"), "flash", false)
	_, err = other.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)

	payload, _, _ := strings.Cut(v, ".")
	_, err = c.Decode(payload + ".AAAA")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = c.Decode("garbage")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodecExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCodec([]byte("secret"), "flash", false)
	c.now = func() time.Time { return now }

	v, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "hi"})
	require.NoError(t, err)

	now = now.Add(ttl + time.Second)
	_, err = c.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodecRejectsEmptyMessage(t *testing.T) {
	c := NewCodec([]byte("secret"), "flash", false)
	v, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "  "})
	require.NoError(t, err)
	_, err = c.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodecRejectsUnknownKind(t *testing.T) {
	c := NewCodec([]byte("secret"), "flash", false)
	v, err := c.Encode(view.Flash{Kind: "banner", Message: "hi"})
	require.NoError(t, err)
	_, err = c.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}
