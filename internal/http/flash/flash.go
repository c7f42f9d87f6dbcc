// Package flash signs one-shot messages that survive a redirect.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"pehlione.com/admin/pkg/view"
)

var ErrInvalid = errors.New("invalid flash cookie")

const ttl = 2 * time.Minute

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool

	now func() time.Time
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure, now: time.Now}
}

type envelope struct {
	view.Flash
	Exp int64 `json:"exp"`
}

// Encode returns base64(json).base64(hmac). The payload carries its own
// expiry so a replayed cookie is rejected after the ttl.
func (c *Codec) Encode(f view.Flash) (string, error) {
	b, err := json.Marshal(envelope{Flash: f, Exp: c.clock().Add(ttl).Unix()})
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	payload, sig, ok := strings.Cut(v, ".")
	if !ok || !verify(c.Secret, payload, sig) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var e envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, ErrInvalid
	}
	if !e.Kind.Valid() || strings.TrimSpace(e.Message) == "" || c.clock().Unix() > e.Exp {
		return nil, ErrInvalid
	}
	return &e.Flash, nil
}

func (c *Codec) CookieMaxAge() int { return int(ttl.Seconds()) }

func (c *Codec) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
