package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/internal/config"
)

func TestBuildMIMEMessageAlternative(t *testing.T) {
	raw, err := buildMIMEMessage(Email{
		FromName: "Mağaza",
		From:     "no-reply@shop.test",
		To:       []string{"ada@example.com"},
		Subject:  "Your staff account",
		TextBody: "Hello Ada",
		HTMLBody: "<p>Hello Ada</p>",
		Headers:  map[string]string{"X-Evil\r\nBcc": "x@y\r\nBcc: z@w"},
	}, "shop.test")
	require.NoError(t, err)

	assert.Contains(t, raw, "From: =?utf-8?q?Ma=C4=9Faza?= <no-reply@shop.test>\r\n")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, raw, "@shop.test>")
	assert.NotContains(t, raw, "\r\nBcc:")
}

func TestBuildMIMEMessageRequiresFields(t *testing.T) {
	for _, e := range []Email{
		{From: "a@b", Subject: "s", TextBody: "t"},
		{To: []string{"a@b"}, Subject: "s", TextBody: "t"},
		{To: []string{"a@b"}, From: "a@b", TextBody: "t"},
		{To: []string{"a@b"}, From: "a@b", Subject: "s"},
	} {
		_, err := buildMIMEMessage(e, "x")
		assert.Error(t, err)
	}
}

func TestNewFallsBackToLog(t *testing.T) {
	var buf bytes.Buffer
	svc := New(config.Config{}, Log{Logger: slog.New(slog.NewJSONHandler(&buf, nil))})
	require.IsType(t, Log{}, svc)

	err := svc.Send(context.Background(), Email{From: "a@b", To: []string{"c@d"}, Subject: "Hi", TextBody: "x"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), `"subject":"Hi"`))

	assert.IsType(t, &SMTPMailer{}, New(config.Config{SMTP: config.SMTPConfig{Host: "smtp.test"}}, Log{}))
	assert.IsType(t, &Mailtrap{}, New(config.Config{
		Mailtrap: config.MailtrapConfig{APIURL: "https://send.test/api/send", Token: "t"},
	}, Log{}))
}
