package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pehlione.com/admin/internal/config"
)

// Mailtrap sends through the Mailtrap HTTP send API.
type Mailtrap struct {
	apiURL string
	token  string
	client *http.Client
}

type mailtrapPayload struct {
	From     mailtrapPerson   `json:"from"`
	To       []mailtrapPerson `json:"to"`
	Cc       []mailtrapPerson `json:"cc,omitempty"`
	Bcc      []mailtrapPerson `json:"bcc,omitempty"`
	Subject  string           `json:"subject"`
	Text     string           `json:"text,omitempty"`
	HTML     string           `json:"html,omitempty"`
	Category string           `json:"category,omitempty"`
}

type mailtrapPerson struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func NewMailtrap(cfg config.MailtrapConfig) *Mailtrap {
	return &Mailtrap{
		apiURL: cfg.APIURL,
		token:  cfg.Token,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *Mailtrap) Send(ctx context.Context, e Email) error {
	if len(e.To) == 0 {
		return fmt.Errorf("mailtrap: no recipients")
	}

	body, err := json.Marshal(mailtrapPayload{
		From:     mailtrapPerson{Email: e.From, Name: e.FromName},
		To:       people(e.To),
		Cc:       people(e.Cc),
		Bcc:      people(e.Bcc),
		Subject:  e.Subject,
		Text:     e.TextBody,
		HTML:     e.HTMLBody,
		Category: "Transactional",
	})
	if err != nil {
		return fmt.Errorf("mailtrap: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailtrap: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("mailtrap API error: %d %s", res.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

func people(addrs []string) []mailtrapPerson {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]mailtrapPerson, len(addrs))
	for i, a := range addrs {
		out[i] = mailtrapPerson{Email: a}
	}
	return out
}
