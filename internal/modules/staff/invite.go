package staff

import (
	"context"
	"html"
	"strings"

	"pehlione.com/admin/internal/mailer"
)

// Inviter mails new staff members their login link.
type Inviter struct {
	Mailer   mailer.Service
	From     string
	FromName string
	BaseURL  string
}

func (i *Inviter) Invite(ctx context.Context, m Member) error {
	link := strings.TrimRight(i.BaseURL, "/") + "/admin/login"
	name := m.FullName()

	text := "Hello " + name + ",\n\n" +
		"An account with the " + m.Role + " role was created for you.\n" +
		"Sign in with " + m.Email + " at " + link + "\n"

	body := `<html>
  <body style="font-family: sans-serif;">
    <h2>Welcome to the team</h2>
    <p>Hello ` + html.EscapeString(name) + `,</p>
    <p>An account with the <strong>` + html.EscapeString(m.Role) + `</strong> role was created for you.</p>
    <p><a href="` + html.EscapeString(link) + `">Sign in</a> with ` + html.EscapeString(m.Email) + `.</p>
  </body>
</html>
`
	return i.Mailer.Send(ctx, mailer.Email{
		FromName: i.FromName,
		From:     i.From,
		To:       []string{m.Email},
		Subject:  "Your staff account",
		TextBody: text,
		HTMLBody: body,
	})
}
