package mailer

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"strings"
	"time"
)

var headerCleaner = strings.NewReplacer("\r", "", "\n", "")

func formatAddress(name, addr string) string {
	addr = headerCleaner.Replace(addr)
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", headerCleaner.Replace(name)), addr)
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func buildMIMEMessage(e Email, messageIDDomain string) (string, error) {
	switch {
	case len(e.To) == 0:
		return "", errors.New("mailer: at least one recipient required")
	case e.From == "":
		return "", errors.New("mailer: from address required")
	case e.Subject == "":
		return "", errors.New("mailer: subject required")
	case e.TextBody == "" && e.HTMLBody == "":
		return "", errors.New("mailer: text or html body required")
	}

	var b strings.Builder
	header := func(k, v string) {
		fmt.Fprintf(&b, "%s: %s\r\n", k, headerCleaner.Replace(v))
	}

	header("Date", time.Now().Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", randomHex(12), messageIDDomain))
	header("From", formatAddress(e.FromName, e.From))
	header("To", strings.Join(e.To, ", "))
	if len(e.Cc) > 0 {
		header("Cc", strings.Join(e.Cc, ", "))
	}
	header("Subject", mime.QEncoding.Encode("utf-8", e.Subject))
	header("MIME-Version", "1.0")
	for k, v := range e.Headers {
		if k != "" && v != "" {
			header(headerCleaner.Replace(k), v)
		}
	}

	switch {
	case e.TextBody != "" && e.HTMLBody != "":
		boundary := "alt-" + randomHex(12)
		header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", boundary))
		b.WriteString("\r\n")
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		if err := writePart(&b, "text/plain", e.TextBody); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		if err := writePart(&b, "text/html", e.HTMLBody); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
	case e.HTMLBody != "":
		if err := writePart(&b, "text/html", e.HTMLBody); err != nil {
			return "", err
		}
	default:
		if err := writePart(&b, "text/plain", e.TextBody); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// writePart writes the part headers and a quoted-printable body.
func writePart(b *strings.Builder, contentType, body string) error {
	fmt.Fprintf(b, "Content-Type: %s; charset=UTF-8\r\n", contentType)
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	w := quotedprintable.NewWriter(b)
	if _, err := w.Write([]byte(body)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	b.WriteString("\r\n")
	return nil
}
