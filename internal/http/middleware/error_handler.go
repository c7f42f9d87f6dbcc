package middleware

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/viewmode"
	"pehlione.com/admin/internal/wizard"
	"pehlione.com/admin/pkg/view"
)

func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	if strings.HasPrefix(c.GetHeader("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Classify turns errors from the wizard, view-mode and hub packages into
// public application errors. Anything else goes through apperr.Wrap.
func Classify(err error) *apperr.AppError {
	if ae, ok := apperr.As(err); ok {
		return ae
	}
	if ve, ok := wizard.AsValidation(err); ok {
		return apperr.InvalidErr("Please fix the highlighted fields.", ve.Fields).WithCause(err)
	}
	switch {
	case errors.Is(err, wizard.ErrSubmitting):
		return apperr.ConflictErr("A submission is already in progress.").WithCause(err)
	case errors.Is(err, wizard.ErrCompleted):
		return apperr.ConflictErr("This form was already submitted.").WithCause(err)
	case errors.Is(err, wizard.ErrNotFinalStep):
		return apperr.InvalidErr("Complete every step before submitting.", nil).WithCause(err)
	case errors.Is(err, wizard.ErrUnknownField):
		return apperr.InvalidErr("Unknown form field.", nil).WithCause(err)
	case errors.Is(err, wizard.ErrNotFound):
		return apperr.NotFoundErr("This form has expired. Please start again.").WithCause(err)
	case errors.Is(err, viewmode.ErrUnknownPath):
		return apperr.NotFoundErr("Page not found.").WithCause(err)
	case errors.Is(err, hub.ErrUnknownAction):
		return apperr.InvalidErr("Unknown bulk action.", map[string]string{"action": "Unknown action"}).WithCause(err)
	}
	return apperr.Wrap(err)
}

// ErrorHandler renders the last handler error. JSON clients get
// {error, request_id, fields}; form posts are redirected back with a flash;
// everything else gets a minimal HTML page.
func ErrorHandler(l *slog.Logger, codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		ae := Classify(c.Errors.Last().Err)
		status := apperr.HTTPStatus(ae)
		rid := GetRequestID(c)

		level := slog.LevelWarn
		if apperr.Is(ae, apperr.Internal) {
			level = slog.LevelError
		}
		l.LogAttrs(c.Request.Context(), level, "request_failed",
			slog.String("request_id", rid),
			slog.String("kind", string(ae.Kind)),
			slog.Int("status", status),
			slog.Any("err", ae),
		)

		if WantsJSON(c) {
			payload := gin.H{
				"error":      ae.PublicMsg,
				"request_id": rid,
			}
			if len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			c.AbortWithStatusJSON(status, payload)
			return
		}

		if c.Request.Method != http.MethodGet && codec != nil {
			SetFlashCookie(c, codec, view.Flash{Kind: view.FlashError, Message: ae.PublicMsg})
			c.Redirect(http.StatusSeeOther, backTo(c))
			c.Abort()
			return
		}

		c.Abort()
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(status, fmt.Sprintf("<html><body><h1>%d %s</h1><p>%s</p><p>Request ID: %s</p></body></html>",
			status, http.StatusText(status), html.EscapeString(ae.PublicMsg), html.EscapeString(rid)))
	}
}

// backTo is the same-site referer path, or the hub index.
func backTo(c *gin.Context) string {
	ref := c.GetHeader("Referer")
	if i := strings.Index(ref, "://"); i >= 0 {
		rest := ref[i+3:]
		if j := strings.Index(rest, "/"); j >= 0 && rest[:j] == c.Request.Host {
			return rest[j:]
		}
		return "/admin/hubs"
	}
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return ref
	}
	return "/admin/hubs"
}
