package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/notify"
	"pehlione.com/admin/pkg/view"
)

func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusSeeOther, location)
}

// RedirectWithNotices carries the last queued notice across the redirect.
func RedirectWithNotices(c *gin.Context, codec *flash.Codec, location string) {
	ns := middleware.DrainNotices(c)
	if len(ns) == 0 || codec == nil {
		c.Redirect(http.StatusSeeOther, location)
		return
	}
	last := ns[len(ns)-1]
	RedirectWithFlash(c, codec, location, FlashKind(last.Kind), last.Message)
}

func FlashKind(k notify.Kind) view.FlashKind {
	switch k {
	case notify.Success:
		return view.FlashSuccess
	case notify.Warning:
		return view.FlashWarning
	case notify.Error:
		return view.FlashError
	default:
		return view.FlashInfo
	}
}
