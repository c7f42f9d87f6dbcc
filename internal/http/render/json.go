package render

import (
	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/notify"
	"pehlione.com/admin/pkg/view"
)

// Envelope is the body of every successful JSON response.
type Envelope struct {
	Data    any             `json:"data"`
	Notices []notify.Notice `json:"notices,omitempty"`
	Flash   *view.Flash     `json:"flash,omitempty"`
}

// JSON writes data together with the notices queued during the request.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Data:    data,
		Notices: middleware.DrainNotices(c),
		Flash:   middleware.GetFlash(c),
	})
}
