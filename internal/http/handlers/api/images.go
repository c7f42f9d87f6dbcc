package api

import (
	"bufio"
	"net/http"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/http/render"
	"pehlione.com/admin/internal/modules/products"
	"pehlione.com/admin/internal/shared/apperr"
)

type ImagesHandler struct {
	Products *products.Service
}

func NewImagesHandler(svc *products.Service) *ImagesHandler {
	return &ImagesHandler{Products: svc}
}

// Upload takes a multipart "file" field. The content type is sniffed from
// the bytes, not taken from the client.
func (h *ImagesHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, products.MaxImageSize+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Choose an image to upload.",
			map[string]string{"file": "An image file is required"}).WithCause(err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 512)
	head, _ := br.Peek(512)

	im, err := h.Products.AddImage(c.Request.Context(), c.Param("id"), products.Upload{
		Filename:    fh.Filename,
		ContentType: http.DetectContentType(head),
		Size:        fh.Size,
		Body:        br,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, http.StatusCreated, im)
}

func (h *ImagesHandler) Delete(c *gin.Context) {
	if err := h.Products.DeleteImage(c.Request.Context(), c.Param("id"), c.Param("imageID")); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
