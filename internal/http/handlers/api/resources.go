// Package api serves the hubs as JSON resources under /api.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/http/render"
	"pehlione.com/admin/internal/http/validation"
	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/shared/paging"
)

type ResourcesHandler struct {
	Registry *hub.Registry
	PageSize int
}

func NewResourcesHandler(reg *hub.Registry, pageSize int) *ResourcesHandler {
	return &ResourcesHandler{Registry: reg, PageSize: pageSize}
}

func (h *ResourcesHandler) List(c *gin.Context) {
	res, ok := h.resource(c)
	if !ok {
		return
	}
	p := paging.Params{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 0),
	}.Normalize(h.PageSize)

	out, err := res.List(c.Request.Context(), p)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, http.StatusOK, out)
}

func (h *ResourcesHandler) Get(c *gin.Context) {
	res, ok := h.resource(c)
	if !ok {
		return
	}
	out, err := res.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, http.StatusOK, out)
}

func (h *ResourcesHandler) Create(c *gin.Context) {
	res, ok := h.resource(c)
	if !ok {
		return
	}
	payload := res.NewPayload()
	if err := c.ShouldBindJSON(payload); err != nil {
		middleware.Fail(c, validation.BindError(err, payload))
		return
	}
	out, err := res.Create(c.Request.Context(), payload)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, http.StatusCreated, out)
}

func (h *ResourcesHandler) Update(c *gin.Context) {
	res, ok := h.resource(c)
	if !ok {
		return
	}
	payload := res.NewPayload()
	if err := c.ShouldBindJSON(payload); err != nil {
		middleware.Fail(c, validation.BindError(err, payload))
		return
	}
	out, err := res.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, http.StatusOK, out)
}

func (h *ResourcesHandler) Delete(c *gin.Context) {
	res, ok := h.resource(c)
	if !ok {
		return
	}
	if err := res.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourcesHandler) resource(c *gin.Context) (hub.Resource, bool) {
	hb, ok := h.Registry.Get(c.Param("entity"))
	if !ok || hb.Resource == nil {
		middleware.Fail(c, apperr.NotFoundErr("Resource not found."))
		return nil, false
	}
	return hb.Resource, true
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}
