package admin

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/http/render"
	"pehlione.com/admin/internal/http/validation"
	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/viewmode"
	"pehlione.com/admin/internal/wizard"
)

// tracked remembers which hub a stored wizard belongs to.
type tracked struct {
	wizard.Session
	hub string
}

type WizardsHandler struct {
	Registry *hub.Registry
	Wizards  *wizard.Store
	Flash    *flash.Codec
}

func NewWizardsHandler(reg *hub.Registry, store *wizard.Store, codec *flash.Codec) *WizardsHandler {
	return &WizardsHandler{Registry: reg, Wizards: store, Flash: codec}
}

type wizardBody struct {
	ID    string       `json:"id"`
	Hub   string       `json:"hub"`
	State wizard.State `json:"state"`
}

// startRequest opens a create wizard, or an edit wizard when ID is set.
type startRequest struct {
	Hub string `json:"hub" form:"hub" binding:"required"`
	ID  string `json:"id" form:"id"`
}

type changeRequest struct {
	Fields map[string]any `json:"fields" binding:"required"`
}

type blurRequest struct {
	Field string `json:"field" form:"field" binding:"required"`
}

// Start opens a wizard session and stores it until WIZARD_TTL passes
// without use.
func (h *WizardsHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.Fail(c, validation.BindError(err, &req))
		return
	}
	hb, ok := h.Registry.Get(req.Hub)
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Hub not found."))
		return
	}
	sess, err := hb.Start(c.Request.Context(), req.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	t := tracked{Session: sess, hub: hb.Name}
	id := h.Wizards.Put(t)

	if !middleware.WantsJSON(c) {
		mode := viewmode.CreateMode()
		if req.ID != "" {
			mode = viewmode.EditMode(req.ID)
		}
		c.Redirect(http.StatusSeeOther, hubsRoot+"/"+hb.Name+mode.Path()+"?wizard="+url.QueryEscape(id))
		return
	}
	render.JSON(c, http.StatusCreated, wizardBody{ID: id, Hub: t.hub, State: t.State()})
}

func (h *WizardsHandler) Show(c *gin.Context) {
	t, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, t)
}

// Change merges field values. Every field is applied or none is.
func (h *WizardsHandler) Change(c *gin.Context) {
	t, ok := h.session(c)
	if !ok {
		return
	}
	var req changeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, validation.BindError(err, &req))
		return
	}
	for f := range req.Fields {
		if !t.Known(f) {
			middleware.Fail(c, t.Change(f, nil))
			return
		}
	}
	for f, v := range req.Fields {
		if err := t.Change(f, v); err != nil {
			middleware.Fail(c, err)
			return
		}
	}
	h.respond(c, t)
}

func (h *WizardsHandler) Blur(c *gin.Context) {
	t, ok := h.session(c)
	if !ok {
		return
	}
	var req blurRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.Fail(c, validation.BindError(err, &req))
		return
	}
	if err := t.Blur(req.Field); err != nil {
		middleware.Fail(c, err)
		return
	}
	h.respond(c, t)
}

func (h *WizardsHandler) Next(c *gin.Context) { h.step(c, wizard.Session.Next) }

func (h *WizardsHandler) Back(c *gin.Context) { h.step(c, wizard.Session.Back) }

func (h *WizardsHandler) step(c *gin.Context, move func(wizard.Session) error) {
	t, ok := h.session(c)
	if !ok {
		return
	}
	if err := move(t.Session); err != nil {
		middleware.Fail(c, err)
		return
	}
	h.respond(c, t)
}

// Submit runs the final validation and the entity create or update. A
// completed session is dropped from the store.
func (h *WizardsHandler) Submit(c *gin.Context) {
	t, ok := h.session(c)
	if !ok {
		return
	}
	if err := t.Submit(c.Request.Context()); err != nil {
		middleware.Fail(c, err)
		return
	}
	h.Wizards.Discard(c.Param("id"))

	if !middleware.WantsJSON(c) {
		render.RedirectWithNotices(c, h.Flash, hubsRoot+"/"+t.hub)
		return
	}
	h.respond(c, t)
}

// Cancel discards the session.
func (h *WizardsHandler) Cancel(c *gin.Context) {
	h.Wizards.Discard(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *WizardsHandler) session(c *gin.Context) (tracked, bool) {
	sess, err := h.Wizards.Get(c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return tracked{}, false
	}
	t, ok := sess.(tracked)
	if !ok {
		t = tracked{Session: sess}
	}
	return t, true
}

func (h *WizardsHandler) respond(c *gin.Context, t tracked) {
	render.JSON(c, http.StatusOK, wizardBody{ID: c.Param("id"), Hub: t.hub, State: t.State()})
}
