package admin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/http/render"
	"pehlione.com/admin/internal/http/validation"
	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/shared/paging"
	"pehlione.com/admin/internal/viewmode"
	"pehlione.com/admin/internal/wizard"
	"pehlione.com/admin/pkg/view"
)

const hubsRoot = "/admin/hubs"

type HubsHandler struct {
	Registry *hub.Registry
	Wizards  *wizard.Store
	Flash    *flash.Codec
	PageSize int
}

func NewHubsHandler(reg *hub.Registry, store *wizard.Store, codec *flash.Codec, pageSize int) *HubsHandler {
	return &HubsHandler{Registry: reg, Wizards: store, Flash: codec, PageSize: pageSize}
}

// Index lists the mounted hubs.
func (h *HubsHandler) Index(c *gin.Context) {
	hubs := h.Registry.Hubs()
	out := make([]view.HubSummary, 0, len(hubs))
	for _, hb := range hubs {
		out = append(out, view.HubSummary{
			Name:    hb.Name,
			Title:   hb.Title,
			Path:    hubsRoot + "/" + hb.Name,
			Actions: hb.Dashboard.BulkActions(),
		})
	}
	render.JSON(c, http.StatusOK, out)
}

// Screen is the JSON body of a dispatched view.
type Screen struct {
	hub.Screen
	WizardID string        `json:"wizardId,omitempty"`
	State    *wizard.State `json:"wizard,omitempty"`
}

// Dispatch resolves the path under a hub to a view mode and opens it.
// Create and edit views never start a session; ?wizard=<id> reattaches one
// started with POST /admin/wizards.
func (h *HubsHandler) Dispatch(c *gin.Context) {
	hb, ok := h.hub(c)
	if !ok {
		return
	}
	mode, err := viewmode.Parse(c.Param("path"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	scr, err := hb.Open(c.Request.Context(), mode, ListParams(c, h.PageSize))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	out := Screen{Screen: scr}
	if id := c.Query("wizard"); id != "" && (mode.Kind == viewmode.Create || mode.Kind == viewmode.Edit) {
		st, err := h.attach(hb.Name, mode, id)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		out.WizardID, out.State = id, &st
	}
	render.JSON(c, http.StatusOK, out)
}

// attach returns the state of a stored session when it was started for the
// same hub and view.
func (h *HubsHandler) attach(hubName string, mode viewmode.Mode, id string) (wizard.State, error) {
	sess, err := h.Wizards.Get(id)
	if err != nil {
		return wizard.State{}, err
	}
	t, ok := sess.(tracked)
	if !ok || t.hub != hubName {
		return wizard.State{}, wizard.ErrNotFound
	}
	st := t.State()
	if st.TargetID != mode.ID {
		return wizard.State{}, wizard.ErrNotFound
	}
	return st, nil
}

// Bulk applies one action to a set of ids.
func (h *HubsHandler) Bulk(c *gin.Context) {
	hb, ok := h.hub(c)
	if !ok {
		return
	}
	var req hub.BulkRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.Fail(c, validation.BindError(err, &req))
		return
	}

	res, err := hb.Dashboard.Bulk(c.Request.Context(), req)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	out := view.BulkOutcome{
		Action:    res.Action,
		Succeeded: len(res.Succeeded),
		Failed:    res.Failed,
		Message:   bulkMessage(res),
	}
	if !middleware.WantsJSON(c) {
		kind := view.FlashSuccess
		if !res.OK() {
			kind = view.FlashWarning
		}
		render.RedirectWithFlash(c, h.Flash, hubsRoot+"/"+hb.Name, kind, out.Message)
		return
	}
	render.JSON(c, http.StatusOK, out)
}

func (h *HubsHandler) Delete(c *gin.Context) {
	hb, ok := h.hub(c)
	if !ok {
		return
	}
	if err := hb.Dashboard.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, err)
		return
	}
	if !middleware.WantsJSON(c) {
		render.RedirectWithNotices(c, h.Flash, hubsRoot+"/"+hb.Name)
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *HubsHandler) hub(c *gin.Context) (hub.Hub, bool) {
	hb, ok := h.Registry.Get(c.Param("hub"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Hub not found."))
		return hub.Hub{}, false
	}
	return hb, true
}

func bulkMessage(r hub.BulkResult) string {
	if r.OK() {
		return fmt.Sprintf("%s: %d item(s) done.", r.Action, len(r.Succeeded))
	}
	return fmt.Sprintf("%s: %d done, %d failed.", r.Action, len(r.Succeeded), len(r.Failed))
}

// ListParams reads q, status, page and pageSize from the query string.
func ListParams(c *gin.Context, def int) paging.Params {
	return paging.Params{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("pageSize"), 0),
	}.Normalize(def)
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
