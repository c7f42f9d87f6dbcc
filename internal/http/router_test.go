package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/notify"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/shared/paging"
	"pehlione.com/admin/internal/wizard"
)

const token = "s3cret"

type note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type noteInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type noteService struct {
	mu    sync.Mutex
	seq   int
	items []note
}

func (s *noteService) List(_ context.Context, p paging.Params) (paging.Result[note], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return paging.NewResult(append([]note(nil), s.items...), int64(len(s.items)), p), nil
}

func (s *noteService) Get(_ context.Context, id string) (note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.items {
		if n.ID == id {
			return n, nil
		}
	}
	return note{}, apperr.NotFoundErr("Note not found.")
}

func (s *noteService) Create(ctx context.Context, in noteInput) (note, error) {
	if strings.TrimSpace(in.Title) == "" {
		return note{}, apperr.InvalidErr("Please fix the highlighted fields.", map[string]string{"title": "Title is required"})
	}
	s.mu.Lock()
	s.seq++
	n := note{ID: fmt.Sprintf("n%d", s.seq), Title: in.Title, Body: in.Body}
	s.items = append(s.items, n)
	s.mu.Unlock()
	notify.Request{}.Notify(ctx, notify.Notice{Kind: notify.Success, Message: "Note created."})
	return n, nil
}

func (s *noteService) Update(_ context.Context, id string, in noteInput) (note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Title, s.items[i].Body = in.Title, in.Body
			return s.items[i], nil
		}
	}
	return note{}, apperr.NotFoundErr("Note not found.")
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			notify.Request{}.Notify(ctx, notify.Notice{Kind: notify.Info, Message: "Note deleted."})
			return nil
		}
	}
	return apperr.NotFoundErr("Note not found.")
}

var noteForm = &wizard.Schema[noteInput]{
	Entity: "note",
	Steps: []wizard.Step{
		{
			Name:   "title",
			Fields: []string{"title"},
			Validate: func(d wizard.FormData) wizard.FieldErrors {
				return wizard.Check(d).Required("title", "Title is required").Errors()
			},
		},
		{Name: "body", Fields: []string{"body"}},
	},
	Defaults: func() wizard.FormData { return wizard.FormData{"title": "", "body": ""} },
	Payload: func(d wizard.FormData) (noteInput, error) {
		return noteInput{Title: wizard.Str(d, "title"), Body: wizard.Str(d, "body")}, nil
	},
}

func newTestRouter(t *testing.T) (*gin.Engine, *noteService) {
	t.Helper()
	return newTestRouterWith(t, wizard.NewStore(time.Minute))
}

func newTestRouterWith(t *testing.T, store *wizard.Store) (*gin.Engine, *noteService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &noteService{}
	crud := &hub.CRUD[note, noteInput]{
		Service:    svc,
		CreateForm: noteForm,
		Seed:       func(n note) wizard.FormData { return wizard.FormData{"title": n.Title, "body": n.Body} },
	}
	reg := hub.NewRegistry(nil)
	_, err := reg.Register(hub.Hub{Name: "notes", Title: "Notes", Dashboard: crud, Resource: crud})
	require.NoError(t, err)

	r := NewRouter(Deps{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry:   reg,
		Wizards:    store,
		Flash:      flash.NewCodec([]byte("flash-key"), "flash", false),
		AdminToken: token,
		PageSize:   20,
	})
	return r, svc
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func data(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	d, ok := decode(t, w)["data"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return d
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/hubs", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Authentication required.", body["error"])
	assert.NotEmpty(t, body["request_id"])

	req = httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEmptyTokenRejectsEverything(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Deps{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry: hub.NewRegistry(nil),
		Wizards:  wizard.NewStore(time.Minute),
	})
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHubIndex(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/admin/hubs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list, ok := decode(t, w)["data"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	h := list[0].(map[string]any)
	assert.Equal(t, "notes", h["name"])
	assert.Equal(t, "/admin/hubs/notes", h["path"])
	assert.Equal(t, []any{"delete"}, h["actions"])
}

func TestDispatchModes(t *testing.T) {
	r, svc := newTestRouter(t)
	_, err := svc.Create(context.Background(), noteInput{Title: "First"})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/admin/hubs/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := data(t, w)
	assert.Equal(t, "list", d["mode"].(map[string]any)["kind"])
	assert.Equal(t, float64(1), d["list"].(map[string]any)["total"])

	w = do(r, http.MethodGet, "/admin/hubs/notes/n1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "First", data(t, w)["detail"].(map[string]any)["title"])

	w = do(r, http.MethodGet, "/admin/hubs/notes/bulk", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"delete"}, data(t, w)["actions"])

	w = do(r, http.MethodGet, "/admin/hubs/notes/n1/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d = data(t, w)
	assert.Equal(t, "First", d["detail"].(map[string]any)["title"])
	assert.Nil(t, d["wizardId"])

	w = do(r, http.MethodPost, "/admin/wizards", map[string]any{"hub": "notes", "id": "n1"})
	require.Equal(t, http.StatusCreated, w.Code)
	st := data(t, w)["state"].(map[string]any)
	assert.Equal(t, "edit", st["mode"])
	assert.Equal(t, "First", st["data"].(map[string]any)["title"])

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/admin/hubs/notes/a/b/c", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/admin/hubs/notes/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/admin/hubs/nope/", nil).Code)
}

func TestWizardFlow(t *testing.T) {
	r, svc := newTestRouter(t)

	w := do(r, http.MethodPost, "/admin/wizards", map[string]any{"hub": "notes"})
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := data(t, w)["id"].(string)
	require.NotEmpty(t, id)
	base := "/admin/wizards/" + id

	// title is required on the first step
	w = do(r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title is required", decode(t, w)["fields"].(map[string]any)["title"])

	// submit is only allowed on the last step
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, base+"/submit", nil).Code)

	// an unknown field rejects the whole change
	w = do(r, http.MethodPatch, base+"/fields", map[string]any{"fields": map[string]any{"title": "X", "bogus": 1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodGet, base, nil)
	assert.Equal(t, "", data(t, w)["state"].(map[string]any)["data"].(map[string]any)["title"])

	w = do(r, http.MethodPatch, base+"/fields", map[string]any{"fields": map[string]any{"title": "Hello"}})
	require.Equal(t, http.StatusOK, w.Code)
	st := data(t, w)["state"].(map[string]any)
	assert.Empty(t, st["errors"])

	w = do(r, http.MethodPost, base+"/blur", map[string]any{"field": "title"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), data(t, w)["state"].(map[string]any)["step"])

	w = do(r, http.MethodPost, base+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), data(t, w)["state"].(map[string]any)["step"])
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, base+"/next", nil).Code)

	w = do(r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["data"].(map[string]any)["state"].(map[string]any)["completed"])
	notices := body["notices"].([]any)
	require.Len(t, notices, 1)
	assert.Equal(t, "Note created.", notices[0].(map[string]any)["message"])

	require.Len(t, svc.items, 1)
	assert.Equal(t, "Hello", svc.items[0].Title)

	// completed sessions leave the store
	w = do(r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "This form has expired. Please start again.", decode(t, w)["error"])
}

func TestViewingWizardPagesStoresNothing(t *testing.T) {
	store := wizard.NewStore(time.Minute)
	r, svc := newTestRouterWith(t, store)
	_, err := svc.Create(context.Background(), noteInput{Title: "First"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/admin/hubs/notes/new", nil).Code)
		require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/admin/hubs/notes/n1/edit", nil).Code)
	}
	assert.Zero(t, store.Len())

	w := do(r, http.MethodPost, "/admin/wizards", map[string]any{"hub": "notes"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := data(t, w)["id"].(string)
	assert.Equal(t, 1, store.Len())

	// a reload reattaches the same session
	w = do(r, http.MethodGet, "/admin/hubs/notes/new?wizard="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := data(t, w)
	assert.Equal(t, id, d["wizardId"])
	assert.Equal(t, "create", d["wizard"].(map[string]any)["mode"])
	assert.Equal(t, 1, store.Len())

	// a create session does not open an edit view
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/admin/hubs/notes/n1/edit?wizard="+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/admin/hubs/notes/new?wizard=gone", nil).Code)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/admin/wizards", map[string]any{"hub": "nope"}).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/admin/wizards", map[string]any{"hub": "notes", "id": "zz"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/admin/wizards", map[string]any{}).Code)
}

func TestWizardCancel(t *testing.T) {
	r, _ := newTestRouter(t)
	id := data(t, do(r, http.MethodPost, "/admin/wizards", map[string]any{"hub": "notes"}))["id"].(string)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/admin/wizards/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/admin/wizards/"+id+"/next", nil).Code)
}

func TestBulk(t *testing.T) {
	r, svc := newTestRouter(t)
	_, err := svc.Create(context.Background(), noteInput{Title: "A"})
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/admin/hubs/notes/bulk", map[string]any{"action": "delete", "ids": []string{"n1", "zz"}})
	require.Equal(t, http.StatusOK, w.Code)
	d := data(t, w)
	assert.Equal(t, float64(1), d["succeeded"])
	assert.Equal(t, "Note not found.", d["failed"].(map[string]any)["zz"])
	assert.Empty(t, svc.items)

	w = do(r, http.MethodPost, "/admin/hubs/notes/bulk", map[string]any{"action": "archive", "ids": []string{"n1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/admin/hubs/notes/bulk", map[string]any{"action": "delete"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "ids")
}

func TestFormPostRedirectsWithFlash(t *testing.T) {
	r, svc := newTestRouter(t)
	_, err := svc.Create(context.Background(), noteInput{Title: "A"})
	require.NoError(t, err)

	form := url.Values{"action": {"delete"}, "ids": {"n1"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/hubs/notes/bulk", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/hubs/notes", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "flash=")

	// failures on form posts redirect back too
	req = httptest.NewRequest(http.MethodDelete, "/admin/hubs/notes/n1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Referer", "/admin/hubs/notes/n1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/hubs/notes/n1", w.Header().Get("Location"))
}

func TestResourceAPI(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/notes", noteInput{Title: ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title is required", decode(t, w)["fields"].(map[string]any)["title"])

	w = do(r, http.MethodPost, "/api/notes", noteInput{Title: "Hi", Body: "there"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "n1", data(t, w)["id"])

	w = do(r, http.MethodGet, "/api/notes?page=1&pageSize=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := data(t, w)
	assert.Equal(t, float64(20), d["pageSize"])
	assert.Len(t, d["items"], 1)

	w = do(r, http.MethodPut, "/api/notes/n1", noteInput{Title: "Bye"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bye", data(t, w)["title"])

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/notes/n1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/notes/n1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/widgets", nil).Code)
}

func TestRecoveryReturnsJSON500(t *testing.T) {
	r, _ := newTestRouter(t)
	r.GET("/api/boom", func(*gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/api/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong.", decode(t, w)["error"])
}
