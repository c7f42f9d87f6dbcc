package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/internal/viewmode"
	"pehlione.com/admin/internal/wizard"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		fields map[string]string
	}{
		{"app error passes through", apperr.ConflictErr("taken"), http.StatusConflict, nil},
		{"wrapped app error", fmt.Errorf("wizard: submit coupon: %w", apperr.NotFoundErr("gone")), http.StatusNotFound, nil},
		{"validation", &wizard.ValidationError{Step: 1, Fields: wizard.FieldErrors{"code": "Coupon code is required"}},
			http.StatusBadRequest, map[string]string{"code": "Coupon code is required"}},
		{"submitting", wizard.ErrSubmitting, http.StatusConflict, nil},
		{"completed", wizard.ErrCompleted, http.StatusConflict, nil},
		{"not final step", wizard.ErrNotFinalStep, http.StatusBadRequest, nil},
		{"unknown field", fmt.Errorf("%w: x", wizard.ErrUnknownField), http.StatusBadRequest, nil},
		{"expired session", wizard.ErrNotFound, http.StatusNotFound, nil},
		{"unknown path", fmt.Errorf("%w: %q", viewmode.ErrUnknownPath, "/a/b/c"), http.StatusNotFound, nil},
		{"unknown action", fmt.Errorf("%w: %q", hub.ErrUnknownAction, "x"), http.StatusBadRequest, map[string]string{"action": "Unknown action"}},
		{"internal", errors.New("db down"), http.StatusInternalServerError, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := Classify(tt.err)
			assert.Equal(t, tt.status, apperr.HTTPStatus(ae))
			if tt.fields != nil {
				assert.Equal(t, tt.fields, ae.Fields)
			}
			assert.NotEmpty(t, ae.PublicMsg)
		})
	}
}

func TestClassifyHidesInternalCause(t *testing.T) {
	ae := Classify(errors.New("dial tcp 10.0.0.1:3306: refused"))
	assert.Equal(t, "Something went wrong.", ae.PublicMsg)
}

func TestBackTo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/admin/hubs"},
		{"/admin/hubs/coupons/new", "/admin/hubs/coupons/new"},
		{"//evil.example/x", "/admin/hubs"},
		{"http://example.com/admin/hubs/staff", "/admin/hubs/staff"},
		{"https://evil.example/admin", "/admin/hubs"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "http://example.com/admin/hubs/staff/bulk", nil)
		if tt.referer != "" {
			c.Request.Header.Set("Referer", tt.referer)
		}
		assert.Equal(t, tt.want, backTo(c), tt.referer)
	}
}

func TestBearer(t *testing.T) {
	tok, ok := bearer("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	tok, ok = bearer("bearer   xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	_, ok = bearer("Basic abc")
	assert.False(t, ok)
	_, ok = bearer("Bearer ")
	assert.False(t, ok)
}

func TestWantsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Request = httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
	assert.True(t, WantsJSON(c))

	c.Request = httptest.NewRequest(http.MethodGet, "/admin/hubs", nil)
	assert.False(t, WantsJSON(c))
	c.Request.Header.Set("Accept", "application/json")
	assert.True(t, WantsJSON(c))
}

func TestRequestIDEchoesWellFormedIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-12345678")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-12345678", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "bad id\n")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "bad id\n", w.Body.String())
	assert.Len(t, w.Body.String(), 36)
}
