package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atinyakov/tranum/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// dummyHandler is a placeholder that records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

type fakeSession struct {
	user models.User
	ok   bool
}

func (f fakeSession) Current() (models.User, bool) { return f.user, f.ok }

func TestRequireSession_NoUser(t *testing.T) {
	dummy := &dummyHandler{}
	h := RequireSession(fakeSession{})(dummy)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/trips", nil))

	if dummy.called {
		t.Error("next handler should not be called without a session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSession_StoresUser(t *testing.T) {
	dummy := &dummyHandler{}
	want := models.User{ID: "u1", Role: models.RoleTraveler}
	h := RequireSession(fakeSession{user: want, ok: true})(dummy)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/trips", nil))

	if !dummy.called {
		t.Fatal("expected next handler to be called")
	}
	got, ok := UserFromContext(dummy.ctx)
	if !ok || got.ID != "u1" {
		t.Errorf("UserFromContext = %+v, %v; want u1", got, ok)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		session  fakeSession
		wantCode int
	}{
		{"admin allowed", fakeSession{user: models.User{Role: models.RoleAdmin}, ok: true}, http.StatusOK},
		{"traveler forbidden", fakeSession{user: models.User{Role: models.RoleTraveler}, ok: true}, http.StatusForbidden},
		{"no session", fakeSession{}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireSession(tt.session)(RequireRole(models.RoleAdmin)(&dummyHandler{}))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/stats", nil))
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d; want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireRole_WithoutSessionMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRole(models.RoleAdmin)(&dummyHandler{}).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rec.Code)
	}
}

func TestWithRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	logger := zap.New(core)

	h := WithRequestLogging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/login", nil))

	out := buf.String()
	if !strings.Contains(out, "/api/login") || !strings.Contains(out, "418") {
		t.Errorf("expected path and status in log, got:\n%s", out)
	}
}
