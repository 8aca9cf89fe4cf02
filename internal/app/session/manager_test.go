package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/schooladmin/internal/app/models"
)

func newTestManager() (*Manager, *MemoryStore) {
	store := NewMemoryStore()
	return NewManager(store, Options{TTL: time.Hour, Logger: zerolog.Nop()}), store
}

func bind(m *Manager, cookie string) (context.Context, *httptest.ResponseRecorder) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		r.AddCookie(&http.Cookie{Name: "sa_session", Value: cookie})
	}
	w := httptest.NewRecorder()
	return m.Bind(context.Background(), w, r), w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "sa_session" {
			return c
		}
	}
	return nil
}

func TestAnonymousSessionIsNotStored(t *testing.T) {
	m, store := newTestManager()
	ctx, w := bind(m, "")

	if m.Get(ctx).Authenticated() {
		t.Fatalf("expected anonymous session")
	}
	if m.Token(ctx) != "" {
		t.Fatalf("expected no token")
	}
	if store.Len() != 0 || sessionCookie(t, w) != nil {
		t.Fatalf("expected nothing stored and no cookie")
	}
}

func TestSetStoresSessionAndCookie(t *testing.T) {
	m, store := newTestManager()
	ctx, w := bind(m, "")
	anonID := m.Get(ctx).ID

	if err := m.Set(ctx, "tok", &models.User{Email: "admin@school.test"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	c := sessionCookie(t, w)
	if c == nil || !c.HttpOnly {
		t.Fatalf("expected http-only session cookie")
	}
	if c.Value == anonID {
		t.Fatalf("expected session id to rotate on sign-in")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored session, got %d", store.Len())
	}

	next, _ := bind(m, c.Value)
	if m.Token(next) != "tok" || m.Get(next).User.Email != "admin@school.test" {
		t.Fatalf("expected session restored from cookie")
	}
}

func TestClearDropsSession(t *testing.T) {
	m, store := newTestManager()
	ctx, w := bind(m, "")
	if err := m.Set(ctx, "tok", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	id := sessionCookie(t, w).Value

	ctx, w = bind(m, id)
	m.Invalidate(ctx)

	if m.Token(ctx) != "" {
		t.Fatalf("expected token cleared")
	}
	if store.Len() != 0 {
		t.Fatalf("expected stored session deleted")
	}
	if c := sessionCookie(t, w); c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected expired cookie")
	}
}

func TestFlashesSurviveOneRedirect(t *testing.T) {
	m, _ := newTestManager()
	ctx, w := bind(m, "")
	if err := m.Set(ctx, "tok", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	id := sessionCookie(t, w).Value

	m.AddFlash(ctx, FlashSuccess, "Student created successfully")

	next, _ := bind(m, id)
	flashes := m.PopFlashes(next)
	if len(flashes) != 1 || flashes[0].Message != "Student created successfully" || flashes[0].Level != FlashSuccess {
		t.Fatalf("unexpected flashes %+v", flashes)
	}

	again, _ := bind(m, id)
	if got := m.PopFlashes(again); len(got) != 0 {
		t.Fatalf("expected flashes consumed, got %+v", got)
	}
}

func TestFlashOnAnonymousSessionSetsCookie(t *testing.T) {
	m, store := newTestManager()
	ctx, w := bind(m, "")

	m.AddFlash(ctx, FlashInfo, "Signed out")

	if store.Len() != 1 || sessionCookie(t, w) == nil {
		t.Fatalf("expected anonymous session persisted for its flash")
	}
}

func TestBearerOverridesCookieToken(t *testing.T) {
	m, _ := newTestManager()
	ctx, _ := bind(m, "")

	ctx = WithBearer(ctx, "api-token")
	if m.Token(ctx) != "api-token" {
		t.Fatalf("expected bearer token, got %q", m.Token(ctx))
	}

	if got := m.Token(WithBearer(context.Background(), "bare")); got != "bare" {
		t.Fatalf("expected bearer without binding, got %q", got)
	}
}

func TestUnknownCookieStartsFreshSession(t *testing.T) {
	m, _ := newTestManager()
	ctx, _ := bind(m, "does-not-exist")

	s := m.Get(ctx)
	if s == nil || s.Authenticated() || s.ID == "does-not-exist" {
		t.Fatalf("expected fresh anonymous session, got %+v", s)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	if err := store.Set(context.Background(), &Session{ID: "a"}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := store.Get(context.Background(), "a"); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := store.Get(context.Background(), "a"); err == nil {
		t.Fatalf("expected expired session to be gone")
	}
}

func TestRejectedBearerKeepsCookieSession(t *testing.T) {
	m, store := newTestManager()
	ctx, w := bind(m, "")
	if err := m.Set(ctx, "good-cookie-token", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	id := sessionCookie(t, w).Value

	ctx, w = bind(m, id)
	ctx = WithBearer(ctx, "bad-api-token")
	m.Invalidate(ctx)

	if _, err := store.Get(context.Background(), id); err != nil {
		t.Fatalf("expected cookie session to survive, got %v", err)
	}
	if got := m.Token(ctx); got != "good-cookie-token" {
		t.Fatalf("expected cookie token after bearer rejection, got %q", got)
	}
	if c := sessionCookie(t, w); c != nil {
		t.Fatalf("expected cookie untouched, got %+v", c)
	}
}
