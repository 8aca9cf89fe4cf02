package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/auth"
)

// Options configures a Manager.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	Logger     zerolog.Logger
}

// Manager binds sessions to browser cookies and exposes them to the rest of
// the application through the request context. It is the only place that reads
// or writes the session cookie.
type Manager struct {
	store  Store
	opts   Options
	logger zerolog.Logger
	now    func() time.Time
}

// NewManager creates a new Manager
func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "sa_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{
		store:  store,
		opts:   opts,
		logger: opts.Logger,
		now:    time.Now,
	}
}

type ctxKey struct{}

// binding is the per-request view of a session.
type binding struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	session *Session
	stored  bool
	bearer  string
}

func bindingFrom(ctx context.Context) *binding {
	b, _ := ctx.Value(ctxKey{}).(*binding)
	return b
}

// Bind loads the session named by the request cookie (or starts an unsaved
// anonymous one) and returns a context carrying it. Cookie changes made later
// through the Manager are written to w.
func (m *Manager) Bind(ctx context.Context, w http.ResponseWriter, r *http.Request) context.Context {
	b := &binding{w: w}

	if c, err := r.Cookie(m.opts.CookieName); err == nil && c.Value != "" {
		s, err := m.store.Get(ctx, c.Value)
		switch {
		case err == nil && !s.Expired(m.now()):
			b.session = s
			b.stored = true
		case err != nil && !errors.Is(err, apperrors.ErrSessionNotFound):
			m.logger.Error().Err(err).Msg("Failed to load session")
		}
	}

	if b.session == nil {
		b.session = m.newSession()
	}

	return context.WithValue(ctx, ctxKey{}, b)
}

// WithBearer returns a context whose requests authenticate with token instead
// of the cookie session. Used for API clients sending their own header.
func WithBearer(ctx context.Context, token string) context.Context {
	if b := bindingFrom(ctx); b != nil {
		b.mu.Lock()
		b.bearer = token
		b.mu.Unlock()
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, &binding{bearer: token})
}

func (m *Manager) newSession() *Session {
	now := m.now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.opts.TTL),
	}
}

// Get returns a copy of the session bound to ctx, or nil outside a request.
func (m *Manager) Get(ctx context.Context) *Session {
	b := bindingFrom(ctx)
	if b == nil || b.session == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s := *b.session
	s.Flashes = append([]Flash(nil), b.session.Flashes...)
	return &s
}

// Set signs the session in with token and user. The session ID is rotated and
// its lifetime follows the token's expiry when the token is a JWT.
func (m *Manager) Set(ctx context.Context, token string, user *models.User) error {
	b := bindingFrom(ctx)
	if b == nil || b.session == nil {
		return apperrors.ErrSessionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	oldID := b.session.ID
	flashes := b.session.Flashes

	ttl := auth.SessionLifetime(token, m.opts.TTL, m.now())
	if ttl <= 0 {
		return apperrors.NewCustomError(apperrors.ErrUnauthenticated, "Received token has already expired")
	}

	s := m.newSession()
	s.Token = token
	s.User = user
	s.Flashes = flashes
	s.ExpiresAt = s.CreatedAt.Add(ttl)

	if b.stored {
		if err := m.store.Delete(ctx, oldID); err != nil {
			m.logger.Warn().Err(err).Msg("Failed to drop previous session")
		}
	}

	b.session = s
	b.stored = false
	return m.persistLocked(ctx, b)
}

// Clear signs the session out: the stored state is deleted, the cookie expired
// and a fresh anonymous session takes its place for the rest of the request.
func (m *Manager) Clear(ctx context.Context) error {
	b := bindingFrom(ctx)
	if b == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.stored {
		err = m.store.Delete(ctx, b.session.ID)
	}
	b.session = m.newSession()
	b.stored = false
	b.bearer = ""

	if b.w != nil {
		http.SetCookie(b.w, &http.Cookie{
			Name:     m.opts.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   m.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return err
}

// Token implements graphql.SessionProvider
func (m *Manager) Token(ctx context.Context) string {
	b := bindingFrom(ctx)
	if b == nil {
		return ""
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bearer != "" {
		return b.bearer
	}
	if b.session == nil {
		return ""
	}
	return b.session.Token
}

// Invalidate implements graphql.SessionProvider. A rejected bearer token is
// only forgotten; the cookie session it overrode stays in place.
func (m *Manager) Invalidate(ctx context.Context) {
	if b := bindingFrom(ctx); b != nil {
		b.mu.Lock()
		hadBearer := b.bearer != ""
		b.bearer = ""
		b.mu.Unlock()
		if hadBearer {
			m.logger.Info().Msg("Bearer token rejected by backend")
			return
		}
	}

	if err := m.Clear(ctx); err != nil {
		m.logger.Error().Err(err).Msg("Failed to clear rejected session")
		return
	}
	m.logger.Info().Msg("Session cleared after backend rejected credentials")
}

// AddFlash queues a notification for the next rendered page.
func (m *Manager) AddFlash(ctx context.Context, level FlashLevel, message string) {
	b := bindingFrom(ctx)
	if b == nil || b.session == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.session.Flashes = append(b.session.Flashes, Flash{Level: level, Message: message})
	if err := m.persistLocked(ctx, b); err != nil {
		m.logger.Error().Err(err).Msg("Failed to store flash message")
	}
}

// PopFlashes returns the queued notifications and removes them from the session.
func (m *Manager) PopFlashes(ctx context.Context) []Flash {
	b := bindingFrom(ctx)
	if b == nil || b.session == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	flashes := b.session.Flashes
	if len(flashes) == 0 {
		return nil
	}
	b.session.Flashes = nil
	if b.stored {
		if err := m.persistLocked(ctx, b); err != nil {
			m.logger.Error().Err(err).Msg("Failed to clear flash messages")
		}
	}
	return flashes
}

// persistLocked writes the session to the store and, on first write, sets the
// cookie. Anonymous sessions without flashes are never stored.
func (m *Manager) persistLocked(ctx context.Context, b *binding) error {
	s := b.session
	if !s.Authenticated() && len(s.Flashes) == 0 && !b.stored {
		return nil
	}

	ttl := s.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		ttl = m.opts.TTL
		s.ExpiresAt = m.now().Add(ttl)
	}

	if err := m.store.Set(ctx, s, ttl); err != nil {
		return err
	}

	if !b.stored && b.w != nil {
		http.SetCookie(b.w, &http.Cookie{
			Name:     m.opts.CookieName,
			Value:    s.ID,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			Secure:   m.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	b.stored = true
	return nil
}
