// Package session keeps per-browser UI state (theme, navigation drawer,
// pending notices) in memory. Nothing here survives a restart.
package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/SergeyParamoshkin/admin/internal/theme"
)

const CookieName = "admin_session"

type ctxKey struct{}

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind    FlashKind
	Message string
}

type Session struct {
	ID      string
	Theme   theme.Mode
	NavOpen bool
	Flashes []Flash
}

// Store is a bounded in-memory session table. The least recently used
// session is evicted when capacity is reached.
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *Session]
}

func NewStore(capacity int) (*Store, error) {
	cache, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, err
	}

	return &Store{cache: cache}, nil
}

// Middleware attaches the caller's session to the request context, creating
// one seeded from the browser's color-scheme preference when needed.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CookieName); err == nil {
			id = c.Value
		}

		if !s.exists(id) {
			id = s.create(theme.Preferred(r))
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *Store) exists(id string) bool {
	if id == "" {
		return false
	}

	return s.cache.Contains(id)
}

func (s *Store) create(mode theme.Mode) string {
	sess := &Session{ID: uuid.NewString(), Theme: mode}
	s.cache.Add(sess.ID, sess)

	return sess.ID
}

// Snapshot returns a copy of the session bound to ctx. Without a session it
// returns a light-themed zero value.
func (s *Store) Snapshot(ctx context.Context) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(ctx)
	if !ok {
		return Session{Theme: theme.Light}
	}

	out := *sess
	out.Flashes = append([]Flash(nil), sess.Flashes...)

	return out
}

// Update applies fn to the session bound to ctx under the store lock.
func (s *Store) Update(ctx context.Context, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.lookup(ctx); ok {
		fn(sess)
	}
}

func (s *Store) AddFlash(ctx context.Context, kind FlashKind, message string) {
	s.Update(ctx, func(sess *Session) {
		sess.Flashes = append(sess.Flashes, Flash{Kind: kind, Message: message})
	})
}

// TakeFlashes returns the pending notices and clears them.
func (s *Store) TakeFlashes(ctx context.Context) []Flash {
	var out []Flash
	s.Update(ctx, func(sess *Session) {
		out = sess.Flashes
		sess.Flashes = nil
	})

	return out
}

func (s *Store) ToggleTheme(ctx context.Context) {
	s.Update(ctx, func(sess *Session) {
		sess.Theme = sess.Theme.Toggle()
	})
}

func (s *Store) ToggleNav(ctx context.Context) {
	s.Update(ctx, func(sess *Session) {
		sess.NavOpen = !sess.NavOpen
	})
}

func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) lookup(ctx context.Context) (*Session, bool) {
	id, _ := ctx.Value(ctxKey{}).(string)
	if id == "" {
		return nil, false
	}

	return s.cache.Get(id)
}

// WithID binds ctx to an existing session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}
