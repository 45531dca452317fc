// Package session keeps per-visitor key/value state in memory, keyed by an
// id carried in a cookie.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/xid"
)

// CookieName is the cookie carrying the session id.
const CookieName = "depotsession"

// Session is one visitor's values. It is safe for concurrent use.
type Session struct {
	id     string
	mu     sync.Mutex
	values map[string]string
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Get returns the value for key, or def when unset.
func (s *Session) Get(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Set stores value under key.
func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes key.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Store holds sessions in an expiring LRU. Sessions idle for longer than
// the TTL, or pushed out by newer ones, are forgotten.
type Store struct {
	sessions *expirable.LRU[string, *Session]
	ttl      time.Duration
	secure   bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) StoreOption {
	return func(s *Store) {
		s.secure = secure
	}
}

// NewStore creates a Store holding up to size sessions for ttl each.
func NewStore(size int, ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		sessions: expirable.NewLRU[string, *Session](size, nil, ttl),
		ttl:      ttl,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.sessions.Len()
}

// Load returns the session named by the request cookie, starting a new one
// when there is none or it expired. Every load renews the session's lifetime
// and re-sends the cookie so the browser keeps it as long as the server does.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *Session {
	var sess *Session
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		sess, _ = s.sessions.Get(c.Value)
	}
	if sess == nil {
		sess = &Session{id: xid.New().String(), values: make(map[string]string)}
	}
	s.sessions.Add(sess.id, sess)
	s.setCookie(w, sess.id)
	return sess
}

func (s *Store) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type ctxKey struct{}

// Middleware loads the session of each request into its context.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.Load(w, r)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
	})
}

// NewContext returns ctx carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session in ctx, or nil.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxKey{}).(*Session)
	return sess
}
