// Package session keeps the upstream API token and the cached user profile
// in a signed, encrypted cookie.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"simaset/internal/entity"
)

const (
	CookieName = "app-session"

	keyToken    = "token"
	keyUser     = "user"
	keyExpanded = "nav_expanded"
)

// Session is the proof of authentication held for the browser session.
type Session struct {
	Token string
	User  entity.User
	// Expanded lists the menu groups the user has opened. Nil means the
	// user never toggled anything.
	Expanded []string
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// CurrentUser returns the cached profile, or the zero User when anonymous.
func (s *Session) CurrentUser() entity.User {
	if !s.IsAuthenticated() {
		return entity.User{}
	}
	return s.User
}

type Manager struct {
	store sessions.Store
}

func NewManager(store sessions.Store) *Manager {
	return &Manager{store: store}
}

// Load reads the session from r. A cookie that cannot be decoded yields an
// anonymous session together with the decode error.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	raw, err := m.store.Get(r, CookieName)
	if err != nil {
		return &Session{}, fmt.Errorf("load session: %w", err)
	}

	s := &Session{}
	s.Token, _ = raw.Values[keyToken].(string)
	if userJSON, ok := raw.Values[keyUser].(string); ok && userJSON != "" {
		if err := json.Unmarshal([]byte(userJSON), &s.User); err != nil {
			return &Session{}, fmt.Errorf("decode session user: %w", err)
		}
	}
	if expanded, ok := raw.Values[keyExpanded].(string); ok {
		s.Expanded = splitList(expanded)
	}
	return s, nil
}

func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	raw, _ := m.store.Get(r, CookieName)

	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	raw.Values[keyToken] = s.Token
	raw.Values[keyUser] = string(userJSON)
	if s.Expanded != nil {
		raw.Values[keyExpanded] = strings.Join(s.Expanded, ",")
	} else {
		delete(raw.Values, keyExpanded)
	}

	if err := raw.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear drops every value and expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	raw, _ := m.store.Get(r, CookieName)
	for k := range raw.Values {
		delete(raw.Values, k)
	}
	raw.Options.MaxAge = -1
	if err := raw.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type contextKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session injected by the auth middleware, or an
// anonymous session.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}
