package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/hlog"

	"simaset/internal/session"
)

var publicPaths = map[string]bool{
	"/":         true,
	"/login":    true,
	"/register": true,
	"/healthz":  true,
}

func isPublic(path string) bool {
	return publicPaths[path] || strings.HasPrefix(path, "/static/")
}

// Session loads the session cookie and puts it in the request context. A
// cookie that cannot be decoded is treated as no session.
func Session(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := m.Load(r)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("discarding unreadable session")
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
		})
	}
}

// RequireAuth sends anonymous users to the login page, remembering where
// they were headed. Public paths pass through.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(r.URL.Path) || session.FromContext(r.Context()).IsAuthenticated() {
			next.ServeHTTP(w, r)
			return
		}

		target := "/login"
		if r.Method == http.MethodGet {
			target += "?next=" + url.QueryEscape(r.URL.RequestURI())
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	})
}

// RedirectIfAuthenticated keeps signed-in users off the login and register pages.
func RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()).IsAuthenticated() {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
