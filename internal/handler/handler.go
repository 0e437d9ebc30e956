package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/hlog"

	"simaset/internal/client"
	"simaset/internal/entity"
	"simaset/internal/navigation"
	"simaset/internal/repository"
	"simaset/internal/session"
)

// AuthAPI is the part of the upstream API used for login and logout.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (client.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type RegistrationAPI interface {
	Roles(ctx context.Context) ([]entity.Role, error)
	DetailOptions(ctx context.Context, kind client.DetailKind) ([]client.DetailOption, error)
	Register(ctx context.Context, r client.RegisterRequest) error
}

type MasterAPI interface {
	Institutes(ctx context.Context) ([]entity.Institute, error)
	Units(ctx context.Context) ([]entity.Unit, error)
	SubUnits(ctx context.Context) ([]entity.SubUnit, error)
	Locations(ctx context.Context) ([]entity.Location, error)
}

// FieldErrors maps a form field to the message shown under it.
type FieldErrors map[string]string

func (e FieldErrors) Any() bool { return len(e) > 0 }

// Shell is what the sidebar layout needs on every authenticated page.
type Shell struct {
	User entity.User
	Menu []navigation.Item
	Path string
}

func newShell(menu *navigation.Menu, r *http.Request) Shell {
	s := session.FromContext(r.Context())
	return Shell{
		User: s.CurrentUser(),
		Menu: menu.Build(r.URL.Path, s.Expanded),
		Path: r.URL.Path,
	}
}

// recordActivity logs instead of failing: the feed must never block a user flow.
func recordActivity(r *http.Request, repo repository.ActivityRepository, a entity.Activity) {
	if repo == nil {
		return
	}
	if err := repo.Record(r.Context(), a); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("kind", string(a.Kind)).Msg("record activity")
	}
}

// localPath returns target when it is a path on this site, fallback otherwise.
func localPath(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return target
}
