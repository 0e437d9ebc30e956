package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"simaset/internal/middleware"
	"simaset/internal/navigation"
	"simaset/internal/repository"
	"simaset/internal/session"
	"simaset/internal/templates"
)

// API is the whole upstream surface the pages use.
type API interface {
	AuthAPI
	RegistrationAPI
	MasterAPI
}

type Deps struct {
	API           API
	Sessions      *session.Manager
	Activity      repository.ActivityRepository
	Templates     *templates.Renderer
	Menu          *navigation.Menu
	PageSize      int
	ActivityLimit int
	Logger        zerolog.Logger
}

// Routes wires every page behind the session, auth and logging middleware.
func Routes(d Deps) http.Handler {
	if d.Menu == nil {
		d.Menu = navigation.Default()
	}

	index := NewIndexHandler(d.Templates)
	login := NewLoginHandler(d.API, d.Sessions, d.Activity, d.Templates)
	register := NewRegistrationHandler(d.API, d.Activity, d.Templates)
	dashboard := NewDashboardHandler(d.API, d.Activity, d.ActivityLimit, d.Menu, d.Templates)
	nav := NewNavHandler(d.Menu, d.Sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("/", index.Index)
	mux.Handle("/login", middleware.RedirectIfAuthenticated(http.HandlerFunc(login.Login)))
	mux.Handle("/register", middleware.RedirectIfAuthenticated(http.HandlerFunc(register.Register)))
	mux.HandleFunc("/logout", login.Logout)
	mux.HandleFunc("/dashboard", dashboard.DashboardPage)
	mux.HandleFunc("/nav/toggle", nav.Toggle)
	mux.HandleFunc("/healthz", Health)
	mux.Handle("/static/", templates.Static())

	for _, page := range MasterPages(d.API) {
		mux.HandleFunc(page.Path, NewListHandler(page, d.PageSize, d.Menu, d.Templates).List)
	}

	var h http.Handler = mux
	h = middleware.RequireAuth(h)
	h = middleware.Session(d.Sessions)(h)
	h = middleware.Recover(h)
	h = middleware.Logging(d.Logger)(h)
	return h
}
