package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"simaset/internal/client"
	"simaset/internal/entity"
	"simaset/internal/repository"
	"simaset/internal/session"
	"simaset/internal/templates"
)

const (
	loginHTTPFallback    = "An error occurred during login."
	loginNetworkFallback = "Please check your credentials and try again."
)

type Notice struct {
	Level string
	Text  string
}

var loginNotices = map[string]Notice{
	"logged_out":              {"success", "Anda berhasil keluar dari sistem"},
	"logged_out_server_error": {"warning", "Terjadi kesalahan pada server, namun Anda tetap keluar dari sistem"},
	"registered":              {"success", "Registration successful! Please sign in."},
	"session_error":           {"warning", "Sesi tidak dapat disimpan, silakan coba lagi"},
}

type loginPageData struct {
	Title  string
	Notice *Notice
	Error  string
	Next   string
	Form   map[string]string
	Errors FieldErrors
}

type LoginHandler struct {
	api      AuthAPI
	sessions *session.Manager
	activity repository.ActivityRepository
	tmpl     *templates.Renderer
}

func NewLoginHandler(api AuthAPI, sessions *session.Manager, activity repository.ActivityRepository, tmpl *templates.Renderer) *LoginHandler {
	return &LoginHandler{
		api:      api,
		sessions: sessions,
		activity: activity,
		tmpl:     tmpl,
	}
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := loginPageData{
		Title:  "Login",
		Next:   r.URL.Query().Get("next"),
		Form:   map[string]string{"username": r.URL.Query().Get("username")},
		Errors: FieldErrors{},
	}
	if n, ok := loginNotices[r.URL.Query().Get("message")]; ok {
		data.Notice = &n
	}
	h.render(w, r, http.StatusOK, data)
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.LoginPage(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Gagal memproses formulir", http.StatusBadRequest)
		return
	}

	form := LoginForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}
	data := loginPageData{
		Title:  "Login",
		Next:   r.FormValue("next"),
		Form:   map[string]string{"username": form.Username},
		Errors: form.Validate(),
	}
	if data.Errors.Any() {
		h.render(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	res, err := h.api.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("username", form.Username).Msg("login failed")
		recordActivity(r, h.activity, entity.NewActivity(entity.ActivityLoginFailed, form.Username, ""))

		status := http.StatusUnauthorized
		data.Error = client.Message(err, loginHTTPFallback)
		if client.IsNetwork(err) {
			status = http.StatusBadGateway
			data.Error = loginNetworkFallback
		}
		var decodeErr *client.DecodeError
		if errors.As(err, &decodeErr) {
			status = http.StatusBadGateway
		}
		h.render(w, r, status, data)
		return
	}

	if err := h.sessions.Save(w, r, &session.Session{Token: res.Token, User: res.User}); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		http.Redirect(w, r, "/login?message=session_error", http.StatusSeeOther)
		return
	}

	recordActivity(r, h.activity, entity.NewActivity(entity.ActivityLogin, res.User.Username, ""))
	hlog.FromRequest(r).Info().Str("username", res.User.Username).Int("user_id", res.User.ID).Msg("login")

	http.Redirect(w, r, localPath(data.Next, "/dashboard"), http.StatusSeeOther)
}

// Logout tells the API the token is done with, then clears the local session
// whether or not that call succeeded.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s := session.FromContext(r.Context())
	username := s.CurrentUser().Username

	message := "logged_out"
	kind := entity.ActivityLogout
	if s.IsAuthenticated() {
		if err := h.api.Logout(r.Context(), s.Token); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Str("username", username).Msg("upstream logout failed, clearing local session anyway")
			message = "logged_out_server_error"
			kind = entity.ActivityLogoutServerError
		}
	}

	if err := h.sessions.Clear(w, r); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("clear session")
	}
	recordActivity(r, h.activity, entity.NewActivity(kind, username, ""))

	http.Redirect(w, r, "/login?message="+message, http.StatusSeeOther)
}

func (h *LoginHandler) render(w http.ResponseWriter, r *http.Request, status int, data loginPageData) {
	if err := h.tmpl.Render(w, status, "login.html", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render login")
	}
}
