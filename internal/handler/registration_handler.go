package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/hlog"

	"simaset/internal/client"
	"simaset/internal/entity"
	"simaset/internal/repository"
	"simaset/internal/templates"
)

const (
	registerHTTPFallback    = "Registration failed!"
	registerNetworkFallback = "An error occurred while registering."
)

type registerPageData struct {
	Title         string
	Error         string
	Roles         []entity.Role
	RoleID        int
	DetailID      int
	DetailOptions []client.DetailOption
	Form          map[string]string
	Errors        FieldErrors
	Strength      Strength
}

type RegistrationHandler struct {
	api      RegistrationAPI
	activity repository.ActivityRepository
	tmpl     *templates.Renderer
}

func NewRegistrationHandler(api RegistrationAPI, activity repository.ActivityRepository, tmpl *templates.Renderer) *RegistrationHandler {
	return &RegistrationHandler{
		api:      api,
		activity: activity,
		tmpl:     tmpl,
	}
}

func (h *RegistrationHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	roleID, _ := strconv.Atoi(r.URL.Query().Get("role_id"))
	data := h.pageData(r, roleID)
	h.render(w, r, http.StatusOK, data)
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.RegisterPage(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Gagal memproses formulir", http.StatusBadRequest)
		return
	}

	form := RegisterForm{
		FullName:        strings.TrimSpace(r.FormValue("full_name")),
		Username:        strings.TrimSpace(r.FormValue("username")),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
		AgreeTerms:      r.FormValue("agree_terms") != "",
	}
	form.RoleID, _ = strconv.Atoi(r.FormValue("role_id"))
	form.DetailID, _ = strconv.Atoi(r.FormValue("detail_id"))

	data := h.pageData(r, form.RoleID)
	if fixed, ok := defaultDetail[form.RoleID]; ok {
		form.DetailID = fixed
	}
	data.DetailID = form.DetailID
	data.Form = map[string]string{
		"full_name": form.FullName,
		"username":  form.Username,
	}
	if form.AgreeTerms {
		data.Form["agree_terms"] = "1"
	}
	data.Strength = PasswordStrength(form.Password)

	data.Errors = form.Validate(len(data.DetailOptions) > 0)
	if _, ok := findRole(data.Roles, form.RoleID); !ok {
		data.Errors["role_id"] = fieldMessage("role_id", "required")
	}
	if _, bad := data.Errors["detail_id"]; !bad && len(data.DetailOptions) > 0 && !hasOption(data.DetailOptions, form.DetailID) {
		data.Errors["detail_id"] = fieldMessage("detail_id", "required")
	}
	if data.Errors.Any() {
		h.render(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	err := h.api.Register(r.Context(), client.RegisterRequest{
		Username: form.Username,
		Password: form.Password,
		Name:     form.FullName,
		RoleID:   form.RoleID,
		DetailID: form.DetailID,
	})
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("username", form.Username).Msg("registration failed")
		status := http.StatusBadRequest
		data.Error = client.Message(err, registerHTTPFallback)
		if client.IsNetwork(err) {
			status = http.StatusBadGateway
			data.Error = registerNetworkFallback
		}
		h.render(w, r, status, data)
		return
	}

	recordActivity(r, h.activity, entity.NewActivity(entity.ActivityRegister, form.Username, "role "+strconv.Itoa(form.RoleID)))
	hlog.FromRequest(r).Info().Str("username", form.Username).Int("role_id", form.RoleID).Msg("registered")

	http.Redirect(w, r, "/login?message=registered&username="+url.QueryEscape(form.Username), http.StatusSeeOther)
}

// pageData loads the roles and, for the chosen role, its detail options.
// Lookup failures are logged and leave the selects empty.
func (h *RegistrationHandler) pageData(r *http.Request, roleID int) registerPageData {
	data := registerPageData{
		Title:  "Register",
		RoleID: roleID,
		Form:   map[string]string{},
		Errors: FieldErrors{},
	}

	roles, err := h.api.Roles(r.Context())
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("fetch roles")
		data.Error = "Daftar role tidak dapat dimuat"
		return data
	}
	data.Roles = roles

	if fixed, ok := defaultDetail[roleID]; ok {
		data.DetailID = fixed
		return data
	}
	role, ok := findRole(roles, roleID)
	if !ok {
		return data
	}
	data.DetailOptions = h.detailOptions(r, DetailKindForRole(role.Name))
	return data
}

func (h *RegistrationHandler) detailOptions(r *http.Request, kind client.DetailKind) []client.DetailOption {
	opts, err := h.api.DetailOptions(r.Context(), kind)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("kind", string(kind)).Msg("fetch detail options")
		return nil
	}
	return opts
}

func (h *RegistrationHandler) render(w http.ResponseWriter, r *http.Request, status int, data registerPageData) {
	if err := h.tmpl.Render(w, status, "register.html", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render register")
	}
}

func findRole(roles []entity.Role, id int) (entity.Role, bool) {
	for _, role := range roles {
		if role.ID == id {
			return role, true
		}
	}
	return entity.Role{}, false
}

func hasOption(opts []client.DetailOption, id int) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}
