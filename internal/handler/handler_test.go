package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simaset/internal/client"
	"simaset/internal/entity"
	"simaset/internal/repository"
	"simaset/internal/session"
	"simaset/internal/templates"
)

type fakeAPI struct {
	loginRes    client.LoginResult
	loginErr    error
	loginCalls  int
	logoutErr   error
	logoutCalls []string

	roles       []entity.Role
	rolesErr    error
	options     map[client.DetailKind][]client.DetailOption
	registerErr error
	registered  []client.RegisterRequest

	institutes    []entity.Institute
	units         []entity.Unit
	subUnits      []entity.SubUnit
	locations     []entity.Location
	institutesErr error
	unitsErr      error
	subUnitsErr   error
	locationsErr  error
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (client.LoginResult, error) {
	f.loginCalls++
	return f.loginRes, f.loginErr
}

func (f *fakeAPI) Logout(_ context.Context, token string) error {
	f.logoutCalls = append(f.logoutCalls, token)
	return f.logoutErr
}

func (f *fakeAPI) Roles(context.Context) ([]entity.Role, error) { return f.roles, f.rolesErr }

func (f *fakeAPI) DetailOptions(_ context.Context, kind client.DetailKind) ([]client.DetailOption, error) {
	return f.options[kind], nil
}

func (f *fakeAPI) Register(_ context.Context, r client.RegisterRequest) error {
	f.registered = append(f.registered, r)
	return f.registerErr
}

func (f *fakeAPI) Institutes(context.Context) ([]entity.Institute, error) {
	return f.institutes, f.institutesErr
}

func (f *fakeAPI) Units(context.Context) ([]entity.Unit, error) { return f.units, f.unitsErr }

func (f *fakeAPI) SubUnits(context.Context) ([]entity.SubUnit, error) {
	return f.subUnits, f.subUnitsErr
}

func (f *fakeAPI) Locations(context.Context) ([]entity.Location, error) {
	return f.locations, f.locationsErr
}

type testApp struct {
	handler  http.Handler
	sessions *session.Manager
	activity *repository.MemoryActivityRepository
}

func newTestApp(t *testing.T, api *fakeAPI) *testApp {
	t.Helper()
	store, _, err := session.NewCookieStore("test-secret", false)
	require.NoError(t, err)
	tmpl, err := templates.New()
	require.NoError(t, err)

	app := &testApp{
		sessions: session.NewManager(store),
		activity: repository.NewMemoryActivityRepository(10),
	}
	app.handler = Routes(Deps{
		API:           api,
		Sessions:      app.sessions,
		Activity:      app.activity,
		Templates:     tmpl,
		PageSize:      9,
		ActivityLimit: 5,
		Logger:        zerolog.Nop(),
	})
	return app
}

// signIn returns the cookies of a session holding a token for siti.
func (a *testApp) signIn(t *testing.T) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	s := &session.Session{Token: "tok-1", User: entity.User{ID: 7, Name: "Siti Aminah", Username: "siti"}}
	require.NoError(t, a.sessions.Save(w, httptest.NewRequest(http.MethodGet, "/", nil), s))
	return w.Result().Cookies()
}

func (a *testApp) get(target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return a.serve(req, cookies)
}

func (a *testApp) post(target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.serve(req, cookies)
}

func (a *testApp) serve(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestIndex(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	w := app.get("/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to SIM ASET YPCU")

	w = app.get("/", app.signIn(t))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = app.get("/nope", app.signIn(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	for _, path := range []string{"/dashboard", "/institusi", "/unit", "/sub-unit", "/lokasi"} {
		w := app.get(path, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/login?next="+url.QueryEscape(path), w.Header().Get("Location"), path)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	w := app.get("/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestLogin_ValidationStopsBeforeRequest(t *testing.T) {
	api := &fakeAPI{}
	app := newTestApp(t, api)

	w := app.post("/login", url.Values{"username": {"   "}}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Username is required")
	assert.Contains(t, w.Body.String(), "Password is required")
	assert.Zero(t, api.loginCalls)
}

func TestLogin_Success(t *testing.T) {
	api := &fakeAPI{
		loginRes:   client.LoginResult{Token: "tok-9", User: entity.User{ID: 3, Name: "Budi Santoso", Username: "budi"}},
		institutes: []entity.Institute{{ID: 1, Name: "Fakultas Teknik"}},
	}
	app := newTestApp(t, api)

	w := app.post("/login", url.Values{"username": {" budi "}, "password": {"rahasia123"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	w = app.get("/dashboard", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Budi Santoso")

	recent, err := app.activity.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, entity.ActivityLogin, recent[0].Kind)
	assert.Equal(t, "budi", recent[0].Username)
}

func TestLogin_FollowsLocalNextOnly(t *testing.T) {
	api := &fakeAPI{loginRes: client.LoginResult{Token: "t", User: entity.User{Username: "budi"}}}
	app := newTestApp(t, api)

	form := url.Values{"username": {"budi"}, "password": {"x"}, "next": {"/lokasi?page=2"}}
	w := app.post("/login", form, nil)
	assert.Equal(t, "/lokasi?page=2", w.Header().Get("Location"))

	form.Set("next", "//evil.example/")
	w = app.post("/login", form, nil)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLogin_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{
			name:   "server message",
			err:    &client.HTTPError{Op: "login", StatusCode: 401, Message: "Invalid credentials"},
			status: http.StatusUnauthorized,
			want:   "Invalid credentials",
		},
		{
			name:   "http without message",
			err:    &client.HTTPError{Op: "login", StatusCode: 500},
			status: http.StatusUnauthorized,
			want:   loginHTTPFallback,
		},
		{
			name:   "network",
			err:    &client.NetworkError{Op: "login", Err: errors.New("connection refused")},
			status: http.StatusBadGateway,
			want:   loginNetworkFallback,
		},
		{
			name:   "decode",
			err:    &client.DecodeError{Op: "login", Err: errors.New("missing token")},
			status: http.StatusBadGateway,
			want:   loginHTTPFallback,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, &fakeAPI{loginErr: tt.err})

			w := app.post("/login", url.Values{"username": {"budi"}, "password": {"salah"}}, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.Nil(t, sessionCookie(w))
		})
	}
}

func TestLoginPage(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	w := app.get("/login?message=logged_out_server_error", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Terjadi kesalahan pada server")

	w = app.get("/login?message=registered&username=budi", nil)
	assert.Contains(t, w.Body.String(), "Registration successful! Please sign in.")
	assert.Contains(t, w.Body.String(), `value="budi"`)

	w = app.get("/login", app.signIn(t))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name      string
		upstream  error
		wantQuery string
		wantKind  entity.ActivityKind
	}{
		{"upstream ok", nil, "logged_out", entity.ActivityLogout},
		{"upstream fails", &client.NetworkError{Op: "logout", Err: errors.New("timeout")}, "logged_out_server_error", entity.ActivityLogoutServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{logoutErr: tt.upstream}
			app := newTestApp(t, api)

			w := app.post("/logout", nil, app.signIn(t))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/login?message="+tt.wantQuery, w.Header().Get("Location"))
			assert.Equal(t, []string{"tok-1"}, api.logoutCalls)

			cookie := sessionCookie(w)
			require.NotNil(t, cookie)
			assert.Less(t, cookie.MaxAge, 0)

			recent, err := app.activity.Recent(context.Background(), 1)
			require.NoError(t, err)
			require.Len(t, recent, 1)
			assert.Equal(t, tt.wantKind, recent[0].Kind)
			assert.Equal(t, "siti", recent[0].Username)
		})
	}
}

func TestLogout_RequiresPost(t *testing.T) {
	api := &fakeAPI{}
	app := newTestApp(t, api)

	w := app.get("/logout", app.signIn(t))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Empty(t, api.logoutCalls)
}

func TestDashboard_DegradesPerSource(t *testing.T) {
	api := &fakeAPI{
		institutes:  []entity.Institute{{ID: 1}, {ID: 2}, {ID: 3}},
		units:       []entity.Unit{{ID: 1}, {ID: 2}},
		subUnitsErr: &client.NetworkError{Op: "subunits", Err: errors.New("refused")},
		locations:   []entity.Location{{ID: 1}},
	}
	app := newTestApp(t, api)

	w := app.get("/dashboard", app.signIn(t))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<div class="stat-value">3</div>`)
	assert.Contains(t, body, `<div class="stat-value">2</div>`)
	assert.Contains(t, body, `<div class="stat-value">0</div>`)
	assert.Contains(t, body, `<div class="stat-value">1</div>`)
	assert.Contains(t, body, "<strong>6</strong>")
	assert.Equal(t, 1, strings.Count(body, "Data tidak dapat dimuat"))
	assert.Contains(t, body, "Siti Aminah")
}

func TestDashboard_Stats(t *testing.T) {
	api := &fakeAPI{
		institutes:   make([]entity.Institute, 1234),
		unitsErr:     errors.New("boom"),
		subUnits:     make([]entity.SubUnit, 4),
		locationsErr: errors.New("boom"),
	}
	h := NewDashboardHandler(api, nil, 0, nil, nil)

	stats := h.Stats(httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Len(t, stats, 4)
	assert.Equal(t, Stat{Title: "Total Institusi", Path: "/institusi", Color: "navy", Value: 1234}, stats[0])
	assert.Equal(t, 0, stats[1].Value)
	assert.True(t, stats[1].Failed)
	assert.Equal(t, 4, stats[2].Value)
	assert.False(t, stats[2].Failed)
	assert.True(t, stats[3].Failed)
}

func TestDashboard_NumberFormatting(t *testing.T) {
	app := newTestApp(t, &fakeAPI{institutes: make([]entity.Institute, 1234)})

	w := app.get("/dashboard", app.signIn(t))

	assert.Contains(t, w.Body.String(), `<div class="stat-value">1.234</div>`)
}

func TestNavToggle(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})
	cookies := app.signIn(t)

	w := app.post("/nav/toggle", url.Values{"id": {"master"}, "return": {"/unit"}}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/unit", w.Header().Get("Location"))

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	s, err := app.sessions.Load(req)
	require.NoError(t, err)
	assert.Equal(t, []string{}, s.Expanded)
	assert.Equal(t, "tok-1", s.Token)

	// A collapsed group hides its children.
	w = app.get("/dashboard", []*http.Cookie{cookie})
	assert.NotContains(t, w.Body.String(), `<a href="/lokasi" class="nav-link`)
	w = app.get("/dashboard", cookies)
	assert.Contains(t, w.Body.String(), `<a href="/lokasi" class="nav-link`)
}

func TestNavToggle_Rejects(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})
	cookies := app.signIn(t)

	w := app.post("/nav/toggle", url.Values{"id": {"dashboard"}}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.post("/nav/toggle", url.Values{"id": {"nope"}}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.post("/nav/toggle", url.Values{"id": {"master"}, "return": {"https://evil.example"}}, cookies)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLocalPath(t *testing.T) {
	tests := map[string]string{
		"":                  "/fallback",
		"/unit":             "/unit",
		"/lokasi?page=2":    "/lokasi?page=2",
		"//evil.example":    "/fallback",
		"/\\evil.example":   "/fallback",
		"https://evil.test": "/fallback",
		"relative":          "/fallback",
	}
	for in, want := range tests {
		assert.Equal(t, want, localPath(in, "/fallback"), in)
	}
}
