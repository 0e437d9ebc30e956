package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityKind string

const (
	ActivityLogin             ActivityKind = "login"
	ActivityLoginFailed       ActivityKind = "login_failed"
	ActivityRegister          ActivityKind = "register"
	ActivityLogout            ActivityKind = "logout"
	ActivityLogoutServerError ActivityKind = "logout_server_error"
)

// Activity is one entry of the dashboard's recent activity feed.
type Activity struct {
	ID        uuid.UUID    `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Username  string       `json:"username"`
	Detail    string       `json:"detail"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewActivity(kind ActivityKind, username, detail string) Activity {
	return Activity{
		ID:        uuid.New(),
		Kind:      kind,
		Username:  username,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}

// Title is the human readable label shown on the dashboard.
func (a Activity) Title() string {
	switch a.Kind {
	case ActivityLogin:
		return "Login berhasil"
	case ActivityLoginFailed:
		return "Login gagal"
	case ActivityRegister:
		return "Akun baru didaftarkan"
	case ActivityLogout:
		return "Logout"
	case ActivityLogoutServerError:
		return "Logout (server tidak merespons)"
	}
	return string(a.Kind)
}

// Pending reports whether the entry needs attention rather than being a completed action.
func (a Activity) Pending() bool {
	return a.Kind == ActivityLoginFailed || a.Kind == ActivityLogoutServerError
}
