package entity

// User is the profile returned by the upstream /login endpoint under the "users" key.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	RoleID   int    `json:"role_id,omitempty"`
	DetailID int    `json:"detail_id,omitempty"`
}

// DisplayName falls back to the username when the profile carries no name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
