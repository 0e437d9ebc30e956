package client

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"simaset/internal/entity"
)

type LoginResult struct {
	Token string      `json:"token"`
	User  entity.User `json:"users"`
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var res LoginResult
	err := c.postForm(ctx, "login", "/login", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	if err != nil {
		return LoginResult{}, err
	}
	if res.Token == "" {
		return LoginResult{}, &DecodeError{Op: "login", Err: errors.New("response carries no token")}
	}
	return res, nil
}

// Logout notifies the API that the token is no longer in use. Only the status
// code matters.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.postForm(WithToken(ctx, token), "logout", "/logout", nil, nil)
}

type RegisterRequest struct {
	Username string
	Password string
	Name     string
	RoleID   int
	DetailID int
}

func (c *Client) Register(ctx context.Context, r RegisterRequest) error {
	detail := ""
	if r.DetailID > 0 {
		detail = strconv.Itoa(r.DetailID)
	}
	return c.postForm(ctx, "register", "/register", map[string]string{
		"username":  r.Username,
		"password":  r.Password,
		"name":      r.Name,
		"role_id":   strconv.Itoa(r.RoleID),
		"detail_id": detail,
	}, nil)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
