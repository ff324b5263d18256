package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chiquitav2/user-console/pkg/api"
)

// ListUsers returns every user together with their roles (admin view).
func (c *Client) ListUsers(ctx context.Context) (*api.Response[[]api.User], error) {
	return Request[[]api.User](ctx, c, "/api/admin/users", nil)
}

// ListAllUsers returns every user from the general users endpoint.
func (c *Client) ListAllUsers(ctx context.Context) (*api.Response[[]api.User], error) {
	return Request[[]api.User](ctx, c, "/api/users", nil)
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*api.Response[api.User], error) {
	return Request[api.User](ctx, c, userPath(id), nil)
}

// CreateUser creates a user through the general users endpoint.
func (c *Client) CreateUser(ctx context.Context, req *api.UserRequest) (*api.Response[api.User], error) {
	opts, err := jsonOptions(http.MethodPost, req)
	if err != nil {
		return nil, err
	}
	return Request[api.User](ctx, c, "/api/users", opts)
}

// UpdateUser replaces a user's editable fields.
func (c *Client) UpdateUser(ctx context.Context, id int64, req *api.UserRequest) (*api.Response[api.User], error) {
	opts, err := jsonOptions(http.MethodPut, req)
	if err != nil {
		return nil, err
	}
	return Request[api.User](ctx, c, userPath(id), opts)
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) (*api.Response[string], error) {
	return Request[string](ctx, c, userPath(id), &RequestOptions{Method: http.MethodDelete})
}

// CreateAdminUser creates a user with explicit role ids.
func (c *Client) CreateAdminUser(ctx context.Context, req *api.UserRequest) (*api.Response[api.User], error) {
	opts, err := jsonOptions(http.MethodPost, req)
	if err != nil {
		return nil, err
	}
	return Request[api.User](ctx, c, "/api/admin/users", opts)
}

// UpdateAdminUser updates a user, including role assignment.
func (c *Client) UpdateAdminUser(ctx context.Context, id int64, req *api.UserRequest) (*api.Response[api.User], error) {
	opts, err := jsonOptions(http.MethodPut, req)
	if err != nil {
		return nil, err
	}
	return Request[api.User](ctx, c, adminUserPath(id), opts)
}

// DeleteAdminUser removes a user through the admin endpoint.
func (c *Client) DeleteAdminUser(ctx context.Context, id int64) (*api.Response[string], error) {
	return Request[string](ctx, c, adminUserPath(id), &RequestOptions{Method: http.MethodDelete})
}

// EnableUser marks a user active.
func (c *Client) EnableUser(ctx context.Context, id int64) (*api.Response[api.User], error) {
	return Request[api.User](ctx, c, adminUserPath(id)+"/enable", &RequestOptions{Method: http.MethodPut})
}

// DisableUser marks a user inactive.
func (c *Client) DisableUser(ctx context.Context, id int64) (*api.Response[api.User], error) {
	return Request[api.User](ctx, c, adminUserPath(id)+"/disable", &RequestOptions{Method: http.MethodPut})
}

// CurrentUser returns the user the session belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*api.Response[api.User], error) {
	return Request[api.User](ctx, c, "/api/users/current", nil)
}

// CurrentAdmin returns the logged-in administrator.
func (c *Client) CurrentAdmin(ctx context.Context) (*api.Response[api.User], error) {
	return Request[api.User](ctx, c, "/api/admin/current-user", nil)
}

// DashboardStats returns user and role counts for the admin dashboard.
func (c *Client) DashboardStats(ctx context.Context) (*api.Response[api.DashboardStats], error) {
	return Request[api.DashboardStats](ctx, c, "/api/admin/dashboard/stats", nil)
}

func userPath(id int64) string {
	return fmt.Sprintf("/api/users/%d", id)
}

func adminUserPath(id int64) string {
	return fmt.Sprintf("/api/admin/users/%d", id)
}
