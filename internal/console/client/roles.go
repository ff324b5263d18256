package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chiquitav2/user-console/pkg/api"
)

// ListRoles returns the roles assignable to users.
func (c *Client) ListRoles(ctx context.Context) (*api.Response[[]api.Role], error) {
	return Request[[]api.Role](ctx, c, "/api/users/roles", nil)
}

// ListAdminRoles returns roles through the admin endpoint.
func (c *Client) ListAdminRoles(ctx context.Context) (*api.Response[[]api.Role], error) {
	return Request[[]api.Role](ctx, c, "/api/admin/roles", nil)
}

// ListAllRoles returns roles from the role management endpoint.
func (c *Client) ListAllRoles(ctx context.Context) (*api.Response[[]api.Role], error) {
	return Request[[]api.Role](ctx, c, "/api/roles", nil)
}

func (c *Client) GetRole(ctx context.Context, id int64) (*api.Response[api.Role], error) {
	return Request[api.Role](ctx, c, rolePath(id), nil)
}

func (c *Client) CreateRole(ctx context.Context, req *api.RoleRequest) (*api.Response[api.Role], error) {
	opts, err := jsonOptions(http.MethodPost, req)
	if err != nil {
		return nil, err
	}
	return Request[api.Role](ctx, c, "/api/roles", opts)
}

func (c *Client) UpdateRole(ctx context.Context, id int64, req *api.RoleRequest) (*api.Response[api.Role], error) {
	opts, err := jsonOptions(http.MethodPut, req)
	if err != nil {
		return nil, err
	}
	return Request[api.Role](ctx, c, rolePath(id), opts)
}

func (c *Client) DeleteRole(ctx context.Context, id int64) (*api.Response[string], error) {
	return Request[string](ctx, c, rolePath(id), &RequestOptions{Method: http.MethodDelete})
}

func rolePath(id int64) string {
	return fmt.Sprintf("/api/roles/%d", id)
}
