package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chiquitav2/user-console/internal/console/client"
	"github.com/chiquitav2/user-console/internal/console/events"
	"github.com/chiquitav2/user-console/internal/console/view"
	"github.com/chiquitav2/user-console/pkg/api"
	consoleerrors "github.com/chiquitav2/user-console/pkg/errors"
	"github.com/chiquitav2/user-console/pkg/logger"
)

// Console runs operator workflows: each one calls the API, renders the
// outcome to the output writer and publishes a notification.
type Console struct {
	client *client.Client
	bus    *events.NotificationBus
	logger *logger.Logger
	out    io.Writer
}

// New creates a console. A nil bus, logger or writer gets a quiet default.
func New(c *client.Client, bus *events.NotificationBus, log *logger.Logger, out io.Writer) *Console {
	if log == nil {
		log = logger.NewDiscard()
	}
	if bus == nil {
		bus = events.NewNotificationBus(log, view.DefaultDuration)
	}
	if out == nil {
		out = io.Discard
	}

	return &Console{
		client: c,
		bus:    bus,
		logger: log.WithComponent("console"),
		out:    out,
	}
}

// Client returns the underlying API client
func (c *Console) Client() *client.Client {
	return c.client
}

// Bus returns the notification bus
func (c *Console) Bus() *events.NotificationBus {
	return c.bus
}

// ListUsers loads and renders the admin user table.
func (c *Console) ListUsers(ctx context.Context) ([]api.User, error) {
	ctx, op := c.logger.StartOp(ctx, "list_users")

	users, err := result(c.client.ListUsers(ctx))
	c.render(ctx, view.RenderUsers(c.out, users, err))
	c.notify(op, "", "Error loading users", err)
	return users, err
}

// ShowUser loads and renders a single user.
func (c *Console) ShowUser(ctx context.Context, id int64) (api.User, error) {
	ctx, op := c.logger.StartOp(ctx, "show_user")

	user, err := result(c.client.GetUser(ctx, id))
	if err == nil {
		c.render(ctx, view.RenderUser(c.out, user))
	}
	c.notify(op, "", "Error loading user", err)
	return user, err
}

// CreateUser creates a user through the admin endpoint.
func (c *Console) CreateUser(ctx context.Context, req *api.UserRequest) (api.User, error) {
	ctx, op := c.logger.StartOp(ctx, "create_user")

	user, err := result(c.client.CreateAdminUser(ctx, req))
	if err == nil {
		c.render(ctx, view.RenderUser(c.out, user))
	}
	c.notify(op, "User created successfully", "Error creating user", err)
	return user, err
}

// UpdateUser updates a user through the admin endpoint. Fields left empty
// keep the stored values, and without role ids the user keeps their roles.
func (c *Console) UpdateUser(ctx context.Context, id int64, req *api.UserRequest) (api.User, error) {
	ctx, op := c.logger.StartOp(ctx, "update_user")

	stored, err := result(c.client.GetUser(ctx, id))
	if err != nil {
		c.notify(op, "", "Error loading user", err)
		return api.User{}, err
	}

	payload := mergeUser(req, stored)
	if len(payload.RoleIDs) == 0 {
		ids, err := c.roleIDs(ctx, stored)
		if err != nil {
			c.notify(op, "", "Error loading roles", err)
			return api.User{}, err
		}
		payload.RoleIDs = ids
	}

	user, err := result(c.client.UpdateAdminUser(ctx, id, &payload))
	if err == nil {
		c.render(ctx, view.RenderUser(c.out, user))
	}
	c.notify(op, "User updated successfully", "Error updating user", err)
	return user, err
}

// DeleteUser removes a user.
func (c *Console) DeleteUser(ctx context.Context, id int64) error {
	ctx, op := c.logger.StartOp(ctx, "delete_user")

	_, err := result(c.client.DeleteAdminUser(ctx, id))
	c.notify(op, "User deleted successfully", "Error deleting user", err)
	return err
}

// EnableUser reactivates a disabled account.
func (c *Console) EnableUser(ctx context.Context, id int64) (api.User, error) {
	ctx, op := c.logger.StartOp(ctx, "enable_user")

	user, err := result(c.client.EnableUser(ctx, id))
	c.notify(op, "User enabled successfully", "Error enabling user", err)
	return user, err
}

// DisableUser deactivates an account without deleting it.
func (c *Console) DisableUser(ctx context.Context, id int64) (api.User, error) {
	ctx, op := c.logger.StartOp(ctx, "disable_user")

	user, err := result(c.client.DisableUser(ctx, id))
	c.notify(op, "User disabled successfully", "Error disabling user", err)
	return user, err
}

// ListRoles loads and renders the role table.
func (c *Console) ListRoles(ctx context.Context) ([]api.Role, error) {
	ctx, op := c.logger.StartOp(ctx, "list_roles")

	roles, err := result(c.client.ListAdminRoles(ctx))
	c.render(ctx, view.RenderRoles(c.out, roles, err))
	c.notify(op, "", "Error loading roles", err)
	return roles, err
}

// CreateRole creates a role. The name is required.
func (c *Console) CreateRole(ctx context.Context, req *api.RoleRequest) (api.Role, error) {
	ctx, op := c.logger.StartOp(ctx, "create_role")

	if err := validateRole(req); err != nil {
		c.notify(op, "", "Error creating role", err)
		return api.Role{}, err
	}

	role, err := result(c.client.CreateRole(ctx, req))
	c.notify(op, "Role created successfully", "Error creating role", err)
	return role, err
}

// UpdateRole updates a role. The name is required.
func (c *Console) UpdateRole(ctx context.Context, id int64, req *api.RoleRequest) (api.Role, error) {
	ctx, op := c.logger.StartOp(ctx, "update_role")

	if err := validateRole(req); err != nil {
		c.notify(op, "", "Error updating role", err)
		return api.Role{}, err
	}

	role, err := result(c.client.UpdateRole(ctx, id, req))
	c.notify(op, "Role updated successfully", "Error updating role", err)
	return role, err
}

// DeleteRole removes a role.
func (c *Console) DeleteRole(ctx context.Context, id int64) error {
	ctx, op := c.logger.StartOp(ctx, "delete_role")

	_, err := result(c.client.DeleteRole(ctx, id))
	c.notify(op, "Role deleted successfully", "Error deleting role", err)
	return err
}

// Profile loads and renders the signed-in user.
func (c *Console) Profile(ctx context.Context) (api.User, error) {
	ctx, op := c.logger.StartOp(ctx, "profile")

	user, err := result(c.client.CurrentUser(ctx))
	if err == nil {
		c.render(ctx, view.RenderUser(c.out, user))
	}
	c.notify(op, "", "Error loading profile", err)
	return user, err
}

// UpdateSettings lets the signed-in user edit their own account. Fields left
// empty keep their current values and roles are never sent.
func (c *Console) UpdateSettings(ctx context.Context, req *api.UserRequest) (api.User, error) {
	ctx, op := c.logger.StartOp(ctx, "update_settings")

	current, err := result(c.client.CurrentUser(ctx))
	if err != nil {
		c.notify(op, "", "Error loading profile", err)
		return api.User{}, err
	}
	op.With("user_id", current.ID)

	payload := mergeUser(req, current)
	payload.RoleIDs = nil

	user, err := result(c.client.UpdateUser(ctx, current.ID, &payload))
	if err == nil {
		c.render(ctx, view.RenderUser(c.out, user))
	}
	c.notify(op, "Settings updated successfully", "Error updating settings", err)
	return user, err
}

// UploadPhoto uploads the file at path as the current user's photo.
func (c *Console) UploadPhoto(ctx context.Context, path string) error {
	ctx, op := c.logger.StartOp(ctx, "upload_photo")

	f, err := os.Open(path)
	if err != nil {
		err = consoleerrors.NewInputError("cannot open photo file", err)
		c.notify(op, "", "Error uploading photo", err)
		return err
	}
	defer f.Close()

	_, err = result(c.client.UploadPhoto(ctx, filepath.Base(path), f))
	c.notify(op, "Photo uploaded successfully", "Error uploading photo", err)
	return err
}

// DeletePhoto removes the current user's photo.
func (c *Console) DeletePhoto(ctx context.Context) error {
	ctx, op := c.logger.StartOp(ctx, "delete_photo")

	_, err := result(c.client.DeletePhoto(ctx))
	c.notify(op, "Photo deleted successfully", "Error deleting photo", err)
	return err
}

// SavePhoto downloads the current user's photo and writes it to path. An
// empty path or a directory gets a "photo<ext>" file name. It returns the
// written file, or "" when the user has no photo.
func (c *Console) SavePhoto(ctx context.Context, path string) (string, error) {
	ctx, op := c.logger.StartOp(ctx, "save_photo")

	dataURL, err := result(c.client.CurrentPhoto(ctx))
	if err != nil {
		c.notify(op, "", "Error loading photo", err)
		return "", err
	}

	photo, err := api.ParsePhotoDataURL(dataURL)
	if err != nil {
		err = consoleerrors.NewTransportError(consoleerrors.ErrCodeMalformedResponse, "invalid photo data", err)
		c.notify(op, "", "Error loading photo", err)
		return "", err
	}
	if photo == nil {
		op.Complete("no photo uploaded")
		c.publish(ctx, view.Info("No photo uploaded"))
		return "", nil
	}

	if path == "" {
		path = "photo" + photo.Extension()
	} else if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, "photo"+photo.Extension())
	}

	if err := os.WriteFile(path, photo.Data, 0o644); err != nil {
		err = consoleerrors.NewInputError("cannot write photo file", err)
		c.notify(op, "", "Error saving photo", err)
		return "", err
	}

	op.Progress("photo saved",
		slog.String("path", path),
		slog.String("content_type", photo.ContentType),
		slog.Int("bytes", len(photo.Data)))
	c.notify(op, "Photo saved to "+path, "", nil)
	return path, nil
}

// Dashboard loads roles, then users, then the summary, one after another.
// A failing step is reported and the remaining steps still run.
func (c *Console) Dashboard(ctx context.Context) error {
	ctx, op := c.logger.StartOp(ctx, "dashboard")

	_, rolesErr := c.ListRoles(ctx)
	fmt.Fprintln(c.out)
	_, usersErr := c.ListUsers(ctx)
	fmt.Fprintln(c.out)

	statsCtx, statsOp := c.logger.StartOp(ctx, "dashboard_stats")
	stats, statsErr := result(c.client.DashboardStats(statsCtx))
	if statsErr == nil {
		c.render(statsCtx, view.RenderStats(c.out, stats))
	}
	c.notify(statsOp, "", "Error loading statistics", statsErr)

	if err := errors.Join(rolesErr, usersErr, statsErr); err != nil {
		op.Fail(err, "dashboard incomplete")
		return err
	}
	op.Complete("")
	return nil
}

// result collapses a pipeline error and an unsuccessful envelope into one error.
func result[T any](resp *api.Response[T], err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return resp.Result()
}

// mergeUser fills the fields left zero in req from the stored user. A blank
// password is dropped; any other password is sent as typed.
func mergeUser(req *api.UserRequest, stored api.User) api.UserRequest {
	payload := *req
	if payload.FirstName == "" {
		payload.FirstName = stored.FirstName
	}
	if payload.LastName == "" {
		payload.LastName = stored.LastName
	}
	if payload.Age == 0 {
		payload.Age = stored.Age
	}
	if payload.Email == "" {
		payload.Email = stored.Email
	}
	if payload.Username == "" {
		payload.Username = stored.Username
	}
	if strings.TrimSpace(payload.Password) == "" {
		payload.Password = ""
	}
	return payload
}

// roleIDs resolves the user's role names to ids
func (c *Console) roleIDs(ctx context.Context, u api.User) ([]int64, error) {
	roles, err := result(c.client.ListAdminRoles(ctx))
	if err != nil {
		return nil, err
	}

	var ids []int64
	for _, r := range roles {
		if u.HasRole(r.Name) {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func validateRole(req *api.RoleRequest) error {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return consoleerrors.NewInputError("role name is required", nil)
	}
	return nil
}

func (c *Console) render(ctx context.Context, err error) {
	if err != nil {
		c.logger.WarnContext(ctx, "failed to render output", slog.String("error", err.Error()))
	}
}

func (c *Console) notify(op *logger.Operation, success, failure string, err error) {
	if err != nil {
		op.Fail(err, "")
	} else {
		op.Complete("")
	}
	c.publish(op.Context(), view.Notify(success, failure, err))
}

func (c *Console) publish(ctx context.Context, n view.Notification) {
	if _, err := c.bus.Publish(ctx, n); err != nil {
		c.logger.WarnContext(ctx, "failed to publish notification", slog.String("error", err.Error()))
	}
}
