package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/chiquitav2/user-console/pkg/api"
	"github.com/chiquitav2/user-console/pkg/errors"
)

const dateLayout = "2006-01-02 15:04:05"

// FormatDate renders a timestamp for tables; the zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatRoles renders role names without the ROLE_ prefix
func FormatRoles(roles []string) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, api.Role{Name: r}.DisplayName())
	}
	return strings.Join(names, ", ")
}

// FormatStatus renders the active flag
func FormatStatus(active bool) string {
	if active {
		return "active"
	}
	return "disabled"
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RenderUsers writes the users table, or the load error in its place.
func RenderUsers(w io.Writer, users []api.User, err error) error {
	if err != nil {
		_, werr := fmt.Fprintf(w, "Error loading users: %s\n", errors.UserMessage(err))
		return werr
	}
	if len(users) == 0 {
		_, werr := fmt.Fprintln(w, "No users found")
		return werr
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tAGE\tEMAIL\tROLES\tSTATUS\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			u.ID, u.FullName(), u.Age, u.Email, FormatRoles(u.Roles), FormatStatus(u.Active), FormatDate(u.CreatedAt.Time))
	}
	return tw.Flush()
}

// RenderUser writes the detail view of one user
func RenderUser(w io.Writer, u api.User) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Name:\t%s\n", u.FullName())
	fmt.Fprintf(tw, "Age:\t%d\n", u.Age)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Roles:\t%s\n", FormatRoles(u.Roles))
	fmt.Fprintf(tw, "Status:\t%s\n", FormatStatus(u.Active))
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Created:\t%s\n", FormatDate(u.CreatedAt.Time))
	}
	if !u.UpdatedAt.IsZero() {
		fmt.Fprintf(tw, "Updated:\t%s\n", FormatDate(u.UpdatedAt.Time))
	}
	return tw.Flush()
}

// RenderRoles writes the roles table, or the load error in its place.
func RenderRoles(w io.Writer, roles []api.Role, err error) error {
	if err != nil {
		_, werr := fmt.Fprintf(w, "Error loading roles: %s\n", errors.UserMessage(err))
		return werr
	}
	if len(roles) == 0 {
		_, werr := fmt.Fprintln(w, "No roles found")
		return werr
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, r := range roles {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.DisplayName(), r.Description)
	}
	return tw.Flush()
}

// RenderStats writes the dashboard counters
func RenderStats(w io.Writer, s api.DashboardStats) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total users:\t%d\n", s.TotalUsers)
	fmt.Fprintf(tw, "Administrators:\t%d\n", s.AdminUsers)
	fmt.Fprintf(tw, "Regular users:\t%d\n", s.RegularUsers)
	fmt.Fprintf(tw, "Roles:\t%d\n", s.TotalRoles)
	return tw.Flush()
}
