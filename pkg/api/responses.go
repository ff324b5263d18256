package api

// User mirrors the backend user representation.
type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Age              int       `json:"age"`
	Email            string    `json:"email"`
	PhotoContentType string    `json:"photoContentType,omitempty"`
	Roles            []string  `json:"roles"`
	CreatedAt        Timestamp `json:"createdAt,omitempty"`
	UpdatedAt        Timestamp `json:"updatedAt,omitempty"`
	Active           bool      `json:"active"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user holds the named role. The ROLE_ prefix is
// optional on both sides.
func (u User) HasRole(name string) bool {
	want := trimRolePrefix(name)
	for _, r := range u.Roles {
		if trimRolePrefix(r) == want {
			return true
		}
	}
	return false
}

// Role mirrors the backend role representation.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   Timestamp `json:"updatedAt,omitempty"`
}

// DisplayName strips the ROLE_ prefix used by the backend.
func (r Role) DisplayName() string {
	return trimRolePrefix(r.Name)
}

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalUsers   int `json:"totalUsers"`
	AdminUsers   int `json:"adminUsers"`
	RegularUsers int `json:"regularUsers"`
	TotalRoles   int `json:"totalRoles"`
}

func trimRolePrefix(name string) string {
	const prefix = "ROLE_"
	if len(name) > len(prefix) && name[:len(prefix)] == prefix {
		return name[len(prefix):]
	}
	return name
}
