package api

// UserRequest is the payload for creating or updating a user.
// Password is omitted when empty so updates keep the stored password.
type UserRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Age       int     `json:"age"`
	Email     string  `json:"email"`
	Username  string  `json:"username,omitempty"`
	Password  string  `json:"password,omitempty"`
	RoleIDs   []int64 `json:"roleIds,omitempty"`
}

// RoleRequest is the payload for creating or updating a role
type RoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
