package auth

// Role names what an authenticated caller may do.
type Role string

// RoleAdmin may manage the product catalog.
const RoleAdmin Role = "admin"

// Result is the outcome of checking a request for credentials. The zero
// value is an anonymous caller.
type Result struct {
	Authenticated bool
	Role          Role
	Username      string
}

// Anonymous is the result for callers without a valid admin session.
var Anonymous = Result{}

// IsAdmin reports whether the result grants catalog management.
func (r Result) IsAdmin() bool {
	return r.Authenticated && r.Role == RoleAdmin
}
