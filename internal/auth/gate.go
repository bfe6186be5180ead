package auth

import (
	"net/http"

	"github.com/ramatoys/storefront/internal/shared"
)

const (
	// SessionFlagKey marks a session as logged in to the admin area.
	SessionFlagKey = "rama-admin-logged-in"
	sessionRoleKey = "admin-role"
	sessionUserKey = "admin-user"

	// LoginPath is where anonymous callers are sent.
	LoginPath = "/admin/login"
)

// ResultFromSession rebuilds the authentication result stored in sess.
func ResultFromSession(sess *shared.Session) Result {
	if sess == nil || sess.Get(SessionFlagKey) != "true" {
		return Anonymous
	}
	role := Role(sess.Get(sessionRoleKey))
	if role != RoleAdmin {
		return Anonymous
	}
	return Result{Authenticated: true, Role: role, Username: sess.Get(sessionUserKey)}
}

// StoreResult records an authenticated result in sess.
func StoreResult(sess *shared.Session, result Result) {
	if sess == nil || !result.Authenticated {
		return
	}
	sess.Set(SessionFlagKey, "true")
	sess.Set(sessionRoleKey, string(result.Role))
	sess.Set(sessionUserKey, result.Username)
}

// ClearResult removes the admin flag from sess.
func ClearResult(sess *shared.Session) {
	if sess == nil {
		return
	}
	sess.Delete(SessionFlagKey)
	sess.Delete(sessionRoleKey)
	sess.Delete(sessionUserKey)
}

// RequireAdmin redirects every request without an admin session to the
// login page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ResultFromSession(shared.SessionFromContext(r.Context())).IsAdmin() {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
