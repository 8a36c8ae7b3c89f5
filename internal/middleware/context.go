package middleware

import "github.com/labstack/echo/v4"

// Context keys used to store authentication metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserName  = "user_name"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

// Identity is the seller or admin behind an authenticated request.
type Identity struct {
	UserID string
	Name   string
	Role   string
}

func setIdentity(c echo.Context, id Identity) {
	c.Set(ContextKeyUserID, id.UserID)
	c.Set(ContextKeyUserName, id.Name)
	c.Set(ContextKeyUserRole, id.Role)
}

// IdentityFromContext returns the identity stored by JWT or OptionalJWT.
// ok is false for anonymous requests.
func IdentityFromContext(c echo.Context) (Identity, bool) {
	userID, _ := c.Get(ContextKeyUserID).(string)
	if userID == "" {
		return Identity{}, false
	}
	name, _ := c.Get(ContextKeyUserName).(string)
	role, _ := c.Get(ContextKeyUserRole).(string)
	return Identity{UserID: userID, Name: name, Role: role}, true
}
