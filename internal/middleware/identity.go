package middleware

// identity.go holds helpers shared across middleware files for reading
// the authenticated user out of the Echo context.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// contextUserID renders the user_id context value (set by JWTAuth) as a
// string for use in cache and rate-limit keys.  Unauthenticated
// requests are keyed as "anon".
func contextUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	return fmt.Sprint(v)
}
