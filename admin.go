package portfolio

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const sessionName = "admin_session"

// handleAdminLogin compares the submitted password against the configured
// one and opens a cookie session. Attempts are rate-limited per IP.
func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, echo.Map{
			"success": false,
			"error":   "too many login attempts, try again later",
		})
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) != 1 {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false,
			"error":   "invalid password",
		})
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// handleAdminSession lets the dashboard probe whether it is logged in.
func (a *App) handleAdminSession(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"authenticated": IsAdmin(c)})
}

// requireAdmin guards mutating routes behind the admin session.
func (a *App) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"error":   "unauthorized",
			})
		}
		return next(c)
	}
}

// IsAdmin checks if the current session is authenticated.
func IsAdmin(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	auth, ok := sess.Values["authenticated"].(bool)
	return ok && auth
}

func setAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["authenticated"] = true
	return sess.Save(c.Request(), c.Response())
}

func clearAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}
