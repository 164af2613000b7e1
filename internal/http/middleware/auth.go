// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides cookie-session authentication for the admin dashboard.
// Login state is a signed session cookie managed by gin-contrib/sessions; no
// server-side session store is needed for a single-operator dashboard.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// sessionUserKey is the session value holding the logged-in admin username.
const sessionUserKey = "admin_user"

// Login records a successful dashboard login in the session.
func Login(c *gin.Context, username string) error {
	s := sessions.Default(c)
	s.Set(sessionUserKey, username)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   12 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.Save()
}

// Logout clears the dashboard session.
func Logout(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// SessionUser returns the logged-in admin username, if any.
func SessionUser(c *gin.Context) (string, bool) {
	v := sessions.Default(c).Get(sessionUserKey)
	s, ok := v.(string)
	return s, ok && s != ""
}

// RequireSession guards dashboard routes. Browser requests without a valid
// session are redirected to loginPath; JSON endpoints (paths under /api) get
// a 401 envelope instead so fetch calls can react without following
// redirects.
func RequireSession(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := SessionUser(c)
		if !ok {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"request_id": c.Writer.Header().Get("X-Request-ID"),
					"code":       "unauthorized",
					"message":    "login required",
				})
				return
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		// Feed the rate limiter's per-user keying.
		c.Set("userID", user)
		c.Next()
	}
}
