package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yatube-app/yatube/pkg/jwt"
)

// AuthCookie is the cookie carrying the token for browser-style flows.
const AuthCookie = "auth_token"

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// Authenticate resolves the requester's identity from a Bearer header or
// the auth cookie when present. It never rejects: anonymous requests
// pass through without identity, handlers and LoginRequired decide what
// that means.
func Authenticate(tokenManager *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		if token == "" {
			if cookie, err := c.Cookie(AuthCookie); err == nil {
				token = cookie
			}
		}

		if token != "" {
			if claims, err := tokenManager.ParseToken(token); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUsername, claims.Username)
			}
		}

		c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page with the
// original URL in the next parameter, matching the browser flow.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); !exists {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/auth/login/?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or zero for
// anonymous requests.
func CurrentUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// CurrentUsername returns the authenticated username, or "" for
// anonymous requests.
func CurrentUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextUsername); exists {
		return name.(string)
	}
	return ""
}
