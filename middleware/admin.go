package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kustommania/logger"
	"kustommania/services"
)

// AdminClaimsKey is the gin context key holding the validated session
const AdminClaimsKey = "admin_claims"

// AdminAuth requires a valid session cookie on every admin route except the
// login page. Browsers are redirected to the login form; API-style
// callers get a 401.
func AdminAuth(auth *services.AuthService, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() || c.Request.URL.Path == loginPath {
			c.Next()
			return
		}

		token, err := c.Cookie(services.AdminCookieName)
		if err == nil && token != "" {
			claims, verr := auth.Validate(token)
			if verr == nil {
				c.Set(AdminClaimsKey, claims)
				c.Next()
				return
			}
			logger.FromGin(c).Info("admin session rejected", zap.Error(verr))
		}

		if wantsHTML(c) {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Unauthorized",
			Code:  http.StatusUnauthorized,
		})
	}
}

func wantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return accept == "" || strings.Contains(accept, "text/html")
}
