// File: /controllers/admin_auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kustommania/logger"
	"kustommania/services"
)

type AdminAuthController struct {
	admin  string
	auth   *services.AuthService
	secure bool
}

func NewAdminAuthController(admin string, auth *services.AuthService, secureCookie bool) *AdminAuthController {
	return &AdminAuthController{
		admin:  admin,
		auth:   auth,
		secure: secureCookie,
	}
}

func (ac *AdminAuthController) LoginForm(c *gin.Context) {
	if !ac.auth.Enabled() {
		c.Redirect(http.StatusSeeOther, ac.admin)
		return
	}
	c.HTML(http.StatusOK, "admin_login", gin.H{"Admin": ac.admin})
}

// Login checks the panel password and sets the session cookie
func (ac *AdminAuthController) Login(c *gin.Context) {
	token, err := ac.auth.Login(c.PostForm("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		logger.FromGin(c).Warn("admin login failed", zap.String("client_ip", c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin_login", gin.H{
			"Admin": ac.admin,
			"Error": "Contraseña incorrecta.",
		})
		return
	}
	if err != nil {
		logger.FromGin(c).Error("failed to issue admin session", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "admin_login", gin.H{
			"Admin": ac.admin,
			"Error": "No se pudo iniciar sesión.",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(services.AdminCookieName, token, int(ac.auth.TTL().Seconds()), ac.admin, "", ac.secure, true)
	logger.FromGin(c).Info("admin logged in", zap.String("client_ip", c.ClientIP()))
	c.Redirect(http.StatusSeeOther, ac.admin)
}

func (ac *AdminAuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(services.AdminCookieName, "", -1, ac.admin, "", ac.secure, true)
	c.Redirect(http.StatusSeeOther, ac.admin+"/login")
}
