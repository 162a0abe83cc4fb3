// Package controller provides the HTTP handlers for the librairie storefront:
// public pages, the cart/search JSON API, and the admin panel.
package controller

import (
	"net/http"

	"librairie/logger"
	"librairie/web/locale"
	"librairie/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers, including
// authentication checks.
type BaseController struct{}

// checkLogin verifies authentication; AJAX callers get a JSON 401, page
// navigations are redirected to the login form.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "toasts.loginRequired"))
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"login")
		}
		c.Abort()
	} else {
		c.Next()
	}
}

// checkAdmin rejects sessions whose role snapshot is not admin.
func (a *BaseController) checkAdmin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "toasts.loginRequired"))
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"login")
		}
		c.Abort()
		return
	}
	if !session.IsAdmin(c) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	c.Next()
}

// I18nWeb retrieves an internationalized message based on the current locale.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return i18nFunc(c)(name, params...)
}

// i18nFunc returns the request-scoped localize func set by the locale
// middleware, falling back to the default language when missing.
func i18nFunc(c *gin.Context) func(key string, params ...string) string {
	if anyfunc, ok := c.Get("I18n"); ok {
		if fn, ok := anyfunc.(func(key string, params ...string) string); ok {
			return fn
		}
	}
	logger.Warning("I18n function not exists in gin context!")
	return locale.I18n
}
