package controller

import (
	"errors"
	"net/http"
	"strconv"
	"text/template"

	"librairie/config"
	"librairie/logger"
	"librairie/web/service"
	"librairie/web/session"

	"github.com/gin-gonic/gin"
)

const pageSize = 12

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterForm represents the registration request structure.
type RegisterForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the storefront home page and authentication routes.
type IndexController struct {
	BaseController

	userService service.UserService
	bookService service.BookService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/login", a.loginPage)
	g.GET("/register", a.registerPage)
	g.GET("/logout", a.logout)

	g.POST("/login", a.login)
	g.POST("/register", a.register)
}

// index renders the storefront home page with a paginated book grid and the
// category sidebar.
func (a *IndexController) index(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	books, err := a.bookService.GetBooks(pageSize, (page-1)*pageSize)
	if err != nil {
		logger.Warning("load books failed:", err)
	}
	total, err := a.bookService.CountBooks()
	if err != nil {
		logger.Warning("count books failed:", err)
	}
	categories, err := a.bookService.GetCategories()
	if err != nil {
		logger.Warning("load categories failed:", err)
	}

	pageCount := int((total + pageSize - 1) / pageSize)

	html(c, "index.html", "pages.index.title", gin.H{
		"books":      books,
		"categories": categories,
		"page":       page,
		"prevPage":   page - 1,
		"nextPage":   page + 1,
		"pageCount":  pageCount,
		"user":       session.GetLoginUser(c),
	})
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		return
	}
	html(c, "login.html", "pages.login.title", nil)
}

func (a *IndexController) registerPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		return
	}
	html(c, "register.html", "pages.register.title", nil)
}

// login handles user authentication and session creation. The session
// snapshots the account's role; later role changes apply at next login.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}
	if form.Username == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	user, err := a.userService.CheckUser(form.Username, form.Password)
	if err != nil {
		safeUser := template.HTMLEscapeString(form.Username)
		logger.Warningf("failed login for %q from %s", safeUser, getRemoteIp(c))
		switch {
		case errors.Is(err, service.ErrNotFound):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.userNotFound"))
		case errors.Is(err, service.ErrInvalidCredentials):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.wrongPassword"))
		default:
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "fail"))
		}
		return
	}

	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("Unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("Unable to save session:", err)
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "fail"))
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", template.HTMLEscapeString(user.Username), getRemoteIp(c))
	jsonObj(c, user, nil)
}

// register creates a new customer account.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	err := a.userService.Register(form.Username, form.Email, form.Password)
	if err != nil {
		jsonServiceErr(c, err, map[error]string{
			service.ErrValidation: "toasts.validationFailed",
			service.ErrConflict:   "toasts.registerConflict",
		})
		return
	}

	logger.Infof("new account %q registered from %s", template.HTMLEscapeString(form.Username), getRemoteIp(c))
	jsonMsg(c, I18nWeb(c, "toasts.registerSuccess"), nil)
}

// logout clears the session unconditionally and redirects to the home page.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out successfully", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to clear session:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}
