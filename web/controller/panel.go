package controller

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"librairie/config"
	"librairie/database/model"
	"librairie/logger"
	"librairie/web/service"
	"librairie/web/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookForm is the admin create/update book request body.
type BookForm struct {
	Title           string  `json:"title" form:"title"`
	Author          string  `json:"author" form:"author"`
	Description     string  `json:"description" form:"description"`
	Isbn            string  `json:"isbn" form:"isbn"`
	Publisher       string  `json:"publisher" form:"publisher"`
	CategoryId      int     `json:"categoryId" form:"categoryId"`
	Price           float64 `json:"price" form:"price"`
	Stock           int     `json:"stock" form:"stock"`
	Pages           int     `json:"pages" form:"pages"`
	PublicationYear int     `json:"publicationYear" form:"publicationYear"`
	CoverImage      string  `json:"coverImage" form:"coverImage"`
}

// RoleForm is the admin role toggle request body.
type RoleForm struct {
	UserId int    `json:"userId" form:"userId"`
	Role   string `json:"role" form:"role"`
}

// CategoryForm is the admin add-category request body.
type CategoryForm struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

// PanelController serves the admin back office: book and user management,
// server status, and catalog export.
type PanelController struct {
	BaseController

	bookService   service.BookService
	userService   service.UserService
	serverService service.ServerService
}

// NewPanelController creates a new PanelController and initializes its routes.
func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkAdmin)

	g.GET("/", a.dashboard)
	g.GET("/books", a.booksPage)
	g.GET("/users", a.usersPage)

	api := g.Group("/api")
	api.POST("/books", a.createBook)
	api.POST("/books/update/:id", a.updateBook)
	api.POST("/books/del/:id", a.deleteBook)
	api.POST("/books/cover", a.uploadCover)
	api.POST("/categories", a.addCategory)
	api.POST("/users/role", a.updateUserRole)
	api.GET("/status", a.status)
	api.GET("/logs", a.logs)
	api.GET("/catalog/export", a.exportCatalog)
}

func (a *PanelController) dashboard(c *gin.Context) {
	html(c, "dashboard.html", "pages.panel.title", gin.H{
		"user":   session.GetLoginUser(c),
		"status": a.serverService.GetStatus(),
	})
}

func (a *PanelController) booksPage(c *gin.Context) {
	books, err := a.bookService.GetBooks(1000, 0)
	if err != nil {
		logger.Warning("load books failed:", err)
	}
	categories, err := a.bookService.GetCategories()
	if err != nil {
		logger.Warning("load categories failed:", err)
	}
	html(c, "books.html", "pages.panel.books.title", gin.H{
		"books":      books,
		"categories": categories,
		"user":       session.GetLoginUser(c),
	})
}

func (a *PanelController) usersPage(c *gin.Context) {
	users, err := a.userService.GetUsers()
	if err != nil {
		logger.Warning("load users failed:", err)
	}
	html(c, "users.html", "pages.panel.users.title", gin.H{
		"users": users,
		"user":  session.GetLoginUser(c),
	})
}

func (a *PanelController) createBook(c *gin.Context) {
	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	book := bookFromForm(&form)
	if err := a.bookService.CreateBook(book); err != nil {
		jsonServiceErr(c, err, map[error]string{
			service.ErrValidation: "toasts.validationFailed",
		})
		return
	}
	logger.Infof("book %q created by %s", book.Title, session.GetLoginUser(c).Username)
	jsonMsg(c, I18nWeb(c, "toasts.bookCreated"), nil)
}

func (a *PanelController) updateBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	book := bookFromForm(&form)
	book.Id = id
	if err := a.bookService.UpdateBook(book); err != nil {
		jsonServiceErr(c, err, map[error]string{
			service.ErrValidation: "toasts.validationFailed",
			service.ErrNotFound:   "toasts.bookNotFound",
		})
		return
	}
	jsonMsg(c, I18nWeb(c, "toasts.bookUpdated"), nil)
}

func (a *PanelController) deleteBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	if err := a.bookService.DeleteBook(id); err != nil {
		jsonServiceErr(c, err, map[error]string{
			service.ErrNotFound: "toasts.bookNotFound",
		})
		return
	}
	logger.Infof("book %d deleted by %s", id, session.GetLoginUser(c).Username)
	jsonMsg(c, I18nWeb(c, "toasts.bookDeleted"), nil)
}

// uploadCover stores an uploaded cover image under the data folder with a
// random filename and returns its relative path.
func (a *PanelController) uploadCover(c *gin.Context) {
	file, err := c.FormFile("cover")
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	coverDir := filepath.Join(config.GetDBFolderPath(), "covers")
	if err := os.MkdirAll(coverDir, 0o750); err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(coverDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, "covers/"+name, nil)
}

func (a *PanelController) addCategory(c *gin.Context) {
	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	if err := a.bookService.AddCategory(form.Name, form.Description); err != nil {
		jsonServiceErr(c, err, map[error]string{
			service.ErrValidation: "toasts.validationFailed",
			service.ErrConflict:   "toasts.categoryConflict",
		})
		return
	}
	jsonMsg(c, I18nWeb(c, "toasts.categoryAdded"), nil)
}

// updateUserRole toggles an account's role. The affected user's live session
// keeps its old role until they log in again.
func (a *PanelController) updateUserRole(c *gin.Context) {
	var form RoleForm
	if err := c.ShouldBind(&form); err != nil || form.UserId <= 0 {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	if err := a.userService.UpdateRole(form.UserId, form.Role); err != nil {
		jsonServiceErr(c, err, map[error]string{
			service.ErrValidation: "toasts.invalidRole",
			service.ErrNotFound:   "toasts.userNotFound",
		})
		return
	}
	logger.Infof("role of user %d set to %q by %s", form.UserId, form.Role, session.GetLoginUser(c).Username)
	jsonMsg(c, I18nWeb(c, "toasts.roleUpdated"), nil)
}

func (a *PanelController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *PanelController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil || count <= 0 {
		count = 100
	}
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, logger.GetLogs(count, level), nil)
}

func (a *PanelController) exportCatalog(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", "attachment; filename=catalog.json")
	if err := a.bookService.ExportCatalog(c.Writer); err != nil {
		logger.Warning("catalog export failed:", err)
	}
}

func bookFromForm(form *BookForm) *model.Book {
	book := &model.Book{
		Title:           form.Title,
		Author:          form.Author,
		Description:     form.Description,
		Isbn:            form.Isbn,
		Publisher:       form.Publisher,
		Price:           form.Price,
		Stock:           form.Stock,
		Pages:           form.Pages,
		PublicationYear: form.PublicationYear,
		CoverImage:      form.CoverImage,
	}
	if form.CategoryId > 0 {
		categoryId := form.CategoryId
		book.CategoryId = &categoryId
	}
	return book
}
