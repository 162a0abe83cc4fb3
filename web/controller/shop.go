package controller

import (
	"errors"
	"net/http"
	"strconv"

	"librairie/logger"
	"librairie/web/service"
	"librairie/web/session"

	"github.com/gin-gonic/gin"
)

// ShopController serves the book detail and cart pages.
type ShopController struct {
	BaseController

	bookService service.BookService
	cartService service.CartService
}

// NewShopController creates a new ShopController and initializes its routes.
func NewShopController(g *gin.RouterGroup) *ShopController {
	a := &ShopController{}
	a.initRouter(g)
	return a
}

func (a *ShopController) initRouter(g *gin.RouterGroup) {
	g.GET("/book/:id", a.bookDetail)

	cart := g.Group("/cart")
	cart.Use(a.checkLogin)
	cart.GET("", a.cartPage)
}

// bookDetail renders one book's page.
func (a *ShopController) bookDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	book, err := a.bookService.GetBookById(id)
	if errors.Is(err, service.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		logger.Warning("load book failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	html(c, "book.html", "pages.book.title", gin.H{
		"book": book,
		"user": session.GetLoginUser(c),
	})
}

// cartPage renders the logged-in user's cart with line items and total.
func (a *ShopController) cartPage(c *gin.Context) {
	user := session.GetLoginUser(c)

	items, err := a.cartService.GetItems(user.Id)
	if err != nil {
		logger.Warning("load cart failed:", err)
	}
	total, err := a.cartService.GetTotal(user.Id)
	if err != nil {
		logger.Warning("cart total failed:", err)
	}

	html(c, "cart.html", "pages.cart.title", gin.H{
		"items": items,
		"total": total,
		"user":  user,
	})
}
