package controller

import (
	"strconv"

	"librairie/web/entity"
	"librairie/web/service"
	"librairie/web/session"

	"github.com/gin-gonic/gin"
)

// AddToCartForm is the add-to-cart request body.
type AddToCartForm struct {
	BookId   int `json:"bookId" form:"bookId"`
	Quantity int `json:"quantity" form:"quantity"`
}

// UpdateCartForm is the update-cart request body.
type UpdateCartForm struct {
	CartId   int `json:"cartId" form:"cartId"`
	Quantity int `json:"quantity" form:"quantity"`
}

// APIController exposes the JSON endpoints consumed by the storefront pages.
type APIController struct {
	BaseController

	bookService service.BookService
	cartService service.CartService
}

// NewAPIController creates a new APIController and initializes its routes.
func NewAPIController(g *gin.RouterGroup) *APIController {
	a := &APIController{}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	// Cart count is deliberately outside the login check: the page header
	// polls it and expects count 0 rather than an error when signed out.
	g.GET("/cart/count", a.cartCount)

	g.GET("/search", a.checkLogin, a.search)
	g.POST("/search", a.checkLogin, a.search)

	cart := g.Group("/cart")
	cart.Use(a.checkLogin)
	cart.POST("/add", a.addToCart)
	cart.POST("/update", a.updateCart)
	cart.POST("/remove", a.removeFromCart)
	cart.POST("/clear", a.clearCart)
}

func (a *APIController) addToCart(c *gin.Context) {
	var form AddToCartForm
	if err := c.ShouldBind(&form); err != nil || form.BookId <= 0 || form.Quantity <= 0 {
		pureJsonMsg(c, 200, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	user := session.GetLoginUser(c)
	err := a.cartService.AddItem(user.Id, form.BookId, form.Quantity)
	if err != nil {
		jsonServiceErr(c, err, map[error]string{
			service.ErrNotFound:          "toasts.bookNotFound",
			service.ErrInsufficientStock: "toasts.insufficientStock",
			service.ErrValidation:        "toasts.invalidFormData",
		})
		return
	}
	jsonMsg(c, I18nWeb(c, "toasts.addedToCart"), nil)
}

func (a *APIController) updateCart(c *gin.Context) {
	var form UpdateCartForm
	if err := c.ShouldBind(&form); err != nil || form.CartId <= 0 {
		pureJsonMsg(c, 200, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	user := session.GetLoginUser(c)
	err := a.cartService.UpdateQuantity(user.Id, form.CartId, form.Quantity)
	if err != nil {
		jsonServiceErr(c, err, map[error]string{
			service.ErrNotFound:          "toasts.cartItemNotFound",
			service.ErrInsufficientStock: "toasts.insufficientStock",
		})
		return
	}
	jsonMsg(c, I18nWeb(c, "toasts.cartUpdated"), nil)
}

func (a *APIController) removeFromCart(c *gin.Context) {
	cartId, err := strconv.Atoi(c.PostForm("cartId"))
	if err != nil || cartId <= 0 {
		pureJsonMsg(c, 200, false, I18nWeb(c, "toasts.invalidFormData"))
		return
	}

	user := session.GetLoginUser(c)
	err = a.cartService.RemoveItem(user.Id, cartId)
	if err != nil {
		jsonServiceErr(c, err, map[error]string{
			service.ErrNotFound: "toasts.cartItemNotFound",
		})
		return
	}
	jsonMsg(c, I18nWeb(c, "toasts.cartRemoved"), nil)
}

func (a *APIController) clearCart(c *gin.Context) {
	user := session.GetLoginUser(c)
	err := a.cartService.Clear(user.Id)
	jsonMsg(c, I18nWeb(c, "toasts.cartRemoved"), err)
}

// cartCount returns the number of cart lines, zero when signed out. Never an
// error for anonymous visitors.
func (a *APIController) cartCount(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user == nil {
		jsonObj(c, 0, nil)
		return
	}
	count, err := a.cartService.GetItemCount(user.Id)
	jsonObj(c, count, err)
}

// search filters the catalog by keyword, category, and price range.
func (a *APIController) search(c *gin.Context) {
	filter := service.SearchFilter{
		Keyword: pick(c, "keyword"),
	}
	if categoryId, err := strconv.Atoi(pick(c, "categoryId")); err == nil {
		filter.CategoryId = categoryId
	}
	if minPrice, err := strconv.ParseFloat(pick(c, "minPrice"), 64); err == nil {
		filter.MinPrice = &minPrice
	}
	if maxPrice, err := strconv.ParseFloat(pick(c, "maxPrice"), 64); err == nil {
		filter.MaxPrice = &maxPrice
	}

	books, err := a.bookService.Search(filter)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, entity.SearchResult{Results: books, Count: len(books)}, nil)
}

// pick reads a parameter from the query string or the form body, whichever
// is present.
func pick(c *gin.Context, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return c.PostForm(key)
}
