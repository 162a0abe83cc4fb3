package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"librairie/database/model"
	"librairie/util/json_util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionState struct {
	IsLogin bool `json:"isLogin"`
	IsAdmin bool `json:"isAdmin"`
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions("librairie", cookie.NewStore([]byte("test-secret"))))

	engine.POST("/login/:role", func(c *gin.Context) {
		user := &model.User{
			Id:       1,
			Username: "alice",
			Email:    "alice@example.com",
			Role:     c.Param("role"),
		}
		if err := SetLoginUser(c, user); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	engine.GET("/logout", func(c *gin.Context) {
		if err := ClearSession(c); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	engine.GET("/check", func(c *gin.Context) {
		c.JSON(http.StatusOK, sessionState{
			IsLogin: IsLogin(c),
			IsAdmin: IsAdmin(c),
		})
	})
	return engine
}

func serve(t *testing.T, engine *gin.Engine, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func checkState(t *testing.T, engine *gin.Engine, cookies []*http.Cookie) sessionState {
	t.Helper()
	w := serve(t, engine, http.MethodGet, "/check", cookies)
	var state sessionState
	require.NoError(t, json_util.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func TestFreshSessionIsAnonymous(t *testing.T) {
	engine := newTestRouter()

	state := checkState(t, engine, nil)
	assert.False(t, state.IsLogin)
	assert.False(t, state.IsAdmin)
}

func TestSessionRoleSnapshot(t *testing.T) {
	engine := newTestRouter()

	w := serve(t, engine, http.MethodPost, "/login/"+model.RoleUser, nil)
	userCookies := w.Result().Cookies()
	require.NotEmpty(t, userCookies)

	state := checkState(t, engine, userCookies)
	assert.True(t, state.IsLogin)
	assert.False(t, state.IsAdmin)

	w = serve(t, engine, http.MethodPost, "/login/"+model.RoleAdmin, nil)
	adminCookies := w.Result().Cookies()

	state = checkState(t, engine, adminCookies)
	assert.True(t, state.IsLogin)
	assert.True(t, state.IsAdmin)
}

func TestClearSession(t *testing.T) {
	engine := newTestRouter()

	w := serve(t, engine, http.MethodPost, "/login/"+model.RoleAdmin, nil)
	cookies := w.Result().Cookies()

	w = serve(t, engine, http.MethodGet, "/logout", cookies)
	cleared := w.Result().Cookies()

	state := checkState(t, engine, cleared)
	assert.False(t, state.IsLogin)
	assert.False(t, state.IsAdmin)

	// Clearing an anonymous session is not an error.
	serve(t, engine, http.MethodGet, "/logout", nil)
}
