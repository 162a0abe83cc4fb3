package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"librairie/web/locale"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocaleTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, locale.InitLocalizer(i18nFS))

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(locale.LocalizerMiddleware())
	engine.GET("/msg", func(c *gin.Context) {
		anyfunc, ok := c.Get("I18n")
		require.True(t, ok)
		i18n := anyfunc.(func(key string, params ...string) string)
		c.String(http.StatusOK, i18n("toasts.userNotFound"))
	})
	return engine
}

func localizedMsg(engine *gin.Engine, lang string, langCookie string) string {
	req := httptest.NewRequest(http.MethodGet, "/msg", nil)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	if langCookie != "" {
		req.AddCookie(&http.Cookie{Name: "lang", Value: langCookie})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Body.String()
}

func TestLocalizerSelectsRequestLanguage(t *testing.T) {
	engine := newLocaleTestRouter(t)

	assert.Equal(t, "User not found", localizedMsg(engine, "en-US", ""))
	assert.Equal(t, "Utilisateur non trouvé", localizedMsg(engine, "fr-FR", ""))

	// Each request carries its own localizer, so alternating languages do not
	// bleed into each other.
	assert.Equal(t, "User not found", localizedMsg(engine, "en-US", ""))

	// The lang cookie wins over the Accept-Language header.
	assert.Equal(t, "Utilisateur non trouvé", localizedMsg(engine, "en-US", "fr-FR"))
}
