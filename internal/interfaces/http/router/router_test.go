package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingRegistrar struct {
	called bool
}

func (r *pingRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	r.called = true
	rg.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

type pongRegistrar struct {
	called bool
}

func (r *pongRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	r.called = true
	rg.GET("/pong", func(c *gin.Context) {
		c.String(http.StatusOK, "ping")
	})
}

func TestRouter_Setup(t *testing.T) {
	t.Run("registers routes under default version", func(t *testing.T) {
		engine := gin.New()
		registrar := &pingRegistrar{}

		NewRouter(engine).Register(registrar).Setup()

		assert.True(t, registrar.called)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("honors custom API version", func(t *testing.T) {
		engine := gin.New()
		registrar := &pingRegistrar{}

		NewRouter(engine, WithAPIVersion("v2")).Register(registrar).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v2/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/ping", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("registers multiple registrars", func(t *testing.T) {
		engine := gin.New()
		first := &pingRegistrar{}
		second := &pongRegistrar{}

		NewRouter(engine).Register(first).Register(second).Setup()

		assert.True(t, first.called)
		assert.True(t, second.called)
	})
}
