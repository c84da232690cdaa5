package logmodule

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestGinrus(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Ginrus("API"))
	router.GET("/ok", func(c *gin.Context) {
		c.Set("requester", "alice")
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/broken", func(c *gin.Context) {
		c.Error(errors.New("store unavailable"))
		c.Status(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ok", nil))
	entry := hook.LastEntry()
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, "API", entry.Data["prefix"])
	assert.Equal(t, "alice", entry.Data["requester"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/broken", nil))
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "store unavailable")
}
