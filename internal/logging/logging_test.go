package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DennisRussell0/cereal-api/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithOutput(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "msg=shown")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithOutput(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	l.WithField("k", "v").Info("hello")
	assert.Contains(t, buf.String(), `"k":"v"`)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNew_Invalid(t *testing.T) {
	_, err := newWithOutput(config.LogConfig{Level: "loud", Format: "text"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = newWithOutput(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestGin_LogsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	l, err := newWithOutput(config.LogConfig{Level: "info", Format: "text"}, &buf)
	require.NoError(t, err)

	r := gin.New()
	r.Use(Gin(l))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=info")
	assert.Contains(t, lines[0], "path=/ok")
	assert.Contains(t, lines[0], "status=200")
	assert.Contains(t, lines[1], "level=warning")
	assert.Contains(t, lines[1], "status=404")
}
