package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc func(e *echo.Echo)

func (f handlerFunc) Register(e *echo.Echo) { f(e) }

func TestServer_RoutesAndRecovery(t *testing.T) {
	s := NewServer(nil, "", nil, handlerFunc(func(e *echo.Echo) {
		e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "fine") })
		e.GET("/boom", func(echo.Context) error { panic("boom") })
	}))
	assert.Equal(t, DefaultAddr, s.Addr())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_StartStop(t *testing.T) {
	s := NewServer(nil, "127.0.0.1:0")
	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	require.Eventually(t, func() bool {
		return s.echo.ListenerAddr() != nil
	}, time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
	assert.NoError(t, <-done)
}
