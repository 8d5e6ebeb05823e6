package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlboard/internal/web"
)

func newFlashContext(t *testing.T, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func flashCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "flash" {
			return cookie
		}
	}
	t.Fatal("no flash cookie set")
	return nil
}

func TestFlash_RoundTrip(t *testing.T) {
	c, rec := newFlashContext(t)
	web.PushFlashSuccess(c, "Record saved")
	written := flashCookieFrom(t, rec)
	require.NotEmpty(t, written.Value)

	// The next request carries the cookie back; popping drains it.
	c2, rec2 := newFlashContext(t, &http.Cookie{Name: written.Name, Value: written.Value})
	flashes := web.PopFlashes(c2)
	require.Len(t, flashes, 1)
	assert.Equal(t, web.FlashSuccess, flashes[0].Type)
	assert.Equal(t, "Record saved", flashes[0].Message)

	// Popping purges the cookie from the browser.
	purged := flashCookieFrom(t, rec2)
	assert.Empty(t, purged.Value)
	assert.True(t, purged.Expires.Before(time.Now()))
}

func TestFlash_ErrorType(t *testing.T) {
	c, rec := newFlashContext(t)
	web.PushFlashError(c, "URL key is not in allowed URL keys")
	written := flashCookieFrom(t, rec)

	c2, _ := newFlashContext(t, &http.Cookie{Name: written.Name, Value: written.Value})
	flashes := web.PopFlashes(c2)
	require.Len(t, flashes, 1)
	assert.Equal(t, web.FlashError, flashes[0].Type)
}

func TestPopFlashes_NoCookie(t *testing.T) {
	c, _ := newFlashContext(t)
	assert.Nil(t, web.PopFlashes(c))
}

func TestPopFlashes_GarbledCookie(t *testing.T) {
	c, _ := newFlashContext(t, &http.Cookie{Name: "flash", Value: "%%%not-base64%%%"})
	assert.Nil(t, web.PopFlashes(c))
}
