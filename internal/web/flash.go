package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	flashSuccess flashType = "success"
	flashError   flashType = "error"

	flashCookie = "flash"
)

type flashType string

// Flash is one message shown on the next dashboard render.
type Flash struct {
	Type    flashType `json:"type"`
	Message string    `json:"message"`
}

// flashStack is a stack of flash messages carried across a redirect in a
// base64(JSON) cookie.
type flashStack []Flash

func (s *flashStack) push(t flashType, msg string) {
	*s = append(*s, Flash{Type: t, Message: msg})
}

func (s flashStack) write(c echo.Context) {
	payload, err := json.Marshal(s)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlashes reads the flash stack and purges the cookie so messages render
// exactly once. A missing or garbled cookie is an empty stack.
func popFlashes(c echo.Context) []Flash {
	cookie, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(decoded, &flashes); err != nil {
		return nil
	}
	return flashes
}

func pushFlashSuccess(c echo.Context, msg string) {
	flashStack{{Type: flashSuccess, Message: msg}}.write(c)
}

func pushFlashError(c echo.Context, msg string) {
	flashStack{{Type: flashError, Message: msg}}.write(c)
}
