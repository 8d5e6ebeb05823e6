package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"urlboard/internal/model"
	"urlboard/internal/service"
)

// DashboardHandler serves the server-rendered record editor. Save and delete
// are plain form posts answered with a redirect back to the referring page.
type DashboardHandler struct {
	records service.RecordService
	allowed []string
}

type dashboardData struct {
	Records     []model.Record
	Flashes     []Flash
	AllowedKeys []string
}

func NewDashboardHandler(records service.RecordService, allowedKeys []string) *DashboardHandler {
	return &DashboardHandler{records: records, allowed: allowedKeys}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/records/save", h.Save)
	e.POST("/records/delete", h.Delete)
}

func (h *DashboardHandler) Index(c echo.Context) error {
	records, err := h.records.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "dashboard.html", dashboardData{
		Records:     records,
		Flashes:     popFlashes(c),
		AllowedKeys: h.allowed,
	})
}

func (h *DashboardHandler) Save(c echo.Context) error {
	key := c.FormValue("key")
	value := c.FormValue("value")
	id := c.FormValue("id")

	if _, err := h.records.Save(c.Request().Context(), key, value, id); err != nil {
		// Validation failures become a flash on an otherwise normal
		// redirect; everything else is a real server error.
		if errors.Is(err, service.ErrKeyNotAllowed) {
			pushFlashError(c, err.Error())
			return redirectBack(c)
		}
		return err
	}

	pushFlashSuccess(c, "Record saved")
	return redirectBack(c)
}

func (h *DashboardHandler) Delete(c echo.Context) error {
	if err := h.records.Delete(c.Request().Context(), c.FormValue("id")); err != nil {
		return err
	}
	pushFlashSuccess(c, "Record deleted")
	return redirectBack(c)
}

func redirectBack(c echo.Context) error {
	target := c.Request().Referer()
	if target == "" {
		target = "/"
	}
	return c.Redirect(http.StatusFound, target)
}
