package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"urlboard/internal/model"
	"urlboard/internal/service"
)

type StoreHandler struct {
	service service.StoreService
}

type storeRequest struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
	Enabled  bool   `json:"enabled"`
}

type storeResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Endpoint  string `json:"endpoint"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type storePingResponse struct {
	Status string `json:"status"`
}

func NewStoreHandler(service service.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

func (h *StoreHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stores", h.List)
	g.GET("/stores/:id", h.Get)
	g.POST("/stores", h.Create)
	g.PUT("/stores/:id", h.Update)
	g.DELETE("/stores/:id", h.Delete)
	g.POST("/stores/:id/ping", h.Ping)
}

func (h *StoreHandler) List(c echo.Context) error {
	stores, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]storeResponse, 0, len(stores))
	for _, store := range stores {
		response = append(response, toStoreResponse(&store))
	}
	return c.JSON(http.StatusOK, response)
}

func (h *StoreHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	store, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toStoreResponse(store))
}

func (h *StoreHandler) Create(c echo.Context) error {
	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	store, err := h.service.Create(c.Request().Context(), req.Name, req.Endpoint, req.Secret, req.Enabled)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toStoreResponse(store))
}

func (h *StoreHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	store, err := h.service.Update(c.Request().Context(), id, req.Name, req.Endpoint, req.Secret, req.Enabled)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toStoreResponse(store))
}

func (h *StoreHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StoreHandler) Ping(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	if err := h.service.Ping(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, storePingResponse{Status: "ok"})
}

// The webhook secret never leaves the server.
func toStoreResponse(store *model.Store) storeResponse {
	return storeResponse{
		ID:        store.ID,
		Name:      store.Name,
		Endpoint:  store.Endpoint,
		Enabled:   store.Enabled,
		CreatedAt: store.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: store.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
