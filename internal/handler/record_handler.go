package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"urlboard/internal/model"
	"urlboard/internal/service"
)

const maxImportSize = 5 << 20

type RecordHandler struct {
	service service.RecordService
}

type recordRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type recordResponse struct {
	ID        int64  `json:"id"`
	URLKey    string `json:"urlKey"`
	URLValue  string `json:"urlValue"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type recordStatusResponse struct {
	Status string `json:"status"`
}

func NewRecordHandler(service service.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

func (h *RecordHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/records", h.List)
	g.GET("/records/export", h.Export)
	g.GET("/records/:id", h.Get)
	g.POST("/records", h.Create)
	g.PUT("/records/:id", h.Update)
	g.DELETE("/records/:id", h.Delete)
	g.POST("/records/import", h.Import)
}

func (h *RecordHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]recordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toRecordResponse(&record))
	}
	return c.JSON(http.StatusOK, response)
}

func (h *RecordHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	record, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toRecordResponse(record))
}

func (h *RecordHandler) Create(c echo.Context) error {
	var req recordRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	record, err := h.service.Save(c.Request().Context(), req.Key, req.Value, "")
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toRecordResponse(record))
}

// Update runs the value-only save path. An unknown id is deliberately not a
// 404: the response is the same whether or not a row was touched.
func (h *RecordHandler) Update(c echo.Context) error {
	var req recordRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	if _, err := h.service.Save(c.Request().Context(), req.Key, req.Value, c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, recordStatusResponse{Status: "saved"})
}

func (h *RecordHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RecordHandler) Export(c echo.Context) error {
	records, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	items := make([]service.RecordImport, 0, len(records))
	for _, record := range records {
		items = append(items, service.RecordImport{Key: record.URLKey, Value: record.URLValue})
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set("Content-Disposition", `attachment; filename="urlboard.json"`)
	return c.Blob(http.StatusOK, "application/json", payload)
}

func (h *RecordHandler) Import(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, maxImportSize)

	var reader io.Reader
	contentType := req.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/") {
		file, err := c.FormFile("file")
		if err != nil {
			if err == http.ErrMissingFile {
				return writeError(c, http.StatusBadRequest, "missing file")
			}
			return writeError(c, http.StatusBadRequest, "invalid request")
		}
		if file.Size > maxImportSize {
			return writeError(c, http.StatusRequestEntityTooLarge, "file too large")
		}
		src, err := file.Open()
		if err != nil {
			return writeError(c, http.StatusBadRequest, "invalid request")
		}
		defer src.Close()
		reader = io.LimitReader(src, maxImportSize)
	} else {
		reader = io.LimitReader(req.Body, maxImportSize)
	}

	var items []service.RecordImport
	if err := json.NewDecoder(reader).Decode(&items); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}

	result, err := h.service.Import(req.Context(), items)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func toRecordResponse(record *model.Record) recordResponse {
	return recordResponse{
		ID:        record.ID,
		URLKey:    record.URLKey,
		URLValue:  record.URLValue,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
