package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/forohub/forum-api/internal/api/metrics"
	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

// TopicoHandler handles HTTP requests for topic CRUD.
type TopicoHandler struct {
	service ports.TopicoService
}

func NewTopicoHandler(service ports.TopicoService) *TopicoHandler {
	return &TopicoHandler{service: service}
}

// Create handles POST /topicos.
//
// @Summary      Create a topic
// @Tags         topicos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTopicoRequest  true  "Topic details"
// @Success      201   {object}  topicoResponse
// @Header       201   {string}  Location  "URI of the created topic"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /topicos [post]
func (h *TopicoHandler) Create(c echo.Context) error {
	var req createTopicoRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	topico, err := h.service.Create(c.Request().Context(), ports.CreateTopicoInput{
		Titulo:  req.Titulo,
		Mensaje: req.Mensaje,
		Autor:   req.Autor,
		Curso:   req.Curso,
	})
	if err != nil {
		return err
	}

	metrics.TopicosCreatedTotal.WithLabelValues(topico.Curso).Inc()

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/topicos/%d", topico.ID))
	return c.JSON(http.StatusCreated, toTopicoResponse(topico))
}

// List handles GET /topicos.
//
// @Summary      List topics
// @Tags         topicos
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int     false  "Page number (0-based)"       default(0)
// @Param        size  query     int     false  "Page size"                   default(10)
// @Param        sort  query     string  false  "Sort: field[,asc|desc]"      default(fechaCreacion,desc)
// @Success      200   {object}  listTopicosResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /topicos [get]
func (h *TopicoHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return err
	}
	size, err := queryInt(c, "size", 0)
	if err != nil {
		return err
	}

	sortBy, sortDir := "", ""
	if raw := c.QueryParam("sort"); raw != "" {
		parts := strings.SplitN(raw, ",", 2)
		sortBy = parts[0]
		if len(parts) == 2 {
			sortDir = strings.ToLower(parts[1])
		}
	}

	result, err := h.service.List(c.Request().Context(), ports.ListTopicosInput{
		Page:    page,
		Size:    size,
		SortBy:  sortBy,
		SortDir: sortDir,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /topicos/:id.
//
// @Summary      Get a topic by id
// @Tags         topicos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Topic id"
// @Success      200  {object}  topicoResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /topicos/{id} [get]
func (h *TopicoHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	topico, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTopicoResponse(topico))
}

// Update handles PUT /topicos/:id.
//
// @Summary      Partially update a topic
// @Tags         topicos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Topic id"
// @Param        body  body      updateTopicoRequest  true  "Fields to change"
// @Success      200   {object}  topicoResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /topicos/{id} [put]
func (h *TopicoHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateTopicoRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	topico, err := h.service.Update(c.Request().Context(), id, ports.UpdateTopicoFields{
		Titulo:  req.Titulo,
		Mensaje: req.Mensaje,
		Autor:   req.Autor,
		Curso:   req.Curso,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTopicoResponse(topico))
}

// Delete handles DELETE /topicos/:id.
//
// @Summary      Delete a topic
// @Tags         topicos
// @Security     BearerAuth
// @Param        id  path  int  true  "Topic id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /topicos/{id} [delete]
func (h *TopicoHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.TopicosDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, &domain.MissingParamError{Param: "id", Message: "must be a number"}
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.MissingParamError{Param: name, Message: "must be a number"}
	}
	return n, nil
}
