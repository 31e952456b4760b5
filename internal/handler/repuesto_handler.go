package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"repuestos/internal/middleware"
	"repuestos/internal/model"
	"repuestos/internal/service"
	"repuestos/pkg/pagination"
	"repuestos/pkg/response"

	"github.com/gin-gonic/gin"
)

type RepuestoHandler struct {
	repuestoService service.RepuestoService
}

func NewRepuestoHandler(repuestoService service.RepuestoService) *RepuestoHandler {
	return &RepuestoHandler{repuestoService: repuestoService}
}

func (h *RepuestoHandler) RegisterRoutes(router *gin.RouterGroup) {
	repuestos := router.Group("/api/repuestos")
	{
		repuestos.GET("", middleware.RequireAuth(), h.ListRepuestos)
		repuestos.GET("/:id", middleware.RequireAuth(), h.GetRepuesto)
		repuestos.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateRepuesto)
		repuestos.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateRepuesto)
		repuestos.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteRepuesto)
		repuestos.GET("/:id/restore", middleware.RequireRole(model.RoleAdmin), h.RestoreRepuesto)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid id: must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// mapServiceError translates service sentinel errors into the HTTP
// contract: duplicates surface with conflictStatus (409 on create/update),
// already-active restores are always 400.
func mapServiceError(c *gin.Context, err error, conflictStatus int) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Repuesto not found"))
	case errors.Is(err, service.ErrAlreadyExists):
		c.JSON(conflictStatus, response.Error(conflictStatus, err.Error()))
	case errors.Is(err, service.ErrAlreadyActive):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Repuesto is already active"))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
	}
}

// ListRepuestos returns all active repuestos, or a page of them when
// page/limit query parameters are supplied
// @Summary      List repuestos
// @Tags         repuestos
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /api/repuestos [get]
func (h *RepuestoHandler) ListRepuestos(c *gin.Context) {
	if pagination.Requested(c) {
		params := pagination.Parse(c)
		repuestos, total, err := h.repuestoService.GetPage(c.Request.Context(), params.Page, params.Limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
			return
		}
		c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, repuestos, params.Page, params.Limit, total))
		return
	}

	repuestos, err := h.repuestoService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, repuestos))
}

// GetRepuesto returns a single active repuesto by id
// @Summary      Get repuesto by id
// @Tags         repuestos
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Repuesto ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/repuestos/{id} [get]
func (h *RepuestoHandler) GetRepuesto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	repuesto, err := h.repuestoService.GetByID(c.Request.Context(), id)
	if err != nil {
		mapServiceError(c, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, repuesto))
}

// CreateRepuesto creates a new repuesto
// @Summary      Create repuesto
// @Tags         repuestos
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateRepuestoRequest  true  "Repuesto payload"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/repuestos [post]
func (h *RepuestoHandler) CreateRepuesto(c *gin.Context) {
	var req service.CreateRepuestoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := req.ValidatePayload(); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	repuesto, err := h.repuestoService.Create(c.Request.Context(), req)
	if err != nil {
		mapServiceError(c, err, http.StatusConflict)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/repuestos/%d", repuesto.ID))
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, repuesto))
}

// UpdateRepuesto replaces an existing repuesto
// @Summary      Update repuesto
// @Tags         repuestos
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Repuesto ID"
// @Param        payload  body      service.UpdateRepuestoRequest  true  "Repuesto payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/repuestos/{id} [put]
func (h *RepuestoHandler) UpdateRepuesto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateRepuestoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := req.ValidatePayload(); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	repuesto, err := h.repuestoService.Update(c.Request.Context(), id, req)
	if err != nil {
		mapServiceError(c, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, repuesto))
}

// DeleteRepuesto soft-deletes a repuesto
// @Summary      Delete repuesto
// @Tags         repuestos
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Repuesto ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/repuestos/{id} [delete]
func (h *RepuestoHandler) DeleteRepuesto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repuestoService.Delete(c.Request.Context(), id); err != nil {
		mapServiceError(c, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Repuesto deleted successfully"))
}

// RestoreRepuesto re-activates a soft-deleted repuesto
// @Summary      Restore repuesto
// @Tags         repuestos
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Repuesto ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/repuestos/{id}/restore [get]
func (h *RepuestoHandler) RestoreRepuesto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	repuesto, err := h.repuestoService.Restore(c.Request.Context(), id)
	if err != nil {
		mapServiceError(c, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, repuesto))
}
