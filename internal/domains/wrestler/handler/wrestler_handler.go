package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	entitymodel "wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/internal/domains/wrestler/model"
	"wrestling-admin/internal/domains/wrestler/service"
	"wrestling-admin/internal/shared/response"
)

const label = "wrestler"

// WrestlerHandler handles HTTP requests for the wrestler aggregate
type WrestlerHandler struct {
	service service.ServiceInterface
}

func NewWrestlerHandler(service service.ServiceInterface) *WrestlerHandler {
	return &WrestlerHandler{service: service}
}

func (h *WrestlerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wrestlers := rg.Group("/wrestlers")
	{
		wrestlers.GET("", h.ListWrestlers)
		wrestlers.POST("", h.CreateWrestler)
		wrestlers.GET("/:id", h.GetWrestler)
		wrestlers.PUT("/:id", h.UpdateWrestler)
		wrestlers.DELETE("/:id", h.DeleteWrestler)
	}
}

func failMutation(c *gin.Context, action string, err error) {
	statusCode, message, code := entitymodel.MapErrorToHTTP(err)
	response.MutationFailed(c, statusCode, action, label, message, code)
}

// ListWrestlers handles GET /wrestlers?search=&promotion=&faction=&championship=
func (h *WrestlerHandler) ListWrestlers(c *gin.Context) {
	var filter model.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result := h.service.List(c.Request.Context(), filter)
	response.Success(c, http.StatusOK, "", result)
}

// GetWrestler handles GET /wrestlers/:id
func (h *WrestlerHandler) GetWrestler(c *gin.Context) {
	id, err := entitymodel.ParseID(c.Param("id"))
	if err != nil {
		statusCode, message, code := entitymodel.MapErrorToHTTP(err)
		response.Error(c, statusCode, message, code)
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		statusCode, message, code := entitymodel.MapErrorToHTTP(err)
		response.Error(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "Wrestler retrieved successfully", result)
}

// CreateWrestler handles POST /wrestlers
func (h *WrestlerHandler) CreateWrestler(c *gin.Context) {
	var req model.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.MutationFailed(c, http.StatusBadRequest, "create", label, "Invalid request payload", "BAD_REQUEST")
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		failMutation(c, "create", err)
		return
	}

	response.Mutated(c, http.StatusCreated, "Wrestler created", result)
}

// UpdateWrestler handles PUT /wrestlers/:id
func (h *WrestlerHandler) UpdateWrestler(c *gin.Context) {
	id, err := entitymodel.ParseID(c.Param("id"))
	if err != nil {
		failMutation(c, "update", err)
		return
	}

	var req model.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.MutationFailed(c, http.StatusBadRequest, "update", label, "Invalid request payload", "BAD_REQUEST")
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		failMutation(c, "update", err)
		return
	}

	response.Mutated(c, http.StatusOK, "Wrestler updated", result)
}

// DeleteWrestler handles DELETE /wrestlers/:id
func (h *WrestlerHandler) DeleteWrestler(c *gin.Context) {
	id, err := entitymodel.ParseID(c.Param("id"))
	if err != nil {
		failMutation(c, "delete", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		failMutation(c, "delete", err)
		return
	}

	response.Mutated(c, http.StatusOK, "Wrestler deleted", nil)
}
