package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	assocservice "wrestling-admin/internal/domains/association/service"
	"wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/internal/domains/entity/service"
	"wrestling-admin/internal/shared/listing"
	"wrestling-admin/internal/shared/response"
)

// EntityHandler handles HTTP requests for promotions, factions and championships
type EntityHandler struct {
	service      service.ServiceInterface
	associations assocservice.ServiceInterface
}

// NewEntityHandler creates a new entity handler instance
func NewEntityHandler(service service.ServiceInterface, associations assocservice.ServiceInterface) *EntityHandler {
	return &EntityHandler{
		service:      service,
		associations: associations,
	}
}

// RegisterRoutes đăng ký cùng một bộ route cho mỗi kind liên kết với wrestler
func (h *EntityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, kind := range model.RelatedKinds {
		g := rg.Group("/" + string(kind))
		{
			g.GET("", h.List(kind))
			g.POST("", h.Create(kind))
			g.GET("/:id", h.Get(kind))
			g.PUT("/:id", h.Update(kind))
			g.DELETE("/:id", h.Delete(kind))
			g.GET("/:id/wrestlers", h.Wrestlers(kind))
		}
	}
}

func countOf(e model.EntityWithCount) int { return e.WrestlerCount }

func nameOf(e model.EntityWithCount) string { return e.Name }

func (h *EntityHandler) fail(c *gin.Context, err error) {
	statusCode, message, code := model.MapErrorToHTTP(err)
	response.Error(c, statusCode, message, code)
}

func (h *EntityHandler) failMutation(c *gin.Context, action string, kind model.Kind, err error) {
	statusCode, message, code := model.MapErrorToHTTP(err)
	response.MutationFailed(c, statusCode, action, kind.Label(), message, code)
}

// List handles GET /{kind}?search=&sort=name|count
func (h *EntityHandler) List(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q model.ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		items := listing.Search(h.service.ListWithWrestlerCount(c.Request.Context(), kind), q.Search, nameOf)

		order := listing.ParseSortOrder(q.Sort)
		switch order {
		case listing.SortByCount:
			listing.SortByCountDesc(items, countOf)
		default:
			listing.SortByNameAsc(items, nameOf)
		}

		response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
			Total: len(items),
			Sort:  string(order),
		})
	}
}

// Get handles GET /{kind}/:id
func (h *EntityHandler) Get(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := model.ParseID(c.Param("id"))
		if err != nil {
			h.fail(c, err)
			return
		}

		result, err := h.service.Get(c.Request.Context(), kind, id)
		if err != nil {
			h.fail(c, err)
			return
		}

		response.Success(c, http.StatusOK, kind.Title()+" retrieved successfully", result)
	}
}

// Create handles POST /{kind}
func (h *EntityHandler) Create(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.MutationFailed(c, http.StatusBadRequest, "create", kind.Label(), "Invalid request payload", "BAD_REQUEST")
			return
		}

		result, err := h.service.Create(c.Request.Context(), kind, &req)
		if err != nil {
			h.failMutation(c, "create", kind, err)
			return
		}

		response.Mutated(c, http.StatusCreated, kind.Title()+" created", result)
	}
}

// Update handles PUT /{kind}/:id
func (h *EntityHandler) Update(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := model.ParseID(c.Param("id"))
		if err != nil {
			h.failMutation(c, "update", kind, err)
			return
		}

		var req model.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.MutationFailed(c, http.StatusBadRequest, "update", kind.Label(), "Invalid request payload", "BAD_REQUEST")
			return
		}

		result, err := h.service.Update(c.Request.Context(), kind, id, &req)
		if err != nil {
			h.failMutation(c, "update", kind, err)
			return
		}

		response.Mutated(c, http.StatusOK, kind.Title()+" updated", result)
	}
}

// Delete handles DELETE /{kind}/:id
func (h *EntityHandler) Delete(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := model.ParseID(c.Param("id"))
		if err != nil {
			h.failMutation(c, "delete", kind, err)
			return
		}

		if err := h.service.Delete(c.Request.Context(), kind, id); err != nil {
			h.failMutation(c, "delete", kind, err)
			return
		}

		response.Mutated(c, http.StatusOK, kind.Title()+" deleted", nil)
	}
}

// Wrestlers handles GET /{kind}/:id/wrestlers
func (h *EntityHandler) Wrestlers(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := model.ParseID(c.Param("id"))
		if err != nil {
			h.fail(c, err)
			return
		}

		if _, err := h.service.Get(c.Request.Context(), kind, id); err != nil {
			h.fail(c, err)
			return
		}

		result, err := h.associations.AssociatedWrestlers(c.Request.Context(), id, kind)
		if err != nil {
			h.fail(c, err)
			return
		}

		response.SuccessWithMeta(c, http.StatusOK, result, &response.Meta{Total: len(result)})
	}
}
