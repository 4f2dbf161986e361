package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)
	managers := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	services := router.Group("/api/services")
	{
		services.GET("", staff, h.List)
		services.POST("", managers, h.Create)
		services.GET("/categories", staff, h.ListCategories)
		services.POST("/categories", managers, h.CreateCategory)
		services.GET("/:id", staff, h.Get)
		services.PUT("/:id", managers, h.Update)
		services.DELETE("/:id", managers, h.Delete)
	}
}

// List returns the service catalog
// @Summary      List services
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int   false  "Page number (default 1)"
// @Param        limit   query     int   false  "Items per page (default 50)"
// @Param        active  query     bool  false  "Only active services"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/services [get]
func (h *CatalogHandler) List(c *gin.Context) {
	page, limit := queryPage(c)
	activeOnly := c.Query("active") == "true"

	services, total, err := h.catalogService.List(c.Request.Context(), activeOnly, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload("services", services, total, page, limit)))
}

// Create adds a bookable service
// @Summary      Create service
// @Tags         services
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateServiceRequest  true  "Create Service Payload"
// @Success      201      {object}  response.Response{data=model.Service}
// @Failure      400      {object}  response.Response
// @Router       /api/services [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req service.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	svc, err := h.catalogService.Create(c.Request.Context(), middleware.ActorName(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, svc))
}

// Get returns one service
// @Summary      Get service
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Service ID"
// @Success      200  {object}  response.Response{data=model.Service}
// @Failure      404  {object}  response.Response
// @Router       /api/services/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	svc, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// Update edits a service
// @Summary      Update service
// @Tags         services
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Service ID"
// @Param        payload  body      service.UpdateServiceRequest  true  "Update Service Payload"
// @Success      200      {object}  response.Response{data=model.Service}
// @Failure      404      {object}  response.Response
// @Router       /api/services/{id} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req service.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	svc, err := h.catalogService.Update(c.Request.Context(), middleware.ActorName(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// Delete removes a service
// @Summary      Delete service
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Service ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/services/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.catalogService.Delete(c.Request.Context(), middleware.ActorName(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}

// ListCategories returns the service categories
// @Summary      List service categories
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.ServiceCategory}
// @Router       /api/services/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// CreateCategory adds a service category
// @Summary      Create service category
// @Tags         services
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCategoryRequest  true  "Create Category Payload"
// @Success      201      {object}  response.Response{data=model.ServiceCategory}
// @Failure      400      {object}  response.Response
// @Router       /api/services/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}
