package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)
	managers := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	inventory := router.Group("/api/inventory")
	{
		inventory.GET("", staff, h.List)
		inventory.POST("", managers, h.Create)
		inventory.GET("/low-stock", staff, h.ListLowStock)
		inventory.GET("/:id", staff, h.Get)
		inventory.PUT("/:id", managers, h.Update)
		inventory.POST("/:id/adjust", staff, h.AdjustStock)
		inventory.GET("/:id/movements", staff, h.Movements)
		inventory.DELETE("/:id", managers, h.Delete)
	}
}

// List returns paginated inventory items
// @Summary      List inventory
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Items per page (default 20)"
// @Param        branch_id  query     int     false  "Branch filter"
// @Param        search     query     string  false  "Search by name or SKU"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	page, limit := queryPage(c)
	items, total, err := h.inventoryService.List(c.Request.Context(), queryBranchID(c), c.Query("search"), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload("items", items, total, page, limit)))
}

// ListLowStock returns items at or below their minimum quantity
// @Summary      List low stock items
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        branch_id  query     int  false  "Branch filter"
// @Success      200  {object}  response.Response{data=[]model.InventoryItem}
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	items, err := h.inventoryService.ListLowStock(c.Request.Context(), queryBranchID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// Create adds a new inventory item
// @Summary      Create inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInventoryItemRequest  true  "Create Item Payload"
// @Success      201      {object}  response.Response{data=model.InventoryItem}
// @Failure      400      {object}  response.Response
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), middleware.ActorName(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// Get returns one inventory item
// @Summary      Get inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Item ID"
// @Success      200  {object}  response.Response{data=model.InventoryItem}
// @Failure      404  {object}  response.Response
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	item, err := h.inventoryService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// Update edits item metadata; quantity changes go through AdjustStock
// @Summary      Update inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                                 true  "Item ID"
// @Param        payload  body      service.UpdateInventoryItemRequest  true  "Update Item Payload"
// @Success      200      {object}  response.Response{data=model.InventoryItem}
// @Failure      400      {object}  response.Response
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req service.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), middleware.ActorName(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// AdjustStock applies an in/out stock movement
// @Summary      Adjust stock
// @Description  Applies a stock movement; out-adjustments clamp the level at zero
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "Item ID"
// @Param        payload  body      service.AdjustStockRequest  true  "Adjustment Payload"
// @Success      200      {object}  response.Response{data=model.InventoryItem}
// @Failure      400      {object}  response.Response
// @Router       /api/inventory/{id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req service.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.AdjustStock(c.Request.Context(), middleware.ActorName(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// Movements returns the item's stock movement history
// @Summary      List stock movements
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      int  true   "Item ID"
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/inventory/{id}/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	page, limit := queryPage(c)
	movements, total, err := h.inventoryService.Movements(c.Request.Context(), id, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload("movements", movements, total, page, limit)))
}

// Delete removes an inventory item
// @Summary      Delete inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Item ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.inventoryService.Delete(c.Request.Context(), middleware.ActorName(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}
