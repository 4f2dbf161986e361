package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)
	customers := router.Group("/api/customers")
	{
		customers.GET("", staff, h.List)
		customers.POST("", staff, h.Create)
		customers.GET("/:id", staff, h.Get)
		customers.PUT("/:id", staff, h.Update)
		customers.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.Delete)
	}
}

// List returns paginated customers
// @Summary      List customers
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Items per page (default 20)"
// @Param        branch_id  query     int     false  "Branch filter"
// @Param        search     query     string  false  "Search by name or phone"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	page, limit := queryPage(c)
	customers, total, err := h.customerService.List(c.Request.Context(), queryBranchID(c), c.Query("search"), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload("customers", customers, total, page, limit)))
}

// Create registers a new customer
// @Summary      Create customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCustomerRequest  true  "Create Customer Payload"
// @Success      201      {object}  response.Response{data=model.Customer}
// @Failure      400      {object}  response.Response
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), middleware.ActorName(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, customer))
}

// Get returns a customer with visit and spend aggregates derived from bills
// @Summary      Get customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Customer ID"
// @Success      200  {object}  response.Response{data=service.CustomerDetail}
// @Failure      404  {object}  response.Response
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	detail, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// Update edits customer fields
// @Summary      Update customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Customer ID"
// @Param        payload  body      service.UpdateCustomerRequest  true  "Update Customer Payload"
// @Success      200      {object}  response.Response{data=model.Customer}
// @Failure      404      {object}  response.Response
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req service.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), middleware.ActorName(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, customer))
}

// Delete removes a customer
// @Summary      Delete customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Customer ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.customerService.Delete(c.Request.Context(), middleware.ActorName(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}
