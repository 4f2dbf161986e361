package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billingService service.BillingService
}

func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

func (h *BillingHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)
	bills := router.Group("/api/bills")
	{
		bills.GET("", staff, h.List)
		bills.GET("/:id", staff, h.Get)
	}
}

// List returns paginated bills, newest first
// @Summary      List bills
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int  false  "Page number (default 1)"
// @Param        limit      query     int  false  "Items per page (default 20)"
// @Param        branch_id  query     int  false  "Branch filter"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/bills [get]
func (h *BillingHandler) List(c *gin.Context) {
	page, limit := queryPage(c)
	bills, total, err := h.billingService.List(c.Request.Context(), queryBranchID(c), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload("bills", bills, total, page, limit)))
}

// Get returns one bill
// @Summary      Get bill
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Bill ID"
// @Success      200  {object}  response.Response{data=model.Bill}
// @Failure      404  {object}  response.Response
// @Router       /api/bills/{id} [get]
func (h *BillingHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	bill, err := h.billingService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, bill))
}
