package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	financeService service.FinanceService
}

func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

func (h *FinanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	managers := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	finance := router.Group("/api/transactions")
	{
		finance.GET("", managers, h.List)
		finance.POST("", managers, h.Create)
		finance.GET("/summary", managers, h.Summary)
	}
}

// List returns paginated income/expense transactions
// @Summary      List transactions
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Items per page (default 20)"
// @Param        type       query     string  false  "income or expense"
// @Param        branch_id  query     int     false  "Branch filter"
// @Param        from       query     string  false  "Range start"
// @Param        to         query     string  false  "Range end"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/transactions [get]
func (h *FinanceHandler) List(c *gin.Context) {
	page, limit := queryPage(c)
	from, to := queryDateRange(c)
	filter := repository.TransactionFilter{
		Type:     c.Query("type"),
		BranchID: queryBranchID(c),
		From:     from,
		To:       to,
	}

	txs, total, err := h.financeService.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload("transactions", txs, total, page, limit)))
}

// Create records a manual income or expense entry
// @Summary      Create transaction
// @Description  Records an income or expense entry with an auto-generated reference
// @Tags         finance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateTransactionRequest  true  "Create Transaction Payload"
// @Success      201      {object}  response.Response{data=model.Transaction}
// @Failure      400      {object}  response.Response
// @Router       /api/transactions [post]
func (h *FinanceHandler) Create(c *gin.Context) {
	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	txn, err := h.financeService.CreateTransaction(c.Request.Context(), middleware.ActorName(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, txn))
}

// Summary totals income and expense over the range
// @Summary      Finance summary
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Param        branch_id  query     int     false  "Branch filter"
// @Param        from       query     string  false  "Range start"
// @Param        to         query     string  false  "Range end"
// @Success      200  {object}  response.Response{data=service.FinanceSummary}
// @Router       /api/transactions/summary [get]
func (h *FinanceHandler) Summary(c *gin.Context) {
	from, to := queryDateRange(c)
	summary, err := h.financeService.Summary(c.Request.Context(), queryBranchID(c), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
