package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchService service.BranchService
}

func NewBranchHandler(branchService service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

func (h *BranchHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)
	admin := middleware.RequireRole(model.RoleAdmin)
	branches := router.Group("/api/branches")
	{
		branches.GET("", staff, h.List)
		branches.POST("", admin, h.Create)
		branches.GET("/:id", staff, h.Get)
		branches.PUT("/:id", admin, h.Update)
		branches.DELETE("/:id", admin, h.Delete)
	}
}

// List returns branches
// @Summary      List branches
// @Tags         branches
// @Security     BearerAuth
// @Produce      json
// @Param        active  query     bool  false  "Only active branches"
// @Success      200  {object}  response.Response{data=[]model.Branch}
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branchService.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, branches))
}

// Create adds a branch
// @Summary      Create branch
// @Tags         branches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBranchRequest  true  "Create Branch Payload"
// @Success      201      {object}  response.Response{data=model.Branch}
// @Failure      400      {object}  response.Response
// @Router       /api/branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	var req service.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	branch, err := h.branchService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, branch))
}

// Get returns one branch
// @Summary      Get branch
// @Tags         branches
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Branch ID"
// @Success      200  {object}  response.Response{data=model.Branch}
// @Failure      404  {object}  response.Response
// @Router       /api/branches/{id} [get]
func (h *BranchHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	branch, err := h.branchService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, branch))
}

// Update edits a branch
// @Summary      Update branch
// @Tags         branches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "Branch ID"
// @Param        payload  body      service.UpdateBranchRequest  true  "Update Branch Payload"
// @Success      200      {object}  response.Response{data=model.Branch}
// @Failure      404      {object}  response.Response
// @Router       /api/branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req service.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	branch, err := h.branchService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, branch))
}

// Delete removes a branch
// @Summary      Delete branch
// @Tags         branches
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Branch ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/branches/{id} [delete]
func (h *BranchHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.branchService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}
