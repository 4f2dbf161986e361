package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	admin := middleware.RequireRole(model.RoleAdmin)
	users := router.Group("/api/users")
	{
		users.GET("", admin, h.List)
		users.POST("", admin, h.Create)
		users.GET("/:id", admin, h.Get)
		users.PUT("/:id", admin, h.Update)
		users.DELETE("/:id", admin, h.Delete)
		users.GET("/:id/branches", admin, h.BranchIDs)
		users.POST("/:id/branches/:branchID", admin, h.GrantBranch)
		users.DELETE("/:id/branches/:branchID", admin, h.RevokeBranch)
	}
}

// Login authenticates a user and issues tokens
// @Summary      Login
// @Description  Verifies credentials and returns access and refresh tokens, also set as HttpOnly cookies
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Payload"
// @Success      200      {object}  response.Response{data=service.TokenPair}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pair, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	middleware.SetTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pair))
}

// Refresh rotates the refresh token and issues a new access token
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      object  false  "Refresh Payload (falls back to the refresh_token cookie)"
// @Success      200      {object}  response.Response{data=service.TokenPair}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie("refresh_token")
	}
	if req.RefreshToken == "" {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Refresh token is missing"))
		return
	}

	pair, err := h.userService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}

	middleware.SetTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pair))
}

// Logout invalidates the refresh token and clears cookies
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie("refresh_token"); err == nil && token != "" {
		_ = h.userService.Logout(c.Request.Context(), token)
	}
	middleware.ClearTokenCookies(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"logged_out": true}))
}

// List returns paginated users
// @Summary      List users
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, limit := queryPage(c)
	users, total, err := h.userService.List(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload("users", users, total, page, limit)))
}

// Create adds a staff account
// @Summary      Create user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateUserRequest  true  "Create User Payload"
// @Success      201      {object}  response.Response{data=model.User}
// @Failure      400      {object}  response.Response
// @Router       /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.Create(c.Request.Context(), middleware.ActorName(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, user))
}

// Get returns one user
// @Summary      Get user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=model.User}
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// Update edits a user account
// @Summary      Update user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "User ID"
// @Param        payload  body      service.UpdateUserRequest  true  "Update User Payload"
// @Success      200      {object}  response.Response{data=model.User}
// @Failure      404      {object}  response.Response
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), middleware.ActorName(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// Delete removes a user account
// @Summary      Delete user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), middleware.ActorName(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}

// BranchIDs lists the branches granted to a user
// @Summary      List user branch grants
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=[]int}
// @Router       /api/users/{id}/branches [get]
func (h *UserHandler) BranchIDs(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	ids, err := h.userService.BranchIDs(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, ids))
}

// GrantBranch grants a user access to a branch
// @Summary      Grant branch access
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id        path      int  true  "User ID"
// @Param        branchID  path      int  true  "Branch ID"
// @Success      200  {object}  response.Response
// @Router       /api/users/{id}/branches/{branchID} [post]
func (h *UserHandler) GrantBranch(c *gin.Context) {
	userID := pathID(c)
	if userID == 0 {
		return
	}
	branchID := pathParam(c, "branchID")
	if branchID == 0 {
		return
	}
	if err := h.userService.GrantBranch(c.Request.Context(), userID, branchID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"user_id": userID, "branch_id": branchID}))
}

// RevokeBranch removes a user's branch access
// @Summary      Revoke branch access
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id        path      int  true  "User ID"
// @Param        branchID  path      int  true  "Branch ID"
// @Success      200  {object}  response.Response
// @Router       /api/users/{id}/branches/{branchID} [delete]
func (h *UserHandler) RevokeBranch(c *gin.Context) {
	userID := pathID(c)
	if userID == 0 {
		return
	}
	branchID := pathParam(c, "branchID")
	if branchID == 0 {
		return
	}
	if err := h.userService.RevokeBranch(c.Request.Context(), userID, branchID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"user_id": userID, "branch_id": branchID}))
}
