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

type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)
	appointments := router.Group("/api/appointments")
	{
		appointments.GET("", staff, h.List)
		appointments.POST("", staff, h.Create)
		appointments.GET("/:id", staff, h.Get)
		appointments.PUT("/:id", staff, h.Update)
		appointments.PATCH("/:id/status", staff, h.UpdateStatus)
		appointments.POST("/:id/deposit", staff, h.CollectDeposit)
		appointments.POST("/:id/pay", staff, h.Pay)
		appointments.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.Delete)
	}
}

// List returns paginated appointments
// @Summary      List appointments
// @Description  Retrieves appointments filtered by branch, status and date range
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Items per page (default 20)"
// @Param        branch_id  query     int     false  "Branch filter; shared records always included"
// @Param        status     query     string  false  "Status filter"
// @Param        from       query     string  false  "Range start (RFC3339 or YYYY-MM-DD)"
// @Param        to         query     string  false  "Range end"
// @Success      200  {object}  response.Response{data=object}
// @Failure      500  {object}  response.Response
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	page, limit := queryPage(c)
	from, to := queryDateRange(c)
	filter := repository.AppointmentFilter{
		BranchID: queryBranchID(c),
		Status:   c.Query("status"),
		From:     from,
		To:       to,
	}

	appointments, total, err := h.appointmentService.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload("appointments", appointments, total, page, limit)))
}

// Create books a new appointment
// @Summary      Create appointment
// @Description  Books an appointment; total price is derived from price minus discount
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateAppointmentRequest  true  "Create Appointment Payload"
// @Success      201      {object}  response.Response{data=model.Appointment}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	appt, err := h.appointmentService.Create(c.Request.Context(), middleware.ActorName(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, appt))
}

// Get returns one appointment by ID
// @Summary      Get appointment
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Appointment ID"
// @Success      200  {object}  response.Response{data=model.Appointment}
// @Failure      404  {object}  response.Response
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	appt, err := h.appointmentService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, appt))
}

// Update edits appointment fields
// @Summary      Update appointment
// @Description  Edits appointment fields; a changed status is validated against the lifecycle
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                               true  "Appointment ID"
// @Param        payload  body      service.UpdateAppointmentRequest  true  "Update Appointment Payload"
// @Success      200      {object}  response.Response{data=model.Appointment}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/appointments/{id} [put]
func (h *AppointmentHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req service.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	appt, err := h.appointmentService.Update(c.Request.Context(), middleware.ActorName(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, appt))
}

// UpdateStatus moves the appointment through its lifecycle
// @Summary      Update appointment status
// @Description  Applies a lifecycle transition; invalid transitions are rejected with 409
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int     true  "Appointment ID"
// @Param        payload  body      object  true  "Status Payload"
// @Success      200      {object}  response.Response{data=model.Appointment}
// @Failure      409      {object}  response.Response
// @Router       /api/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	appt, err := h.appointmentService.UpdateStatus(c.Request.Context(), middleware.ActorName(c), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, appt))
}

// CollectDeposit records an upfront partial payment
// @Summary      Collect deposit
// @Description  Records a deposit in any supported currency, converted to base on receipt
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Appointment ID"
// @Param        payload  body      service.CollectDepositRequest  true  "Deposit Payload"
// @Success      200      {object}  response.Response{data=model.Appointment}
// @Failure      409      {object}  response.Response
// @Router       /api/appointments/{id}/deposit [post]
func (h *AppointmentHandler) CollectDeposit(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req service.CollectDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	appt, err := h.appointmentService.CollectDeposit(c.Request.Context(), middleware.ActorName(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, appt))
}

// Pay settles the appointment and produces the bill
// @Summary      Pay appointment
// @Description  Closes the appointment, generates the numbered bill and books the income entry
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Appointment ID"
// @Param        payload  body      service.PayAppointmentRequest  true  "Payment Payload"
// @Success      201      {object}  response.Response{data=model.Bill}
// @Failure      409      {object}  response.Response
// @Router       /api/appointments/{id}/pay [post]
func (h *AppointmentHandler) Pay(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req service.PayAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	bill, err := h.appointmentService.Pay(c.Request.Context(), middleware.ActorName(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, bill))
}

// Delete removes an appointment
// @Summary      Delete appointment
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Appointment ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.appointmentService.Delete(c.Request.Context(), middleware.ActorName(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}
