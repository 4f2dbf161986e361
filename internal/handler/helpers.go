package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"backend/internal/currency"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// pathID parses the :id path segment. A zero return means the handler
// has already written the 400 response.
func pathID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid ID"))
		return 0
	}
	return uint(id)
}

// pathParam parses an arbitrary named numeric path segment
func pathParam(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid "+name))
		return 0
	}
	return uint(id)
}

// queryBranchID parses the optional branch_id query parameter
func queryBranchID(c *gin.Context) *uint {
	raw := c.Query("branch_id")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	branchID := uint(id)
	return &branchID
}

func queryPage(c *gin.Context) (int, int) {
	params := pagination.Parse(c)
	return params.Page, params.Limit
}

// queryDateRange parses optional from/to query params (RFC3339 or 2006-01-02)
func queryDateRange(c *gin.Context) (time.Time, time.Time) {
	parse := func(raw string) time.Time {
		if raw == "" {
			return time.Time{}
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
		return time.Time{}
	}
	return parse(c.Query("from")), parse(c.Query("to"))
}

// fail maps domain errors to HTTP statuses and writes the error response
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrDepositCollected):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidDirection),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, currency.ErrUnknownCurrency),
		errors.Is(err, currency.ErrInvalidRate),
		errors.Is(err, currency.ErrBaseCurrency):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	c.JSON(status, response.Error(status, err.Error()))
}

// listPayload wraps paginated rows in the standard list envelope
func listPayload(key string, rows interface{}, total int64, page, limit int) map[string]interface{} {
	return map[string]interface{}{
		key:     rows,
		"total": total,
		"page":  page,
		"limit": limit,
	}
}
