package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
	"github.com/pizzaria-erp/go-api-server/internal/shared/validator"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req LoginRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		// Add error to context for middleware logging
		c.Error(err)

		// Check if it's a validation error
		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, resp)
		} else {
			// JSON parsing error or other binding errors
			c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
		}
		return false
	}
	return true
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	c.Error(err)

	// Send error response
	c.JSON(errResp.Status, errResp)
}

// HandleError maps err to a response: registered domain errors first, then
// repository.ErrNotFound (404), *database.ConnectionError (503) and
// anything else, including *repository.PersistenceError, as 500.
func HandleError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}

	var connErr *database.ConnectionError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		RespondError(c, err, sharedError.NotFound)
	case errors.As(err, &connErr):
		RespondError(c, err, sharedError.ServiceUnavailable)
	default:
		RespondError(c, err, sharedError.InternalServerError)
	}
}

// ParseID reads a positive int64 path parameter; on failure the 400
// response is already sent.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, errors.New("invalid id: "+c.Param(name)), sharedError.InvalidRequest)
		return 0, false
	}
	return id, true
}

// ParseQueryID reads an optional positive int64 query parameter.
func ParseQueryID(c *gin.Context, name string) (int64, bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, errors.New("invalid "+name+": "+raw), sharedError.InvalidRequest)
		return 0, false, false
	}
	return id, true, true
}
