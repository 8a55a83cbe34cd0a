package context

import (
	"net/http"
	"strconv"

	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"

	"github.com/gin-gonic/gin"
)

// Context keys for storing the authenticated employee
const (
	EmployeeIDKey    = "employee_id"
	EmployeeEmailKey = "employee_email"
)

func GetEmployeeID(c *gin.Context) (int64, bool) {
	employeeID, exists := c.Get(EmployeeIDKey)
	if !exists {
		return 0, false
	}

	idStr, ok := employeeID.(string)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// RequireEmployeeID retrieves the authenticated employee's ID from the Gin context.
// When it is missing an authentication error response is sent and false is returned.
func RequireEmployeeID(c *gin.Context) (int64, bool) {
	employeeID, ok := GetEmployeeID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-000",
			Message: "Faça login para continuar.",
		})
		c.Abort()
		logger.FromContext(c.Request.Context()).Error("[API] id do funcionário ausente no contexto")
		return 0, false
	}
	return employeeID, true
}
