package employee

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	sharedContext "github.com/pizzaria-erp/go-api-server/internal/shared/context"
	"github.com/pizzaria-erp/go-api-server/internal/shared/handler"
)

type EmployeeHandler struct {
	employeeService *EmployeeService
}

func NewEmployeeHandler(employeeService *EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// GetProfile answers GET /me for the signed-in employee.
func (h *EmployeeHandler) GetProfile(c *gin.Context) {
	employeeID, ok := sharedContext.RequireEmployeeID(c)
	if !ok {
		return
	}

	response, err := h.employeeService.GetProfile(c.Request.Context(), employeeID)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SetPassword answers PUT /funcionarios/:id/senha.
func (h *EmployeeHandler) SetPassword(c *gin.Context) {
	employeeID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request SetPasswordRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := h.employeeService.SetPassword(c.Request.Context(), employeeID, request.Password); err != nil {
		handler.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type Repositories struct {
	JobPositions *JobPositionRepository
	Employees    *EmployeeRepository
}

// RegisterRoutes mounts /cargos, /funcionarios and /me on rg.
func RegisterRoutes(rg *gin.RouterGroup, repos Repositories, h *EmployeeHandler) {
	handler.RegisterResource[model.JobPosition](rg.Group("/cargos"), handler.Resource[*model.JobPosition]{
		Store:  repos.JobPositions,
		Search: repos.JobPositions.FindByName,
	})

	employees := rg.Group("/funcionarios")
	handler.RegisterResource[model.Employee](employees, handler.Resource[*model.Employee]{
		Store:   repos.Employees,
		Search:  repos.Employees.FindByName,
		Filters: map[string]handler.FilterFunc[*model.Employee]{"cargo": repos.Employees.FindByJobPosition},
		Check:   h.employeeService.Check,
	})
	employees.PUT("/:id/senha", h.SetPassword)

	rg.GET("/me", h.GetProfile)
}
