package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/auth"
	"github.com/pizzaria-erp/go-api-server/internal/catalog"
	"github.com/pizzaria-erp/go-api-server/internal/config"
	"github.com/pizzaria-erp/go-api-server/internal/employee"
	"github.com/pizzaria-erp/go-api-server/internal/finance"
	"github.com/pizzaria-erp/go-api-server/internal/invoice"
	"github.com/pizzaria-erp/go-api-server/internal/location"
	"github.com/pizzaria-erp/go-api-server/internal/meta"
	"github.com/pizzaria-erp/go-api-server/internal/partner"
	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
	"github.com/pizzaria-erp/go-api-server/internal/shared/middleware"
	"github.com/pizzaria-erp/go-api-server/internal/shared/token"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, repos *Repositories) {
	// Meta handler (health check, pool statistics)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)

	// shared services
	tokenManager := token.NewJWTManager(cfg)

	// service
	authService := auth.NewAuthService(repos.Employee.Employees, tokenManager)
	employeeService := employee.NewEmployeeService(repos.Employee.Employees)
	invoiceService := invoice.NewInvoiceService(repos.Invoices, repos.Finance.Conditions, repos.Finance.Payables)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	employeeHandler := employee.NewEmployeeHandler(employeeService)
	invoiceHandler := invoice.NewInvoiceHandler(repos.Invoices, invoiceService)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/login", authHandler.Login)
		authV1.POST("/refresh", authHandler.Refresh)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.JWT(tokenManager))
	{
		location.RegisterRoutes(v1, repos.Location)
		catalog.RegisterRoutes(v1, repos.Catalog)
		partner.RegisterRoutes(v1, repos.Partner)
		employee.RegisterRoutes(v1, repos.Employee, employeeHandler)
		finance.RegisterRoutes(v1, repos.Finance)
		invoice.RegisterRoutes(v1, invoiceHandler)
	}
}
