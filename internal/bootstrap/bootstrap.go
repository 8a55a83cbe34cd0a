package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/config"
	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
	"github.com/pizzaria-erp/go-api-server/internal/shared/middleware"
	"github.com/pizzaria-erp/go-api-server/internal/shared/validator"
)

// Bootstrap builds the gin engine shared by every deployment of the API
type Bootstrap struct {
	cfg *config.Config
}

func NewBootstrap(cfg *config.Config) *Bootstrap {
	return &Bootstrap{
		cfg: cfg,
	}
}

// SetupEngine creates the engine with the common middleware chain and the
// custom binding tags (cpf, cnpj, cpfcnpj, nfekey, phone) registered.
func (b *Bootstrap) SetupEngine() (*gin.Engine, error) {
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// request logging goes through slog
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	if err := validator.RegisterAll(); err != nil {
		return nil, fmt.Errorf("falha ao registrar validadores: %w", err)
	}

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.LoggerMiddleware())
	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.CORS(b.cfg))
	engine.Use(middleware.Timeout(b.requestTimeout()))

	return engine, nil
}

func (b *Bootstrap) requestTimeout() time.Duration {
	if b.cfg.Server.RequestTimeout > 0 {
		return b.cfg.Server.RequestTimeout
	}
	return middleware.DefaultTimeout
}

// recoveryHandler answers a panic with the shared error body. A panic
// carrying a connection failure is reported as 503.
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	logger.FromContext(c.Request.Context()).Error("panic recuperado",
		"panic", fmt.Sprint(recovered),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)

	resp := sharedError.InternalServerError
	var connErr *database.ConnectionError
	if err, ok := recovered.(error); ok && errors.As(err, &connErr) {
		resp = sharedError.ServiceUnavailable
	}
	c.AbortWithStatusJSON(resp.Status, resp)
}
