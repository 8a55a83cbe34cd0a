package middleware

import (
	"errors"
	"net/http"
	"strings"

	sharedContext "github.com/pizzaria-erp/go-api-server/internal/shared/context"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
	"github.com/pizzaria-erp/go-api-server/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// JWT error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
)

// Domain errors
var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
)

// Register JWT error responses
func init() {
	unauthorized := sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "Faça login para continuar.",
	}
	sharedError.RegisterDomainErrorResponse(missingToken, unauthorized)
	sharedError.RegisterDomainErrorResponse(invalidToken, unauthorized)
	sharedError.RegisterDomainErrorResponse(invalidClaims, unauthorized)

	expired := unauthorized
	expired.Code = "AUTH-001"
	expired.Message = "Sessão expirada. Faça login novamente."
	sharedError.RegisterDomainErrorResponse(expiredToken, expired)
}

// JWT authenticates the request with an access token and stores the
// employee id and email in the gin context.
func JWT(tokenManager token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context()).With(
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		// Step 1: extrair token
		raw, err := extractToken(c)
		if err != nil {
			log.Warn("Falha ao extrair token JWT", "step", "extract_token", "error", err.Error())
			handleJWTError(c, err)
			return
		}

		// Step 2: validar token
		claims, err := tokenManager.ValidateToken(raw)
		if err != nil {
			log.Warn("Falha ao validar token JWT", "step", "validate_token", "error", err.Error())
			handleJWTError(c, mapTokenError(err))
			return
		}
		if claims.TokenType != token.ACCESS || claims.EmployeeID == "" {
			log.Warn("Claims do token inválidas", "step", "check_claims", "token_type", claims.TokenType)
			handleJWTError(c, ErrInvalidClaims)
			return
		}

		c.Set(sharedContext.EmployeeIDKey, claims.EmployeeID)
		c.Set(sharedContext.EmployeeEmailKey, claims.Email)
		c.Next()
	}
}

// handleJWTError handles JWT errors using the standardized error response format
// Note: Logging is done at the point of error detection in JWT() function
func handleJWTError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		c.JSON(resp.Status, resp)
	} else {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-999",
			Message: "Falha na autenticação.",
		})
	}
	c.Abort()
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) || parts[1] == "" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
