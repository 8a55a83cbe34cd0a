package auth

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/pizzaria-erp/go-api-server/internal/employee"
	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
	"github.com/pizzaria-erp/go-api-server/internal/shared/token"
)

type AuthService struct {
	employees    *employee.EmployeeRepository
	tokenManager token.Manager
}

func NewAuthService(employees *employee.EmployeeRepository, tokenManager token.Manager) *AuthService {
	return &AuthService{
		employees:    employees,
		tokenManager: tokenManager,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Find employee by email
	emp, found, err := a.employees.FindCredentials(ctx, request.Email)
	if err != nil {
		log.Error("login falhou - erro na consulta", "error", err)
		return nil, fmt.Errorf("login falhou: %w", err)
	}
	if !found || !canSignIn(emp) {
		log.Warn("login falhou - funcionário sem acesso", "email", logger.MaskEmail(request.Email))
		return nil, fmt.Errorf("error %w", ErrInCorrectEmailPassword) // Security: don't reveal if email exists
	}

	// 2. Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(request.Password)); err != nil {
		log.Warn("login falhou - senha inválida", "email", logger.MaskEmail(request.Email))
		return nil, fmt.Errorf("error %w", ErrInCorrectEmailPassword)
	}

	// 3. Generate JWT tokens
	response, err := a.issue(ctx, emp.ID, emp.Email)
	if err != nil {
		return nil, err
	}

	log.Info("login realizado", "email", logger.MaskEmail(request.Email))
	return response, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The
// employee must still be allowed to sign in.
func (a *AuthService) Refresh(ctx context.Context, request *RefreshRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokenManager.ValidateToken(request.RefreshToken)
	if err != nil || claims.TokenType != token.REFRESH {
		log.Warn("refresh falhou - token inválido", "error", err)
		return nil, fmt.Errorf("error %w", ErrInvalidRefreshToken)
	}

	employeeID, err := strconv.ParseInt(claims.EmployeeID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("employee_id %q: %w", claims.EmployeeID, ErrInvalidRefreshToken)
	}

	emp, found, err := a.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("refresh falhou: %w", err)
	}
	if !found || !emp.Active || emp.TerminationDate != nil {
		log.Warn("refresh falhou - funcionário sem acesso", "employee_id", employeeID)
		return nil, fmt.Errorf("error %w", ErrInvalidRefreshToken)
	}

	return a.issue(ctx, emp.ID, emp.Email)
}

func (a *AuthService) issue(ctx context.Context, employeeID int64, email string) (*LoginResponse, error) {
	log := logger.FromContext(ctx)
	id := strconv.FormatInt(employeeID, 10)

	accessToken, err := a.tokenManager.GenerateAccessToken(id, email)
	if err != nil {
		log.Error("falha ao gerar access token", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(id, email)
	if err != nil {
		log.Error("falha ao gerar refresh token", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// canSignIn holds for active, not dismissed employees with a password.
func canSignIn(e *model.Employee) bool {
	return e.Active && e.TerminationDate == nil && e.PasswordHash != ""
}
