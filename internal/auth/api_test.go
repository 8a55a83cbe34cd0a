package auth_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pizzaria-erp/go-api-server/internal/auth"
	"github.com/pizzaria-erp/go-api-server/internal/employee"
	"github.com/pizzaria-erp/go-api-server/internal/location"
	"github.com/pizzaria-erp/go-api-server/internal/model"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
	"github.com/pizzaria-erp/go-api-server/internal/shared/testutil"
	"github.com/pizzaria-erp/go-api-server/internal/shared/token"
)

const (
	testEmail    = "caixa@pizzaria.com.br"
	testPassword = "segredo123"
)

// setupTestEnvironment creates all dependencies needed for auth handler tests
func setupTestEnvironment(t *testing.T) (*auth.AuthHandler, *testutil.MockTokenManager, *employee.EmployeeRepository) {
	t.Helper()
	ctx := context.Background()

	// Setup test database
	db := testutil.SetupTestDB(t)
	deps := repository.Deps{DB: db}

	// Setup dependencies
	countries := location.NewCountryRepository(ctx, deps)
	states := location.NewStateRepository(ctx, deps, countries)
	cities := location.NewCityRepository(ctx, deps, states)
	positions := employee.NewJobPositionRepository(ctx, deps)
	employees := employee.NewEmployeeRepository(ctx, deps, positions, cities)

	mockTokenManager := testutil.NewMockTokenManager()
	authService := auth.NewAuthService(employees, mockTokenManager)
	authHandler := auth.NewAuthHandler(authService)

	return authHandler, mockTokenManager, employees
}

// seedEmployee stores an employee that may sign in with testEmail/testPassword.
func seedEmployee(t *testing.T, employees *employee.EmployeeRepository, positions *employee.JobPositionRepository) *model.Employee {
	t.Helper()
	ctx := context.Background()

	position, err := positions.Save(ctx, &model.JobPosition{Name: "Caixa", BaseSalary: decimal.NewFromInt(1800)})
	require.NoError(t, err)

	emp, err := employees.Save(ctx, &model.Employee{
		Name:          "Maria Souza",
		CPF:           "529.982.247-25",
		Email:         testEmail,
		Salary:        decimal.NewFromInt(2000),
		HireDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		JobPositionID: position.ID,
	})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, employees.SetPasswordHash(ctx, emp.ID, string(hash)))
	return emp
}

func setupWithEmployee(t *testing.T) (*auth.AuthHandler, *testutil.MockTokenManager, *employee.EmployeeRepository, *model.Employee) {
	t.Helper()

	authHandler, tokens, employees := setupTestEnvironment(t)
	positions := employee.NewJobPositionRepository(context.Background(), repository.Deps{DB: employees.DB()})
	emp := seedEmployee(t, employees, positions)
	return authHandler, tokens, employees, emp
}

func TestLogin_Success(t *testing.T) {
	// Given: An employee with a password
	authHandler, tokens, _, emp := setupWithEmployee(t)

	var issuedFor string
	tokens.GenerateAccessTokenFunc = func(employeeID, email string) (string, error) {
		issuedFor = employeeID
		return "access-" + email, nil
	}

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When: Execute login request
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Email: "CAIXA@pizzaria.com.br", Password: testPassword},
	})

	// Then: Both tokens are returned for that employee
	require.Equal(t, http.StatusOK, recorder.Code)

	var response auth.LoginResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "access-"+testEmail, response.AccessToken)
	assert.Equal(t, "mock-refresh-token", response.RefreshToken)
	assert.Equal(t, formatID(emp.ID), issuedFor)
}

func TestLogin_WrongPassword(t *testing.T) {
	// Given: An employee with a password
	authHandler, _, _, _ := setupWithEmployee(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When: Login with another password
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Email: testEmail, Password: "outrasenha"},
	})

	// Then: Verify error response
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-003", errorResponse.Code)
	assert.NotEmpty(t, errorResponse.Message)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	// Given: No employee with the email
	authHandler, _, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When: Execute login request
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Email: "ninguem@pizzaria.com.br", Password: testPassword},
	})

	// Then: Same answer as a wrong password
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-003", errorResponse.Code)
}

func TestLogin_DismissedEmployeeIsRejected(t *testing.T) {
	// Given: The employee was dismissed
	authHandler, _, employees, emp := setupWithEmployee(t)

	dismissed := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	emp.TerminationDate = &dismissed
	_, err := employees.Apply(context.Background(), repository.Update(emp.ID, emp))
	require.NoError(t, err)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When: Login with the right password
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Email: testEmail, Password: testPassword},
	})

	// Then: Access is denied
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestLogin_ValidationError_MissingRequiredFields(t *testing.T) {
	// Given: Setup test environment
	authHandler, _, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	testCases := []struct {
		name        string
		requestBody map[string]string
		description string
	}{
		{
			name:        "Missing email",
			requestBody: map[string]string{"senha": testPassword},
			description: "Should fail when email is missing",
		},
		{
			name:        "Missing password",
			requestBody: map[string]string{"email": testEmail},
			description: "Should fail when password is missing",
		},
		{
			name:        "Invalid email",
			requestBody: map[string]string{"email": "caixa", "senha": testPassword},
			description: "Should fail when email is malformed",
		},
		{
			name:        "Password too short",
			requestBody: map[string]string{"email": testEmail, "senha": "curta"},
			description: "Should fail when password has less than 8 characters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When: Execute request with invalid body
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/auth/login",
				Body:   tc.requestBody,
			})

			// Then: Verify validation error
			assert.Equal(t, http.StatusBadRequest, recorder.Code, tc.description)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.NotEmpty(t, errorResponse.Message, tc.description)
			assert.NotEmpty(t, errorResponse.Code, tc.description)
		})
	}
}

func TestRefresh_Success(t *testing.T) {
	// Given: A refresh token for an active employee
	authHandler, tokens, _, emp := setupWithEmployee(t)
	tokens.ValidateTokenFunc = func(string) (*token.Claims, error) {
		return &token.Claims{EmployeeID: formatID(emp.ID), Email: testEmail, TokenType: token.REFRESH}, nil
	}

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/refresh", authHandler.Refresh)

	// When: Exchange it
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/refresh",
		Body:   auth.RefreshRequest{RefreshToken: "refresh"},
	})

	// Then: A new pair is issued
	require.Equal(t, http.StatusOK, recorder.Code)

	var response auth.LoginResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "mock-access-token", response.AccessToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	// Given: The token presented is an access token
	authHandler, tokens, _, emp := setupWithEmployee(t)
	tokens.ValidateTokenFunc = func(string) (*token.Claims, error) {
		return &token.Claims{EmployeeID: formatID(emp.ID), TokenType: token.ACCESS}, nil
	}

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/refresh", authHandler.Refresh)

	// When: Exchange it
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/refresh",
		Body:   auth.RefreshRequest{RefreshToken: "access"},
	})

	// Then: Verify error response
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-004", errorResponse.Code)
}
