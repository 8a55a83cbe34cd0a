package partner_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzaria-erp/go-api-server/internal/partner"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/testutil"
)

type customerResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"nome"`
	Document      string `json:"cpfCnpj"`
	Active        bool   `json:"ativo"`
	CreditLimit   string `json:"limiteCredito"`
	CityID        *int64 `json:"cidadeId"`
	DataCadastro  string `json:"dataCadastro"`
	UltimaAlterac string `json:"ultimaModificacao"`
	City          *struct {
		Name string `json:"nome"`
	} `json:"cidade"`
}

func setupRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()

	f := setupFixture(t)
	router := testutil.SetupTestRouter()
	partner.RegisterRoutes(router.Group("/api/v1"), f.partner)
	return router, f
}

func acmeBody(cityID int64) map[string]any {
	return map[string]any{
		"tipoPessoa":    "J",
		"nome":          "Acme",
		"cpfCnpj":       "11.222.333/0001-81",
		"limiteCredito": "1500.50",
		"cidadeId":      cityID,
	}
}

func TestCustomerAPI_Lifecycle(t *testing.T) {
	router, f := setupRouter(t)

	// When: create
	w := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/clientes", Body: acmeBody(f.cityID)})

	// Then
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created customerResponse
	testutil.ParseResponse(t, w, &created)
	assert.NotZero(t, created.ID)
	assert.True(t, created.Active)
	assert.Equal(t, "1500.5", created.CreditLimit)
	assert.Equal(t, created.DataCadastro, created.UltimaAlterac)

	// When: get
	w = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: fmt.Sprintf("/api/v1/clientes/%d", created.ID)})

	// Then: the city graph is attached
	require.Equal(t, http.StatusOK, w.Code)
	var got customerResponse
	testutil.ParseResponse(t, w, &got)
	require.NotNil(t, got.City)
	assert.Equal(t, "Campinas", got.City.Name)

	// When: update
	body := acmeBody(f.cityID)
	body["nome"] = "Acme Ltda"
	w = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPut, URL: fmt.Sprintf("/api/v1/clientes/%d", created.ID), Body: body})

	// Then
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated customerResponse
	testutil.ParseResponse(t, w, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Acme Ltda", updated.Name)
	assert.Equal(t, created.DataCadastro, updated.DataCadastro)

	// When: search
	w = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/clientes?nome=ltda"})

	// Then
	require.Equal(t, http.StatusOK, w.Code)
	var list []customerResponse
	testutil.ParseResponse(t, w, &list)
	assert.Len(t, list, 1)

	// When: delete
	w = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: fmt.Sprintf("/api/v1/clientes/%d", created.ID)})
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Then
	w = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: fmt.Sprintf("/api/v1/clientes/%d", created.ID)})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerAPI_FilterByCity(t *testing.T) {
	router, f := setupRouter(t)
	w := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/clientes", Body: acmeBody(f.cityID)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: fmt.Sprintf("/api/v1/clientes?cidade=%d", f.cityID)})
	require.Equal(t, http.StatusOK, w.Code)
	var list []customerResponse
	testutil.ParseResponse(t, w, &list)
	assert.Len(t, list, 1)

	w = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/clientes?cidade=abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerAPI_Errors(t *testing.T) {
	router, f := setupRouter(t)
	w := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/clientes", Body: acmeBody(f.cityID)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	invalidDocument := acmeBody(f.cityID)
	invalidDocument["cpfCnpj"] = "11.222.333/0001-00"
	mismatch := acmeBody(f.cityID)
	mismatch["tipoPessoa"] = "F"

	tests := []struct {
		name       string
		req        testutil.TestRequest
		wantStatus int
		wantCode   string
	}{
		{
			name:       "duplicate document",
			req:        testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/clientes", Body: acmeBody(f.cityID)},
			wantStatus: http.StatusConflict,
			wantCode:   "PARTNER-002",
		},
		{
			name:       "natural person with CNPJ",
			req:        testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/clientes", Body: mismatch},
			wantStatus: http.StatusBadRequest,
			wantCode:   "PARTNER-001",
		},
		{
			name:       "invalid check digits",
			req:        testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/clientes", Body: invalidDocument},
			wantStatus: http.StatusBadRequest,
			wantCode:   sharedError.ValidationFailed.Code,
		},
		{
			name:       "missing record",
			req:        testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/clientes/9999"},
			wantStatus: http.StatusNotFound,
			wantCode:   sharedError.NotFound.Code,
		},
		{
			name:       "update of missing record",
			req:        testutil.TestRequest{Method: http.MethodPut, URL: "/api/v1/clientes/9999", Body: map[string]any{"tipoPessoa": "F", "nome": "Ninguém"}},
			wantStatus: http.StatusNotFound,
			wantCode:   sharedError.NotFound.Code,
		},
		{
			name:       "invalid id",
			req:        testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/clientes/abc"},
			wantStatus: http.StatusBadRequest,
			wantCode:   sharedError.InvalidRequest.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.ExecuteRequest(t, router, tt.req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			var resp sharedError.ErrorResponse
			testutil.ParseResponse(t, w, &resp)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}
