package router_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pizzaria-erp/go-api-server/internal/auth"
	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/router"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/testutil"
)

type app struct {
	engine *gin.Engine
	repos  *router.Repositories
	token  string
}

func setupApp(t *testing.T) *app {
	t.Helper()

	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repos := router.NewRepositories(ctx, db, slog.Default())

	engine := testutil.SetupTestRouter()
	router.Setup(engine, testutil.NewTestConfig(), db, repos)

	position, err := repos.Employee.JobPositions.Save(ctx, &model.JobPosition{Name: "Gerente", BaseSalary: decimal.NewFromInt(4000)})
	require.NoError(t, err)
	manager, err := repos.Employee.Employees.Save(ctx, &model.Employee{
		Name:          "Marta Souza",
		CPF:           "529.982.247-25",
		Email:         "marta@pizzaria.com.br",
		HireDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		JobPositionID: position.ID,
	})
	require.NoError(t, err)
	hash, err := bcrypt.GenerateFromPassword([]byte("massa-fina-123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repos.Employee.Employees.SetPasswordHash(ctx, manager.ID, string(hash)))

	w := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Email: "marta@pizzaria.com.br", Password: "massa-fina-123"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login auth.LoginResponse
	testutil.ParseResponse(t, w, &login)
	require.NotEmpty(t, login.AccessToken)

	return &app{engine: engine, repos: repos, token: login.AccessToken}
}

// do sends an authenticated request
func (a *app) do(t *testing.T, method, url string, body any) *response {
	t.Helper()
	w := testutil.ExecuteRequest(t, a.engine, testutil.TestRequest{Method: method, URL: url, Body: body, Token: a.token})
	return &response{t: t, w: w, code: w.Code}
}

type response struct {
	t    *testing.T
	w    *httptest.ResponseRecorder
	code int
}

func (r *response) body() string { return r.w.Body.String() }

func (r *response) parse(v any) {
	r.t.Helper()
	testutil.ParseResponse(r.t, r.w, v)
}

func (r *response) errorCode() string {
	r.t.Helper()
	var resp sharedError.ErrorResponse
	testutil.ParseResponse(r.t, r.w, &resp)
	return resp.Code
}

func TestHealth_IsPublic(t *testing.T) {
	a := setupApp(t)

	w := testutil.ExecuteRequest(t, a.engine, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status string `json:"status"`
	}
	testutil.ParseResponse(t, w, &body)
	assert.Equal(t, "healthy", body.Status)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	a := setupApp(t)

	urls := []string{"/api/v1/paises", "/api/v1/produtos", "/api/v1/clientes", "/api/v1/contas-pagar", "/api/v1/notas-fiscais", "/api/v1/me"}
	for _, url := range urls {
		t.Run(url, func(t *testing.T) {
			w := testutil.ExecuteRequest(t, a.engine, testutil.TestRequest{Method: http.MethodGet, URL: url})

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var resp sharedError.ErrorResponse
			testutil.ParseResponse(t, w, &resp)
			assert.Equal(t, "AUTH-000", resp.Code)
		})
	}
}

func TestLocationAPI_WithLoginToken(t *testing.T) {
	// Given
	a := setupApp(t)

	// When
	created := a.do(t, http.MethodPost, "/api/v1/paises", map[string]string{"nome": "Brasil", "sigla": "BRA", "ddi": "+55"})

	// Then
	require.Equal(t, http.StatusCreated, created.code, created.body())
	var country struct {
		ID   int64  `json:"id"`
		Name string `json:"nome"`
	}
	created.parse(&country)
	assert.NotZero(t, country.ID)

	// When: a state pointing at it
	state := a.do(t, http.MethodPost, "/api/v1/estados", map[string]any{"nome": "São Paulo", "uf": "SP", "paisId": country.ID})

	// Then: reading it back carries the country
	require.Equal(t, http.StatusCreated, state.code, state.body())
	var saved struct {
		ID int64 `json:"id"`
	}
	state.parse(&saved)
	read := a.do(t, http.MethodGet, fmt.Sprintf("/api/v1/estados/%d", saved.ID), nil)
	require.Equal(t, http.StatusOK, read.code, read.body())
	var got struct {
		UF      string `json:"uf"`
		Country struct {
			Name string `json:"nome"`
		} `json:"pais"`
	}
	read.parse(&got)
	assert.Equal(t, "SP", got.UF)
	assert.Equal(t, "Brasil", got.Country.Name)

	list := a.do(t, http.MethodGet, "/api/v1/paises", nil)
	require.Equal(t, http.StatusOK, list.code)
	var countries []struct {
		Name string `json:"nome"`
	}
	list.parse(&countries)
	require.Len(t, countries, 1)
	assert.Equal(t, "Brasil", countries[0].Name)
}

func TestUpdate_IgnoresAuditFieldsInBody(t *testing.T) {
	// Given
	a := setupApp(t)
	created := a.do(t, http.MethodPost, "/api/v1/paises", map[string]any{
		"nome": "Brasil", "sigla": "BRA", "ddi": "+55",
		"dataCadastro": "1999-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, created.code, created.body())
	type country struct {
		ID        int64     `json:"id"`
		Active    bool      `json:"ativo"`
		CreatedAt time.Time `json:"dataCadastro"`
		UpdatedAt time.Time `json:"ultimaModificacao"`
	}
	var before country
	created.parse(&before)
	require.True(t, before.CreatedAt.After(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))

	// When: the body claims other audit values
	future := time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := a.do(t, http.MethodPut, fmt.Sprintf("/api/v1/paises/%d", before.ID), map[string]any{
		"nome": "República Federativa do Brasil", "sigla": "BRA", "ddi": "+55",
		"id":                99,
		"ativo":             false,
		"dataCadastro":      "1999-01-01T00:00:00Z",
		"ultimaModificacao": future,
	})

	// Then
	require.Equal(t, http.StatusOK, updated.code, updated.body())
	read := a.do(t, http.MethodGet, fmt.Sprintf("/api/v1/paises/%d", before.ID), nil)
	require.Equal(t, http.StatusOK, read.code, read.body())
	var after country
	read.parse(&after)
	assert.Equal(t, before.ID, after.ID)
	assert.True(t, after.Active)
	assert.True(t, after.CreatedAt.Equal(before.CreatedAt), after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt), after.UpdatedAt)
	assert.True(t, after.UpdatedAt.Before(future), after.UpdatedAt)
}

func TestList_SingleFilterOnly(t *testing.T) {
	a := setupApp(t)

	both := a.do(t, http.MethodGet, "/api/v1/contas-pagar?fornecedor=1&nfe=2", nil)
	assert.Equal(t, http.StatusBadRequest, both.code)
	assert.Equal(t, sharedError.InvalidRequest.Code, both.errorCode())

	one := a.do(t, http.MethodGet, "/api/v1/contas-pagar?nfe=2", nil)
	require.Equal(t, http.StatusOK, one.code, one.body())
	var payables []struct {
		ID int64 `json:"id"`
	}
	one.parse(&payables)
	assert.Empty(t, payables)
}

func TestPurchaseFlow(t *testing.T) {
	// Given: a supplier, a payment method and a product
	a := setupApp(t)
	ctx := context.Background()

	supplier, err := a.repos.Partner.Suppliers.Save(ctx, &model.Supplier{
		PersonType:  model.PersonLegal,
		CompanyName: "Laticínios Serra Azul Ltda",
		Document:    "11444777000161",
	})
	require.NoError(t, err)
	pix, err := a.repos.Finance.PaymentMethods.Save(ctx, &model.PaymentMethod{Description: "PIX"})
	require.NoError(t, err)
	unit, err := a.repos.Catalog.Units.Save(ctx, &model.Unit{Symbol: "KG", Description: "Quilograma"})
	require.NoError(t, err)
	cheese, err := a.repos.Catalog.Products.Save(ctx, &model.Product{Name: "Mussarela", UnitID: unit.ID})
	require.NoError(t, err)

	// When: a condition whose percentages do not add up
	bad := a.do(t, http.MethodPost, "/api/v1/condicoes-pagamento", map[string]any{
		"descricao": "Quebrada",
		"parcelas": []map[string]any{
			{"numero": 1, "dias": 0, "percentual": "40", "formaPagamentoId": pix.ID},
		},
	})

	// Then
	require.Equal(t, http.StatusBadRequest, bad.code, bad.body())
	assert.Equal(t, "FINANCE-001", bad.errorCode())

	// When: a 0/30 condition
	cond := a.do(t, http.MethodPost, "/api/v1/condicoes-pagamento", map[string]any{
		"descricao": "Entrada + 30",
		"parcelas": []map[string]any{
			{"numero": 1, "dias": 0, "percentual": "50", "formaPagamentoId": pix.ID},
			{"numero": 2, "dias": 30, "percentual": "50", "formaPagamentoId": pix.ID},
		},
	})
	require.Equal(t, http.StatusCreated, cond.code, cond.body())
	var condition struct {
		ID int64 `json:"id"`
	}
	cond.parse(&condition)

	// When: an invoice of 4 x 30.00
	reg := a.do(t, http.MethodPost, "/api/v1/notas-fiscais", map[string]any{
		"numero":              "987",
		"serie":               "1",
		"dataEmissao":         "2026-04-10T00:00:00Z",
		"fornecedorId":        supplier.ID,
		"condicaoPagamentoId": condition.ID,
		"itens": []map[string]any{
			{"produtoId": cheese.ID, "quantidade": "4", "valorUnitario": "30.00"},
		},
	})

	// Then: two payables of 60.00
	require.Equal(t, http.StatusCreated, reg.code, reg.body())
	var registered struct {
		Invoice struct {
			ID    int64           `json:"id"`
			Total decimal.Decimal `json:"valorTotal"`
		} `json:"notaFiscal"`
		Payables []struct {
			ID     int64           `json:"id"`
			Amount decimal.Decimal `json:"valor"`
			Status string          `json:"situacao"`
		} `json:"contasPagar"`
	}
	reg.parse(&registered)
	assert.Equal(t, "120.00", registered.Invoice.Total.StringFixed(2))
	require.Len(t, registered.Payables, 2)
	for _, p := range registered.Payables {
		assert.Equal(t, "60.00", p.Amount.StringFixed(2))
		assert.Equal(t, string(model.AccountOpen), p.Status)
	}

	// When: the same invoice again
	dup := a.do(t, http.MethodPost, "/api/v1/notas-fiscais", map[string]any{
		"numero":              "987",
		"serie":               "1",
		"dataEmissao":         "2026-04-10T00:00:00Z",
		"fornecedorId":        supplier.ID,
		"condicaoPagamentoId": condition.ID,
		"itens":               []map[string]any{{"produtoId": cheese.ID, "quantidade": "1", "valorUnitario": "1"}},
	})
	require.Equal(t, http.StatusConflict, dup.code, dup.body())
	assert.Equal(t, "INVOICE-002", dup.errorCode())

	// When: the down payment is settled without a body
	first := registered.Payables[0].ID
	paid := a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/contas-pagar/%d/baixa", first), nil)

	// Then
	require.Equal(t, http.StatusOK, paid.code, paid.body())
	var settled struct {
		Status    string          `json:"situacao"`
		PaidValue decimal.Decimal `json:"valorPago"`
	}
	paid.parse(&settled)
	assert.Equal(t, string(model.AccountPaid), settled.Status)
	assert.Equal(t, "60.00", settled.PaidValue.StringFixed(2))

	again := a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/contas-pagar/%d/baixa", first), nil)
	assert.Equal(t, http.StatusConflict, again.code)
	assert.Equal(t, "FINANCE-003", again.errorCode())

	// When: the invoice is cancelled
	cancel := a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/notas-fiscais/%d/cancelar", registered.Invoice.ID), nil)
	require.Equal(t, http.StatusOK, cancel.code, cancel.body())

	// Then: only the open payable is cancelled
	open := a.do(t, http.MethodGet, "/api/v1/contas-pagar/situacao/cancelada", nil)
	require.Equal(t, http.StatusOK, open.code)
	var cancelled []struct {
		ID int64 `json:"id"`
	}
	open.parse(&cancelled)
	require.Len(t, cancelled, 1)
	assert.Equal(t, registered.Payables[1].ID, cancelled[0].ID)

	invalid := a.do(t, http.MethodGet, "/api/v1/contas-pagar/situacao/vencida", nil)
	assert.Equal(t, http.StatusBadRequest, invalid.code)
}

