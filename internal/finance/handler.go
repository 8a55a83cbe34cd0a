package finance

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
	"github.com/pizzaria-erp/go-api-server/internal/shared/handler"
)

type Repositories struct {
	PaymentMethods *PaymentMethodRepository
	Conditions     *PaymentConditionRepository
	Payables       *AccountPayableRepository
	Receivables    *AccountReceivableRepository
}

// RegisterRoutes mounts /formas-pagamento, /condicoes-pagamento,
// /contas-pagar and /contas-receber on rg.
func RegisterRoutes(rg *gin.RouterGroup, repos Repositories) {
	handler.RegisterResource[model.PaymentMethod](rg.Group("/formas-pagamento"), handler.Resource[*model.PaymentMethod]{
		Store:  repos.PaymentMethods,
		Search: repos.PaymentMethods.FindByName,
	})

	conditions := rg.Group("/condicoes-pagamento")
	conditions.GET("/ativas", func(c *gin.Context) {
		items, err := repos.Conditions.FindActive(c.Request.Context())
		if err != nil {
			handler.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})
	handler.RegisterResource[model.PaymentCondition](conditions, handler.Resource[*model.PaymentCondition]{
		Store:  repos.Conditions,
		Search: repos.Conditions.FindByName,
		Check:  CheckCondition,
		Delete: repos.Conditions.Delete,
	})

	payables := rg.Group("/contas-pagar")
	handler.RegisterResource[model.AccountPayable](payables, handler.Resource[*model.AccountPayable]{
		Store: repos.Payables,
		Filters: map[string]handler.FilterFunc[*model.AccountPayable]{
			"fornecedor": repos.Payables.FindBySupplier,
			"nfe":        repos.Payables.FindByInvoice,
		},
		Check: repos.Payables.Check,
	})
	registerAccountRoutes[*model.AccountPayable](payables, repos.Payables)

	receivables := rg.Group("/contas-receber")
	handler.RegisterResource[model.AccountReceivable](receivables, handler.Resource[*model.AccountReceivable]{
		Store: repos.Receivables,
		Filters: map[string]handler.FilterFunc[*model.AccountReceivable]{
			"cliente": repos.Receivables.FindByCustomer,
		},
		Check: repos.Receivables.Check,
	})
	registerAccountRoutes[*model.AccountReceivable](receivables, repos.Receivables)
}

type accountStore[P any] interface {
	FindByStatus(ctx context.Context, status model.AccountStatus) ([]P, error)
	FindDueBetween(ctx context.Context, from, to time.Time) ([]P, error)
	Settle(ctx context.Context, id int64, req SettleRequest) (P, error)
	Cancel(ctx context.Context, id int64) (P, error)
}

// registerAccountRoutes adds the payable/receivable extras:
//
//	GET  /situacao/:situacao
//	GET  /vencimentos?de=YYYY-MM-DD&ate=YYYY-MM-DD
//	POST /:id/baixa
//	POST /:id/cancelar
func registerAccountRoutes[P any](rg *gin.RouterGroup, store accountStore[P]) {
	rg.GET("/situacao/:situacao", func(c *gin.Context) {
		status := model.AccountStatus(strings.ToUpper(c.Param("situacao")))
		switch status {
		case model.AccountOpen, model.AccountPaid, model.AccountCancelled:
		default:
			handler.RespondError(c, errors.New("invalid status: "+string(status)), sharedError.InvalidRequest)
			return
		}
		items, err := store.FindByStatus(c.Request.Context(), status)
		if err != nil {
			handler.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	rg.GET("/vencimentos", func(c *gin.Context) {
		from, errFrom := time.Parse(time.DateOnly, c.Query("de"))
		to, errTo := time.Parse(time.DateOnly, c.Query("ate"))
		if err := errors.Join(errFrom, errTo); err != nil {
			handler.RespondError(c, err, sharedError.InvalidRequest)
			return
		}
		items, err := store.FindDueBetween(c.Request.Context(), from, to)
		if err != nil {
			handler.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	rg.POST("/:id/baixa", func(c *gin.Context) {
		id, ok := handler.ParseID(c, "id")
		if !ok {
			return
		}
		var req SettleRequest
		if c.Request.ContentLength != 0 && !handler.BindJSON(c, &req) {
			return
		}
		saved, err := store.Settle(c.Request.Context(), id, req)
		if err != nil {
			handler.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, saved)
	})

	rg.POST("/:id/cancelar", func(c *gin.Context) {
		id, ok := handler.ParseID(c, "id")
		if !ok {
			return
		}
		saved, err := store.Cancel(c.Request.Context(), id)
		if err != nil {
			handler.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, saved)
	})
}
