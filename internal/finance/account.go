package finance

import (
	"context"
	"time"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/partner"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
)

var titleColumns = []string{
	"numero_documento", "numero_parcela", "forma_pagamento_id", "valor",
	"data_emissao", "data_vencimento", "data_pagamento", "valor_pago",
	"juros", "multa", "desconto", "situacao", "observacao",
}

func readTitle(row *repository.Row, t *model.Title) {
	t.DocumentNumber = row.String("numero_documento")
	t.InstallmentNumber = row.Int("numero_parcela")
	t.PaymentMethodID = row.NullInt64("forma_pagamento_id")
	t.Amount = row.Decimal("valor")
	t.IssueDate = row.Time("data_emissao")
	t.DueDate = row.Time("data_vencimento")
	t.PaymentDate = row.NullTime("data_pagamento")
	t.PaidAmount = row.NullDecimal("valor_pago")
	t.Interest = row.Decimal("juros")
	t.Fine = row.Decimal("multa")
	t.Discount = row.Decimal("desconto")
	t.Status = model.AccountStatus(row.String("situacao"))
	t.Notes = row.String("observacao")
}

func titleValues(t *model.Title) []any {
	status := t.Status
	if status == "" {
		status = model.AccountOpen
	}
	return []any{
		t.DocumentNumber, t.InstallmentNumber, t.PaymentMethodID, t.Amount,
		t.IssueDate, t.DueDate, t.PaymentDate, t.PaidAmount,
		t.Interest, t.Fine, t.Discount, string(status), t.Notes,
	}
}

// AccountPayableRepository persists conta_pagar. Supplier and payment
// method are resolved by separate lookups.
type AccountPayableRepository struct {
	*repository.Base[model.AccountPayable, *model.AccountPayable]
	suppliers *partner.SupplierRepository
	methods   *PaymentMethodRepository
}

func NewAccountPayableRepository(ctx context.Context, deps repository.Deps, suppliers *partner.SupplierRepository, methods *PaymentMethodRepository) *AccountPayableRepository {
	table := repository.Table{
		Name:    "conta_pagar",
		Alias:   "cpg",
		Entity:  "accountPayable",
		OrderBy: "data_vencimento",
		Columns: append(append([]string{}, titleColumns...), "nfe_id", "fornecedor_id"),
	}
	return &AccountPayableRepository{
		Base: repository.New[model.AccountPayable, *model.AccountPayable](ctx, deps, table,
			func(row *repository.Row, a *model.AccountPayable) {
				readTitle(row, &a.Title)
				a.InvoiceID = row.NullInt64("nfe_id")
				a.SupplierID = row.Int64("fornecedor_id")
			},
			func(a *model.AccountPayable) []any {
				return append(titleValues(&a.Title), a.InvoiceID, a.SupplierID)
			},
		),
		suppliers: suppliers,
		methods:   methods,
	}
}

func (r *AccountPayableRepository) List(ctx context.Context, where string, args ...any) ([]*model.AccountPayable, error) {
	accounts, err := r.Select(ctx, repository.Query{Name: "list", Where: where, Args: args}, nil)
	if err != nil {
		return nil, err
	}
	suppliers := repository.NewResolver[*model.Supplier](ctx, r.suppliers)
	methods := repository.NewResolver[*model.PaymentMethod](ctx, r.methods)
	for _, a := range accounts {
		a.Supplier = suppliers.Get(a.SupplierID)
		a.PaymentMethod = methods.Optional(a.PaymentMethodID)
	}
	if err := suppliers.Err(); err != nil {
		return nil, err
	}
	return accounts, methods.Err()
}

func (r *AccountPayableRepository) FindAll(ctx context.Context) ([]*model.AccountPayable, error) {
	return r.List(ctx, "")
}

func (r *AccountPayableRepository) FindByID(ctx context.Context, id int64) (*model.AccountPayable, bool, error) {
	return repository.First(r.List(ctx, "cpg.id = ?", id))
}

func (r *AccountPayableRepository) FindBySupplier(ctx context.Context, supplierID int64) ([]*model.AccountPayable, error) {
	return r.List(ctx, "cpg.fornecedor_id = ?", supplierID)
}

func (r *AccountPayableRepository) FindByInvoice(ctx context.Context, invoiceID int64) ([]*model.AccountPayable, error) {
	return r.List(ctx, "cpg.nfe_id = ?", invoiceID)
}

func (r *AccountPayableRepository) FindByStatus(ctx context.Context, status model.AccountStatus) ([]*model.AccountPayable, error) {
	return r.List(ctx, "cpg.situacao = ?", string(status))
}

// FindDueBetween lists accounts due in [from, to], both days included.
func (r *AccountPayableRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]*model.AccountPayable, error) {
	return r.List(ctx, "cpg.data_vencimento >= ? AND cpg.data_vencimento <= ?", day(from), day(to))
}

// AccountReceivableRepository persists conta_receber. Customer and payment
// method are resolved by separate lookups.
type AccountReceivableRepository struct {
	*repository.Base[model.AccountReceivable, *model.AccountReceivable]
	customers *partner.CustomerRepository
	methods   *PaymentMethodRepository
}

func NewAccountReceivableRepository(ctx context.Context, deps repository.Deps, customers *partner.CustomerRepository, methods *PaymentMethodRepository) *AccountReceivableRepository {
	table := repository.Table{
		Name:    "conta_receber",
		Alias:   "cr",
		Entity:  "accountReceivable",
		OrderBy: "data_vencimento",
		Columns: append(append([]string{}, titleColumns...), "cliente_id"),
	}
	return &AccountReceivableRepository{
		Base: repository.New[model.AccountReceivable, *model.AccountReceivable](ctx, deps, table,
			func(row *repository.Row, a *model.AccountReceivable) {
				readTitle(row, &a.Title)
				a.CustomerID = row.Int64("cliente_id")
			},
			func(a *model.AccountReceivable) []any {
				return append(titleValues(&a.Title), a.CustomerID)
			},
		),
		customers: customers,
		methods:   methods,
	}
}

func (r *AccountReceivableRepository) List(ctx context.Context, where string, args ...any) ([]*model.AccountReceivable, error) {
	accounts, err := r.Select(ctx, repository.Query{Name: "list", Where: where, Args: args}, nil)
	if err != nil {
		return nil, err
	}
	customers := repository.NewResolver[*model.Customer](ctx, r.customers)
	methods := repository.NewResolver[*model.PaymentMethod](ctx, r.methods)
	for _, a := range accounts {
		a.Customer = customers.Get(a.CustomerID)
		a.PaymentMethod = methods.Optional(a.PaymentMethodID)
	}
	if err := customers.Err(); err != nil {
		return nil, err
	}
	return accounts, methods.Err()
}

func (r *AccountReceivableRepository) FindAll(ctx context.Context) ([]*model.AccountReceivable, error) {
	return r.List(ctx, "")
}

func (r *AccountReceivableRepository) FindByID(ctx context.Context, id int64) (*model.AccountReceivable, bool, error) {
	return repository.First(r.List(ctx, "cr.id = ?", id))
}

func (r *AccountReceivableRepository) FindByCustomer(ctx context.Context, customerID int64) ([]*model.AccountReceivable, error) {
	return r.List(ctx, "cr.cliente_id = ?", customerID)
}

func (r *AccountReceivableRepository) FindByStatus(ctx context.Context, status model.AccountStatus) ([]*model.AccountReceivable, error) {
	return r.List(ctx, "cr.situacao = ?", string(status))
}

// FindDueBetween lists accounts due in [from, to], both days included.
func (r *AccountReceivableRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]*model.AccountReceivable, error) {
	return r.List(ctx, "cr.data_vencimento >= ? AND cr.data_vencimento <= ?", day(from), day(to))
}

// day truncates t to midnight UTC, the resolution of DATE columns.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
