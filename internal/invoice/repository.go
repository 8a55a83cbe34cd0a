package invoice

import (
	"context"

	"github.com/pizzaria-erp/go-api-server/internal/catalog"
	"github.com/pizzaria-erp/go-api-server/internal/finance"
	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/partner"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
	"github.com/pizzaria-erp/go-api-server/internal/shared/taxid"
)

// ItemRepository persists item_nfe with the product graph joined.
type ItemRepository struct {
	*repository.Base[model.InvoiceItem, *model.InvoiceItem]
	products *catalog.ProductRepository
}

func NewItemRepository(ctx context.Context, deps repository.Deps, products *catalog.ProductRepository) *ItemRepository {
	table := repository.Table{
		Name:    "item_nfe",
		Alias:   "it",
		Entity:  "invoiceItem",
		OrderBy: "sequencia",
		Columns: []string{"nfe_id", "sequencia", "produto_id", "quantidade", "valor_unitario", "desconto", "valor_total"},
	}
	return &ItemRepository{
		Base: repository.New[model.InvoiceItem, *model.InvoiceItem](ctx, deps, table,
			func(row *repository.Row, i *model.InvoiceItem) {
				i.InvoiceID = row.Int64("nfe_id")
				i.Sequence = row.Int("sequencia")
				i.ProductID = row.Int64("produto_id")
				i.Quantity = row.Decimal("quantidade")
				i.UnitPrice = row.Decimal("valor_unitario")
				i.Discount = row.Decimal("desconto")
				i.Total = row.Decimal("valor_total")
			},
			func(i *model.InvoiceItem) []any {
				return []any{i.InvoiceID, i.Sequence, i.ProductID, i.Quantity, i.UnitPrice, i.Discount, i.Total}
			},
		),
		products: products,
	}
}

func (r *ItemRepository) FindByInvoice(ctx context.Context, invoiceID int64) ([]*model.InvoiceItem, error) {
	q := repository.Query{
		Name:   "findByInvoice",
		Select: r.Projection("it", "") + ", " + r.products.JoinColumns("pr"),
		From:   "item_nfe it " + r.products.JoinClause("pr", "it.produto_id"),
		Where:  "it.nfe_id = ?",
		Args:   []any{invoiceID},
	}
	return r.Select(ctx, q, func(row *repository.Row, i *model.InvoiceItem) {
		i.Product = r.products.MapJoined(row, "pr")
	})
}

func (r *ItemRepository) DeleteByInvoice(ctx context.Context, invoiceID int64) error {
	_, err := r.Exec(ctx, "deleteByInvoice", "DELETE FROM item_nfe WHERE nfe_id = ?", invoiceID)
	return err
}

// InvoiceRepository persists nfe. Supplier, payment condition and carrier
// are resolved by separate lookups; items are loaded per invoice.
type InvoiceRepository struct {
	*repository.Base[model.Invoice, *model.Invoice]
	items      *ItemRepository
	suppliers  *partner.SupplierRepository
	carriers   *partner.CarrierRepository
	conditions *finance.PaymentConditionRepository
}

func NewInvoiceRepository(
	ctx context.Context,
	deps repository.Deps,
	items *ItemRepository,
	suppliers *partner.SupplierRepository,
	carriers *partner.CarrierRepository,
	conditions *finance.PaymentConditionRepository,
) *InvoiceRepository {
	table := repository.Table{
		Name:    "nfe",
		Alias:   "n",
		Entity:  "invoice",
		OrderBy: "data_emissao",
		Columns: []string{
			"numero", "serie", "modelo", "chave_acesso", "data_emissao", "data_chegada",
			"tipo_frete", "valor_frete", "valor_seguro", "outras_despesas",
			"valor_produtos", "valor_total", "situacao", "observacao",
			"fornecedor_id", "condicao_pagamento_id", "transportadora_id",
		},
	}
	return &InvoiceRepository{
		Base:       repository.New[model.Invoice, *model.Invoice](ctx, deps, table, readInvoice, writeInvoice),
		items:      items,
		suppliers:  suppliers,
		carriers:   carriers,
		conditions: conditions,
	}
}

func readInvoice(row *repository.Row, n *model.Invoice) {
	n.Number = row.String("numero")
	n.Series = row.String("serie")
	n.Model = row.String("modelo")
	n.AccessKey = row.String("chave_acesso")
	n.IssueDate = row.Time("data_emissao")
	n.ArrivalDate = row.NullTime("data_chegada")
	n.FreightType = row.String("tipo_frete")
	n.FreightValue = row.Decimal("valor_frete")
	n.InsuranceValue = row.Decimal("valor_seguro")
	n.OtherExpenses = row.Decimal("outras_despesas")
	n.ProductsTotal = row.Decimal("valor_produtos")
	n.Total = row.Decimal("valor_total")
	n.Status = model.InvoiceStatus(row.String("situacao"))
	n.Notes = row.String("observacao")
	n.SupplierID = row.Int64("fornecedor_id")
	n.PaymentConditionID = row.Int64("condicao_pagamento_id")
	n.CarrierID = row.NullInt64("transportadora_id")
}

func writeInvoice(n *model.Invoice) []any {
	var key any
	if n.AccessKey != "" {
		key = taxid.Digits(n.AccessKey)
	}
	mod := n.Model
	if mod == "" {
		mod = "55"
	}
	status := n.Status
	if status == "" {
		status = model.InvoiceActive
	}
	return []any{
		n.Number, n.Series, mod, key, n.IssueDate, n.ArrivalDate,
		n.FreightType, n.FreightValue, n.InsuranceValue, n.OtherExpenses,
		n.ProductsTotal, n.Total, string(status), n.Notes,
		n.SupplierID, n.PaymentConditionID, n.CarrierID,
	}
}

func (r *InvoiceRepository) List(ctx context.Context, where string, args ...any) ([]*model.Invoice, error) {
	invoices, err := r.Select(ctx, repository.Query{Name: "list", Where: where, Args: args}, nil)
	if err != nil {
		return nil, err
	}

	suppliers := repository.NewResolver[*model.Supplier](ctx, r.suppliers)
	carriers := repository.NewResolver[*model.Carrier](ctx, r.carriers)
	conditions := repository.NewResolver[*model.PaymentCondition](ctx, r.conditions)
	for _, n := range invoices {
		n.Supplier = suppliers.Get(n.SupplierID)
		n.Carrier = carriers.Optional(n.CarrierID)
		n.PaymentCondition = conditions.Get(n.PaymentConditionID)

		items, err := r.items.FindByInvoice(ctx, n.ID)
		if err != nil {
			return nil, err
		}
		n.Items = make([]model.InvoiceItem, len(items))
		for i, item := range items {
			n.Items[i] = *item
		}
	}
	for _, err := range []error{suppliers.Err(), carriers.Err(), conditions.Err()} {
		if err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

func (r *InvoiceRepository) FindAll(ctx context.Context) ([]*model.Invoice, error) {
	return r.List(ctx, "")
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id int64) (*model.Invoice, bool, error) {
	return repository.First(r.List(ctx, "n.id = ?", id))
}

func (r *InvoiceRepository) FindBySupplier(ctx context.Context, supplierID int64) ([]*model.Invoice, error) {
	return r.List(ctx, "n.fornecedor_id = ?", supplierID)
}

// FindByAccessKey accepts the key with or without separators.
func (r *InvoiceRepository) FindByAccessKey(ctx context.Context, key string) (*model.Invoice, bool, error) {
	return repository.First(r.List(ctx, "n.chave_acesso = ?", taxid.Digits(key)))
}

// FindByNumber finds the invoice a supplier issued under number and series.
func (r *InvoiceRepository) FindByNumber(ctx context.Context, supplierID int64, number, series string) (*model.Invoice, bool, error) {
	return repository.First(r.List(ctx, "n.fornecedor_id = ? AND n.numero = ? AND n.serie = ?", supplierID, number, series))
}

// SaveItems inserts the items of a stored invoice, numbering them in order.
func (r *InvoiceRepository) SaveItems(ctx context.Context, n *model.Invoice) error {
	for i := range n.Items {
		item := &n.Items[i]
		item.ID = 0
		item.InvoiceID = n.ID
		if item.Sequence == 0 {
			item.Sequence = i + 1
		}
		if _, err := r.items.Apply(ctx, repository.Insert(item)); err != nil {
			return err
		}
	}
	return nil
}
