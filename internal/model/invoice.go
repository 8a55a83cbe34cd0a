package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceActive    InvoiceStatus = "ATIVA"
	InvoiceCancelled InvoiceStatus = "CANCELADA"
)

// Invoice is an incoming NFe (nfe) with its items.
type Invoice struct {
	Record
	Number             string            `json:"numero" binding:"required,numeric,max=9"`
	Series             string            `json:"serie" binding:"required,numeric,max=3"`
	Model              string            `json:"modelo" binding:"omitempty,oneof=55 65"`
	AccessKey          string            `json:"chaveAcesso" binding:"omitempty,nfekey"`
	IssueDate          time.Time         `json:"dataEmissao" binding:"required"`
	ArrivalDate        *time.Time        `json:"dataChegada"`
	FreightType        string            `json:"tipoFrete" binding:"omitempty,oneof=CIF FOB"`
	FreightValue       decimal.Decimal   `json:"valorFrete"`
	InsuranceValue     decimal.Decimal   `json:"valorSeguro"`
	OtherExpenses      decimal.Decimal   `json:"outrasDespesas"`
	ProductsTotal      decimal.Decimal   `json:"valorProdutos"`
	Total              decimal.Decimal   `json:"valorTotal"`
	Status             InvoiceStatus     `json:"situacao"`
	Notes              string            `json:"observacao" binding:"max=255"`
	SupplierID         int64             `json:"fornecedorId" binding:"required"`
	Supplier           *Supplier         `json:"fornecedor,omitempty" binding:"-"`
	PaymentConditionID int64             `json:"condicaoPagamentoId" binding:"required"`
	PaymentCondition   *PaymentCondition `json:"condicaoPagamento,omitempty" binding:"-"`
	CarrierID          *int64            `json:"transportadoraId"`
	Carrier            *Carrier          `json:"transportadora,omitempty" binding:"-"`
	Items              []InvoiceItem     `json:"itens" binding:"required,min=1,dive"`
}

// InvoiceItem is a row of item_nfe.
type InvoiceItem struct {
	Record
	InvoiceID int64           `json:"nfeId"`
	Sequence  int             `json:"sequencia"`
	ProductID int64           `json:"produtoId" binding:"required"`
	Product   *Product        `json:"produto,omitempty" binding:"-"`
	Quantity  decimal.Decimal `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"valorUnitario"`
	Discount  decimal.Decimal `json:"desconto"`
	Total     decimal.Decimal `json:"valorTotal"`
}

// Recalculate derives item totals, the products total and the invoice total.
func (inv *Invoice) Recalculate() {
	products := decimal.Zero
	for i := range inv.Items {
		item := &inv.Items[i]
		if item.Sequence == 0 {
			item.Sequence = i + 1
		}
		item.Total = item.Quantity.Mul(item.UnitPrice).Sub(item.Discount).Round(2)
		products = products.Add(item.Total)
	}
	inv.ProductsTotal = products
	inv.Total = products.Add(inv.FreightValue).Add(inv.InsuranceValue).Add(inv.OtherExpenses)
}
