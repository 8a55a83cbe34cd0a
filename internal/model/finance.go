package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod struct {
	Record
	Description string `json:"descricao" binding:"required,max=60"`
}

// PaymentCondition is a row of condicao_pagamento with its installments.
// Conditions are deactivated, never deleted.
type PaymentCondition struct {
	Record
	Description  string          `json:"descricao" binding:"required,max=60"`
	InterestRate decimal.Decimal `json:"taxaJuros"`
	FineRate     decimal.Decimal `json:"taxaMulta"`
	DiscountRate decimal.Decimal `json:"taxaDesconto"`
	Installments []Installment   `json:"parcelas" binding:"required,min=1,dive"`
}

// TotalPercentage sums the installment percentages; a valid condition sums to 100.
func (c *PaymentCondition) TotalPercentage() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range c.Installments {
		total = total.Add(inst.Percentage)
	}
	return total
}

// Installment is a row of parcela_condicao_pagamento.
type Installment struct {
	Record
	PaymentConditionID int64           `json:"condicaoPagamentoId"`
	Number             int             `json:"numero" binding:"required,min=1"`
	Days               int             `json:"dias" binding:"min=0"`
	Percentage         decimal.Decimal `json:"percentual"`
	PaymentMethodID    int64           `json:"formaPagamentoId" binding:"required"`
	PaymentMethod      *PaymentMethod  `json:"formaPagamento,omitempty" binding:"-"`
}

// AccountStatus is the lifecycle of a payable or receivable.
type AccountStatus string

const (
	AccountOpen      AccountStatus = "ABERTA"
	AccountPaid      AccountStatus = "PAGA"
	AccountCancelled AccountStatus = "CANCELADA"
)

// Title holds the columns shared by conta_pagar and conta_receber.
type Title struct {
	DocumentNumber    string              `json:"numeroDocumento" binding:"max=30"`
	InstallmentNumber int                 `json:"numeroParcela" binding:"min=0"`
	PaymentMethodID   *int64              `json:"formaPagamentoId"`
	PaymentMethod     *PaymentMethod      `json:"formaPagamento,omitempty" binding:"-"`
	Amount            decimal.Decimal     `json:"valor"`
	IssueDate         time.Time           `json:"dataEmissao" binding:"required"`
	DueDate           time.Time           `json:"dataVencimento" binding:"required"`
	PaymentDate       *time.Time          `json:"dataPagamento"`
	PaidAmount        decimal.NullDecimal `json:"valorPago"`
	Interest          decimal.Decimal     `json:"juros"`
	Fine              decimal.Decimal     `json:"multa"`
	Discount          decimal.Decimal     `json:"desconto"`
	Status            AccountStatus       `json:"situacao" binding:"omitempty,oneof=ABERTA PAGA CANCELADA"`
	Notes             string              `json:"observacao" binding:"max=255"`
}

// AccountPayable is a row of conta_pagar. InvoiceID is a bare foreign key.
type AccountPayable struct {
	Record
	Title
	InvoiceID  *int64    `json:"nfeId"`
	SupplierID int64     `json:"fornecedorId" binding:"required"`
	Supplier   *Supplier `json:"fornecedor,omitempty" binding:"-"`
}

// AccountReceivable is a row of conta_receber.
type AccountReceivable struct {
	Record
	Title
	CustomerID int64     `json:"clienteId" binding:"required"`
	Customer   *Customer `json:"cliente,omitempty" binding:"-"`
}
