package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleRequest is the body of POST /:id/baixa. Every field is optional.
type SettleRequest struct {
	PaymentDate     *time.Time      `json:"dataPagamento"`
	PaidAmount      decimal.Decimal `json:"valorPago"`
	Interest        decimal.Decimal `json:"juros"`
	Fine            decimal.Decimal `json:"multa"`
	Discount        decimal.Decimal `json:"desconto"`
	PaymentMethodID *int64          `json:"formaPagamentoId"`
}
