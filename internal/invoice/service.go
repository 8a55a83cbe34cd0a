package invoice

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pizzaria-erp/go-api-server/internal/finance"
	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
	"github.com/pizzaria-erp/go-api-server/internal/shared/taxid"
)

type InvoiceService struct {
	invoices   *InvoiceRepository
	conditions *finance.PaymentConditionRepository
	payables   *finance.AccountPayableRepository
}

func NewInvoiceService(invoices *InvoiceRepository, conditions *finance.PaymentConditionRepository, payables *finance.AccountPayableRepository) *InvoiceService {
	return &InvoiceService{
		invoices:   invoices,
		conditions: conditions,
		payables:   payables,
	}
}

// Register stores an incoming invoice with its items and creates one
// payable per installment of its payment condition. Statements commit one
// by one; a failure midway is logged with what was already written.
func (s *InvoiceService) Register(ctx context.Context, n *model.Invoice) (*model.Invoice, []*model.AccountPayable, error) {
	log := logger.FromContext(ctx)

	if n.AccessKey != "" {
		if !taxid.ValidAccessKey(n.AccessKey) {
			return nil, nil, fmt.Errorf("chave %q: %w", n.AccessKey, ErrInvalidAccessKey)
		}
		if _, found, err := s.invoices.FindByAccessKey(ctx, n.AccessKey); err != nil {
			return nil, nil, err
		} else if found {
			return nil, nil, fmt.Errorf("chave %q: %w", n.AccessKey, ErrInvoiceDuplicate)
		}
	}
	if _, found, err := s.invoices.FindByNumber(ctx, n.SupplierID, n.Number, n.Series); err != nil {
		return nil, nil, err
	} else if found {
		return nil, nil, fmt.Errorf("número %s série %s: %w", n.Number, n.Series, ErrInvoiceDuplicate)
	}

	condition, found, err := s.conditions.FindByID(ctx, n.PaymentConditionID)
	if err != nil {
		return nil, nil, err
	}
	if !found || !condition.Active || len(condition.Installments) == 0 {
		return nil, nil, fmt.Errorf("condição %d: %w", n.PaymentConditionID, ErrConditionNotUsable)
	}

	n.Recalculate()
	n.Status = model.InvoiceActive
	n.PaymentCondition = condition

	if _, err := s.invoices.Apply(ctx, repository.Insert(n)); err != nil {
		return nil, nil, err
	}
	if err := s.invoices.SaveItems(ctx, n); err != nil {
		log.Error("itens da nota não gravados", "invoice_id", n.ID, "error", err)
		return nil, nil, err
	}

	generated := Payables(n, condition)
	saved := make([]*model.AccountPayable, 0, len(generated))
	for i := range generated {
		p, err := s.payables.Apply(ctx, repository.Insert(&generated[i]))
		if err != nil {
			log.Error("contas a pagar incompletas", "invoice_id", n.ID, "saved", len(saved), "error", err)
			return nil, nil, err
		}
		saved = append(saved, p)
	}

	log.Info("nota fiscal registrada",
		"invoice_id", n.ID, "numero", n.Number, "total", n.Total.StringFixed(2), "parcelas", len(saved))
	return n, saved, nil
}

// Cancel marks an invoice as cancelled and cancels its open payables.
func (s *InvoiceService) Cancel(ctx context.Context, id int64) (*model.Invoice, error) {
	n, found, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("nota %d: %w", id, ErrInvoiceNotFound)
	}
	if n.Status == model.InvoiceCancelled {
		return nil, fmt.Errorf("nota %d: %w", id, ErrInvoiceCancelled)
	}

	n.Status = model.InvoiceCancelled
	if _, err := s.invoices.Apply(ctx, repository.Update(n.ID, n)); err != nil {
		return nil, err
	}
	cancelled, err := s.payables.CancelOpenByInvoice(ctx, n.ID)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("nota fiscal cancelada", "invoice_id", n.ID, "contas_canceladas", cancelled)
	return n, nil
}

// Payables splits the invoice total over the installments of condition.
// Each amount is rounded to cents; the last installment takes the remainder
// so the amounts add up to the total exactly.
func Payables(n *model.Invoice, condition *model.PaymentCondition) []model.AccountPayable {
	installments := append([]model.Installment(nil), condition.Installments...)
	sort.Slice(installments, func(i, j int) bool { return installments[i].Number < installments[j].Number })

	out := make([]model.AccountPayable, len(installments))
	remaining := n.Total
	for i, inst := range installments {
		amount := n.Total.Mul(inst.Percentage).Div(decimal.NewFromInt(100)).Round(2)
		if i == len(installments)-1 {
			amount = remaining
		}
		remaining = remaining.Sub(amount)

		methodID := inst.PaymentMethodID
		invoiceID := n.ID
		out[i] = model.AccountPayable{
			Title: model.Title{
				DocumentNumber:    n.Number,
				InstallmentNumber: inst.Number,
				PaymentMethodID:   &methodID,
				Amount:            amount,
				IssueDate:         n.IssueDate,
				DueDate:           n.IssueDate.AddDate(0, 0, inst.Days),
				Status:            model.AccountOpen,
			},
			InvoiceID:  &invoiceID,
			SupplierID: n.SupplierID,
		}
	}
	return out
}
