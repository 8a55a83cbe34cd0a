package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
)

var hundred = decimal.NewFromInt(100)

// CheckCondition validates installment numbering and that percentages sum to 100.
func CheckCondition(_ context.Context, c *model.PaymentCondition) error {
	seen := make(map[int]bool, len(c.Installments))
	for _, inst := range c.Installments {
		if seen[inst.Number] {
			return fmt.Errorf("parcela %d: %w", inst.Number, ErrDuplicateNumber)
		}
		seen[inst.Number] = true
	}
	if total := c.TotalPercentage(); !total.Equal(hundred) {
		return fmt.Errorf("percentuais somam %s: %w", total.String(), ErrInvalidPercentages)
	}
	return nil
}

// CheckTitle validates dates and defaults the status of a new account.
func CheckTitle(t *model.Title) error {
	if t.DueDate.Before(t.IssueDate) {
		return fmt.Errorf("vencimento %s antes da emissão %s: %w",
			t.DueDate.Format(time.DateOnly), t.IssueDate.Format(time.DateOnly), ErrInvalidDueDate)
	}
	if t.Status == "" {
		t.Status = model.AccountOpen
	}
	return nil
}

// settle marks an open account as paid. A zero PaidAmount in the request
// means amount + interest + fine - discount.
func settle(t *model.Title, req SettleRequest, now time.Time) error {
	if t.Status != model.AccountOpen {
		return fmt.Errorf("situação %s: %w", t.Status, ErrAccountNotOpen)
	}
	if !req.Interest.IsZero() {
		t.Interest = req.Interest
	}
	if !req.Fine.IsZero() {
		t.Fine = req.Fine
	}
	if !req.Discount.IsZero() {
		t.Discount = req.Discount
	}
	if req.PaymentMethodID != nil {
		t.PaymentMethodID = req.PaymentMethodID
	}

	paid := req.PaidAmount
	if paid.IsZero() {
		paid = t.Amount.Add(t.Interest).Add(t.Fine).Sub(t.Discount)
	}
	date := now
	if req.PaymentDate != nil {
		date = *req.PaymentDate
	}

	t.PaidAmount = decimal.NewNullDecimal(paid)
	t.PaymentDate = &date
	t.Status = model.AccountPaid
	return nil
}

func cancel(t *model.Title) error {
	if t.Status != model.AccountOpen {
		return fmt.Errorf("situação %s: %w", t.Status, ErrAccountNotOpen)
	}
	t.Status = model.AccountCancelled
	return nil
}

func (r *AccountPayableRepository) Check(_ context.Context, a *model.AccountPayable) error {
	return CheckTitle(&a.Title)
}

func (r *AccountReceivableRepository) Check(_ context.Context, a *model.AccountReceivable) error {
	return CheckTitle(&a.Title)
}

// Settle records the payment of an open payable.
func (r *AccountPayableRepository) Settle(ctx context.Context, id int64, req SettleRequest) (*model.AccountPayable, error) {
	a, found, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &repository.PersistenceError{Entity: "accountPayable", Op: "settle", Err: repository.ErrNotFound}
	}
	if err := settle(&a.Title, req, r.Now()); err != nil {
		return nil, err
	}
	return r.Apply(ctx, repository.Update(a.ID, a))
}

// Cancel cancels an open payable.
func (r *AccountPayableRepository) Cancel(ctx context.Context, id int64) (*model.AccountPayable, error) {
	a, found, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &repository.PersistenceError{Entity: "accountPayable", Op: "cancel", Err: repository.ErrNotFound}
	}
	if err := cancel(&a.Title); err != nil {
		return nil, err
	}
	return r.Apply(ctx, repository.Update(a.ID, a))
}

// CancelOpenByInvoice cancels the open payables generated by an invoice and
// returns how many were cancelled. Paid payables are left alone.
func (r *AccountPayableRepository) CancelOpenByInvoice(ctx context.Context, invoiceID int64) (int64, error) {
	set, args := r.Stamped("situacao = ?", string(model.AccountCancelled))
	return r.Exec(ctx, "cancelOpenByInvoice",
		"UPDATE conta_pagar SET "+set+" WHERE nfe_id = ? AND situacao = ?",
		append(args, invoiceID, string(model.AccountOpen))...)
}

// Settle records the receipt of an open receivable.
func (r *AccountReceivableRepository) Settle(ctx context.Context, id int64, req SettleRequest) (*model.AccountReceivable, error) {
	a, found, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &repository.PersistenceError{Entity: "accountReceivable", Op: "settle", Err: repository.ErrNotFound}
	}
	if err := settle(&a.Title, req, r.Now()); err != nil {
		return nil, err
	}
	return r.Apply(ctx, repository.Update(a.ID, a))
}

func (r *AccountReceivableRepository) Cancel(ctx context.Context, id int64) (*model.AccountReceivable, error) {
	a, found, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &repository.PersistenceError{Entity: "accountReceivable", Op: "cancel", Err: repository.ErrNotFound}
	}
	if err := cancel(&a.Title); err != nil {
		return nil, err
	}
	return r.Apply(ctx, repository.Update(a.ID, a))
}
