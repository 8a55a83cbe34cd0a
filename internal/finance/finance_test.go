package finance_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzaria-erp/go-api-server/internal/finance"
	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/router"
	"github.com/pizzaria-erp/go-api-server/internal/shared/testutil"
)

func setupRepositories(t *testing.T) *router.Repositories {
	t.Helper()
	return router.NewRepositories(context.Background(), testutil.SetupTestDB(t), slog.Default())
}

func seedMethods(t *testing.T, repos *router.Repositories) (pix, boleto *model.PaymentMethod) {
	t.Helper()

	ctx := context.Background()
	pix, err := repos.Finance.PaymentMethods.Save(ctx, &model.PaymentMethod{Description: "PIX"})
	require.NoError(t, err)
	boleto, err = repos.Finance.PaymentMethods.Save(ctx, &model.PaymentMethod{Description: "Boleto"})
	require.NoError(t, err)
	return pix, boleto
}

func thirtySixty(methodID int64) *model.PaymentCondition {
	return &model.PaymentCondition{
		Description: "30/60",
		Installments: []model.Installment{
			{Number: 1, Days: 30, Percentage: decimal.NewFromInt(50), PaymentMethodID: methodID},
			{Number: 2, Days: 60, Percentage: decimal.NewFromInt(50), PaymentMethodID: methodID},
		},
	}
}

func seedSupplier(t *testing.T, repos *router.Repositories) *model.Supplier {
	t.Helper()

	s, err := repos.Partner.Suppliers.Save(context.Background(), &model.Supplier{
		PersonType:  model.PersonLegal,
		CompanyName: "Laticínios Serra Ltda",
		Document:    "11444777000161",
	})
	require.NoError(t, err)
	return s
}

func TestCheckCondition(t *testing.T) {
	tests := []struct {
		name         string
		installments []model.Installment
		wantErr      error
	}{
		{
			name: "sums to 100",
			installments: []model.Installment{
				{Number: 1, Percentage: decimal.RequireFromString("33.33")},
				{Number: 2, Percentage: decimal.RequireFromString("33.33")},
				{Number: 3, Percentage: decimal.RequireFromString("33.34")},
			},
		},
		{
			name: "sums to 90",
			installments: []model.Installment{
				{Number: 1, Percentage: decimal.NewFromInt(50)},
				{Number: 2, Percentage: decimal.NewFromInt(40)},
			},
			wantErr: finance.ErrInvalidPercentages,
		},
		{
			name: "repeated number",
			installments: []model.Installment{
				{Number: 1, Percentage: decimal.NewFromInt(50)},
				{Number: 1, Percentage: decimal.NewFromInt(50)},
			},
			wantErr: finance.ErrDuplicateNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := finance.CheckCondition(context.Background(), &model.PaymentCondition{Installments: tt.installments})

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPaymentCondition_SaveLoadsInstallments(t *testing.T) {
	// Given
	repos := setupRepositories(t)
	pix, _ := seedMethods(t, repos)
	ctx := context.Background()

	// When
	saved, err := repos.Finance.Conditions.Save(ctx, thirtySixty(pix.ID))
	require.NoError(t, err)
	found, ok, err := repos.Finance.Conditions.FindByID(ctx, saved.ID)

	// Then
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "30/60", found.Description)
	require.Len(t, found.Installments, 2)
	assert.Equal(t, 1, found.Installments[0].Number)
	assert.Equal(t, 60, found.Installments[1].Days)
	assert.Equal(t, saved.ID, found.Installments[0].PaymentConditionID)
	require.NotNil(t, found.Installments[0].PaymentMethod)
	assert.Equal(t, "PIX", found.Installments[0].PaymentMethod.Description)
	assert.True(t, decimal.NewFromInt(100).Equal(found.TotalPercentage()))
}

func TestPaymentCondition_UpdateReplacesInstallments(t *testing.T) {
	// Given
	repos := setupRepositories(t)
	pix, boleto := seedMethods(t, repos)
	ctx := context.Background()
	saved, err := repos.Finance.Conditions.Save(ctx, thirtySixty(pix.ID))
	require.NoError(t, err)

	// When: the condition becomes a single boleto installment
	saved.Description = "À vista"
	saved.Installments = []model.Installment{
		{Number: 1, Days: 0, Percentage: decimal.NewFromInt(100), PaymentMethodID: boleto.ID},
	}
	_, err = repos.Finance.Conditions.Save(ctx, saved)
	require.NoError(t, err)

	// Then
	found, ok, err := repos.Finance.Conditions.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "À vista", found.Description)
	require.Len(t, found.Installments, 1)
	assert.Equal(t, boleto.ID, found.Installments[0].PaymentMethodID)
	assert.Equal(t, "Boleto", found.Installments[0].PaymentMethod.Description)
}

func TestPaymentCondition_DeleteDeactivates(t *testing.T) {
	// Given
	repos := setupRepositories(t)
	pix, _ := seedMethods(t, repos)
	ctx := context.Background()
	kept, err := repos.Finance.Conditions.Save(ctx, thirtySixty(pix.ID))
	require.NoError(t, err)
	retired := thirtySixty(pix.ID)
	retired.Description = "28 dias"
	retired, err = repos.Finance.Conditions.Save(ctx, retired)
	require.NoError(t, err)

	// When
	require.NoError(t, repos.Finance.Conditions.Delete(ctx, retired.ID))

	// Then: the row still exists, inactive, and is not offered anymore
	found, ok, err := repos.Finance.Conditions.FindByID(ctx, retired.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, found.Active)
	assert.Len(t, found.Installments, 2)

	active, err := repos.Finance.Conditions.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)
}

func newPayable(supplierID int64, amount string, due time.Time) *model.AccountPayable {
	return &model.AccountPayable{
		Title: model.Title{
			DocumentNumber:    "1234",
			InstallmentNumber: 1,
			Amount:            decimal.RequireFromString(amount),
			IssueDate:         due.AddDate(0, 0, -30),
			DueDate:           due,
		},
		SupplierID: supplierID,
	}
}

func TestPayable_SettleDefaultsPaidAmount(t *testing.T) {
	// Given
	repos := setupRepositories(t)
	supplier := seedSupplier(t, repos)
	pix, _ := seedMethods(t, repos)
	ctx := context.Background()
	payable := newPayable(supplier.ID, "1000.00", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repos.Finance.Payables.Check(ctx, payable))
	saved, err := repos.Finance.Payables.Save(ctx, payable)
	require.NoError(t, err)
	assert.Equal(t, model.AccountOpen, saved.Status)

	// When
	paidOn := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)
	settled, err := repos.Finance.Payables.Settle(ctx, saved.ID, finance.SettleRequest{
		PaymentDate:     &paidOn,
		Interest:        decimal.RequireFromString("12.50"),
		Fine:            decimal.RequireFromString("20"),
		Discount:        decimal.RequireFromString("2.50"),
		PaymentMethodID: &pix.ID,
	})

	// Then
	require.NoError(t, err)
	assert.Equal(t, model.AccountPaid, settled.Status)

	found, ok, err := repos.Finance.Payables.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.AccountPaid, found.Status)
	require.True(t, found.PaidAmount.Valid)
	assert.True(t, decimal.RequireFromString("1030").Equal(found.PaidAmount.Decimal), found.PaidAmount.Decimal.String())
	require.NotNil(t, found.PaymentDate)
	assert.True(t, found.PaymentDate.Equal(paidOn))
	require.NotNil(t, found.Supplier)
	assert.Equal(t, "Laticínios Serra Ltda", found.Supplier.CompanyName)
	require.NotNil(t, found.PaymentMethod)
	assert.Equal(t, "PIX", found.PaymentMethod.Description)

	// Then: a paid account cannot be settled or cancelled again
	_, err = repos.Finance.Payables.Settle(ctx, saved.ID, finance.SettleRequest{})
	assert.ErrorIs(t, err, finance.ErrAccountNotOpen)
	_, err = repos.Finance.Payables.Cancel(ctx, saved.ID)
	assert.ErrorIs(t, err, finance.ErrAccountNotOpen)
}

func TestPayable_CheckRejectsDueBeforeIssue(t *testing.T) {
	payable := newPayable(1, "10", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	payable.IssueDate = payable.DueDate.AddDate(0, 0, 1)

	err := finance.CheckTitle(&payable.Title)

	assert.ErrorIs(t, err, finance.ErrInvalidDueDate)
}

func TestPayable_FindDueBetweenAndStatus(t *testing.T) {
	// Given
	repos := setupRepositories(t)
	supplier := seedSupplier(t, repos)
	ctx := context.Background()
	for _, due := range []time.Time{
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	} {
		_, err := repos.Finance.Payables.Save(ctx, newPayable(supplier.ID, "100", due))
		require.NoError(t, err)
	}

	// When
	april, err := repos.Finance.Payables.FindDueBetween(ctx,
		time.Date(2026, 4, 1, 15, 0, 0, 0, time.UTC), time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC))

	// Then: both April days are included, ordered by due date
	require.NoError(t, err)
	require.Len(t, april, 2)
	assert.True(t, april[0].DueDate.Before(april[1].DueDate))

	// When: one is cancelled
	_, err = repos.Finance.Payables.Cancel(ctx, april[0].ID)
	require.NoError(t, err)

	// Then
	open, err := repos.Finance.Payables.FindByStatus(ctx, model.AccountOpen)
	require.NoError(t, err)
	assert.Len(t, open, 2)
	cancelled, err := repos.Finance.Payables.FindByStatus(ctx, model.AccountCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, april[0].ID, cancelled[0].ID)
}

func TestReceivable_SettleWithExplicitAmount(t *testing.T) {
	// Given
	repos := setupRepositories(t)
	ctx := context.Background()
	customer, err := repos.Partner.Customers.Save(ctx, &model.Customer{PersonType: model.PersonNatural, Name: "Maria Souza", Document: "529.982.247-25"})
	require.NoError(t, err)
	due := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	saved, err := repos.Finance.Receivables.Save(ctx, &model.AccountReceivable{
		Title:      model.Title{DocumentNumber: "PED-77", Amount: decimal.NewFromInt(80), IssueDate: due, DueDate: due},
		CustomerID: customer.ID,
	})
	require.NoError(t, err)

	// When
	settled, err := repos.Finance.Receivables.Settle(ctx, saved.ID, finance.SettleRequest{PaidAmount: decimal.NewFromInt(75)})

	// Then
	require.NoError(t, err)
	assert.Equal(t, model.AccountPaid, settled.Status)
	assert.True(t, decimal.NewFromInt(75).Equal(settled.PaidAmount.Decimal))
	require.NotNil(t, settled.PaymentDate)

	list, err := repos.Finance.Receivables.FindByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Maria Souza", list[0].Customer.Name)
}

func TestPayable_CancelOpenByInvoiceWithoutUpdatedAtColumn(t *testing.T) {
	// Given: a legacy conta_pagar without ultima_modificacao that cannot be altered
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	testutil.DropColumn(t, db, "conta_pagar", "ultima_modificacao")
	testutil.RejectStatements(t, db, "ALTER TABLE conta_pagar")
	repos := router.NewRepositories(ctx, db, slog.Default())
	require.False(t, repos.Finance.Payables.Columns().Has("ultima_modificacao"))

	supplier := seedSupplier(t, repos)
	invoiceID := int64(42)
	due := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	open := newPayable(supplier.ID, "60.00", due)
	open.InvoiceID = &invoiceID
	_, err := repos.Finance.Payables.Save(ctx, open)
	require.NoError(t, err)

	// When
	cancelled, err := repos.Finance.Payables.CancelOpenByInvoice(ctx, invoiceID)

	// Then
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled)
	got, err := repos.Finance.Payables.FindByStatus(ctx, model.AccountCancelled)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].UpdatedAt.IsZero())
}
