package finance

import (
	"context"
	"fmt"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
	"github.com/pizzaria-erp/go-api-server/internal/shared/schema"
)

type PaymentMethodRepository struct {
	*repository.Base[model.PaymentMethod, *model.PaymentMethod]
}

func NewPaymentMethodRepository(ctx context.Context, deps repository.Deps) *PaymentMethodRepository {
	table := repository.Table{
		Name:    "forma_pagamento",
		Alias:   "fp",
		Entity:  "paymentMethod",
		OrderBy: "descricao",
		Columns: []string{"descricao"},
	}
	return &PaymentMethodRepository{
		Base: repository.New[model.PaymentMethod, *model.PaymentMethod](ctx, deps, table,
			func(row *repository.Row, m *model.PaymentMethod) { m.Description = row.String("descricao") },
			func(m *model.PaymentMethod) []any { return []any{m.Description} },
		),
	}
}

func (r *PaymentMethodRepository) FindByName(ctx context.Context, name string) ([]*model.PaymentMethod, error) {
	return r.Find(ctx, repository.Like("fp.descricao"), repository.Contains(name))
}

// InstallmentRepository persists parcela_condicao_pagamento. Installments
// only exist inside a payment condition and are always read with their
// payment method joined.
type InstallmentRepository struct {
	*repository.Base[model.Installment, *model.Installment]
	methods *PaymentMethodRepository
}

func NewInstallmentRepository(ctx context.Context, deps repository.Deps, methods *PaymentMethodRepository) *InstallmentRepository {
	table := repository.Table{
		Name:    "parcela_condicao_pagamento",
		Alias:   "pc",
		Entity:  "installment",
		OrderBy: "numero",
		Columns: []string{"condicao_pagamento_id", "numero", "dias", "percentual", "forma_pagamento_id"},
	}
	return &InstallmentRepository{
		Base: repository.New[model.Installment, *model.Installment](ctx, deps, table,
			func(row *repository.Row, i *model.Installment) {
				i.PaymentConditionID = row.Int64("condicao_pagamento_id")
				i.Number = row.Int("numero")
				i.Days = row.Int("dias")
				i.Percentage = row.Decimal("percentual")
				i.PaymentMethodID = row.Int64("forma_pagamento_id")
			},
			func(i *model.Installment) []any {
				return []any{i.PaymentConditionID, i.Number, i.Days, i.Percentage, i.PaymentMethodID}
			},
		),
		methods: methods,
	}
}

func (r *InstallmentRepository) FindByCondition(ctx context.Context, conditionID int64) ([]*model.Installment, error) {
	q := repository.Query{
		Name:   "findByCondition",
		Select: r.Projection("pc", "") + ", " + r.methods.JoinColumns("fp"),
		From:   "parcela_condicao_pagamento pc " + r.methods.JoinClause("fp", "pc.forma_pagamento_id"),
		Where:  "pc.condicao_pagamento_id = ?",
		Args:   []any{conditionID},
	}
	return r.Select(ctx, q, func(row *repository.Row, i *model.Installment) {
		i.PaymentMethod = r.methods.MapJoined(row, "fp")
	})
}

func (r *InstallmentRepository) DeleteByCondition(ctx context.Context, conditionID int64) error {
	_, err := r.Exec(ctx, "deleteByCondition",
		"DELETE FROM parcela_condicao_pagamento WHERE condicao_pagamento_id = ?", conditionID)
	return err
}

// PaymentConditionRepository persists condicao_pagamento together with its
// installments. Conditions are soft deleted: Delete deactivates.
type PaymentConditionRepository struct {
	*repository.Base[model.PaymentCondition, *model.PaymentCondition]
	installments *InstallmentRepository
}

func NewPaymentConditionRepository(ctx context.Context, deps repository.Deps, installments *InstallmentRepository) *PaymentConditionRepository {
	table := repository.Table{
		Name:    "condicao_pagamento",
		Alias:   "cp",
		Entity:  "paymentCondition",
		OrderBy: "descricao",
		Columns: []string{"descricao", "taxa_juros", "taxa_multa", "taxa_desconto"},
	}
	return &PaymentConditionRepository{
		Base: repository.New[model.PaymentCondition, *model.PaymentCondition](ctx, deps, table,
			func(row *repository.Row, c *model.PaymentCondition) {
				c.Description = row.String("descricao")
				c.InterestRate = row.Decimal("taxa_juros")
				c.FineRate = row.Decimal("taxa_multa")
				c.DiscountRate = row.Decimal("taxa_desconto")
			},
			func(c *model.PaymentCondition) []any {
				return []any{c.Description, c.InterestRate, c.FineRate, c.DiscountRate}
			},
		),
		installments: installments,
	}
}

// List loads the installments of every condition found by a separate lookup.
func (r *PaymentConditionRepository) List(ctx context.Context, where string, args ...any) ([]*model.PaymentCondition, error) {
	conditions, err := r.Select(ctx, repository.Query{Name: "list", Where: where, Args: args}, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range conditions {
		installments, err := r.installments.FindByCondition(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Installments = make([]model.Installment, len(installments))
		for i, inst := range installments {
			c.Installments[i] = *inst
		}
	}
	return conditions, nil
}

func (r *PaymentConditionRepository) FindAll(ctx context.Context) ([]*model.PaymentCondition, error) {
	return r.List(ctx, "")
}

func (r *PaymentConditionRepository) FindByID(ctx context.Context, id int64) (*model.PaymentCondition, bool, error) {
	return repository.First(r.List(ctx, "cp.id = ?", id))
}

// FindActive lists the conditions offered for new documents.
func (r *PaymentConditionRepository) FindActive(ctx context.Context) ([]*model.PaymentCondition, error) {
	if !r.Columns().Has(schema.ColumnActive) {
		return r.FindAll(ctx)
	}
	return r.List(ctx, "cp.ativo = ?", true)
}

func (r *PaymentConditionRepository) FindByName(ctx context.Context, name string) ([]*model.PaymentCondition, error) {
	return r.List(ctx, repository.Like("cp.descricao"), repository.Contains(name))
}

func (r *PaymentConditionRepository) Save(ctx context.Context, c *model.PaymentCondition) (*model.PaymentCondition, error) {
	return r.Apply(ctx, repository.Infer(c))
}

// Apply writes the condition and replaces its installments. Each statement
// commits on its own; a failure midway leaves the earlier statements applied.
func (r *PaymentConditionRepository) Apply(ctx context.Context, op repository.Op[*model.PaymentCondition]) (*model.PaymentCondition, error) {
	c, err := r.Base.Apply(ctx, op)
	if err != nil {
		return nil, err
	}

	if op.IsUpdate() {
		if err := r.installments.DeleteByCondition(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	for i := range c.Installments {
		inst := &c.Installments[i]
		inst.ID = 0
		inst.CreatedAt, inst.UpdatedAt = c.UpdatedAt, c.UpdatedAt
		inst.PaymentConditionID = c.ID
		if _, err := r.installments.Apply(ctx, repository.Insert(inst)); err != nil {
			return nil, fmt.Errorf("parcela %d: %w", inst.Number, err)
		}
	}
	return c, nil
}

// Delete deactivates the condition; documents referencing it keep working.
func (r *PaymentConditionRepository) Delete(ctx context.Context, id int64) error {
	return r.Deactivate(ctx, id)
}
