package partner

import (
	"context"
	"fmt"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
	"github.com/pizzaria-erp/go-api-server/internal/shared/taxid"
)

// checkDocument enforces that natural persons carry a CPF and companies a CNPJ.
func checkDocument(kind model.PersonType, document string) error {
	if document == "" {
		return nil
	}
	digits := len(taxid.Digits(document))
	switch {
	case kind == model.PersonNatural && digits != 11,
		kind == model.PersonLegal && digits != 14:
		return fmt.Errorf("tipo %s com documento de %d dígitos: %w", kind, digits, ErrDocumentMismatch)
	}
	return nil
}

type documentFinder[P model.Entity] func(ctx context.Context, document string) ([]P, error)

// checkUnique rejects a document already used by another record.
func checkUnique[P model.Entity](ctx context.Context, find documentFinder[P], self P, document string) error {
	if document == "" {
		return nil
	}
	found, err := find(ctx, document)
	if err != nil {
		return err
	}
	for _, other := range found {
		if other.GetID() != self.GetID() {
			logger.FromContext(ctx).Warn("documento já cadastrado",
				"document", logger.MaskDocument(document), "other_id", other.GetID())
			return fmt.Errorf("documento em uso pelo id %d: %w", other.GetID(), ErrDocumentDuplicate)
		}
	}
	return nil
}

func (r *CustomerRepository) Check(ctx context.Context, c *model.Customer) error {
	if err := checkDocument(c.PersonType, c.Document); err != nil {
		return err
	}
	return checkUnique(ctx, r.FindByDocument, c, c.Document)
}

func (r *SupplierRepository) Check(ctx context.Context, s *model.Supplier) error {
	if err := checkDocument(s.PersonType, s.Document); err != nil {
		return err
	}
	return checkUnique(ctx, r.FindByDocument, s, s.Document)
}

func (r *VehicleRepository) Check(ctx context.Context, v *model.Vehicle) error {
	v.Plate = normalizePlate(v.Plate)
	existing, found, err := r.FindByPlate(ctx, v.Plate)
	if err != nil {
		return err
	}
	if found && existing.ID != v.ID {
		return fmt.Errorf("placa %s em uso pelo id %d: %w", v.Plate, existing.ID, ErrPlateDuplicate)
	}
	return nil
}
