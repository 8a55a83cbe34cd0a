package router

import (
	"context"
	"log/slog"

	"github.com/pizzaria-erp/go-api-server/internal/catalog"
	"github.com/pizzaria-erp/go-api-server/internal/employee"
	"github.com/pizzaria-erp/go-api-server/internal/finance"
	"github.com/pizzaria-erp/go-api-server/internal/invoice"
	"github.com/pizzaria-erp/go-api-server/internal/location"
	"github.com/pizzaria-erp/go-api-server/internal/partner"
	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
)

// Repositories holds one repository per table. Construction reconciles
// every table, so referenced repositories are built before the ones that
// join or look them up.
type Repositories struct {
	Location location.Repositories
	Catalog  catalog.Repositories
	Partner  partner.Repositories
	Employee employee.Repositories
	Finance  finance.Repositories
	Invoices *invoice.InvoiceRepository
}

func NewRepositories(ctx context.Context, db *database.DB, log *slog.Logger) *Repositories {
	deps := repository.Deps{DB: db, Logger: log}

	countries := location.NewCountryRepository(ctx, deps)
	states := location.NewStateRepository(ctx, deps, countries)
	cities := location.NewCityRepository(ctx, deps, states)

	brands := catalog.NewBrandRepository(ctx, deps)
	units := catalog.NewUnitRepository(ctx, deps)
	categories := catalog.NewCategoryRepository(ctx, deps)
	products := catalog.NewProductRepository(ctx, deps, brands, units, categories)

	customers := partner.NewCustomerRepository(ctx, deps, cities)
	suppliers := partner.NewSupplierRepository(ctx, deps, cities)
	carriers := partner.NewCarrierRepository(ctx, deps, cities)
	vehicles := partner.NewVehicleRepository(ctx, deps, carriers)

	positions := employee.NewJobPositionRepository(ctx, deps)
	employees := employee.NewEmployeeRepository(ctx, deps, positions, cities)

	methods := finance.NewPaymentMethodRepository(ctx, deps)
	installments := finance.NewInstallmentRepository(ctx, deps, methods)
	conditions := finance.NewPaymentConditionRepository(ctx, deps, installments)
	payables := finance.NewAccountPayableRepository(ctx, deps, suppliers, methods)
	receivables := finance.NewAccountReceivableRepository(ctx, deps, customers, methods)

	items := invoice.NewItemRepository(ctx, deps, products)
	invoices := invoice.NewInvoiceRepository(ctx, deps, items, suppliers, carriers, conditions)

	return &Repositories{
		Location: location.Repositories{Countries: countries, States: states, Cities: cities},
		Catalog:  catalog.Repositories{Brands: brands, Units: units, Categories: categories, Products: products},
		Partner:  partner.Repositories{Customers: customers, Suppliers: suppliers, Carriers: carriers, Vehicles: vehicles},
		Employee: employee.Repositories{JobPositions: positions, Employees: employees},
		Finance:  finance.Repositories{PaymentMethods: methods, Conditions: conditions, Payables: payables, Receivables: receivables},
		Invoices: invoices,
	}
}
