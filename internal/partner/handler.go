package partner

import (
	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/handler"
)

type Repositories struct {
	Customers *CustomerRepository
	Suppliers *SupplierRepository
	Carriers  *CarrierRepository
	Vehicles  *VehicleRepository
}

// RegisterRoutes mounts /clientes, /fornecedores, /transportadoras and /veiculos on rg.
func RegisterRoutes(rg *gin.RouterGroup, repos Repositories) {
	handler.RegisterResource[model.Customer](rg.Group("/clientes"), handler.Resource[*model.Customer]{
		Store:   repos.Customers,
		Search:  repos.Customers.FindByName,
		Filters: map[string]handler.FilterFunc[*model.Customer]{"cidade": repos.Customers.FindByCity},
		Check:   repos.Customers.Check,
	})

	handler.RegisterResource[model.Supplier](rg.Group("/fornecedores"), handler.Resource[*model.Supplier]{
		Store:  repos.Suppliers,
		Search: repos.Suppliers.FindByName,
		Check:  repos.Suppliers.Check,
	})

	handler.RegisterResource[model.Carrier](rg.Group("/transportadoras"), handler.Resource[*model.Carrier]{
		Store:  repos.Carriers,
		Search: repos.Carriers.FindByName,
	})

	handler.RegisterResource[model.Vehicle](rg.Group("/veiculos"), handler.Resource[*model.Vehicle]{
		Store:   repos.Vehicles,
		Search:  repos.Vehicles.FindByName,
		Filters: map[string]handler.FilterFunc[*model.Vehicle]{"transportadora": repos.Vehicles.FindByCarrier},
		Check:   repos.Vehicles.Check,
	})
}
