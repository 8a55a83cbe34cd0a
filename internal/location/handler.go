package location

import (
	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/handler"
)

// Repositories groups the location repositories, built in dependency order.
type Repositories struct {
	Countries *CountryRepository
	States    *StateRepository
	Cities    *CityRepository
}

// RegisterRoutes mounts /paises, /estados and /cidades on rg.
func RegisterRoutes(rg *gin.RouterGroup, repos Repositories) {
	handler.RegisterResource[model.Country](rg.Group("/paises"), handler.Resource[*model.Country]{
		Store:  repos.Countries,
		Search: repos.Countries.FindByName,
	})

	handler.RegisterResource[model.State](rg.Group("/estados"), handler.Resource[*model.State]{
		Store:   repos.States,
		Search:  repos.States.FindByName,
		Filters: map[string]handler.FilterFunc[*model.State]{"pais": repos.States.FindByCountry},
	})

	handler.RegisterResource[model.City](rg.Group("/cidades"), handler.Resource[*model.City]{
		Store:   repos.Cities,
		Search:  repos.Cities.FindByName,
		Filters: map[string]handler.FilterFunc[*model.City]{"estado": repos.Cities.FindByState},
	})
}
