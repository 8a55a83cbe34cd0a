package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/handler"
)

type Repositories struct {
	Brands     *BrandRepository
	Units      *UnitRepository
	Categories *CategoryRepository
	Products   *ProductRepository
}

// RegisterRoutes mounts /marcas, /unidades, /categorias and /produtos on rg.
func RegisterRoutes(rg *gin.RouterGroup, repos Repositories) {
	handler.RegisterResource[model.Brand](rg.Group("/marcas"), handler.Resource[*model.Brand]{
		Store:  repos.Brands,
		Search: repos.Brands.FindByName,
	})
	handler.RegisterResource[model.Unit](rg.Group("/unidades"), handler.Resource[*model.Unit]{
		Store:  repos.Units,
		Search: repos.Units.FindByName,
	})
	handler.RegisterResource[model.Category](rg.Group("/categorias"), handler.Resource[*model.Category]{
		Store:  repos.Categories,
		Search: repos.Categories.FindByName,
	})

	products := rg.Group("/produtos")
	products.GET("/estoque-baixo", func(c *gin.Context) {
		items, err := repos.Products.FindBelowMinimumStock(c.Request.Context())
		if err != nil {
			handler.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})
	handler.RegisterResource[model.Product](products, handler.Resource[*model.Product]{
		Store:   repos.Products,
		Search:  repos.Products.FindByName,
		Filters: map[string]handler.FilterFunc[*model.Product]{"categoria": repos.Products.FindByCategory},
	})
}
