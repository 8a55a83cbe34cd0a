package catalog

import (
	"context"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
)

type BrandRepository struct {
	*repository.Base[model.Brand, *model.Brand]
}

func NewBrandRepository(ctx context.Context, deps repository.Deps) *BrandRepository {
	table := repository.Table{Name: "marca", Alias: "m", Entity: "brand", OrderBy: "nome", Columns: []string{"nome"}}
	return &BrandRepository{
		Base: repository.New[model.Brand, *model.Brand](ctx, deps, table,
			func(row *repository.Row, b *model.Brand) { b.Name = row.String("nome") },
			func(b *model.Brand) []any { return []any{b.Name} },
		),
	}
}

func (r *BrandRepository) FindByName(ctx context.Context, name string) ([]*model.Brand, error) {
	return r.Find(ctx, repository.Like("m.nome"), repository.Contains(name))
}

// UnitRepository persists unidade_medida, sorted by symbol.
type UnitRepository struct {
	*repository.Base[model.Unit, *model.Unit]
}

func NewUnitRepository(ctx context.Context, deps repository.Deps) *UnitRepository {
	table := repository.Table{
		Name:    "unidade_medida",
		Alias:   "u",
		Entity:  "unit",
		OrderBy: "sigla",
		Columns: []string{"sigla", "descricao"},
	}
	return &UnitRepository{
		Base: repository.New[model.Unit, *model.Unit](ctx, deps, table,
			func(row *repository.Row, u *model.Unit) {
				u.Symbol = row.String("sigla")
				u.Description = row.String("descricao")
			},
			func(u *model.Unit) []any { return []any{u.Symbol, u.Description} },
		),
	}
}

// FindBySymbol matches the symbol exactly, ignoring case.
func (r *UnitRepository) FindBySymbol(ctx context.Context, symbol string) (*model.Unit, bool, error) {
	return r.Get(ctx, repository.Query{
		Name:  "findBySymbol",
		Where: "LOWER(u.sigla) = LOWER(?)",
		Args:  []any{symbol},
	}, nil)
}

func (r *UnitRepository) FindByName(ctx context.Context, term string) ([]*model.Unit, error) {
	return r.Find(ctx, "("+repository.Like("u.descricao")+" OR "+repository.Like("u.sigla")+")",
		repository.Contains(term), repository.Contains(term))
}

type CategoryRepository struct {
	*repository.Base[model.Category, *model.Category]
}

func NewCategoryRepository(ctx context.Context, deps repository.Deps) *CategoryRepository {
	table := repository.Table{
		Name:    "categoria",
		Alias:   "cat",
		Entity:  "category",
		OrderBy: "nome",
		Columns: []string{"nome", "descricao"},
	}
	return &CategoryRepository{
		Base: repository.New[model.Category, *model.Category](ctx, deps, table,
			func(row *repository.Row, c *model.Category) {
				c.Name = row.String("nome")
				c.Description = row.String("descricao")
			},
			func(c *model.Category) []any { return []any{c.Name, c.Description} },
		),
	}
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) ([]*model.Category, error) {
	return r.Find(ctx, repository.Like("cat.nome"), repository.Contains(name))
}

// ProductRepository persists produto. Brand, unit and category are joined
// into every read.
type ProductRepository struct {
	*repository.Base[model.Product, *model.Product]
	brands     *BrandRepository
	units      *UnitRepository
	categories *CategoryRepository
}

func NewProductRepository(ctx context.Context, deps repository.Deps, brands *BrandRepository, units *UnitRepository, categories *CategoryRepository) *ProductRepository {
	table := repository.Table{
		Name:    "produto",
		Alias:   "pr",
		Entity:  "product",
		OrderBy: "nome",
		Columns: []string{
			"codigo", "nome", "descricao", "codigo_barras", "ncm",
			"preco_venda", "preco_custo", "estoque", "estoque_minimo",
			"marca_id", "unidade_medida_id", "categoria_id",
		},
	}
	return &ProductRepository{
		Base:       repository.New[model.Product, *model.Product](ctx, deps, table, readProduct, writeProduct),
		brands:     brands,
		units:      units,
		categories: categories,
	}
}

func readProduct(row *repository.Row, p *model.Product) {
	p.Code = row.String("codigo")
	p.Name = row.String("nome")
	p.Description = row.String("descricao")
	p.Barcode = row.String("codigo_barras")
	p.NCM = row.String("ncm")
	p.SalePrice = row.Decimal("preco_venda")
	p.CostPrice = row.Decimal("preco_custo")
	p.Stock = row.Decimal("estoque")
	p.MinimumStock = row.Decimal("estoque_minimo")
	p.BrandID = row.NullInt64("marca_id")
	p.UnitID = row.Int64("unidade_medida_id")
	p.CategoryID = row.NullInt64("categoria_id")
}

func writeProduct(p *model.Product) []any {
	return []any{
		p.Code, p.Name, p.Description, p.Barcode, p.NCM,
		p.SalePrice, p.CostPrice, p.Stock, p.MinimumStock,
		p.BrandID, p.UnitID, p.CategoryID,
	}
}

func (r *ProductRepository) JoinColumns(alias string) string {
	return r.Base.JoinColumns(alias) + ", " + r.units.JoinColumns(alias+"_u")
}

func (r *ProductRepository) JoinClause(alias, fk string) string {
	return r.Base.JoinClause(alias, fk) + " " + r.units.JoinClause(alias+"_u", alias+".unidade_medida_id")
}

func (r *ProductRepository) MapJoined(row *repository.Row, alias string) *model.Product {
	p := r.Base.MapJoined(row, alias)
	if p != nil {
		p.Unit = r.units.MapJoined(row, alias+"_u")
	}
	return p
}

// List loads products matching where with brand, unit and category joined.
func (r *ProductRepository) List(ctx context.Context, where string, args ...any) ([]*model.Product, error) {
	q := repository.Query{
		Name: "list",
		Select: r.Projection("pr", "") + ", " +
			r.brands.JoinColumns("m") + ", " +
			r.units.JoinColumns("u") + ", " +
			r.categories.JoinColumns("cat"),
		From: "produto pr " +
			r.brands.JoinClause("m", "pr.marca_id") + " " +
			r.units.JoinClause("u", "pr.unidade_medida_id") + " " +
			r.categories.JoinClause("cat", "pr.categoria_id"),
		Where: where,
		Args:  args,
	}
	return r.Select(ctx, q, func(row *repository.Row, p *model.Product) {
		p.Brand = r.brands.MapJoined(row, "m")
		p.Unit = r.units.MapJoined(row, "u")
		p.Category = r.categories.MapJoined(row, "cat")
	})
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*model.Product, error) {
	return r.List(ctx, "")
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, bool, error) {
	return repository.First(r.List(ctx, "pr.id = ?", id))
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) ([]*model.Product, error) {
	return r.List(ctx, repository.Like("pr.nome"), repository.Contains(name))
}

func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (*model.Product, bool, error) {
	return repository.First(r.List(ctx, "pr.codigo_barras = ?", barcode))
}

func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID int64) ([]*model.Product, error) {
	return r.List(ctx, "pr.categoria_id = ?", categoryID)
}

// FindBelowMinimumStock lists products whose stock is under the minimum.
func (r *ProductRepository) FindBelowMinimumStock(ctx context.Context) ([]*model.Product, error) {
	return r.List(ctx, "pr.estoque < pr.estoque_minimo")
}
