package model

import "github.com/shopspring/decimal"

type Brand struct {
	Record
	Name string `json:"nome" binding:"required,max=60"`
}

// Unit is a unit of measure (unidade_medida); Symbol is unique.
type Unit struct {
	Record
	Symbol      string `json:"sigla" binding:"required,max=6"`
	Description string `json:"descricao" binding:"max=60"`
}

type Category struct {
	Record
	Name        string `json:"nome" binding:"required,max=60"`
	Description string `json:"descricao" binding:"max=255"`
}

// Product is a row of produto. Brand and Category are optional references.
type Product struct {
	Record
	Code         string          `json:"codigo" binding:"max=20"`
	Name         string          `json:"nome" binding:"required,max=120"`
	Description  string          `json:"descricao" binding:"max=255"`
	Barcode      string          `json:"codigoBarras" binding:"omitempty,numeric,max=14"`
	NCM          string          `json:"ncm" binding:"omitempty,numeric,len=8"`
	SalePrice    decimal.Decimal `json:"precoVenda"`
	CostPrice    decimal.Decimal `json:"precoCusto"`
	Stock        decimal.Decimal `json:"estoque"`
	MinimumStock decimal.Decimal `json:"estoqueMinimo"`
	BrandID      *int64          `json:"marcaId"`
	Brand        *Brand          `json:"marca,omitempty" binding:"-"`
	UnitID       int64           `json:"unidadeMedidaId" binding:"required"`
	Unit         *Unit           `json:"unidadeMedida,omitempty" binding:"-"`
	CategoryID   *int64          `json:"categoriaId"`
	Category     *Category       `json:"categoria,omitempty" binding:"-"`
}
