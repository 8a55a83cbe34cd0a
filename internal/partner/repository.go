package partner

import (
	"context"

	"github.com/pizzaria-erp/go-api-server/internal/location"
	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
)

var addressColumns = []string{"endereco", "numero", "complemento", "bairro", "cep"}

func readAddress(row *repository.Row, a *model.Address) {
	a.Street = row.String("endereco")
	a.Number = row.String("numero")
	a.Complement = row.String("complemento")
	a.District = row.String("bairro")
	a.ZipCode = row.String("cep")
}

func addressValues(a model.Address) []any {
	return []any{a.Street, a.Number, a.Complement, a.District, a.ZipCode}
}

func columns(cols ...[]string) []string {
	var out []string
	for _, c := range cols {
		out = append(out, c...)
	}
	return out
}

// CustomerRepository persists cliente. Reads join the city graph; the
// payment condition stays a bare key.
type CustomerRepository struct {
	*repository.Base[model.Customer, *model.Customer]
	cities *location.CityRepository
}

func NewCustomerRepository(ctx context.Context, deps repository.Deps, cities *location.CityRepository) *CustomerRepository {
	table := repository.Table{
		Name:    "cliente",
		Alias:   "cli",
		Entity:  "customer",
		OrderBy: "nome",
		Columns: columns([]string{
			"tipo_pessoa", "nome", "apelido", "cpf_cnpj", "rg_ie", "email", "telefone",
			"data_nascimento", "limite_credito", "cidade_id", "condicao_pagamento_id",
		}, addressColumns),
	}
	return &CustomerRepository{
		Base:   repository.New[model.Customer, *model.Customer](ctx, deps, table, readCustomer, writeCustomer),
		cities: cities,
	}
}

func readCustomer(row *repository.Row, c *model.Customer) {
	c.PersonType = model.PersonType(row.String("tipo_pessoa"))
	c.Name = row.String("nome")
	c.Nickname = row.String("apelido")
	c.Document = row.String("cpf_cnpj")
	c.StateRegistration = row.String("rg_ie")
	c.Email = row.String("email")
	c.Phone = row.String("telefone")
	c.BirthDate = row.NullTime("data_nascimento")
	c.CreditLimit = row.Decimal("limite_credito")
	c.CityID = row.NullInt64("cidade_id")
	c.PaymentConditionID = row.NullInt64("condicao_pagamento_id")
	readAddress(row, &c.Address)
}

func writeCustomer(c *model.Customer) []any {
	return append([]any{
		string(c.PersonType), c.Name, c.Nickname, c.Document, c.StateRegistration, c.Email, c.Phone,
		c.BirthDate, c.CreditLimit, c.CityID, c.PaymentConditionID,
	}, addressValues(c.Address)...)
}

func (r *CustomerRepository) List(ctx context.Context, where string, args ...any) ([]*model.Customer, error) {
	q := repository.Query{
		Name:   "list",
		Select: r.Projection("cli", "") + ", " + r.cities.JoinColumns("c"),
		From:   "cliente cli " + r.cities.JoinClause("c", "cli.cidade_id"),
		Where:  where,
		Args:   args,
	}
	return r.Select(ctx, q, func(row *repository.Row, c *model.Customer) {
		c.City = r.cities.MapJoined(row, "c")
	})
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	return r.List(ctx, "")
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, bool, error) {
	return repository.First(r.List(ctx, "cli.id = ?", id))
}

// FindByName searches name and nickname.
func (r *CustomerRepository) FindByName(ctx context.Context, name string) ([]*model.Customer, error) {
	pattern := repository.Contains(name)
	return r.List(ctx, "("+repository.Like("cli.nome")+" OR "+repository.Like("cli.apelido")+")", pattern, pattern)
}

// FindByDocument matches CPF/CNPJ with or without punctuation.
func (r *CustomerRepository) FindByDocument(ctx context.Context, document string) ([]*model.Customer, error) {
	return r.List(ctx, documentPredicate("cli.cpf_cnpj"), documentArgs(document)...)
}

func (r *CustomerRepository) FindByCity(ctx context.Context, cityID int64) ([]*model.Customer, error) {
	return r.List(ctx, "cli.cidade_id = ?", cityID)
}

// SupplierRepository persists fornecedor, sorted by company name.
type SupplierRepository struct {
	*repository.Base[model.Supplier, *model.Supplier]
	cities *location.CityRepository
}

func NewSupplierRepository(ctx context.Context, deps repository.Deps, cities *location.CityRepository) *SupplierRepository {
	table := repository.Table{
		Name:    "fornecedor",
		Alias:   "f",
		Entity:  "supplier",
		OrderBy: "razao_social",
		Columns: columns([]string{
			"tipo_pessoa", "razao_social", "nome_fantasia", "cpf_cnpj", "inscricao_estadual",
			"email", "telefone", "contato", "site", "cidade_id", "condicao_pagamento_id",
		}, addressColumns),
	}
	return &SupplierRepository{
		Base:   repository.New[model.Supplier, *model.Supplier](ctx, deps, table, readSupplier, writeSupplier),
		cities: cities,
	}
}

func readSupplier(row *repository.Row, s *model.Supplier) {
	s.PersonType = model.PersonType(row.String("tipo_pessoa"))
	s.CompanyName = row.String("razao_social")
	s.TradeName = row.String("nome_fantasia")
	s.Document = row.String("cpf_cnpj")
	s.StateRegistration = row.String("inscricao_estadual")
	s.Email = row.String("email")
	s.Phone = row.String("telefone")
	s.Contact = row.String("contato")
	s.Website = row.String("site")
	s.CityID = row.NullInt64("cidade_id")
	s.PaymentConditionID = row.NullInt64("condicao_pagamento_id")
	readAddress(row, &s.Address)
}

func writeSupplier(s *model.Supplier) []any {
	return append([]any{
		string(s.PersonType), s.CompanyName, s.TradeName, s.Document, s.StateRegistration,
		s.Email, s.Phone, s.Contact, s.Website, s.CityID, s.PaymentConditionID,
	}, addressValues(s.Address)...)
}

func (r *SupplierRepository) List(ctx context.Context, where string, args ...any) ([]*model.Supplier, error) {
	q := repository.Query{
		Name:   "list",
		Select: r.Projection("f", "") + ", " + r.cities.JoinColumns("c"),
		From:   "fornecedor f " + r.cities.JoinClause("c", "f.cidade_id"),
		Where:  where,
		Args:   args,
	}
	return r.Select(ctx, q, func(row *repository.Row, s *model.Supplier) {
		s.City = r.cities.MapJoined(row, "c")
	})
}

func (r *SupplierRepository) FindAll(ctx context.Context) ([]*model.Supplier, error) {
	return r.List(ctx, "")
}

func (r *SupplierRepository) FindByID(ctx context.Context, id int64) (*model.Supplier, bool, error) {
	return repository.First(r.List(ctx, "f.id = ?", id))
}

// FindByName searches company and trade names.
func (r *SupplierRepository) FindByName(ctx context.Context, name string) ([]*model.Supplier, error) {
	pattern := repository.Contains(name)
	return r.List(ctx, "("+repository.Like("f.razao_social")+" OR "+repository.Like("f.nome_fantasia")+")", pattern, pattern)
}

func (r *SupplierRepository) FindByDocument(ctx context.Context, document string) ([]*model.Supplier, error) {
	return r.List(ctx, documentPredicate("f.cpf_cnpj"), documentArgs(document)...)
}

// CarrierRepository persists transportadora.
type CarrierRepository struct {
	*repository.Base[model.Carrier, *model.Carrier]
	cities *location.CityRepository
}

func NewCarrierRepository(ctx context.Context, deps repository.Deps, cities *location.CityRepository) *CarrierRepository {
	table := repository.Table{
		Name:    "transportadora",
		Alias:   "t",
		Entity:  "carrier",
		OrderBy: "razao_social",
		Columns: columns([]string{
			"razao_social", "nome_fantasia", "cnpj", "inscricao_estadual", "rntrc",
			"email", "telefone", "cidade_id",
		}, addressColumns),
	}
	return &CarrierRepository{
		Base:   repository.New[model.Carrier, *model.Carrier](ctx, deps, table, readCarrier, writeCarrier),
		cities: cities,
	}
}

func readCarrier(row *repository.Row, t *model.Carrier) {
	t.CompanyName = row.String("razao_social")
	t.TradeName = row.String("nome_fantasia")
	t.CNPJ = row.String("cnpj")
	t.StateRegistration = row.String("inscricao_estadual")
	t.RNTRC = row.String("rntrc")
	t.Email = row.String("email")
	t.Phone = row.String("telefone")
	t.CityID = row.NullInt64("cidade_id")
	readAddress(row, &t.Address)
}

func writeCarrier(t *model.Carrier) []any {
	return append([]any{
		t.CompanyName, t.TradeName, t.CNPJ, t.StateRegistration, t.RNTRC,
		t.Email, t.Phone, t.CityID,
	}, addressValues(t.Address)...)
}

func (r *CarrierRepository) List(ctx context.Context, where string, args ...any) ([]*model.Carrier, error) {
	q := repository.Query{
		Name:   "list",
		Select: r.Projection("t", "") + ", " + r.cities.JoinColumns("c"),
		From:   "transportadora t " + r.cities.JoinClause("c", "t.cidade_id"),
		Where:  where,
		Args:   args,
	}
	return r.Select(ctx, q, func(row *repository.Row, t *model.Carrier) {
		t.City = r.cities.MapJoined(row, "c")
	})
}

func (r *CarrierRepository) FindAll(ctx context.Context) ([]*model.Carrier, error) {
	return r.List(ctx, "")
}

func (r *CarrierRepository) FindByID(ctx context.Context, id int64) (*model.Carrier, bool, error) {
	return repository.First(r.List(ctx, "t.id = ?", id))
}

func (r *CarrierRepository) FindByName(ctx context.Context, name string) ([]*model.Carrier, error) {
	pattern := repository.Contains(name)
	return r.List(ctx, "("+repository.Like("t.razao_social")+" OR "+repository.Like("t.nome_fantasia")+")", pattern, pattern)
}

// VehicleRepository persists veiculo. The carrier is read by a separate
// lookup so it arrives with its city graph.
type VehicleRepository struct {
	*repository.Base[model.Vehicle, *model.Vehicle]
	carriers *CarrierRepository
}

func NewVehicleRepository(ctx context.Context, deps repository.Deps, carriers *CarrierRepository) *VehicleRepository {
	table := repository.Table{
		Name:    "veiculo",
		Alias:   "v",
		Entity:  "vehicle",
		OrderBy: "placa",
		Columns: []string{"placa", "modelo", "fabricante", "ano", "capacidade_kg", "transportadora_id"},
	}
	return &VehicleRepository{
		Base:     repository.New[model.Vehicle, *model.Vehicle](ctx, deps, table, readVehicle, writeVehicle),
		carriers: carriers,
	}
}

func readVehicle(row *repository.Row, v *model.Vehicle) {
	v.Plate = row.String("placa")
	v.Model = row.String("modelo")
	v.Make = row.String("fabricante")
	v.Year = row.Int("ano")
	v.Capacity = row.Decimal("capacidade_kg")
	v.CarrierID = row.Int64("transportadora_id")
}

func writeVehicle(v *model.Vehicle) []any {
	return []any{v.Plate, v.Model, v.Make, v.Year, v.Capacity, v.CarrierID}
}

func (r *VehicleRepository) List(ctx context.Context, strategy repository.LoadStrategy, where string, args ...any) ([]*model.Vehicle, error) {
	q := repository.Query{Name: "list", Where: where, Args: args}
	if strategy == repository.JoinedColumns {
		q.Select = r.Projection("v", "") + ", " + r.carriers.JoinColumns("t")
		q.From = "veiculo v " + r.carriers.JoinClause("t", "v.transportadora_id")
		return r.Select(ctx, q, func(row *repository.Row, v *model.Vehicle) {
			v.Carrier = r.carriers.MapJoined(row, "t")
		})
	}

	vehicles, err := r.Select(ctx, q, nil)
	if err != nil {
		return nil, err
	}
	carriers := repository.NewResolver[*model.Carrier](ctx, r.carriers)
	for _, v := range vehicles {
		v.Carrier = carriers.Get(v.CarrierID)
	}
	return vehicles, carriers.Err()
}

func (r *VehicleRepository) FindAll(ctx context.Context) ([]*model.Vehicle, error) {
	return r.List(ctx, repository.SeparateLookup, "")
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*model.Vehicle, bool, error) {
	return repository.First(r.List(ctx, repository.SeparateLookup, "v.id = ?", id))
}

// FindByPlate ignores case and the dash of old-style plates.
func (r *VehicleRepository) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, bool, error) {
	return repository.First(r.List(ctx, repository.SeparateLookup,
		"REPLACE(UPPER(v.placa), '-', '') = ?", normalizePlate(plate)))
}

func (r *VehicleRepository) FindByCarrier(ctx context.Context, carrierID int64) ([]*model.Vehicle, error) {
	return r.List(ctx, repository.JoinedColumns, "v.transportadora_id = ?", carrierID)
}

// FindByName searches plates and models.
func (r *VehicleRepository) FindByName(ctx context.Context, term string) ([]*model.Vehicle, error) {
	pattern := repository.Contains(term)
	return r.List(ctx, repository.SeparateLookup, "("+repository.Like("v.placa")+" OR "+repository.Like("v.modelo")+")", pattern, pattern)
}
