package location

import (
	"context"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
)

// CountryRepository persists pais.
type CountryRepository struct {
	*repository.Base[model.Country, *model.Country]
}

func NewCountryRepository(ctx context.Context, deps repository.Deps) *CountryRepository {
	table := repository.Table{
		Name:    "pais",
		Alias:   "p",
		Entity:  "country",
		OrderBy: "nome",
		Columns: []string{"nome", "sigla", "ddi"},
	}
	return &CountryRepository{
		Base: repository.New[model.Country, *model.Country](ctx, deps, table, readCountry, writeCountry),
	}
}

func readCountry(row *repository.Row, c *model.Country) {
	c.Name = row.String("nome")
	c.Acronym = row.String("sigla")
	c.DialCode = row.String("ddi")
}

func writeCountry(c *model.Country) []any {
	return []any{c.Name, c.Acronym, c.DialCode}
}

func (r *CountryRepository) FindByName(ctx context.Context, name string) ([]*model.Country, error) {
	return r.Find(ctx, repository.Like("p.nome"), repository.Contains(name))
}

// StateRepository persists estado; reads carry the country.
type StateRepository struct {
	*repository.Base[model.State, *model.State]
	countries *CountryRepository
}

func NewStateRepository(ctx context.Context, deps repository.Deps, countries *CountryRepository) *StateRepository {
	table := repository.Table{
		Name:    "estado",
		Alias:   "e",
		Entity:  "state",
		OrderBy: "nome",
		Columns: []string{"nome", "uf", "pais_id"},
	}
	return &StateRepository{
		Base:      repository.New[model.State, *model.State](ctx, deps, table, readState, writeState),
		countries: countries,
	}
}

func readState(row *repository.Row, s *model.State) {
	s.Name = row.String("nome")
	s.UF = row.String("uf")
	s.CountryID = row.Int64("pais_id")
}

func writeState(s *model.State) []any {
	return []any{s.Name, s.UF, s.CountryID}
}

func (r *StateRepository) JoinColumns(alias string) string {
	return r.Base.JoinColumns(alias) + ", " + r.countries.JoinColumns(alias+"_p")
}

func (r *StateRepository) JoinClause(alias, fk string) string {
	return r.Base.JoinClause(alias, fk) + " " + r.countries.JoinClause(alias+"_p", alias+".pais_id")
}

func (r *StateRepository) MapJoined(row *repository.Row, alias string) *model.State {
	s := r.Base.MapJoined(row, alias)
	if s != nil {
		s.Country = r.countries.MapJoined(row, alias+"_p")
	}
	return s
}

// List loads states matching where, with their country read by strategy.
func (r *StateRepository) List(ctx context.Context, strategy repository.LoadStrategy, where string, args ...any) ([]*model.State, error) {
	q := repository.Query{Name: "list", Where: where, Args: args}
	if strategy == repository.SeparateLookup {
		states, err := r.Select(ctx, q, nil)
		if err != nil {
			return nil, err
		}
		countries := repository.NewResolver[*model.Country](ctx, r.countries)
		for _, s := range states {
			s.Country = countries.Get(s.CountryID)
		}
		return states, countries.Err()
	}

	q.Select = r.Projection("e", "") + ", " + r.countries.JoinColumns("p")
	q.From = "estado e " + r.countries.JoinClause("p", "e.pais_id")
	return r.Select(ctx, q, func(row *repository.Row, s *model.State) {
		s.Country = r.countries.MapJoined(row, "p")
	})
}

func (r *StateRepository) FindAll(ctx context.Context) ([]*model.State, error) {
	return r.List(ctx, repository.JoinedColumns, "")
}

func (r *StateRepository) FindByID(ctx context.Context, id int64) (*model.State, bool, error) {
	return repository.First(r.List(ctx, repository.JoinedColumns, "e.id = ?", id))
}

func (r *StateRepository) FindByCountry(ctx context.Context, countryID int64) ([]*model.State, error) {
	return r.List(ctx, repository.JoinedColumns, "e.pais_id = ?", countryID)
}

func (r *StateRepository) FindByName(ctx context.Context, name string) ([]*model.State, error) {
	return r.List(ctx, repository.JoinedColumns, repository.Like("e.nome"), repository.Contains(name))
}

// CityRepository persists cidade; reads carry state and country.
type CityRepository struct {
	*repository.Base[model.City, *model.City]
	states *StateRepository
}

func NewCityRepository(ctx context.Context, deps repository.Deps, states *StateRepository) *CityRepository {
	table := repository.Table{
		Name:    "cidade",
		Alias:   "c",
		Entity:  "city",
		OrderBy: "nome",
		Columns: []string{"nome", "codigo_ibge", "estado_id"},
	}
	return &CityRepository{
		Base:   repository.New[model.City, *model.City](ctx, deps, table, readCity, writeCity),
		states: states,
	}
}

func readCity(row *repository.Row, c *model.City) {
	c.Name = row.String("nome")
	c.IBGECode = row.String("codigo_ibge")
	c.StateID = row.Int64("estado_id")
}

func writeCity(c *model.City) []any {
	return []any{c.Name, c.IBGECode, c.StateID}
}

func (r *CityRepository) JoinColumns(alias string) string {
	return r.Base.JoinColumns(alias) + ", " + r.states.JoinColumns(alias+"_e")
}

func (r *CityRepository) JoinClause(alias, fk string) string {
	return r.Base.JoinClause(alias, fk) + " " + r.states.JoinClause(alias+"_e", alias+".estado_id")
}

func (r *CityRepository) MapJoined(row *repository.Row, alias string) *model.City {
	c := r.Base.MapJoined(row, alias)
	if c != nil {
		c.State = r.states.MapJoined(row, alias+"_e")
	}
	return c
}

// List loads cities matching where. JoinedColumns reads state and country
// from one SELECT; SeparateLookup reads them through the state repository.
func (r *CityRepository) List(ctx context.Context, strategy repository.LoadStrategy, where string, args ...any) ([]*model.City, error) {
	q := repository.Query{Name: "list", Where: where, Args: args}
	if strategy == repository.SeparateLookup {
		cities, err := r.Select(ctx, q, nil)
		if err != nil {
			return nil, err
		}
		states := repository.NewResolver[*model.State](ctx, r.states)
		for _, c := range cities {
			c.State = states.Get(c.StateID)
		}
		return cities, states.Err()
	}

	q.Select = r.Projection("c", "") + ", " + r.states.JoinColumns("e")
	q.From = "cidade c " + r.states.JoinClause("e", "c.estado_id")
	return r.Select(ctx, q, func(row *repository.Row, c *model.City) {
		c.State = r.states.MapJoined(row, "e")
	})
}

func (r *CityRepository) FindAll(ctx context.Context) ([]*model.City, error) {
	return r.List(ctx, repository.JoinedColumns, "")
}

func (r *CityRepository) FindByID(ctx context.Context, id int64) (*model.City, bool, error) {
	return repository.First(r.List(ctx, repository.JoinedColumns, "c.id = ?", id))
}

func (r *CityRepository) FindByState(ctx context.Context, stateID int64) ([]*model.City, error) {
	return r.List(ctx, repository.JoinedColumns, "c.estado_id = ?", stateID)
}

func (r *CityRepository) FindByName(ctx context.Context, name string) ([]*model.City, error) {
	return r.List(ctx, repository.JoinedColumns, repository.Like("c.nome"), repository.Contains(name))
}
