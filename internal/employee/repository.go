package employee

import (
	"context"

	"github.com/pizzaria-erp/go-api-server/internal/location"
	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
	"github.com/pizzaria-erp/go-api-server/internal/shared/schema"
	"github.com/pizzaria-erp/go-api-server/internal/shared/taxid"
)

const passwordColumn = "senha_hash"

type JobPositionRepository struct {
	*repository.Base[model.JobPosition, *model.JobPosition]
}

func NewJobPositionRepository(ctx context.Context, deps repository.Deps) *JobPositionRepository {
	table := repository.Table{
		Name:    "cargo",
		Alias:   "cg",
		Entity:  "jobPosition",
		OrderBy: "nome",
		Columns: []string{"nome", "descricao", "salario_base"},
	}
	return &JobPositionRepository{
		Base: repository.New[model.JobPosition, *model.JobPosition](ctx, deps, table,
			func(row *repository.Row, j *model.JobPosition) {
				j.Name = row.String("nome")
				j.Description = row.String("descricao")
				j.BaseSalary = row.Decimal("salario_base")
			},
			func(j *model.JobPosition) []any { return []any{j.Name, j.Description, j.BaseSalary} },
		),
	}
}

func (r *JobPositionRepository) FindByName(ctx context.Context, name string) ([]*model.JobPosition, error) {
	return r.Find(ctx, repository.Like("cg.nome"), repository.Contains(name))
}

// EmployeeRepository persists funcionario. The password hash is never part
// of regular reads or writes; it is read by FindCredentials and written by
// SetPasswordHash only.
type EmployeeRepository struct {
	*repository.Base[model.Employee, *model.Employee]
	positions *JobPositionRepository
	cities    *location.CityRepository
}

func NewEmployeeRepository(ctx context.Context, deps repository.Deps, positions *JobPositionRepository, cities *location.CityRepository) *EmployeeRepository {
	table := repository.Table{
		Name:    "funcionario",
		Alias:   "fu",
		Entity:  "employee",
		OrderBy: "nome",
		Columns: []string{
			"nome", "cpf", "rg", "email", "telefone", "salario",
			"data_admissao", "data_demissao", "cargo_id", "cidade_id",
			"endereco", "numero", "complemento", "bairro", "cep",
		},
		Expected: []schema.Column{{Name: passwordColumn, Type: "VARCHAR(100)"}},
	}
	return &EmployeeRepository{
		Base:      repository.New[model.Employee, *model.Employee](ctx, deps, table, readEmployee, writeEmployee),
		positions: positions,
		cities:    cities,
	}
}

func readEmployee(row *repository.Row, e *model.Employee) {
	e.Name = row.String("nome")
	e.CPF = row.String("cpf")
	e.RG = row.String("rg")
	e.Email = row.String("email")
	e.Phone = row.String("telefone")
	e.Salary = row.Decimal("salario")
	e.HireDate = row.Time("data_admissao")
	e.TerminationDate = row.NullTime("data_demissao")
	e.JobPositionID = row.Int64("cargo_id")
	e.CityID = row.NullInt64("cidade_id")
	e.Street = row.String("endereco")
	e.Number = row.String("numero")
	e.Complement = row.String("complemento")
	e.District = row.String("bairro")
	e.ZipCode = row.String("cep")
	if row.Has(passwordColumn) {
		e.PasswordHash = row.String(passwordColumn)
	}
}

func writeEmployee(e *model.Employee) []any {
	return []any{
		e.Name, e.CPF, e.RG, nullable(e.Email), e.Phone, e.Salary,
		e.HireDate, e.TerminationDate, e.JobPositionID, e.CityID,
		e.Street, e.Number, e.Complement, e.District, e.ZipCode,
	}
}

// nullable keeps blank optional unique columns out of the unique index.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *EmployeeRepository) query(where string, args ...any) repository.Query {
	return repository.Query{
		Name: "list",
		Select: r.Projection("fu", "") + ", " +
			r.positions.JoinColumns("cg") + ", " +
			r.cities.JoinColumns("c"),
		From: "funcionario fu " +
			r.positions.JoinClause("cg", "fu.cargo_id") + " " +
			r.cities.JoinClause("c", "fu.cidade_id"),
		Where: where,
		Args:  args,
	}
}

func (r *EmployeeRepository) join(row *repository.Row, e *model.Employee) {
	e.JobPosition = r.positions.MapJoined(row, "cg")
	e.City = r.cities.MapJoined(row, "c")
}

func (r *EmployeeRepository) List(ctx context.Context, where string, args ...any) ([]*model.Employee, error) {
	return r.Select(ctx, r.query(where, args...), r.join)
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*model.Employee, error) {
	return r.List(ctx, "")
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*model.Employee, bool, error) {
	return repository.First(r.List(ctx, "fu.id = ?", id))
}

func (r *EmployeeRepository) FindByName(ctx context.Context, name string) ([]*model.Employee, error) {
	return r.List(ctx, repository.Like("fu.nome"), repository.Contains(name))
}

// FindByEmail matches the whole address, ignoring case.
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*model.Employee, bool, error) {
	return repository.First(r.List(ctx, "LOWER(fu.email) = LOWER(?)", email))
}

// FindByCPF matches the CPF with or without punctuation.
func (r *EmployeeRepository) FindByCPF(ctx context.Context, cpf string) ([]*model.Employee, error) {
	return r.List(ctx, "REPLACE(REPLACE(fu.cpf, '.', ''), '-', '') = ?", taxid.Digits(cpf))
}

func (r *EmployeeRepository) FindByJobPosition(ctx context.Context, positionID int64) ([]*model.Employee, error) {
	return r.List(ctx, "fu.cargo_id = ?", positionID)
}

// FindCredentials is FindByEmail with the password hash loaded.
func (r *EmployeeRepository) FindCredentials(ctx context.Context, email string) (*model.Employee, bool, error) {
	q := r.query("LOWER(fu.email) = LOWER(?)", email)
	q.Name = "findCredentials"
	if r.Columns().Has(passwordColumn) {
		q.Select += ", fu." + passwordColumn + " AS " + passwordColumn
	}
	return r.Get(ctx, q, r.join)
}

// SetPasswordHash stores a bcrypt hash for the employee. Missing ids are
// reported as repository.ErrNotFound.
func (r *EmployeeRepository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	set, args := r.Stamped(passwordColumn+" = ?", hash)
	affected, err := r.Exec(ctx, "setPasswordHash",
		"UPDATE funcionario SET "+set+" WHERE id = ?", append(args, id)...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return &repository.PersistenceError{Entity: "employee", Op: "setPasswordHash", Err: repository.ErrNotFound}
	}
	return nil
}
