package employee

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
)

type EmployeeService struct {
	employees *EmployeeRepository
}

func NewEmployeeService(employees *EmployeeRepository) *EmployeeService {
	return &EmployeeService{
		employees: employees,
	}
}

// Check validates an employee before it is written: dismissal after hiring,
// email and CPF not used by another employee.
func (s *EmployeeService) Check(ctx context.Context, e *model.Employee) error {
	if e.TerminationDate != nil && e.TerminationDate.Before(e.HireDate) {
		return fmt.Errorf("demissão %s antes da admissão %s: %w",
			e.TerminationDate.Format("2006-01-02"), e.HireDate.Format("2006-01-02"), ErrInvalidDismissal)
	}

	if e.Email != "" {
		other, found, err := s.employees.FindByEmail(ctx, e.Email)
		if err != nil {
			return err
		}
		if found && other.ID != e.ID {
			return fmt.Errorf("e-mail em uso pelo id %d: %w", other.ID, ErrEmailDuplicate)
		}
	}

	others, err := s.employees.FindByCPF(ctx, e.CPF)
	if err != nil {
		return err
	}
	for _, other := range others {
		if other.ID != e.ID {
			logger.FromContext(ctx).Warn("cpf já cadastrado", "cpf", logger.MaskDocument(e.CPF), "other_id", other.ID)
			return fmt.Errorf("cpf em uso pelo id %d: %w", other.ID, ErrCPFDuplicate)
		}
	}
	return nil
}

func (s *EmployeeService) GetProfile(ctx context.Context, employeeID int64) (*ProfileResponse, error) {
	employee, found, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("consulta de funcionário falhou: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("funcionário não encontrado employeeID=%d %w", employeeID, ErrEmployeeNotFound)
	}

	response := &ProfileResponse{
		ID:    employee.ID,
		Name:  employee.Name,
		Email: employee.Email,
		Phone: employee.Phone,
	}
	if employee.JobPosition != nil {
		response.JobPosition = employee.JobPosition.Name
	}
	if employee.City != nil {
		response.City = employee.City.Name
	}
	return response, nil
}

// SetPassword stores the bcrypt hash of password for the employee.
func (s *EmployeeService) SetPassword(ctx context.Context, employeeID int64, password string) error {
	log := logger.FromContext(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash de senha: %w", err)
	}

	if _, found, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return err
	} else if !found {
		return fmt.Errorf("funcionário não encontrado employeeID=%d %w", employeeID, ErrEmployeeNotFound)
	}

	if err := s.employees.SetPasswordHash(ctx, employeeID, string(hash)); err != nil {
		return err
	}
	log.Info("senha do funcionário atualizada", "employee_id", employeeID)
	return nil
}
