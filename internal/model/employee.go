package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobPosition is a row of cargo.
type JobPosition struct {
	Record
	Name        string          `json:"nome" binding:"required,max=60"`
	Description string          `json:"descricao" binding:"max=255"`
	BaseSalary  decimal.Decimal `json:"salarioBase"`
}

// Employee is a row of funcionario. Employees with an email and a password
// hash may sign in to the API.
type Employee struct {
	Record
	Name            string          `json:"nome" binding:"required,max=100"`
	CPF             string          `json:"cpf" binding:"required,cpf"`
	RG              string          `json:"rg" binding:"max=20"`
	Email           string          `json:"email" binding:"omitempty,email,max=100"`
	Phone           string          `json:"telefone" binding:"omitempty,phone"`
	Salary          decimal.Decimal `json:"salario"`
	HireDate        time.Time       `json:"dataAdmissao" binding:"required"`
	TerminationDate *time.Time      `json:"dataDemissao"`
	JobPositionID   int64           `json:"cargoId" binding:"required"`
	JobPosition     *JobPosition    `json:"cargo,omitempty" binding:"-"`
	CityID          *int64          `json:"cidadeId"`
	City            *City           `json:"cidade,omitempty" binding:"-"`
	PasswordHash    string          `json:"-"`
	Address
}
