package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonType distinguishes natural persons (CPF) from companies (CNPJ).
type PersonType string

const (
	PersonNatural PersonType = "F"
	PersonLegal   PersonType = "J"
)

// Customer is a row of cliente. PaymentConditionID is a bare foreign key:
// the condition is never loaded together with the customer.
type Customer struct {
	Record
	PersonType         PersonType      `json:"tipoPessoa" binding:"required,oneof=F J"`
	Name               string          `json:"nome" binding:"required,max=100"`
	Nickname           string          `json:"apelido" binding:"max=60"`
	Document           string          `json:"cpfCnpj" binding:"omitempty,cpfcnpj"`
	StateRegistration  string          `json:"rgIe" binding:"max=20"`
	Email              string          `json:"email" binding:"omitempty,email,max=100"`
	Phone              string          `json:"telefone" binding:"omitempty,phone"`
	BirthDate          *time.Time      `json:"dataNascimento"`
	CreditLimit        decimal.Decimal `json:"limiteCredito"`
	CityID             *int64          `json:"cidadeId"`
	City               *City           `json:"cidade,omitempty" binding:"-"`
	PaymentConditionID *int64          `json:"condicaoPagamentoId"`
	Address
}

// Supplier is a row of fornecedor.
type Supplier struct {
	Record
	PersonType         PersonType `json:"tipoPessoa" binding:"required,oneof=F J"`
	CompanyName        string     `json:"razaoSocial" binding:"required,max=120"`
	TradeName          string     `json:"nomeFantasia" binding:"max=120"`
	Document           string     `json:"cpfCnpj" binding:"omitempty,cpfcnpj"`
	StateRegistration  string     `json:"inscricaoEstadual" binding:"max=20"`
	Email              string     `json:"email" binding:"omitempty,email,max=100"`
	Phone              string     `json:"telefone" binding:"omitempty,phone"`
	Contact            string     `json:"contato" binding:"max=60"`
	Website            string     `json:"site" binding:"omitempty,url,max=120"`
	CityID             *int64     `json:"cidadeId"`
	City               *City      `json:"cidade,omitempty" binding:"-"`
	PaymentConditionID *int64     `json:"condicaoPagamentoId"`
	Address
}

// Carrier is a row of transportadora.
type Carrier struct {
	Record
	CompanyName       string `json:"razaoSocial" binding:"required,max=120"`
	TradeName         string `json:"nomeFantasia" binding:"max=120"`
	CNPJ              string `json:"cnpj" binding:"omitempty,cnpj"`
	StateRegistration string `json:"inscricaoEstadual" binding:"max=20"`
	RNTRC             string `json:"rntrc" binding:"omitempty,numeric,max=9"`
	Email             string `json:"email" binding:"omitempty,email,max=100"`
	Phone             string `json:"telefone" binding:"omitempty,phone"`
	CityID            *int64 `json:"cidadeId"`
	City              *City  `json:"cidade,omitempty" binding:"-"`
	Address
}

// Vehicle is a row of veiculo, always owned by a carrier.
type Vehicle struct {
	Record
	Plate     string          `json:"placa" binding:"required,max=8"`
	Model     string          `json:"modelo" binding:"max=60"`
	Make      string          `json:"fabricante" binding:"max=60"`
	Year      int             `json:"ano" binding:"omitempty,min=1950,max=2100"`
	Capacity  decimal.Decimal `json:"capacidadeKg"`
	CarrierID int64           `json:"transportadoraId" binding:"required"`
	Carrier   *Carrier        `json:"transportadora,omitempty" binding:"-"`
}
