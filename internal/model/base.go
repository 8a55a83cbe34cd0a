package model

import (
	"time"
)

// Record carries the surrogate key and the audit columns shared by every table.
// ativo, data_cadastro and ultima_modificacao are patched into older schemas by
// the schema reconciler, so a Record read from such a table may hold defaults.
type Record struct {
	ID        int64     `json:"id"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"dataCadastro"`
	UpdatedAt time.Time `json:"ultimaModificacao"`
}

func (r *Record) GetID() int64 {
	return r.ID
}

func (r *Record) SetID(id int64) {
	r.ID = id
}

// Meta gives repositories write access to the audit fields.
func (r *Record) Meta() *Record {
	return r
}

// Entity is implemented by every persisted type through an embedded Record.
type Entity interface {
	GetID() int64
	SetID(id int64)
	Meta() *Record
}

// Address is the postal address block reused by customers, suppliers,
// carriers and employees.
type Address struct {
	Street     string `json:"endereco" binding:"max=120"`
	Number     string `json:"numero" binding:"max=10"`
	Complement string `json:"complemento" binding:"max=60"`
	District   string `json:"bairro" binding:"max=60"`
	ZipCode    string `json:"cep" binding:"omitempty,max=9"`
}
