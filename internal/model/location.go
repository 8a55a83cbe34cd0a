package model

// Country is a row of pais.
type Country struct {
	Record
	Name     string `json:"nome" binding:"required,max=60"`
	Acronym  string `json:"sigla" binding:"required,max=3"`
	DialCode string `json:"ddi" binding:"max=5"`
}

// State is a row of estado. Country is populated on reads.
type State struct {
	Record
	Name      string   `json:"nome" binding:"required,max=60"`
	UF        string   `json:"uf" binding:"required,len=2"`
	CountryID int64    `json:"paisId" binding:"required"`
	Country   *Country `json:"pais,omitempty" binding:"-"`
}

// City is a row of cidade. State (and its Country) are populated on reads.
type City struct {
	Record
	Name     string `json:"nome" binding:"required,max=60"`
	IBGECode string `json:"codigoIbge" binding:"omitempty,numeric,len=7"`
	StateID  int64  `json:"estadoId" binding:"required"`
	State    *State `json:"estado,omitempty" binding:"-"`
}
