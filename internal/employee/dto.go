package employee

type ProfileResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"nome"`
	Email       string `json:"email"`
	Phone       string `json:"telefone,omitempty"`
	JobPosition string `json:"cargo,omitempty"`
	City        string `json:"cidade,omitempty"`
}

type SetPasswordRequest struct {
	Password string `json:"senha" binding:"required,min=8,max=72"`
}
