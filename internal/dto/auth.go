package dto

type AuthRequestDTO struct {
	Login    string `json:"login"    example:"creator@example.com"`
	Password string `json:"password" example:"s3cret"`
}

type AuthResponseDTO struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiJ9..."`
}
