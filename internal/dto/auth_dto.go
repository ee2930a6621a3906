package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// ErrorResponse is the body the portal attaches to non-2xx responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
