package models

// CredentialsRequest is the body of both signup and login
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is what a successful signup or login yields
type AuthResult struct {
	Username string
	Token    string
}

// AuthResponse is the body returned on signup and login success
type AuthResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse standard error format
type ErrorResponse struct {
	Error string `json:"error"`
}
