package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token de sesión emitido tras validar contra el backend.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
