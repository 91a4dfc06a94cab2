package dto

// LoginRequest defines the credentials for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the data returned after a successful login.
type LoginResponse struct {
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	Expires int64        `json:"expiresAt"` // Unix seconds
}
