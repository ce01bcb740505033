package auth

import "github.com/golang-jwt/jwt/v5"

// Claims carried by a session token. The token is self-contained: validity
// is a pure function of signature and expiry, no server-side session state.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Message  string `json:"message"`
}
