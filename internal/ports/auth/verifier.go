package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite el token de sesión tras register/login.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}
