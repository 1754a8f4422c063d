package ports

import (
	"context"
	"time"
)

// TokenDenylist registra tokens de sesión revocados antes de su expiración (logout).
// La clave es el jti del token; la entrada vive como mucho lo que le queda al token.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
