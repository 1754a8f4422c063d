// Package resettoken genera los secretos de un solo uso del flujo "olvidé mi contraseña".
// El valor crudo viaja al usuario en la URL; en la DB solo se guarda su SHA-256.
package resettoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// entropyBytes bytes aleatorios por token.
const entropyBytes = 20

// Generate crea un token nuevo con vigencia ttl.
func Generate(ttl time.Duration) (raw, hashed string, expiresAt time.Time, err error) {
	buf := make([]byte, entropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("resettoken: leer entropía: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, Hash(raw), time.Now().Add(ttl), nil
}

// Hash aplica el mismo hash que se persiste, para buscar por el token recibido.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
