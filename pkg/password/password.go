// Package password encapsula el hash de credenciales con bcrypt.
package password

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Cost factor de bcrypt usado para todas las contraseñas almacenadas.
const Cost = 10

// MaxBytes longitud máxima que bcrypt acepta.
const MaxBytes = 72

// ErrTooLong la contraseña supera MaxBytes.
var ErrTooLong = errors.New("password: supera 72 bytes")

// Hash devuelve el hash bcrypt (con salt) de plain.
func Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", err
	}
	return string(h), nil
}

// Compare indica si plain corresponde al hash almacenado. Nunca devuelve error: un hash
// corrupto se trata igual que una contraseña incorrecta.
func Compare(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// CompareDummy hace el mismo trabajo que Compare contra un hash fijo y siempre devuelve false.
// Se usa cuando el email no existe; cuesta lo mismo que una comparación real.
func CompareDummy(plain string) bool {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("ecommerce-api/dummy"), Cost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
	return false
}
