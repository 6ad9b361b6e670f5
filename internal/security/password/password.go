// Package password encapsula el hashing de contraseñas (bcrypt).
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const cost = 10

// Hash genera el hash bcrypt de una contraseña en texto plano.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password: empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara en tiempo constante. Hash vacío nunca verifica.
func Verify(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
