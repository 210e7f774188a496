package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword genera el hash bcrypt (costo 10) que se guarda en usuarios.password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compara la contraseña enviada en el login con el hash guardado
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
