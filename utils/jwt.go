package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/integralvisionpss-art/inmobiliaria/domain"
)

// Claims son los datos que viajan dentro del token
type Claims struct {
	ID    uint       `json:"id"`
	Email string     `json:"email"`
	Rol   domain.Rol `json:"rol"`
	jwt.RegisteredClaims
}

// JWTManager firma y valida tokens con una clave HS256
type JWTManager struct {
	secret     []byte
	expiracion time.Duration
}

// NewJWTManager crea el manager; la expiración por defecto es de 7 días
func NewJWTManager(secret string, expiracion time.Duration) *JWTManager {
	if expiracion <= 0 {
		expiracion = 7 * 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), expiracion: expiracion}
}

// GenerateToken genera un nuevo token para el usuario
// Se llama después del login o del registro
func (m *JWTManager) GenerateToken(u *domain.Usuario) (string, error) {
	ahora := time.Now()
	claims := &Claims{
		ID:    u.ID,
		Email: u.Email,
		Rol:   u.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(ahora.Add(m.expiracion)),
			IssuedAt:  jwt.NewNumericDate(ahora),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken verifica firma, algoritmo y expiración
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token inválido")
	}
	if claims.ID == 0 {
		return nil, errors.New("token sin id de usuario")
	}

	return claims, nil
}
