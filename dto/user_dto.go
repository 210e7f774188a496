package dto

import "github.com/integralvisionpss-art/inmobiliaria/domain"

// RegisterRequest representa el request de registro
// Esto es lo que el frontend te envía cuando alguien se registra
type RegisterRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Telefono string `json:"telefono"`
	Rol      string `json:"rol"`
}

// LoginRequest representa el request para login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UsuarioResponse es la vista pública de un usuario
type UsuarioResponse struct {
	ID       uint       `json:"id"`
	Nombre   string     `json:"nombre"`
	Email    string     `json:"email"`
	Rol      domain.Rol `json:"rol"`
	Telefono string     `json:"telefono"`
}

// NuevoUsuarioResponse arma la vista pública
func NuevoUsuarioResponse(u *domain.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:       u.ID,
		Nombre:   u.Nombre,
		Email:    u.Email,
		Rol:      u.Rol,
		Telefono: u.Telefono,
	}
}

// AuthResponse es la respuesta de login y registro:
// el token JWT y los datos del usuario
type AuthResponse struct {
	Mensaje string          `json:"mensaje"`
	Usuario UsuarioResponse `json:"usuario"`
	Token   string          `json:"token"`
}
