package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/repositories"
	"github.com/integralvisionpss-art/inmobiliaria/utils"

	"go.uber.org/zap"
)

// UserService define la interfaz del servicio de usuarios
type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	GetUserByID(ctx context.Context, id uint) (*domain.Usuario, error)
	Autenticar(ctx context.Context, token string) (*domain.Usuario, error)
}

// userService es la implementación real del servicio
type userService struct {
	repo repositories.UserRepository
	jwt  *utils.JWTManager
	log  *zap.Logger
	now  func() time.Time
}

// NewUserService crea una nueva instancia del servicio
func NewUserService(repo repositories.UserRepository, jwt *utils.JWTManager, log *zap.Logger) UserService {
	return &userService{repo: repo, jwt: jwt, log: log, now: time.Now}
}

// Register crea la cuenta y devuelve un token listo para usar.
// Solo se permite elegir entre cliente y vendedor.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizarEmail(req.Email)
	if strings.TrimSpace(req.Nombre) == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nombre, email y password son requeridos", domain.ErrValidation)
	}

	rol := domain.Rol(req.Rol)
	if rol == "" {
		rol = domain.RolCliente
	}
	if rol != domain.RolCliente && rol != domain.RolVendedor {
		return nil, fmt.Errorf("%w: rol inválido", domain.ErrValidation)
	}

	// 1. Verificar si el email ya existe (el índice único es la garantía final)
	existente, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("email ya registrado: %w", domain.ErrConflict)
	}

	// 2. Hashear la contraseña
	// NUNCA guardamos contraseñas en texto plano
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hasheando password: %w", err)
	}

	user := &domain.Usuario{
		Nombre:   strings.TrimSpace(req.Nombre),
		Email:    email,
		Password: hash,
		Telefono: req.Telefono,
		Rol:      rol,
		Activo:   true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.respuestaAuth(ctx, user, "Usuario registrado exitosamente")
}

// Login autentica por email y password
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, normalizarEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// No decimos si el email existe, si está desactivado o si falló la contraseña
	if !user.Activo || !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.respuestaAuth(ctx, user, "Login exitoso")
}

// GetUserByID solo delega al repositorio
func (s *userService) GetUserByID(ctx context.Context, id uint) (*domain.Usuario, error) {
	return s.repo.GetByID(ctx, id)
}

// Autenticar valida el token y carga el usuario, que debe seguir activo
func (s *userService) Autenticar(ctx context.Context, token string) (*domain.Usuario, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrUnauthorized)
	}

	user, err := s.repo.GetActivoByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("usuario %d inexistente o inactivo: %w", claims.ID, domain.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) respuestaAuth(ctx context.Context, user *domain.Usuario, mensaje string) (*dto.AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generando token: %w", err)
	}

	if err := s.repo.ActualizarUltimoLogin(ctx, user.ID, s.now()); err != nil {
		s.log.Warn("No se pudo actualizar ultimo_login", zap.Uint("usuario_id", user.ID), zap.Error(err))
	}

	return &dto.AuthResponse{
		Mensaje: mensaje,
		Usuario: dto.NuevoUsuarioResponse(user),
		Token:   token,
	}, nil
}

func normalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
