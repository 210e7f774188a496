package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"gorm.io/gorm"
)

// UserRepository define la interfaz del repositorio de usuarios
type UserRepository interface {
	Create(ctx context.Context, user *domain.Usuario) error
	GetByID(ctx context.Context, id uint) (*domain.Usuario, error)
	GetActivoByID(ctx context.Context, id uint) (*domain.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*domain.Usuario, error)
	ActualizarUltimoLogin(ctx context.Context, id uint, cuando time.Time) error
}

// userRepository es la implementación con gorm
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository crea una nueva instancia del repositorio
// Recibe la conexión a la base de datos
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserta un nuevo usuario. El índice único de email es la garantía
// real contra duplicados: gorm.ErrDuplicatedKey se traduce a ErrConflict.
func (r *userRepository) Create(ctx context.Context, user *domain.Usuario) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("el email %s ya está registrado: %w", user.Email, domain.ErrConflict)
	}
	return err
}

// GetByID busca un usuario por su ID
// Ejemplo: GetByID(1) -> SELECT * FROM usuarios WHERE id = 1
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.Usuario, error) {
	return r.first(ctx, "id = ?", id)
}

// GetActivoByID es la búsqueda que usa el middleware de autenticación
func (r *userRepository) GetActivoByID(ctx context.Context, id uint) (*domain.Usuario, error) {
	return r.first(ctx, "id = ? AND activo = ?", id, true)
}

// GetByEmail se usa en el login y en el registro
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) ActualizarUltimoLogin(ctx context.Context, id uint, cuando time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Usuario{}).
		Where("id = ?", id).
		UpdateColumn("ultimo_login", cuando).Error
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*domain.Usuario, error) {
	var user domain.Usuario
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("usuario: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
