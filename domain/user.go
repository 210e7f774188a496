package domain

import "time"

// Rol define los tipos de usuario que existen
type Rol string

const (
	RolAdmin    Rol = "admin"    // Administrador del sistema
	RolVendedor Rol = "vendedor" // Publica y gestiona propiedades
	RolCliente  Rol = "cliente"  // Usuario común
)

// Valido indica si el rol es uno de los conocidos
func (r Rol) Valido() bool {
	switch r {
	case RolAdmin, RolVendedor, RolCliente:
		return true
	}
	return false
}

// Usuario representa un usuario en el sistema
type Usuario struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Nombre        string     `gorm:"size:120;not null" json:"nombre"`
	Email         string     `gorm:"size:160;uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"` // El "-" oculta el hash en JSON
	Telefono      string     `gorm:"size:40" json:"telefono"`
	Rol           Rol        `gorm:"type:varchar(20);default:'cliente'" json:"rol"`
	Activo        bool       `gorm:"default:true" json:"-"`
	Avatar        string     `json:"avatar,omitempty"`
	UltimoLogin   *time.Time `json:"ultimo_login,omitempty"`
	FechaRegistro time.Time  `gorm:"autoCreateTime" json:"fecha_registro"`
}

// TableName especifica el nombre de la tabla
func (Usuario) TableName() string {
	return "usuarios"
}
