package domain

import "time"

// Consulta es un pedido de información sobre una propiedad.
// UsuarioID es opcional: se puede consultar sin estar registrado.
type Consulta struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PropiedadID   uint      `gorm:"not null;index" json:"propiedad_id"`
	UsuarioID     *uint     `gorm:"index" json:"usuario_id"`
	Nombre        string    `gorm:"size:120" json:"nombre"`
	Email         string    `gorm:"size:160" json:"email"`
	Telefono      string    `gorm:"size:40" json:"telefono"`
	Mensaje       string    `gorm:"type:text;not null" json:"mensaje"`
	Estado        string    `gorm:"size:20;default:'pendiente'" json:"estado"`
	FechaConsulta time.Time `gorm:"autoCreateTime" json:"fecha_consulta"`
}

func (Consulta) TableName() string {
	return "consultas"
}

// Favorito une un usuario con una propiedad; el par es único
type Favorito struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UsuarioID     uint      `gorm:"not null;uniqueIndex:idx_favorito_par" json:"usuario_id"`
	PropiedadID   uint      `gorm:"not null;uniqueIndex:idx_favorito_par" json:"propiedad_id"`
	FechaAgregado time.Time `gorm:"autoCreateTime" json:"fecha_agregado"`
}

func (Favorito) TableName() string {
	return "favoritos"
}

type MensajeChat struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RemitenteID    uint      `gorm:"not null;index" json:"remitente_id"`
	DestinatarioID uint      `gorm:"not null;index" json:"destinatario_id"`
	PropiedadID    *uint     `json:"propiedad_id"`
	Mensaje        string    `gorm:"type:text;not null" json:"mensaje"`
	FechaEnvio     time.Time `gorm:"autoCreateTime" json:"fecha_envio"`
	Leido          bool      `gorm:"default:false" json:"leido"`
}

func (MensajeChat) TableName() string {
	return "mensajes_chat"
}
