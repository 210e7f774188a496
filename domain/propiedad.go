package domain

import "time"

type Operacion string

const (
	OperacionVenta    Operacion = "venta"
	OperacionAlquiler Operacion = "alquiler"
)

func (o Operacion) Valida() bool {
	return o == OperacionVenta || o == OperacionAlquiler
}

type EstadoPropiedad string

const (
	EstadoDisponible EstadoPropiedad = "disponible"
	EstadoVendida    EstadoPropiedad = "vendida"
	EstadoAlquilada  EstadoPropiedad = "alquilada"
)

// PuedeCambiarA aplica el ciclo de vida de una publicación:
// solo disponible -> vendida | alquilada.
func (e EstadoPropiedad) PuedeCambiarA(nuevo EstadoPropiedad) bool {
	if e != EstadoDisponible {
		return false
	}
	return nuevo == EstadoVendida || nuevo == EstadoAlquilada
}

// Propiedad representa una publicación de venta o alquiler
type Propiedad struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Titulo             string          `gorm:"size:200;not null" json:"titulo"`
	Descripcion        string          `gorm:"type:text;not null" json:"descripcion"`
	Tipo               string          `gorm:"size:40;not null;index" json:"tipo"`
	Operacion          Operacion       `gorm:"type:varchar(20);not null;index" json:"operacion"`
	Precio             float64         `gorm:"not null" json:"precio"`
	Moneda             string          `gorm:"size:3;default:'USD'" json:"moneda"`
	Ciudad             string          `gorm:"size:120;not null" json:"ciudad"`
	Barrio             string          `gorm:"size:120" json:"barrio"`
	Direccion          string          `gorm:"size:200" json:"direccion"`
	Latitud            *float64        `json:"latitud"`
	Longitud           *float64        `json:"longitud"`
	Habitaciones       int             `gorm:"default:0" json:"habitaciones"`
	Banos              int             `gorm:"column:banos;default:0" json:"baños"`
	MetrosCuadrados    float64         `gorm:"default:0" json:"metros_cuadrados"`
	Antiguedad         int             `gorm:"default:0" json:"antiguedad"`
	Estado             EstadoPropiedad `gorm:"type:varchar(20);default:'disponible';index" json:"estado"`
	Destacada          bool            `gorm:"default:false" json:"destacada"`
	Vistas             int             `gorm:"default:0" json:"vistas"`
	VendedorID         uint            `gorm:"not null;index" json:"vendedor_id"`
	FechaCreacion      time.Time       `gorm:"autoCreateTime" json:"fecha_creacion"`
	FechaActualizacion time.Time       `gorm:"autoUpdateTime" json:"fecha_actualizacion"`
}

func (Propiedad) TableName() string {
	return "propiedades"
}

// Foto pertenece a una única propiedad; Orden es 1-based y único por propiedad
type Foto struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PropiedadID uint   `gorm:"not null;uniqueIndex:idx_foto_orden" json:"-"`
	URLFoto     string `gorm:"column:url_foto;type:text;not null" json:"url_foto"`
	Descripcion string `gorm:"size:200" json:"descripcion"`
	Orden       int    `gorm:"not null;uniqueIndex:idx_foto_orden" json:"orden"`

	Propiedad *Propiedad `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Foto) TableName() string {
	return "propiedad_fotos"
}

// Caracteristica es un par clave/valor libre; se permiten duplicados
type Caracteristica struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	PropiedadID    uint   `gorm:"not null;index" json:"-"`
	Caracteristica string `gorm:"size:120;not null" json:"caracteristica"`
	Valor          string `gorm:"size:200" json:"valor"`

	Propiedad *Propiedad `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Caracteristica) TableName() string {
	return "propiedad_caracteristicas"
}
