package dto

import (
	"github.com/integralvisionpss-art/inmobiliaria/domain"
)

// BuscarPropiedadesRequest son los query params de GET /api/propiedades.
// Los punteros nil indican que el filtro no vino.
type BuscarPropiedadesRequest struct {
	Filtros domain.FiltrosPropiedad
	Page    int
	Limit   int
}

// CrearPropiedadRequest es el body de POST /api/propiedades
type CrearPropiedadRequest struct {
	Titulo          string               `json:"titulo"`
	Descripcion     string               `json:"descripcion"`
	Tipo            string               `json:"tipo"`
	Operacion       string               `json:"operacion"`
	Precio          float64              `json:"precio"`
	Moneda          string               `json:"moneda"`
	Ciudad          string               `json:"ciudad"`
	Barrio          string               `json:"barrio"`
	Direccion       string               `json:"direccion"`
	Latitud         *float64             `json:"latitud"`
	Longitud        *float64             `json:"longitud"`
	Habitaciones    int                  `json:"habitaciones"`
	Banos           int                  `json:"baños"`
	MetrosCuadrados float64              `json:"metros_cuadrados"`
	Antiguedad      int                  `json:"antiguedad"`
	Fotos           []string             `json:"fotos"`
	Caracteristicas ListaCaracteristicas `json:"caracteristicas"`
}

// CambiarEstadoRequest es el body de PUT /api/propiedades/:id/estado
type CambiarEstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// PropiedadResumen es un elemento del listado de búsqueda
type PropiedadResumen struct {
	domain.PropiedadListado
	Fotos           []string                `json:"fotos"`
	Caracteristicas []domain.Caracteristica `json:"caracteristicas"`
}

// PropiedadDetalle es la respuesta de GET /api/propiedades/:id.
// Similares queda afuera en la respuesta de creación.
type PropiedadDetalle struct {
	domain.PropiedadListado
	Fotos           []domain.Foto              `json:"fotos"`
	Caracteristicas []domain.Caracteristica    `json:"caracteristicas"`
	Similares       *[]domain.PropiedadListado `json:"similares,omitempty"`
}

type Paginacion struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ResultadoBusqueda es la respuesta de GET /api/propiedades
type ResultadoBusqueda struct {
	Propiedades []PropiedadResumen `json:"propiedades"`
	Paginacion  Paginacion         `json:"paginacion"`
}

type PropiedadCreadaResponse struct {
	Mensaje   string            `json:"mensaje"`
	Propiedad *PropiedadDetalle `json:"propiedad"`
}

type EstadoActualizadoResponse struct {
	Mensaje string                 `json:"mensaje"`
	ID      uint                   `json:"id"`
	Estado  domain.EstadoPropiedad `json:"estado"`
}
