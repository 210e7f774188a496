package dto

import "github.com/integralvisionpss-art/inmobiliaria/domain"

type FavoritoRequest struct {
	PropiedadID uint `json:"propiedad_id" binding:"required"`
}

type FavoritoResponse struct {
	Mensaje  string `json:"mensaje"`
	Favorito bool   `json:"favorito"`
}

type EnviarMensajeRequest struct {
	DestinatarioID uint   `json:"destinatario_id" binding:"required"`
	PropiedadID    *uint  `json:"propiedad_id"`
	Mensaje        string `json:"mensaje"`
}

type MensajeEnviadoResponse struct {
	Mensaje   string `json:"mensaje"`
	MensajeID uint   `json:"mensaje_id"`
}

// CrearConsultaRequest no requiere sesión; usuario_id es opcional
type CrearConsultaRequest struct {
	PropiedadID uint   `json:"propiedad_id" binding:"required"`
	UsuarioID   *uint  `json:"usuario_id"`
	Nombre      string `json:"nombre"`
	Email       string `json:"email" binding:"omitempty,email"`
	Telefono    string `json:"telefono"`
	Mensaje     string `json:"mensaje"`
}

type ConsultaCreadaResponse struct {
	Mensaje    string `json:"mensaje"`
	ConsultaID uint   `json:"consulta_id"`
}

type DashboardVendedorResponse struct {
	Propiedades        []domain.PropiedadVendedor  `json:"propiedades"`
	Estadisticas       domain.EstadisticasVendedor `json:"estadisticas"`
	ConsultasRecientes []domain.ConsultaReciente   `json:"consultasRecientes"`
}

type UploadResponse struct {
	Mensaje string   `json:"mensaje"`
	Fotos   []string `json:"fotos"`
	Total   int      `json:"total"`
}
