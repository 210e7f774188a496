package domain

import "encoding/json"

// PropiedadListado es una fila de propiedades unida con los datos del
// vendedor y la foto principal. Se usa en búsquedas, detalle y favoritos.
type PropiedadListado struct {
	Propiedad
	VendedorNombre   *string `json:"vendedor_nombre,omitempty"`
	VendedorTelefono *string `json:"vendedor_telefono,omitempty"`
	VendedorEmail    *string `json:"vendedor_email,omitempty"`
	VendedorAvatar   *string `json:"vendedor_avatar,omitempty"`
	FotoPrincipal    *string `json:"foto_principal"`
}

// MensajeHilo es un mensaje de chat con los nombres ya resueltos
type MensajeHilo struct {
	MensajeChat
	RemitenteNombre    string  `json:"remitente_nombre"`
	DestinatarioNombre string  `json:"destinatario_nombre"`
	PropiedadTitulo    *string `json:"propiedad_titulo"`
}

// ConsultaReciente es una consulta con el título de su propiedad
type ConsultaReciente struct {
	Consulta
	PropiedadTitulo string `json:"propiedad_titulo"`
}

// PropiedadVendedor es una fila del panel del vendedor
type PropiedadVendedor struct {
	Propiedad
	TotalFotos     int64   `json:"total_fotos"`
	TotalConsultas int64   `json:"total_consultas"`
	FotoPrincipal  *string `json:"foto_principal"`
}

type EstadisticasVendedor struct {
	Total              int64 `json:"total"`
	Disponibles        int64 `json:"disponibles"`
	VendidasAlquiladas int64 `json:"vendidas_alquiladas"`
	Destacadas         int64 `json:"destacadas"`
}

// Conteo es una fila de un GROUP BY. Clave es el nombre de la columna
// agrupada y se usa como nombre del campo al serializar:
// {"tipo": "casa", "cantidad": 3}.
type Conteo struct {
	Clave    string `gorm:"-"`
	Valor    string
	Cantidad int64
}

func (c Conteo) MarshalJSON() ([]byte, error) {
	clave := c.Clave
	if clave == "" {
		clave = "valor"
	}
	return json.Marshal(map[string]interface{}{
		clave:      c.Valor,
		"cantidad": c.Cantidad,
	})
}

type EstadisticasAdmin struct {
	Totales struct {
		Propiedades int64 `json:"propiedades"`
		Usuarios    int64 `json:"usuarios"`
		Consultas   int64 `json:"consultas"`
	} `json:"totales"`
	PropiedadesPorTipo      []Conteo           `json:"propiedadesPorTipo"`
	PropiedadesPorOperacion []Conteo           `json:"propiedadesPorOperacion"`
	UsuariosPorRol          []Conteo           `json:"usuariosPorRol"`
	ConsultasPorEstado      []Conteo           `json:"consultasPorEstado"`
	PropiedadesRecientes    []PropiedadListado `json:"propiedadesRecientes"`
}
