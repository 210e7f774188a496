package dto

import "encoding/json"

type GeocodeRequest struct {
	Direccion string `json:"direccion"`
}

type GeocodeResponse struct {
	Success           bool            `json:"success"`
	Latitud           float64         `json:"latitud"`
	Longitud          float64         `json:"longitud"`
	DireccionCompleta string          `json:"direccion_completa"`
	Contexto          json.RawMessage `json:"contexto"`
}

// ReverseGeocodeRequest usa punteros para distinguir "no vino" de 0
type ReverseGeocodeRequest struct {
	Latitud  *float64 `json:"latitud"`
	Longitud *float64 `json:"longitud"`
}

type ReverseGeocodeResponse struct {
	Success         bool            `json:"success"`
	Direccion       string          `json:"direccion"`
	Caracteristicas json.RawMessage `json:"caracteristicas,omitempty"`
}

type LugaresCercanosResponse struct {
	Lugares []json.RawMessage `json:"lugares"`
	Total   int               `json:"total"`
}
