package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"

	"go.uber.org/zap"
)

// ErrSinResultados indica que Mapbox respondió pero sin ninguna coincidencia
var ErrSinResultados = errors.New("geocoding sin resultados")

const direccionNoDisponible = "Dirección no disponible"

// GeocodeService es un proxy a la API de geocoding de Mapbox para que el
// token no viaje al navegador
type GeocodeService interface {
	Geocodificar(ctx context.Context, direccion string) (*dto.GeocodeResponse, error)
	GeocodificarInversa(ctx context.Context, latitud, longitud float64) (*dto.ReverseGeocodeResponse, error)
	LugaresCercanos(ctx context.Context, latitud, longitud float64, tipos string) (*dto.LugaresCercanosResponse, error)
}

type geocodeService struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewGeocodeService crea una nueva instancia del servicio
func NewGeocodeService(baseURL, token string, log *zap.Logger) GeocodeService {
	return &geocodeService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type mapboxFeature struct {
	Center    []float64       `json:"center"`
	PlaceName string          `json:"place_name"`
	Context   json.RawMessage `json:"context"`
}

type mapboxRespuesta struct {
	Features []json.RawMessage `json:"features"`
}

func (s *geocodeService) Geocodificar(ctx context.Context, direccion string) (*dto.GeocodeResponse, error) {
	if strings.TrimSpace(direccion) == "" {
		return nil, fmt.Errorf("%w: Dirección requerida", domain.ErrValidation)
	}

	params := url.Values{}
	params.Set("limit", "1")
	params.Set("country", "ar")
	features, err := s.consultar(ctx, url.PathEscape(direccion), params)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, ErrSinResultados
	}

	var f mapboxFeature
	if err := json.Unmarshal(features[0], &f); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	if len(f.Center) < 2 {
		return nil, ErrSinResultados
	}

	contexto := f.Context
	if len(contexto) == 0 {
		contexto = json.RawMessage("null")
	}
	return &dto.GeocodeResponse{
		Success:           true,
		Latitud:           f.Center[1],
		Longitud:          f.Center[0],
		DireccionCompleta: f.PlaceName,
		Contexto:          contexto,
	}, nil
}

// GeocodificarInversa no trata "sin resultados" como error
func (s *geocodeService) GeocodificarInversa(ctx context.Context, latitud, longitud float64) (*dto.ReverseGeocodeResponse, error) {
	params := url.Values{}
	params.Set("types", "address")
	features, err := s.consultar(ctx, coordenadas(latitud, longitud), params)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return &dto.ReverseGeocodeResponse{Success: false, Direccion: direccionNoDisponible}, nil
	}

	var f mapboxFeature
	if err := json.Unmarshal(features[0], &f); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return &dto.ReverseGeocodeResponse{
		Success:         true,
		Direccion:       f.PlaceName,
		Caracteristicas: features[0],
	}, nil
}

func (s *geocodeService) LugaresCercanos(ctx context.Context, latitud, longitud float64, tipos string) (*dto.LugaresCercanosResponse, error) {
	if tipos == "" {
		tipos = "poi"
	}
	params := url.Values{}
	params.Set("types", tipos)
	params.Set("limit", "10")
	params.Set("proximity", fmt.Sprintf("%v,%v", longitud, latitud))
	features, err := s.consultar(ctx, coordenadas(latitud, longitud), params)
	if err != nil {
		return nil, err
	}
	if features == nil {
		features = []json.RawMessage{}
	}
	return &dto.LugaresCercanosResponse{Lugares: features, Total: len(features)}, nil
}

// Mapbox espera longitud primero
func coordenadas(latitud, longitud float64) string {
	return fmt.Sprintf("%v,%v", longitud, latitud)
}

// consultar arma la URL de mapbox.places, ejecuta el GET y devuelve las features
func (s *geocodeService) consultar(ctx context.Context, busqueda string, params url.Values) ([]json.RawMessage, error) {
	params.Set("access_token", s.token)
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s", s.baseURL, busqueda, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("Mapbox respondió con error",
			zap.Int("status", resp.StatusCode),
			zap.String("busqueda", busqueda))
		return nil, fmt.Errorf("mapbox returned status %d: %s", resp.StatusCode, string(body))
	}

	var r mapboxRespuesta
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return r.Features, nil
}
