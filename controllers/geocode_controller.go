package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GeocodeController expone el proxy de Mapbox. Las respuestas con
// success=false siguen el formato que espera el mapa del frontend.
type GeocodeController struct {
	service services.GeocodeService
	log     *zap.Logger
}

// NewGeocodeController crea una nueva instancia del controlador
func NewGeocodeController(service services.GeocodeService, log *zap.Logger) *GeocodeController {
	return &GeocodeController{service: service, log: log}
}

// Geocodificar maneja POST /api/geocode/mapbox
func (ctrl *GeocodeController) Geocodificar(c *gin.Context) {
	var req dto.GeocodeRequest
	// Un body inválido equivale a no mandar la dirección
	_ = c.ShouldBindJSON(&req)

	res, err := ctrl.service.Geocodificar(c.Request.Context(), req.Direccion)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Dirección requerida"})
	case errors.Is(err, services.ErrSinResultados):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No se pudo geocodificar la dirección",
		})
	default:
		ctrl.errorProveedor(c, err)
	}
}

// GeocodificarInversa maneja POST /api/reverse-geocode
func (ctrl *GeocodeController) GeocodificarInversa(c *gin.Context) {
	var req dto.ReverseGeocodeRequest
	_ = c.ShouldBindJSON(&req)
	if req.Latitud == nil || req.Longitud == nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Coordenadas requeridas"})
		return
	}

	res, err := ctrl.service.GeocodificarInversa(c.Request.Context(), *req.Latitud, *req.Longitud)
	if err != nil {
		ctrl.errorProveedor(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// LugaresCercanos maneja GET /api/lugares-cercanos?latitud&longitud&tipos
func (ctrl *GeocodeController) LugaresCercanos(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("latitud"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("longitud"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Coordenadas requeridas"})
		return
	}

	res, err := ctrl.service.LugaresCercanos(c.Request.Context(), lat, lng, c.DefaultQuery("tipos", "poi"))
	if err != nil {
		ctrl.errorProveedor(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *GeocodeController) errorProveedor(c *gin.Context, err error) {
	ctrl.log.Error("Error consultando Mapbox", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: mensajeErrorServidor})
}
