package controllers

import (
	"net/http"

	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/middleware"
	"github.com/integralvisionpss-art/inmobiliaria/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var mensajesPropiedad = mensajes{
	noEncontrado: "Propiedad no encontrada",
	conflicto:    "La propiedad cambió de estado mientras se actualizaba",
}

// PropiedadController maneja los endpoints HTTP de propiedades
type PropiedadController struct {
	service services.PropiedadService
	log     *zap.Logger
}

// NewPropiedadController crea una nueva instancia del controlador
func NewPropiedadController(service services.PropiedadService, log *zap.Logger) *PropiedadController {
	return &PropiedadController{service: service, log: log}
}

// Buscar maneja GET /api/propiedades
// Ejemplo: /api/propiedades?operacion=venta&minPrecio=100000&page=2
func (ctrl *PropiedadController) Buscar(c *gin.Context) {
	req, err := parseBusqueda(c)
	if err != nil {
		responderError(c, ctrl.log, err, mensajesPropiedad)
		return
	}

	res, err := ctrl.service.Buscar(c.Request.Context(), req)
	if err != nil {
		responderError(c, ctrl.log, err, mensajesPropiedad)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ObtenerPorID maneja GET /api/propiedades/:id
func (ctrl *PropiedadController) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detalle, err := ctrl.service.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, ctrl.log, err, mensajesPropiedad)
		return
	}
	c.JSON(http.StatusOK, detalle)
}

// Crear maneja POST /api/propiedades (vendedor o admin)
func (ctrl *PropiedadController) Crear(c *gin.Context) {
	usuario, _ := middleware.UsuarioActual(c)

	var req dto.CrearPropiedadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderBindError(c, err)
		return
	}

	propiedad, err := ctrl.service.Crear(c.Request.Context(), usuario.ID, req)
	if err != nil {
		responderError(c, ctrl.log, err, mensajesPropiedad)
		return
	}

	c.JSON(http.StatusCreated, dto.PropiedadCreadaResponse{
		Mensaje:   "Propiedad creada exitosamente",
		Propiedad: propiedad,
	})
}

// CambiarEstado maneja PUT /api/propiedades/:id/estado
func (ctrl *PropiedadController) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	usuario, _ := middleware.UsuarioActual(c)

	var req dto.CambiarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderBindError(c, err)
		return
	}

	estado, err := ctrl.service.CambiarEstado(c.Request.Context(), usuario, id, req.Estado)
	if err != nil {
		responderError(c, ctrl.log, err, mensajesPropiedad)
		return
	}

	c.JSON(http.StatusOK, dto.EstadoActualizadoResponse{
		Mensaje: "Estado actualizado",
		ID:      id,
		Estado:  estado,
	})
}
