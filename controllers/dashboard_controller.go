package controllers

import (
	"net/http"

	"github.com/integralvisionpss-art/inmobiliaria/middleware"
	"github.com/integralvisionpss-art/inmobiliaria/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardController struct {
	service services.DashboardService
	log     *zap.Logger
}

// NewDashboardController crea una nueva instancia del controlador
func NewDashboardController(service services.DashboardService, log *zap.Logger) *DashboardController {
	return &DashboardController{service: service, log: log}
}

// Vendedor maneja GET /api/dashboard/vendedor/propiedades
// Un admin ve su propio panel de vendedor
func (ctrl *DashboardController) Vendedor(c *gin.Context) {
	usuario, _ := middleware.UsuarioActual(c)

	res, err := ctrl.service.Vendedor(c.Request.Context(), usuario.ID)
	if err != nil {
		responderError(c, ctrl.log, err, mensajes{})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Admin maneja GET /api/dashboard/admin/estadisticas
func (ctrl *DashboardController) Admin(c *gin.Context) {
	res, err := ctrl.service.Admin(c.Request.Context())
	if err != nil {
		responderError(c, ctrl.log, err, mensajes{})
		return
	}
	c.JSON(http.StatusOK, res)
}
