package controllers

import (
	"net/http"

	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/middleware"
	"github.com/integralvisionpss-art/inmobiliaria/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var mensajesUsuario = mensajes{
	noEncontrado: "Usuario no encontrado",
	conflicto:    "Email ya registrado",
}

// UserController maneja los endpoints HTTP de usuarios
type UserController struct {
	service services.UserService
	log     *zap.Logger
}

// NewUserController crea una nueva instancia del controlador
func NewUserController(service services.UserService, log *zap.Logger) *UserController {
	return &UserController{service: service, log: log}
}

// Register maneja POST /api/usuarios/register
func (ctrl *UserController) Register(c *gin.Context) {
	// 1. Leer el JSON del body y parsearlo a RegisterRequest
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderBindError(c, err)
		return
	}

	// 2. Crear el usuario; el servicio ya devuelve el token
	res, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		responderError(c, ctrl.log, err, mensajesUsuario)
		return
	}

	// 3. Status 201 = Created
	c.JSON(http.StatusCreated, res)
}

// Login maneja POST /api/usuarios/login
func (ctrl *UserController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderBindError(c, err)
		return
	}

	res, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		responderError(c, ctrl.log, err, mensajesUsuario)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Perfil maneja GET /api/usuarios/perfil
// El usuario ya lo resolvió AuthMiddleware
func (ctrl *UserController) Perfil(c *gin.Context) {
	usuario, _ := middleware.UsuarioActual(c)
	c.JSON(http.StatusOK, dto.NuevoUsuarioResponse(usuario))
}
