package controllers

import (
	"net/http"

	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/middleware"
	"github.com/integralvisionpss-art/inmobiliaria/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FavoritoController maneja /api/favoritos
type FavoritoController struct {
	service services.FavoritoService
	log     *zap.Logger
}

func NewFavoritoController(service services.FavoritoService, log *zap.Logger) *FavoritoController {
	return &FavoritoController{service: service, log: log}
}

// Alternar maneja POST /api/favoritos: si ya era favorito lo quita
func (ctrl *FavoritoController) Alternar(c *gin.Context) {
	usuario, _ := middleware.UsuarioActual(c)

	var req dto.FavoritoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderBindError(c, err)
		return
	}

	agregado, err := ctrl.service.Alternar(c.Request.Context(), usuario.ID, req.PropiedadID)
	if err != nil {
		responderError(c, ctrl.log, err, mensajes{noEncontrado: "Propiedad no encontrada"})
		return
	}

	mensaje := "Eliminado de favoritos"
	if agregado {
		mensaje = "Agregado a favoritos"
	}
	c.JSON(http.StatusOK, dto.FavoritoResponse{Mensaje: mensaje, Favorito: agregado})
}

// Listar maneja GET /api/favoritos
func (ctrl *FavoritoController) Listar(c *gin.Context) {
	usuario, _ := middleware.UsuarioActual(c)

	favoritos, err := ctrl.service.Listar(c.Request.Context(), usuario.ID)
	if err != nil {
		responderError(c, ctrl.log, err, mensajes{})
		return
	}
	c.JSON(http.StatusOK, favoritos)
}

// ChatController maneja /api/chat
type ChatController struct {
	service services.ChatService
	log     *zap.Logger
}

func NewChatController(service services.ChatService, log *zap.Logger) *ChatController {
	return &ChatController{service: service, log: log}
}

// Hilo maneja GET /api/chat/:id, donde id es el otro participante
func (ctrl *ChatController) Hilo(c *gin.Context) {
	otroID, ok := parseID(c, "id")
	if !ok {
		return
	}
	usuario, _ := middleware.UsuarioActual(c)

	hilo, err := ctrl.service.Hilo(c.Request.Context(), usuario.ID, otroID)
	if err != nil {
		responderError(c, ctrl.log, err, mensajesChat)
		return
	}
	c.JSON(http.StatusOK, hilo)
}

var mensajesChat = mensajes{noEncontrado: "Destinatario no encontrado"}

// Enviar maneja POST /api/chat
func (ctrl *ChatController) Enviar(c *gin.Context) {
	usuario, _ := middleware.UsuarioActual(c)

	var req dto.EnviarMensajeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderBindError(c, err)
		return
	}

	id, err := ctrl.service.Enviar(c.Request.Context(), usuario.ID, req)
	if err != nil {
		responderError(c, ctrl.log, err, mensajesChat)
		return
	}
	c.JSON(http.StatusCreated, dto.MensajeEnviadoResponse{Mensaje: "Mensaje enviado", MensajeID: id})
}

// ConsultaController maneja POST /api/consultas, que no requiere sesión
type ConsultaController struct {
	service services.ConsultaService
	log     *zap.Logger
}

func NewConsultaController(service services.ConsultaService, log *zap.Logger) *ConsultaController {
	return &ConsultaController{service: service, log: log}
}

func (ctrl *ConsultaController) Crear(c *gin.Context) {
	var req dto.CrearConsultaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderBindError(c, err)
		return
	}

	id, err := ctrl.service.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, ctrl.log, err, mensajes{noEncontrado: "Propiedad no encontrada"})
		return
	}
	c.JSON(http.StatusCreated, dto.ConsultaCreadaResponse{
		Mensaje:    "Consulta enviada exitosamente",
		ConsultaID: id,
	})
}
