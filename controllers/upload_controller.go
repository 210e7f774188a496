package controllers

import (
	"errors"
	"net/http"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Tope del body completo: 20 fotos de 10MB más el overhead del multipart
const maxBodySubida = services.MaxArchivosPorSubida*services.MaxTamanoArchivo + 1<<20

type UploadController struct {
	service services.UploadService
	log     *zap.Logger
}

// NewUploadController crea una nueva instancia del controlador
func NewUploadController(service services.UploadService, log *zap.Logger) *UploadController {
	return &UploadController{service: service, log: log}
}

// Subir maneja POST /api/upload con el campo multipart "fotos"
func (ctrl *UploadController) Subir(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySubida)

	form, err := c.MultipartForm()
	if err != nil {
		var demasiado *http.MaxBytesError
		if errors.As(err, &demasiado) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Los archivos superan el tamaño permitido"})
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No se subieron archivos"})
		return
	}

	urls, err := ctrl.service.Subir(c.Request.Context(), form.File["fotos"])
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			responderError(c, ctrl.log, err, mensajes{})
			return
		}
		ctrl.log.Error("Error subiendo fotos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Error subiendo fotos"})
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Mensaje: "Fotos subidas exitosamente",
		Fotos:   urls,
		Total:   len(urls),
	})
}
