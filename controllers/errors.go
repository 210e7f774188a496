package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const mensajeErrorServidor = "Error en el servidor"

// mensajes personaliza el texto de los 404 y 409 de cada endpoint
type mensajes struct {
	noEncontrado string
	conflicto    string
}

// responderError traduce los errores de dominio a status HTTP.
// Los errores no esperados se loguean y el cliente recibe un mensaje genérico.
func responderError(c *gin.Context, log *zap.Logger, err error, m mensajes) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: mensajeValidacion(err)})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Credenciales inválidas"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: porDefecto(m.noEncontrado, "Recurso no encontrado")})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Acceso denegado"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Permisos insuficientes"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: porDefecto(m.conflicto, "El recurso ya existe")})
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("Tiempo de espera agotado", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{Error: "Tiempo de espera agotado"})
	default:
		log.Error("Error no controlado",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: mensajeErrorServidor})
	}
}

// responderBindError se usa cuando el body no se puede parsear o no pasa los tags binding
func responderBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Datos inválidos",
		Message: err.Error(),
	})
}

// mensajeValidacion saca el prefijo del sentinel: "datos inválidos: x" -> "X"
func mensajeValidacion(err error) string {
	texto := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	if texto == "" || texto == domain.ErrValidation.Error() {
		return "Datos inválidos"
	}
	r, n := utf8.DecodeRuneInString(texto)
	return string(unicode.ToUpper(r)) + texto[n:]
}

func porDefecto(valor, defecto string) string {
	if valor == "" {
		return defecto
	}
	return valor
}

// parseID lee un parámetro de ruta numérico
func parseID(c *gin.Context, nombre string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(nombre), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return 0, false
	}
	return uint(id), true
}
