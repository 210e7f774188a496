package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const claveUsuario = "usuario"

// Autenticador resuelve un token en un usuario activo
type Autenticador interface {
	Autenticar(ctx context.Context, token string) (*domain.Usuario, error)
}

// Decision es el resultado de evaluar un permiso
type Decision struct {
	Permitido bool
	Motivo    string
}

// Autorizar decide si el usuario tiene alguno de los roles pedidos.
// Sin roles alcanza con estar autenticado.
func Autorizar(u *domain.Usuario, roles ...domain.Rol) Decision {
	if u == nil {
		return Decision{Motivo: "sin usuario autenticado"}
	}
	if len(roles) == 0 {
		return Decision{Permitido: true}
	}
	for _, r := range roles {
		if u.Rol == r {
			return Decision{Permitido: true}
		}
	}
	return Decision{Motivo: fmt.Sprintf("rol %s no está entre %v", u.Rol, roles)}
}

// AuthMiddleware valida el JWT en cada request y carga el usuario.
// Si el token no es válido o el usuario fue desactivado devuelve 401.
func AuthMiddleware(auth Autenticador, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Formato esperado: "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			denegar(c, log, "header Authorization ausente o mal formado")
			return
		}

		usuario, err := auth.Autenticar(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			denegar(c, log, err.Error())
			return
		}

		// Guardar el usuario en el contexto para los controllers
		c.Set(claveUsuario, usuario)
		c.Next()
	}
}

// RequerirRol se usa DESPUÉS de AuthMiddleware
func RequerirRol(log *zap.Logger, roles ...domain.Rol) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, ok := UsuarioActual(c)
		if !ok {
			denegar(c, log, "RequerirRol sin AuthMiddleware previo")
			return
		}

		d := Autorizar(usuario, roles...)
		if !d.Permitido {
			log.Info("Permisos insuficientes",
				zap.Uint("usuario_id", usuario.ID),
				zap.String("path", c.FullPath()),
				zap.String("motivo", d.Motivo))
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Permisos insuficientes"})
			return
		}
		c.Next()
	}
}

// UsuarioActual devuelve el usuario que dejó AuthMiddleware
func UsuarioActual(c *gin.Context) (*domain.Usuario, bool) {
	v, ok := c.Get(claveUsuario)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.Usuario)
	return u, ok && u != nil
}

func denegar(c *gin.Context, log *zap.Logger, motivo string) {
	log.Info("Acceso denegado",
		zap.String("path", c.Request.URL.Path),
		zap.String("motivo", motivo))
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Acceso denegado"})
}
