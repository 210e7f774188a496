package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index maneja GET / con la lista de rutas públicas
func Index(baseDeDatos string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"mensaje":       "API Inmobiliaria con " + baseDeDatos,
			"version":       "2.0.0",
			"base_de_datos": baseDeDatos,
			"rutas_disponibles": []string{
				"POST /api/usuarios/register",
				"POST /api/usuarios/login",
				"GET  /api/propiedades",
				"GET  /api/propiedades/:id",
				"POST /api/consultas",
				"POST /api/favoritos",
				"GET  /api/chat/:destinatario_id",
				"POST /api/chat",
				"POST /api/upload (vendedor/admin)",
			},
		})
	}
}

// HealthCheck maneja GET /health
// Endpoint simple para verificar que el servicio está corriendo
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "inmobiliaria-api",
	})
}
