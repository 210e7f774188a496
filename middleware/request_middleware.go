package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Timeout pone un deadline al contexto del request. Los repositorios usan
// ese contexto, así que la consulta se corta cuando vence.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Observar registra cada request en el log y en las métricas HTTP
func Observar(log *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		latencia := time.Since(inicio)
		status := c.Writer.Status()

		// FullPath evita una serie por cada id; vacío si no matcheó ninguna ruta
		ruta := c.FullPath()
		if ruta == "" {
			ruta = "sin_ruta"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, ruta, strconv.Itoa(status)).Inc()
		m.HTTPRequestLatency.WithLabelValues(c.Request.Method, ruta).Observe(latencia.Seconds())

		campos := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latencia),
			zap.String("ip", c.ClientIP()),
		}
		switch {
		case status >= 500:
			log.Error("request", campos...)
		case status >= 400:
			log.Warn("request", campos...)
		default:
			log.Info("request", campos...)
		}
	}
}
