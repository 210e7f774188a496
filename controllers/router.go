package controllers

import (
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/metrics"
	"github.com/integralvisionpss-art/inmobiliaria/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Router reúne lo necesario para armar el engine de gin
type Router struct {
	Propiedades *PropiedadController
	Usuarios    *UserController
	Favoritos   *FavoritoController
	Chat        *ChatController
	Consultas   *ConsultaController
	Dashboard   *DashboardController
	Upload      *UploadController
	Geocode     *GeocodeController

	Auth    middleware.Autenticador
	Metrics *metrics.Metrics
	Log     *zap.Logger

	CORSOrigin     string
	RequestTimeout time.Duration
	BaseDeDatos    string
	// UploadDir se sirve como /uploads; vacío si las fotos van a MinIO
	UploadDir string
}

// Engine registra middlewares y rutas
func (r Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.CORSOrigin))
	engine.Use(middleware.Observar(r.Log, r.Metrics))
	engine.Use(middleware.Timeout(r.RequestTimeout))

	// Rutas PÚBLICAS (sin autenticación)
	engine.GET("/", Index(r.BaseDeDatos))
	engine.GET("/health", HealthCheck)
	engine.GET("/metrics", r.Metrics.Handler())
	if r.UploadDir != "" {
		engine.Static("/uploads", r.UploadDir)
	}

	auth := middleware.AuthMiddleware(r.Auth, r.Log)
	vendedorOAdmin := middleware.RequerirRol(r.Log, domain.RolVendedor, domain.RolAdmin)
	soloAdmin := middleware.RequerirRol(r.Log, domain.RolAdmin)

	api := engine.Group("/api")
	{
		api.POST("/usuarios/register", r.Usuarios.Register)
		api.POST("/usuarios/login", r.Usuarios.Login)
		api.GET("/usuarios/perfil", auth, r.Usuarios.Perfil)

		api.GET("/propiedades", r.Propiedades.Buscar)
		api.GET("/propiedades/:id", r.Propiedades.ObtenerPorID)
		api.POST("/propiedades", auth, vendedorOAdmin, r.Propiedades.Crear)
		api.PUT("/propiedades/:id/estado", auth, vendedorOAdmin, r.Propiedades.CambiarEstado)

		api.POST("/consultas", r.Consultas.Crear)

		api.POST("/favoritos", auth, r.Favoritos.Alternar)
		api.GET("/favoritos", auth, r.Favoritos.Listar)

		api.GET("/chat/:id", auth, r.Chat.Hilo)
		api.POST("/chat", auth, r.Chat.Enviar)

		api.GET("/dashboard/vendedor/propiedades", auth, vendedorOAdmin, r.Dashboard.Vendedor)
		api.GET("/dashboard/admin/estadisticas", auth, soloAdmin, r.Dashboard.Admin)

		api.POST("/upload", auth, vendedorOAdmin, r.Upload.Subir)

		api.POST("/geocode/mapbox", r.Geocode.Geocodificar)
		api.POST("/reverse-geocode", r.Geocode.GeocodificarInversa)
		api.GET("/lugares-cercanos", r.Geocode.LugaresCercanos)
	}

	return engine
}
