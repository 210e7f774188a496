package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/config"
	"github.com/integralvisionpss-art/inmobiliaria/controllers"
	"github.com/integralvisionpss-art/inmobiliaria/events"
	"github.com/integralvisionpss-art/inmobiliaria/logger"
	"github.com/integralvisionpss-art/inmobiliaria/mailer"
	"github.com/integralvisionpss-art/inmobiliaria/metrics"
	"github.com/integralvisionpss-art/inmobiliaria/repositories"
	"github.com/integralvisionpss-art/inmobiliaria/services"
	"github.com/integralvisionpss-art/inmobiliaria/storage"
	"github.com/integralvisionpss-art/inmobiliaria/utils"

	"go.uber.org/zap"
)

func main() {
	// ============================================
	// 1. CONFIGURACIÓN
	// ============================================
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").Fatal("❌ Configuración inválida", zap.Error(err))
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	log.Info("🔧 Configuración cargada",
		zap.String("port", cfg.Port),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("storage", cfg.StorageBackend),
		zap.String("events", cfg.EventsBroker))

	m := metrics.New("inmobiliaria")

	// ============================================
	// 2. BASE DE DATOS
	// ============================================
	log.Info("📡 Conectando a la base de datos...")
	db, err := repositories.NewDatabase(cfg, log)
	if err != nil {
		log.Fatal("❌ No se pudo conectar a la base de datos", zap.Error(err))
	}

	// ============================================
	// 3. INFRAESTRUCTURA
	// ============================================
	ctx := context.Background()

	st, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("❌ No se pudo inicializar el storage", zap.Error(err))
	}

	publisher, err := events.NewPublisher(cfg, log)
	if err != nil {
		// Los eventos son de mejor esfuerzo: se sigue sin broker
		log.Warn("⚠️  Broker de eventos no disponible, se continúa sin publicar", zap.Error(err))
		publisher = events.NoopPublisher{}
	}

	mail := mailer.New(cfg, log)

	// ============================================
	// 4. CAPAS
	// ============================================
	log.Info("🏗️  Inicializando capas...")

	userRepo := repositories.NewUserRepository(db)
	propRepo := repositories.NewPropiedadRepository(db)
	favRepo := repositories.NewFavoritoRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	consultaRepo := repositories.NewConsultaRepository(db)
	dashRepo := repositories.NewDashboardRepository(db)

	userService := services.NewUserService(userRepo, utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiracion), log)
	propService := services.NewPropiedadService(propRepo, publisher, m, log)
	favService := services.NewFavoritoService(favRepo, propRepo)
	chatService := services.NewChatService(chatRepo, userRepo, log)
	consultaService := services.NewConsultaService(consultaRepo, propRepo, mail, m, log)
	dashService := services.NewDashboardService(dashRepo)
	uploadService := services.NewUploadService(st, log)
	geocodeService := services.NewGeocodeService(cfg.MapboxBaseURL, cfg.MapboxAPIKey, log)

	if cfg.MapboxAPIKey == "" {
		log.Warn("⚠️  MAPBOX_API_KEY vacío, el geocoding va a fallar")
	}

	router := controllers.Router{
		Propiedades:    controllers.NewPropiedadController(propService, log),
		Usuarios:       controllers.NewUserController(userService, log),
		Favoritos:      controllers.NewFavoritoController(favService, log),
		Chat:           controllers.NewChatController(chatService, log),
		Consultas:      controllers.NewConsultaController(consultaService, log),
		Dashboard:      controllers.NewDashboardController(dashService, log),
		Upload:         controllers.NewUploadController(uploadService, log),
		Geocode:        controllers.NewGeocodeController(geocodeService, log),
		Auth:           userService,
		Metrics:        m,
		Log:            log,
		CORSOrigin:     cfg.CORSOrigin,
		RequestTimeout: cfg.RequestTimeout,
		BaseDeDatos:    nombreBaseDeDatos(cfg.DBDriver),
	}
	if cfg.StorageBackend == "" || cfg.StorageBackend == "local" {
		router.UploadDir = cfg.UploadDir
	}

	log.Info("✅ Capas inicializadas")

	// ============================================
	// 5. SERVIDOR HTTP
	// ============================================
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("🚀 Inmobiliaria API corriendo", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Error arrancando el servidor", zap.Error(err))
		}
	}()

	// ============================================
	// 6. GRACEFUL SHUTDOWN
	// ============================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 Apagando Inmobiliaria API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error apagando el servidor HTTP", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		log.Error("Error cerrando el publisher", zap.Error(err))
	}
	if err := repositories.Cerrar(db); err != nil {
		log.Error("Error cerrando la base de datos", zap.Error(err))
	}

	log.Info("✅ Apagado completo")
}

// nombreBaseDeDatos es lo que informa GET /
func nombreBaseDeDatos(driver string) string {
	if driver == "postgres" {
		return "PostgreSQL"
	}
	return "MySQL"
}
