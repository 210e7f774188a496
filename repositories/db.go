package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/config"
	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Pool son los parámetros del pool de conexiones de database/sql
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewDatabase abre el pool según DB_DRIVER, lo verifica con un ping y
// ejecuta las migraciones.
func NewDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql", "":
		dialector = mysql.Open(cfg.DSN())
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("DB_DRIVER no soportado: %s", cfg.DBDriver)
	}

	db, err := Conectar(dialector, Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	log.Info("Conexión a la base de datos exitosa",
		zap.String("driver", cfg.DBDriver),
		zap.String("db", cfg.DBName))

	if err := Migrar(db); err != nil {
		_ = Cerrar(db)
		return nil, err
	}
	log.Info("Tablas creadas/actualizadas")

	return db, nil
}

// Conectar abre gorm sobre el dialecto dado y configura el pool.
// TranslateError hace que las violaciones de índice único lleguen como
// gorm.ErrDuplicatedKey sin importar el motor.
func Conectar(dialector gorm.Dialector, pool Pool) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("abriendo base de datos: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("obteniendo pool: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping a la base de datos: %w", err)
	}

	return db, nil
}

// Migrar crea las tablas si no existen. El orden importa por las FK.
func Migrar(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Usuario{},
		&domain.Propiedad{},
		&domain.Foto{},
		&domain.Caracteristica{},
		&domain.Consulta{},
		&domain.Favorito{},
		&domain.MensajeChat{},
	)
	if err != nil {
		return fmt.Errorf("migrando tablas: %w", err)
	}
	return nil
}

// Cerrar libera el pool; se llama en el apagado del servidor
func Cerrar(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
