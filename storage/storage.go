package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/integralvisionpss-art/inmobiliaria/config"

	"go.uber.org/zap"
)

// Carpeta lógica donde viven las fotos de propiedades
const CarpetaPropiedades = "propiedades"

// Storage guarda archivos subidos y devuelve la URL pública
type Storage interface {
	Guardar(ctx context.Context, nombre, contentType string, r io.Reader, tamano int64) (string, error)
	Eliminar(ctx context.Context, nombre string) error
}

// New elige el backend según STORAGE_BACKEND
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Storage, error) {
	switch cfg.StorageBackend {
	case "", "local":
		return NewLocalStorage(cfg.UploadDir)
	case "minio":
		return NewMinIOStorage(ctx, MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		}, log)
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND desconocido: %q", cfg.StorageBackend)
	}
}
