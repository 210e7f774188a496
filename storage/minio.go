package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinIOStorage guarda las fotos en un bucket S3 compatible
type MinIOStorage struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

// NewMinIOStorage crea el cliente y el bucket si todavía no existe
func NewMinIOStorage(ctx context.Context, cfg MinIOConfig, log *zap.Logger) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creando cliente minio para %s: %w", cfg.Endpoint, err)
	}

	existe, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("verificando bucket %s: %w", cfg.Bucket, err)
	}
	if !existe {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creando bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("Bucket creado", zap.String("bucket", cfg.Bucket))
	}

	return &MinIOStorage{client: client, bucket: cfg.Bucket, log: log}, nil
}

func objeto(nombre string) string {
	return CarpetaPropiedades + "/" + nombre
}

func (s *MinIOStorage) Guardar(ctx context.Context, nombre, contentType string, r io.Reader, tamano int64) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objeto(nombre), r, tamano, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("subiendo %s al bucket %s: %w", nombre, s.bucket, err)
	}

	s.log.Debug("Foto subida",
		zap.String("bucket", info.Bucket),
		zap.String("key", info.Key),
		zap.Int64("size", info.Size))

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, info.Key), nil
}

func (s *MinIOStorage) Eliminar(ctx context.Context, nombre string) error {
	return s.client.RemoveObject(ctx, s.bucket, objeto(nombre), minio.RemoveObjectOptions{})
}
