package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MaxArchivosPorSubida = 20
	MaxTamanoArchivo     = 10 << 20 // 10MB
)

var formatosPermitidos = regexp.MustCompile(`jpeg|jpg|png|gif|webp`)

// UploadService valida y guarda las fotos de propiedades
type UploadService interface {
	Subir(ctx context.Context, archivos []*multipart.FileHeader) ([]string, error)
}

type uploadService struct {
	storage storage.Storage
	log     *zap.Logger
}

// NewUploadService crea una nueva instancia del servicio
func NewUploadService(s storage.Storage, log *zap.Logger) UploadService {
	return &uploadService{storage: s, log: log}
}

// Subir valida todo el lote antes de escribir; si falla un archivo a mitad
// de camino se borran los que ya se habían guardado.
func (s *uploadService) Subir(ctx context.Context, archivos []*multipart.FileHeader) ([]string, error) {
	if len(archivos) == 0 {
		return nil, fmt.Errorf("%w: No se subieron archivos", domain.ErrValidation)
	}
	if len(archivos) > MaxArchivosPorSubida {
		return nil, fmt.Errorf("%w: máximo %d archivos por subida", domain.ErrValidation, MaxArchivosPorSubida)
	}
	for _, a := range archivos {
		if err := validarArchivo(a); err != nil {
			return nil, err
		}
	}

	var (
		urls     = make([]string, 0, len(archivos))
		guardado []string
	)
	for _, a := range archivos {
		nombre := uuid.New().String() + strings.ToLower(filepath.Ext(a.Filename))
		url, err := s.guardar(ctx, a, nombre)
		if err != nil {
			s.deshacer(ctx, guardado)
			return nil, err
		}
		guardado = append(guardado, nombre)
		urls = append(urls, url)
	}

	s.log.Info("Fotos subidas", zap.Int("total", len(urls)))
	return urls, nil
}

func validarArchivo(a *multipart.FileHeader) error {
	if a.Size > MaxTamanoArchivo {
		return fmt.Errorf("%w: %s supera los 10MB", domain.ErrValidation, a.Filename)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(a.Filename), "."))
	if !formatosPermitidos.MatchString(ext) || !formatosPermitidos.MatchString(a.Header.Get("Content-Type")) {
		return fmt.Errorf("%w: Solo se permiten imágenes", domain.ErrValidation)
	}
	return nil
}

func (s *uploadService) guardar(ctx context.Context, a *multipart.FileHeader, nombre string) (string, error) {
	f, err := a.Open()
	if err != nil {
		return "", fmt.Errorf("abriendo %s: %w", a.Filename, err)
	}
	defer f.Close()

	// El Content-Type lo manda el cliente; se confirma con los primeros bytes
	cabecera := make([]byte, 512)
	n, err := io.ReadFull(f, cabecera)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("leyendo %s: %w", a.Filename, err)
	}
	tipo := http.DetectContentType(cabecera[:n])
	if !strings.HasPrefix(tipo, "image/") {
		return "", fmt.Errorf("%w: Solo se permiten imágenes", domain.ErrValidation)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("leyendo %s: %w", a.Filename, err)
	}
	return s.storage.Guardar(ctx, nombre, tipo, f, a.Size)
}

func (s *uploadService) deshacer(ctx context.Context, nombres []string) {
	for _, nombre := range nombres {
		if err := s.storage.Eliminar(context.WithoutCancel(ctx), nombre); err != nil {
			s.log.Warn("No se pudo borrar la foto huérfana", zap.String("archivo", nombre), zap.Error(err))
		}
	}
}
