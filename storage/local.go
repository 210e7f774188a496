package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStorage escribe en disco bajo <base>/propiedades; main sirve <base>
// como /uploads.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(base string) (*LocalStorage, error) {
	dir := filepath.Join(base, CarpetaPropiedades)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creando directorio de uploads %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Guardar(ctx context.Context, nombre, _ string, r io.Reader, _ int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if nombre != filepath.Base(nombre) {
		return "", fmt.Errorf("nombre de archivo inválido: %q", nombre)
	}

	destino := filepath.Join(s.dir, nombre)
	f, err := os.OpenFile(destino, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("creando %s: %w", destino, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(destino)
		return "", fmt.Errorf("escribiendo %s: %w", destino, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(destino)
		return "", fmt.Errorf("cerrando %s: %w", destino, err)
	}

	return path.Join("/uploads", CarpetaPropiedades, nombre), nil
}

func (s *LocalStorage) Eliminar(_ context.Context, nombre string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(nombre)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
