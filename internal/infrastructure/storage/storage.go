// Package storage guarda los archivos públicos de la aplicación (imágenes, QR, PDF)
// en disco local o en un bucket MinIO/S3.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/pkg/config"
)

// Storage es el puerto que usan media, etiquetas y casos de uso.
// Las rutas son relativas y con "/" (ej. "qr_code/BRG-1A2B3C4D.png").
type Storage interface {
	Put(ctx context.Context, p string, data []byte, contentType string) error
	Delete(ctx context.Context, p string) error
	Exists(ctx context.Context, p string) (bool, error)
	URL(p string) string
}

// New construye el Storage según STORAGE_DRIVER.
func New(ctx context.Context, cfg config.StorageConfig, publicBaseURL string) (Storage, error) {
	switch cfg.Driver {
	case config.StorageMinio:
		return NewMinio(ctx, cfg)
	case config.StorageLocal, "":
		return NewLocal(cfg.LocalDir, publicBaseURL+"/storage")
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}

// cleanPath normaliza la ruta y rechaza las que salen de la raíz.
func cleanPath(p string) (string, error) {
	c := path.Clean("/" + strings.TrimSpace(p))
	c = strings.TrimPrefix(c, "/")
	if c == "" || c == "." || strings.HasPrefix(c, "..") {
		return "", fmt.Errorf("%w: ruta de archivo inválida %q", domain.ErrInvalidInput, p)
	}
	return c, nil
}
