// Package media recibe imágenes en base64 (o data URI), las normaliza y las guarda en storage.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/storage"
)

// Carpetas usadas dentro del storage.
const (
	FolderItems   = "items"
	FolderAvatars = "avatars"
)

// ImageUploader implementa usecase.ImageUploader.
type ImageUploader struct {
	store storage.Storage
	newID func() string
}

// NewImageUploader construye el uploader sobre el storage configurado.
func NewImageUploader(store storage.Storage) *ImageUploader {
	return &ImageUploader{store: store, newID: uuid.NewString}
}

// Upload decodifica payload, lo normaliza y lo guarda como <folder>/<uuid>.jpg.
// Con payload vacío no sube nada y devuelve fallback.
func (u *ImageUploader) Upload(ctx context.Context, folder, payload, fallback string) (string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return fallback, nil
	}
	raw, err := decodePayload(payload)
	if err != nil {
		return "", err
	}
	data, err := normalize(raw)
	if err != nil {
		return "", err
	}
	p := folder + "/" + u.newID() + ".jpg"
	if err := u.store.Put(ctx, p, data, "image/jpeg"); err != nil {
		return "", fmt.Errorf("subir imagen: %w", err)
	}
	return p, nil
}

// Delete borra una imagen subida. Las imágenes por defecto no se tocan.
func (u *ImageUploader) Delete(ctx context.Context, p string) error {
	if p == "" || !strings.Contains(p, "/") {
		return nil
	}
	return u.store.Delete(ctx, p)
}

// URL devuelve la URL pública; las rutas por defecto también se sirven desde storage.
func (u *ImageUploader) URL(p string) string {
	return u.store.URL(p)
}

// decodePayload acepta "data:image/png;base64,...." o base64 puro (estándar o URL-safe).
func decodePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i < 0 || !strings.Contains(payload[:i], ";base64") {
			return nil, fmt.Errorf("%w: data URI sin base64", domain.ErrInvalidInput)
		}
		payload = payload[i+1:]
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(payload); err == nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: la imagen no es base64 válido", domain.ErrInvalidInput)
}
