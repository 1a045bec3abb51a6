package usecase

import "context"

// Carpetas del storage para imágenes subidas.
const (
	FolderItems   = "items"
	FolderAvatars = "avatars"
)

// ImageUploader recibe la imagen codificada (base64 o data URI) y devuelve la ruta guardada.
// Con payload vacío devuelve fallback sin subir nada.
type ImageUploader interface {
	Upload(ctx context.Context, folder, payload, fallback string) (string, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

// FileStore guarda archivos generados (QR, PDF) y resuelve su URL pública.
type FileStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	URL(path string) string
}

// QRGenerator produce el PNG de un código QR.
type QRGenerator interface {
	PNG(content string) ([]byte, error)
}

// Label es una etiqueta de la hoja PDF: el QR codifica Code.
type Label struct {
	Code string
	Name string
}

// LabelSheetGenerator arma una hoja PDF de etiquetas QR.
type LabelSheetGenerator interface {
	Generate(ctx context.Context, title string, labels []Label) ([]byte, error)
}
