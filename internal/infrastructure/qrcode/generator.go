// Package qrcode genera los PNG de código QR de cada item (contenido = código del item).
package qrcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultSize lado del PNG en píxeles.
const DefaultSize = 300

// Generator produce PNG cuadrados con corrección de errores alta (H).
type Generator struct {
	size int
}

// NewGenerator construye el generador; size <= 0 usa DefaultSize.
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return &Generator{size: size}
}

// PNG codifica content como QR y lo escala a size×size.
func (g *Generator) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qrcode: contenido vacío")
	}
	code, err := qr.Encode(content, qr.H, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrcode: codificar: %w", err)
	}
	code, err = barcode.Scale(code, g.size, g.size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("qrcode: png: %w", err)
	}
	return buf.Bytes(), nil
}
