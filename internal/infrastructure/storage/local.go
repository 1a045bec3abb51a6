package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local guarda los archivos bajo un directorio servido por Fiber en /storage.
type Local struct {
	root    string
	baseURL string
}

// NewLocal crea el directorio raíz si no existe.
func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", root, err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root devuelve el directorio en disco (para montar el static handler).
func (l *Local) Root() string { return l.root }

func (l *Local) abs(p string) (string, string, error) {
	c, err := cleanPath(p)
	if err != nil {
		return "", "", err
	}
	return c, filepath.Join(l.root, filepath.FromSlash(c)), nil
}

// Put escribe el archivo (sobrescribe si existe).
func (l *Local) Put(_ context.Context, p string, data []byte, _ string) error {
	_, full, err := l.abs(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage: crear directorio: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("storage: escribir %s: %w", p, err)
	}
	return nil
}

// Delete borra el archivo; no es error si no existe.
func (l *Local) Delete(_ context.Context, p string) error {
	_, full, err := l.abs(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", p, err)
	}
	return nil
}

// Exists indica si el archivo existe.
func (l *Local) Exists(_ context.Context, p string) (bool, error) {
	_, full, err := l.abs(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// URL devuelve la URL pública del archivo.
func (l *Local) URL(p string) string {
	c, err := cleanPath(p)
	if err != nil {
		return ""
	}
	return l.baseURL + "/" + c
}
