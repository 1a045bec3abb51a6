package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/inventaris-api/pkg/config"
)

// Minio guarda los archivos en un bucket S3 compatible.
type Minio struct {
	client *minio.Client
	bucket string
	public string // base de las URLs: http(s)://endpoint/bucket
}

// NewMinio conecta con MinIO y asegura que el bucket exista.
func NewMinio(ctx context.Context, cfg config.StorageConfig) (*Minio, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cliente minio: %w", err)
	}
	m := newMinio(client, cfg)
	if err := m.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func newMinio(client *minio.Client, cfg config.StorageConfig) *Minio {
	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	return &Minio{
		client: client,
		bucket: cfg.MinioBucket,
		public: fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}
}

func (m *Minio) ensureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("storage: comprobar bucket %s: %w", m.bucket, err)
	}
	if !found {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("storage: crear bucket %s: %w", m.bucket, err)
		}
	}
	return nil
}

// Put sube el objeto.
func (m *Minio) Put(ctx context.Context, p string, data []byte, contentType string) error {
	key, err := cleanPath(p)
	if err != nil {
		return err
	}
	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("storage: subir %s: %w", key, err)
	}
	return nil
}

// Delete borra el objeto; S3 no devuelve error si no existe.
func (m *Minio) Delete(ctx context.Context, p string) error {
	key, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: borrar %s: %w", key, err)
	}
	return nil
}

// Exists consulta los metadatos del objeto.
func (m *Minio) Exists(ctx context.Context, p string) (bool, error) {
	key, err := cleanPath(p)
	if err != nil {
		return false, err
	}
	_, err = m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("storage: stat %s: %w", key, err)
}

// URL devuelve la URL pública (el bucket debe tener política de lectura anónima).
func (m *Minio) URL(p string) string {
	key, err := cleanPath(p)
	if err != nil {
		return ""
	}
	return m.public + "/" + key
}
