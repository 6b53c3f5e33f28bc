// Package storage guarda las fotos de visita en un bucket compatible con S3 (MinIO).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/visit-pipeline/pkg/config"
)

// PhotoStore implementa el puerto de fotos de visita sobre MinIO.
type PhotoStore struct {
	client *minio.Client
	cfg    config.StorageConfig
	now    func() time.Time
}

// NewPhotoStore crea el cliente. El endpoint acepta "host:port" o una URL con esquema.
func NewPhotoStore(cfg config.StorageConfig) (*PhotoStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &PhotoStore{client: client, cfg: cfg, now: time.Now}, nil
}

// EnsureBucket crea el bucket si no existe.
func (s *PhotoStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.Bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.cfg.Bucket, err)
		}
	}
	return nil
}

// Save sube la foto bajo visits/YYYY/MM/DD/<name> y devuelve la clave del objeto.
func (s *PhotoStore) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := ObjectKey(s.now(), name)
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	return key, nil
}

// Delete elimina el objeto; una clave vacía no hace nada.
func (s *PhotoStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove photo %s: %w", key, err)
	}
	return nil
}

// URL dirección pública del objeto.
func (s *PhotoStore) URL(key string) string {
	return PublicURL(s.cfg, key)
}

// ObjectKey arma la clave particionada por fecha de carga.
func ObjectKey(at time.Time, name string) string {
	return path.Join("visits", at.Format("2006/01/02"), name)
}

// PublicURL base pública + bucket + clave. Sin PublicURL se deriva del endpoint.
func PublicURL(cfg config.StorageConfig, key string) string {
	if key == "" {
		return ""
	}
	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = cfg.Endpoint
		if !strings.HasPrefix(base, "http") {
			base = scheme + "://" + base
		}
		base = strings.TrimRight(base, "/")
	}
	return base + "/" + cfg.Bucket + "/" + key
}
