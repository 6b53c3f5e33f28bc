package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/visit-pipeline/pkg/config"
)

func TestObjectKey_ParticionPorFecha(t *testing.T) {
	at := time.Date(2026, 3, 7, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "visits/2026/03/07/abc.png", ObjectKey(at, "abc.png"))
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		key  string
		want string
	}{
		{
			name: "base pública explícita",
			cfg:  config.StorageConfig{PublicURL: "https://cdn.example.com/", Bucket: "photos"},
			key:  "visits/2026/03/07/a.jpg",
			want: "https://cdn.example.com/photos/visits/2026/03/07/a.jpg",
		},
		{
			name: "derivada del endpoint sin SSL",
			cfg:  config.StorageConfig{Endpoint: "localhost:9000", Bucket: "photos"},
			key:  "k.png",
			want: "http://localhost:9000/photos/k.png",
		},
		{
			name: "endpoint con esquema",
			cfg:  config.StorageConfig{Endpoint: "https://s3.example.com", Bucket: "b", UseSSL: true},
			key:  "k.gif",
			want: "https://s3.example.com/b/k.gif",
		},
		{
			name: "clave vacía",
			cfg:  config.StorageConfig{Endpoint: "localhost:9000", Bucket: "photos"},
			key:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicURL(tt.cfg, tt.key))
		})
	}
}

func TestNewPhotoStore_EndpointConEsquema(t *testing.T) {
	s, err := NewPhotoStore(config.StorageConfig{
		Endpoint:  "https://play.min.io",
		AccessKey: "k",
		SecretKey: "s",
		Bucket:    "photos",
	})
	assert.NoError(t, err)
	assert.NotNil(t, s)
	assert.Equal(t, "play.min.io", s.client.EndpointURL().Host)
	assert.Equal(t, "https", s.client.EndpointURL().Scheme)
}
