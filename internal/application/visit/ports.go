package visit

import (
	"context"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

// PhotoStore almacenamiento de fotos de visita (MinIO en producción).
type PhotoStore interface {
	// Save guarda data bajo name y devuelve la referencia que se persiste en la visita.
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// PassGenerator genera el pase de visitante en PDF.
type PassGenerator interface {
	GeneratePass(ctx context.Context, d *entity.VisitDetails) ([]byte, error)
}
