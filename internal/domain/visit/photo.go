package visit

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jhoicas/visit-pipeline/internal/domain"
)

// DefaultMaxPhotoBytes tamaño máximo de la foto (5 MiB).
const DefaultMaxPhotoBytes int64 = 5 * 1024 * 1024

var allowedPhotoMIME = []string{"image/jpeg", "image/png", "image/gif"}

// PhotoUpload foto tal como llega del cliente. Filename no se usa para decidir nada.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// ValidatedPhoto foto aceptada: tipo detectado por contenido y nombre de almacenamiento propio.
type ValidatedPhoto struct {
	Data        []byte
	MIME        string
	StorageName string
}

// ValidatePhoto rechaza fotos mayores a maxBytes (ErrFileTooLarge) y las que, por su
// contenido, no son JPEG, PNG o GIF (ErrUnsupportedFileType). La extensión declarada se ignora.
func ValidatePhoto(p PhotoUpload, maxBytes int64) (*ValidatedPhoto, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPhotoBytes
	}
	if int64(len(p.Data)) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (máximo %d)", domain.ErrFileTooLarge, len(p.Data), maxBytes)
	}
	if len(p.Data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrUnsupportedFileType)
	}

	detected := mimetype.Detect(p.Data)
	for _, allowed := range allowedPhotoMIME {
		if detected.Is(allowed) {
			return &ValidatedPhoto{
				Data:        p.Data,
				MIME:        allowed,
				StorageName: uuid.NewString() + detected.Extension(),
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, detected.String())
}
