package ports

import (
	"context"
	"io"
)

// UploadInput parámetros para subir un objeto.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectStorage almacenamiento de archivos (S3 o compatible).
type ObjectStorage interface {
	Upload(ctx context.Context, in UploadInput) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key, fileName string) (url string, expiresIn int, err error)
}
