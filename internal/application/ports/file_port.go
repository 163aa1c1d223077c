package ports

import (
	"io"
	"path"
	"strings"

	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
)

// FileInput archivo recibido en una carga multipart.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// attachmentFormats formatos que el portal acepta como archivo adjunto de un registro.
var attachmentFormats = map[string]bool{"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true}

// CleanName deja solo el nombre base del archivo y valida que el formato sea aceptado.
func (f *FileInput) CleanName() (string, error) {
	name := strings.TrimSpace(path.Base(strings.ReplaceAll(f.Name, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		return "", domain.ErrInvalidInput
	}
	if !attachmentFormats[permission.Extension(name)] {
		return "", domain.ErrUnsupportedFormat
	}
	return name, nil
}

// ResolvedContentType usa el Content-Type recibido o lo deduce de la extensión.
func (f *FileInput) ResolvedContentType(name string) string {
	if f.ContentType != "" && f.ContentType != "application/octet-stream" {
		return f.ContentType
	}
	return permission.ContentType(name)
}
