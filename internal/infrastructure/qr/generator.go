package qr

import (
	"encoding/base64"
	"errors"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/jhoicas/portal-intranet/internal/application/ports"
)

const defaultSize = 256

// ErrEmptyContent contenido vacío o solo espacios.
var ErrEmptyContent = errors.New("qr: el contenido no puede estar vacío")

var _ ports.QRGenerator = (*Generator)(nil)

// Generator genera códigos QR en PNG (usado para el alta de la app autenticadora).
type Generator struct {
	size int
}

// NewGenerator crea el generador. size <= 0 usa 256 px.
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = defaultSize
	}
	return &Generator{size: size}
}

// PNG devuelve la imagen del QR.
func (g *Generator) PNG(content string) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	png, err := qrcode.Encode(content, qrcode.Medium, g.size)
	if err != nil {
		return nil, errors.Join(errors.New("qr: no se pudo generar el código"), err)
	}
	return png, nil
}

// DataURI devuelve el QR como "data:image/png;base64,...", listo para un <img>.
func (g *Generator) DataURI(content string) (string, error) {
	png, err := g.PNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
