package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/portal-intranet/internal/application/ports"
)

// formFile abre el archivo del campo field de un formulario multipart.
// Devuelve (nil, nil, nil) si el campo no viene; el closer debe cerrarse.
func formFile(c *fiber.Ctx, field string) (*ports.FileInput, io.Closer, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &ports.FileInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

// closeAll cierra los archivos abiertos por formFile.
func closeAll(closers ...io.Closer) {
	for _, cl := range closers {
		if cl != nil {
			_ = cl.Close()
		}
	}
}

// sendFile responde un archivo generado en memoria como adjunto.
func sendFile(c *fiber.Ctx, data []byte, name, contentType string) error {
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
