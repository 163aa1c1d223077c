package qr_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-intranet/internal/infrastructure/qr"
)

func TestDataURI_GeneraPNGValido(t *testing.T) {
	g := qr.NewGenerator(0)

	uri, err := g.DataURI("otpauth://totp/Portal:ana@clinica.test?secret=JBSWY3DPEHPK3PXP&issuer=Portal")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestPNG_ContenidoVacio(t *testing.T) {
	_, err := qr.NewGenerator(128).PNG("  \n")
	assert.ErrorIs(t, err, qr.ErrEmptyContent)
}
