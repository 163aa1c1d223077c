package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/portal-intranet/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func params(purpose string, exp int) pkgjwt.Params {
	return pkgjwt.Params{
		Secret:     testSecret,
		Issuer:     "portal-test",
		ExpMinutes: exp,
		UserID:     "00000000-0000-0000-0000-000000000001",
		Email:      "calidad@clinica.test",
		Roles:      []pkgjwt.RoleClaim{{Name: "gestor", App: "procesos"}, {Name: "user"}},
		Purpose:    purpose,
	}
}

func TestGenerateAndParse_ConRoles(t *testing.T) {
	tok, err := pkgjwt.Generate(params("", 60))
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", claims.UserID)
	assert.Equal(t, pkgjwt.PurposeAccess, claims.Purpose, "el propósito por defecto es access")
	require.Len(t, claims.Roles, 2)
	assert.Equal(t, "procesos", claims.Roles[0].App)
	assert.Empty(t, claims.Roles[1].App)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(params(pkgjwt.PurposeAccess, -1))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(params(pkgjwt.PurposeAccess, 60))
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestParsePurpose_RechazaTokenMFAComoAcceso(t *testing.T) {
	tok, err := pkgjwt.Generate(params(pkgjwt.PurposeMFA, 5))
	require.NoError(t, err)

	_, err = pkgjwt.ParsePurpose(testSecret, tok, pkgjwt.PurposeAccess)
	assert.ErrorIs(t, err, pkgjwt.ErrWrongPurpose)

	claims, err := pkgjwt.ParsePurpose(testSecret, tok, pkgjwt.PurposeMFA)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.PurposeMFA, claims.Purpose)
}

func TestGenerate_SecretVacio(t *testing.T) {
	p := params("", 60)
	p.Secret = ""
	_, err := pkgjwt.Generate(p)
	assert.Error(t, err)
}
