package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-intranet/pkg/nit"
)

func TestVerificationDigit_NITsConocidos(t *testing.T) {
	tests := map[string]string{
		"800197268":   "4", // DIAN
		"890.903.938": "8",
		"900123456":   "8",
		"860034313":   "7",
	}
	for number, want := range tests {
		got, err := nit.VerificationDigit(number)
		require.NoError(t, err, number)
		assert.Equal(t, want, got, number)
	}
}

func TestVerificationDigit_Vacio(t *testing.T) {
	_, err := nit.VerificationDigit("abc")
	assert.Error(t, err)
}

func TestSplitYValidate(t *testing.T) {
	number, dv := nit.Split("800.197.268-4")
	assert.Equal(t, "800197268", number)
	assert.Equal(t, "4", dv)
	assert.NoError(t, nit.Validate(number, dv))
	assert.Error(t, nit.Validate(number, "5"))

	number, dv = nit.Split("1020304050")
	assert.Equal(t, "1020304050", number)
	assert.Empty(t, dv)
}

func TestDigits_SoloASCII(t *testing.T) {
	assert.Equal(t, "900123456", nit.Digits("900.123.456"))
	assert.Equal(t, "12", nit.Digits("1٣2９"))

	_, err := nit.VerificationDigit("٣٣٣")
	assert.Error(t, err, "dígitos no ASCII se descartan")

	got, err := nit.VerificationDigit("800١197268")
	require.NoError(t, err)
	assert.Equal(t, "4", got)
}
