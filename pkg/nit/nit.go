// Package nit calcula y valida el dígito de verificación del NIT colombiano
// (algoritmo módulo 11 de la DIAN).
package nit

import (
	"fmt"
	"strings"
)

// pesos DIAN, aplicados de derecha a izquierda sobre los dígitos del NIT.
var weights = [15]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// Digits devuelve solo los dígitos ASCII de s ("900.123.456" -> "900123456").
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// VerificationDigit calcula el dígito de verificación de un NIT sin DV.
func VerificationDigit(number string) (string, error) {
	d := Digits(number)
	if d == "" {
		return "", fmt.Errorf("nit: número vacío")
	}
	if len(d) > len(weights) {
		return "", fmt.Errorf("nit: máximo %d dígitos, se recibieron %d", len(weights), len(d))
	}
	var sum int
	for i := 0; i < len(d); i++ {
		sum += int(d[len(d)-1-i]-'0') * weights[i]
	}
	r := sum % 11
	if r > 1 {
		r = 11 - r
	}
	return fmt.Sprint(r), nil
}

// Split separa "900123456-8" en número y DV. Sin guion devuelve dv vacío.
func Split(s string) (number, dv string) {
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		return Digits(s[:i]), Digits(s[i+1:])
	}
	return Digits(s), ""
}

// Validate comprueba que dv sea el dígito de verificación de number.
func Validate(number, dv string) error {
	want, err := VerificationDigit(number)
	if err != nil {
		return err
	}
	if dv != want {
		return fmt.Errorf("nit: dígito de verificación inválido: esperado %s, recibido %s", want, dv)
	}
	return nil
}
