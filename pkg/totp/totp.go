// Package totp implementa contraseñas de un solo uso basadas en tiempo
// (RFC 6238, HMAC-SHA1, 6 dígitos, ventanas de 30 segundos) para la
// verificación en dos pasos, y el cifrado AES-256-GCM de los secretos.
package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	Digits = 6
	Period = 30 // segundos
)

var (
	ErrInvalidSecret = errors.New("totp: secreto inválido")
	ErrInvalidCode   = errors.New("totp: formato de código inválido")
	ErrMissingLabel  = errors.New("totp: emisor y cuenta son obligatorios")

	secretRegex = regexp.MustCompile(`^[A-Z2-7]+=*$`)
	codeRegex   = regexp.MustCompile(`^\d{6}$`)
	b32         = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// GenerateSecret genera un secreto aleatorio de 160 bits en Base32 sin relleno.
func GenerateSecret() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("totp: generar secreto: %w", err)
	}
	return b32.EncodeToString(buf), nil
}

// URI construye el otpauth:// que leen las aplicaciones autenticadoras.
func URI(secret, issuer, account string) (string, error) {
	if issuer == "" || account == "" {
		return "", ErrMissingLabel
	}
	if !secretRegex.MatchString(secret) {
		return "", ErrInvalidSecret
	}
	q := url.Values{}
	q.Set("secret", secret)
	q.Set("issuer", issuer)
	q.Set("algorithm", "SHA1")
	q.Set("digits", fmt.Sprint(Digits))
	q.Set("period", fmt.Sprint(Period))
	label := url.PathEscape(issuer) + ":" + url.PathEscape(account)
	return "otpauth://totp/" + label + "?" + q.Encode(), nil
}

// CodeAt genera el código de la ventana que contiene t.
func CodeAt(secret string, t time.Time) (string, error) {
	key, err := decode(secret)
	if err != nil {
		return "", err
	}
	return hotp(key, uint64(t.Unix()/Period)), nil
}

// Validate comprueba code contra la ventana de t y sus vecinas (deriva de reloj ±30 s).
func Validate(secret, code string, t time.Time) (bool, error) {
	key, err := decode(secret)
	if err != nil {
		return false, err
	}
	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return false, ErrInvalidCode
	}
	counter := t.Unix() / Period
	for i := int64(-1); i <= 1; i++ {
		if hmac.Equal([]byte(hotp(key, uint64(counter+i))), []byte(code)) {
			return true, nil
		}
	}
	return false, nil
}

func decode(secret string) ([]byte, error) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	if !secretRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	key, err := b32.DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// hotp implementa RFC 4226 con truncamiento dinámico.
func hotp(key []byte, counter uint64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)
	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
	return fmt.Sprintf("%0*d", Digits, code%1_000_000)
}
