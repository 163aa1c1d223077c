package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Propósitos del token.
const (
	PurposeAccess = "access"
	PurposeMFA    = "mfa" // token intermedio: solo sirve para completar la verificación en dos pasos
)

// ErrWrongPurpose se devuelve cuando el token es válido pero no sirve para la operación.
var ErrWrongPurpose = errors.New("jwt: propósito del token inválido")

// RoleClaim rol serializado en el token: {"name": "...", "app": "..."}.
type RoleClaim struct {
	Name string `json:"name"`
	App  string `json:"app,omitempty"`
}

// Claims incluye los claims estándar JWT más los campos propios del portal.
// Los roles viajan en el token para que el middleware resuelva permisos sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string      `json:"user_id"`
	Email   string      `json:"email,omitempty"`
	Roles   []RoleClaim `json:"roles,omitempty"`
	Purpose string      `json:"purpose"`
}

// Params datos para firmar un token.
type Params struct {
	Secret     string
	Issuer     string
	ExpMinutes int
	UserID     string
	Email      string
	Roles      []RoleClaim
	Purpose    string // por defecto PurposeAccess
}

// Generate genera un token JWT HS256 firmado.
func Generate(p Params) (string, error) {
	if p.Secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	purpose := p.Purpose
	if purpose == "" {
		purpose = PurposeAccess
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(p.ExpMinutes) * time.Minute)),
		},
		UserID:  p.UserID,
		Email:   p.Email,
		Roles:   p.Roles,
		Purpose: purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.Secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secretKey, tokenString string) (*Claims, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// ParsePurpose es Parse exigiendo además el propósito indicado.
func ParsePurpose(secretKey, tokenString, purpose string) (*Claims, error) {
	claims, err := Parse(secretKey, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}
