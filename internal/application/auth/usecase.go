package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/ports"
	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
	"github.com/jhoicas/portal-intranet/pkg/jwt"
	"github.com/jhoicas/portal-intranet/pkg/totp"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret        string
	ExpMinutes    int
	MFAExpMinutes int
	Issuer        string
}

// MFAConfig configuración de la verificación en dos pasos.
// Sin Key (nil) la configuración de 2FA queda deshabilitada.
type MFAConfig struct {
	Issuer string
	Key    []byte
}

// AuthUseCase casos de uso de autenticación: login, segundo factor y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	qr       ports.QRGenerator
	jwtCfg   JWTConfig
	mfaCfg   MFAConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, qr ports.QRGenerator, jwtCfg JWTConfig, mfaCfg MFAConfig) *AuthUseCase {
	if jwtCfg.MFAExpMinutes <= 0 {
		jwtCfg.MFAExpMinutes = 5
	}
	return &AuthUseCase{userRepo: userRepo, qr: qr, jwtCfg: jwtCfg, mfaCfg: mfaCfg}
}

// Login verifica email/password. Si el usuario tiene 2FA activa devuelve un
// token intermedio (MFAToken) en lugar del token de acceso.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}

	if user.MFAEnabled {
		mfaToken, err := jwt.Generate(jwt.Params{
			Secret:     uc.jwtCfg.Secret,
			Issuer:     uc.jwtCfg.Issuer,
			ExpMinutes: uc.jwtCfg.MFAExpMinutes,
			UserID:     user.ID,
			Purpose:    jwt.PurposeMFA,
		})
		if err != nil {
			return nil, err
		}
		return &dto.LoginResponse{MFARequired: true, MFAToken: mfaToken}, nil
	}
	return uc.issueAccess(user)
}

// VerifyMFA completa el login validando el token intermedio y el código TOTP.
func (uc *AuthUseCase) VerifyMFA(ctx context.Context, in dto.VerifyMFARequest) (*dto.LoginResponse, error) {
	claims, err := jwt.ParsePurpose(uc.jwtCfg.Secret, in.MFAToken, jwt.PurposeMFA)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	if !user.MFAEnabled {
		return nil, domain.ErrMFANotEnabled
	}
	if err := uc.checkCode(user, in.Code); err != nil {
		return nil, err
	}
	return uc.issueAccess(user)
}

// SetupMFA genera un secreto nuevo y lo deja pendiente de confirmación.
// Devuelve el secreto, el URI otpauth y el QR para la app autenticadora.
func (uc *AuthUseCase) SetupMFA(ctx context.Context, userID string) (*dto.MFASetupResponse, error) {
	if len(uc.mfaCfg.Key) == 0 {
		return nil, domain.ErrMFANotConfigured
	}
	user, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.MFAEnabled {
		return nil, domain.ErrMFAAlreadyEnabled
	}
	secret, err := totp.GenerateSecret()
	if err != nil {
		return nil, err
	}
	uri, err := totp.URI(secret, uc.mfaCfg.Issuer, user.Email)
	if err != nil {
		return nil, err
	}
	qr, err := uc.qr.DataURI(uri)
	if err != nil {
		return nil, err
	}
	encrypted, err := totp.Encrypt(secret, uc.mfaCfg.Key)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateMFA(ctx, user.ID, encrypted, false); err != nil {
		return nil, err
	}
	return &dto.MFASetupResponse{Secret: secret, URI: uri, QRCode: qr}, nil
}

// EnableMFA activa la 2FA tras validar un código del secreto pendiente.
func (uc *AuthUseCase) EnableMFA(ctx context.Context, userID, code string) error {
	user, err := uc.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.MFAEnabled {
		return domain.ErrMFAAlreadyEnabled
	}
	if user.MFASecret == "" {
		return domain.ErrMFANotConfigured
	}
	if err := uc.checkCode(user, code); err != nil {
		return err
	}
	return uc.userRepo.UpdateMFA(ctx, user.ID, user.MFASecret, true)
}

// DisableMFA desactiva la 2FA; exige un código válido.
func (uc *AuthUseCase) DisableMFA(ctx context.Context, userID, code string) error {
	user, err := uc.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.MFAEnabled {
		return domain.ErrMFANotEnabled
	}
	if err := uc.checkCode(user, code); err != nil {
		return err
	}
	return uc.userRepo.UpdateMFA(ctx, user.ID, "", false)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) getUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *AuthUseCase) checkCode(user *entity.User, code string) error {
	if len(uc.mfaCfg.Key) == 0 {
		return domain.ErrMFANotConfigured
	}
	secret, err := totp.Decrypt(user.MFASecret, uc.mfaCfg.Key)
	if err != nil {
		return err
	}
	ok, err := totp.Validate(secret, code, time.Now())
	if err != nil {
		if errors.Is(err, totp.ErrInvalidCode) {
			return domain.ErrInvalidMFACode
		}
		return err
	}
	if !ok {
		return domain.ErrInvalidMFACode
	}
	return nil
}

func (uc *AuthUseCase) issueAccess(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(jwt.Params{
		Secret:     uc.jwtCfg.Secret,
		Issuer:     uc.jwtCfg.Issuer,
		ExpMinutes: uc.jwtCfg.ExpMinutes,
		UserID:     user.ID,
		Email:      user.Email,
		Roles:      RoleClaims(user.Roles),
		Purpose:    jwt.PurposeAccess,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// RoleClaims convierte los roles del usuario al formato del token.
func RoleClaims(roles []permission.Role) []jwt.RoleClaim {
	out := make([]jwt.RoleClaim, 0, len(roles))
	for _, r := range roles {
		app, _ := r.AppName()
		out = append(out, jwt.RoleClaim{Name: r.Name, App: app})
	}
	return out
}

// RolesFromClaims reconstruye los roles normalizados a partir del token.
func RolesFromClaims(claims []jwt.RoleClaim) []permission.Role {
	out := make([]permission.Role, 0, len(claims))
	for _, c := range claims {
		out = append(out, permission.NewRole(c.Name, c.App))
	}
	return out
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []permission.Role{}
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Position:   u.Position,
		Status:     u.Status,
		MFAEnabled: u.MFAEnabled,
		Roles:      roles,
		CreatedAt:  u.CreatedAt,
	}
}
