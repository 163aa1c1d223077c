package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
	"github.com/jhoicas/portal-intranet/pkg/nit"
)

// TerceroUseCase casos de uso del módulo terceros.
type TerceroUseCase struct {
	repo repository.TerceroRepository
}

// NewTerceroUseCase construye el caso de uso.
func NewTerceroUseCase(repo repository.TerceroRepository) *TerceroUseCase {
	return &TerceroUseCase{repo: repo}
}

// List lista terceros por nombre o documento.
func (uc *TerceroUseCase) List(ctx context.Context, q dto.TerceroListQuery) ([]dto.TerceroResponse, int, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.TerceroFilter{
		Search:       strings.TrimSpace(q.Search),
		OnlySupplier: q.OnlySupplier,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.TerceroResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTerceroResponse(t))
	}
	return out, total, nil
}

// Get obtiene un tercero por ID.
func (uc *TerceroUseCase) Get(ctx context.Context, id string) (*dto.TerceroResponse, error) {
	t, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTerceroResponse(t)
	return &resp, nil
}

// Create registra un tercero. Para NIT calcula (o valida, si viene con guion) el dígito de verificación.
func (uc *TerceroUseCase) Create(ctx context.Context, in dto.TerceroRequest) (*dto.TerceroResponse, error) {
	now := time.Now()
	t := &entity.Tercero{ID: uuid.New().String(), Active: true, CreatedAt: now}
	if err := applyTercero(t, in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDocument(ctx, t.DocType, t.DocNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	t.UpdatedAt = now
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	resp := toTerceroResponse(t)
	return &resp, nil
}

// Update actualiza un tercero.
func (uc *TerceroUseCase) Update(ctx context.Context, id string, in dto.TerceroRequest) (*dto.TerceroResponse, error) {
	t, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyTercero(t, in); err != nil {
		return nil, err
	}
	other, err := uc.repo.GetByDocument(ctx, t.DocType, t.DocNumber)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != t.ID {
		return nil, domain.ErrDuplicate
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	resp := toTerceroResponse(t)
	return &resp, nil
}

// Delete elimina un tercero. Si tiene facturas asociadas la base de datos lo impide (ErrConflict).
func (uc *TerceroUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *TerceroUseCase) find(ctx context.Context, id string) (*entity.Tercero, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func applyTercero(t *entity.Tercero, in dto.TerceroRequest) error {
	docType := strings.ToUpper(strings.TrimSpace(in.DocType))
	name := strings.TrimSpace(in.Name)
	if !entity.ValidDocType(docType) || name == "" {
		return domain.ErrInvalidInput
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.ErrInvalidInput
		}
	}

	number := strings.TrimSpace(in.DocNumber)
	dv := ""
	switch docType {
	case entity.DocTypeNIT:
		var given string
		number, given = nit.Split(number)
		computed, err := nit.VerificationDigit(number)
		if err != nil {
			return domain.ErrInvalidInput
		}
		if given != "" && given != computed {
			return domain.ErrInvalidInput
		}
		dv = computed
	case entity.DocTypeCC, entity.DocTypeTI:
		number = nit.Digits(number)
	default:
		number = strings.ToUpper(strings.ReplaceAll(number, " ", ""))
	}
	if number == "" {
		return domain.ErrInvalidInput
	}

	t.DocType = docType
	t.DocNumber = number
	t.VerificationDigit = dv
	t.Name = name
	t.Email = email
	t.Phone = strings.TrimSpace(in.Phone)
	t.Address = strings.TrimSpace(in.Address)
	t.City = strings.TrimSpace(in.City)
	t.IsSupplier = in.IsSupplier
	if in.Active != nil {
		t.Active = *in.Active
	}
	return nil
}

func toTerceroResponse(t *entity.Tercero) dto.TerceroResponse {
	return dto.TerceroResponse{
		ID:                t.ID,
		DocType:           t.DocType,
		DocNumber:         t.DocNumber,
		VerificationDigit: t.VerificationDigit,
		Name:              t.Name,
		Email:             t.Email,
		Phone:             t.Phone,
		Address:           t.Address,
		City:              t.City,
		IsSupplier:        t.IsSupplier,
		Active:            t.Active,
	}
}
