package repository

import (
	"context"

	"github.com/jhoicas/portal-intranet/internal/domain/entity"
)

// TerceroFilter filtros del listado de terceros.
type TerceroFilter struct {
	Search       string // nombre o número de documento
	OnlySupplier bool
	Limit        int
	Offset       int
}

// TerceroRepository define el puerto de persistencia para Tercero.
type TerceroRepository interface {
	Create(ctx context.Context, t *entity.Tercero) error
	GetByID(ctx context.Context, id string) (*entity.Tercero, error)
	GetByDocument(ctx context.Context, docType, docNumber string) (*entity.Tercero, error)
	List(ctx context.Context, f TerceroFilter) ([]*entity.Tercero, int, error)
	Update(ctx context.Context, t *entity.Tercero) error
	Delete(ctx context.Context, id string) error
}
