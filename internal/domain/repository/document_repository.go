package repository

import (
	"context"

	"github.com/jhoicas/portal-intranet/internal/domain/entity"
)

// DocumentFilter filtros del listado de documentos. Campos vacíos no filtran.
type DocumentFilter struct {
	Status  string
	Process string
	Search  string // código o nombre
	Limit   int
	Offset  int
}

// DocumentRepository define el puerto de persistencia para Document.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetByCode(ctx context.Context, code string) (*entity.Document, error)
	List(ctx context.Context, f DocumentFilter) ([]*entity.Document, int, error)
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id string) error
}
