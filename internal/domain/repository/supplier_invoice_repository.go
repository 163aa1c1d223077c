package repository

import (
	"context"

	"github.com/jhoicas/portal-intranet/internal/domain/entity"
)

// SupplierInvoiceFilter filtros del listado de facturas de proveedor.
type SupplierInvoiceFilter struct {
	Status    string
	TerceroID string
	Search    string // número o CUFE
	Limit     int
	Offset    int
}

// SupplierInvoiceRepository define el puerto de persistencia para SupplierInvoice.
type SupplierInvoiceRepository interface {
	Create(ctx context.Context, inv *entity.SupplierInvoice) error
	GetByID(ctx context.Context, id string) (*entity.SupplierInvoice, error)
	GetByTerceroAndNumber(ctx context.Context, terceroID, number string) (*entity.SupplierInvoice, error)
	GetByFingerprint(ctx context.Context, fingerprint string) (*entity.SupplierInvoice, error)
	List(ctx context.Context, f SupplierInvoiceFilter) ([]*entity.SupplierInvoice, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
