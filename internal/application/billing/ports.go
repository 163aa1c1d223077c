package billing

import (
	"context"

	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace rollback.
type TxRunner interface {
	RunSupplierInvoice(ctx context.Context, fn func(
		terceros repository.TerceroRepository,
		invoices repository.SupplierInvoiceRepository,
	) error) error
}
