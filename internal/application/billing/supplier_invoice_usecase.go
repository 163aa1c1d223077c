package billing

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/ports"
	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
	"github.com/jhoicas/portal-intranet/pkg/nit"
)

const (
	dateLayout = "2006-01-02"
	// maxXMLSize tamaño máximo aceptado para el XML de una factura electrónica.
	maxXMLSize = 5 << 20
)

// SupplierInvoiceUseCase casos de uso del módulo proveedores (facturas recibidas).
type SupplierInvoiceUseCase struct {
	repo     repository.SupplierInvoiceRepository
	terceros repository.TerceroRepository
	storage  ports.ObjectStorage
	parser   ports.InvoiceXMLParser
	pdf      ports.SupplierInvoicePDFGenerator
	tx       TxRunner
}

// NewSupplierInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewSupplierInvoiceUseCase(
	repo repository.SupplierInvoiceRepository,
	terceros repository.TerceroRepository,
	storage ports.ObjectStorage,
	parser ports.InvoiceXMLParser,
	pdf ports.SupplierInvoicePDFGenerator,
	tx TxRunner,
) *SupplierInvoiceUseCase {
	return &SupplierInvoiceUseCase{repo: repo, terceros: terceros, storage: storage, parser: parser, pdf: pdf, tx: tx}
}

// List lista facturas con filtros.
func (uc *SupplierInvoiceUseCase) List(ctx context.Context, perms permission.Set, q dto.SupplierInvoiceListQuery) ([]dto.SupplierInvoiceResponse, int, error) {
	q.DefaultPage()
	if q.Status != "" && !validStatus(q.Status) {
		return nil, 0, domain.ErrInvalidInput
	}
	list, total, err := uc.repo.List(ctx, repository.SupplierInvoiceFilter{
		Status:    q.Status,
		TerceroID: q.TerceroID,
		Search:    strings.TrimSpace(q.Search),
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SupplierInvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toResponse(inv, perms))
	}
	return out, total, nil
}

// Get obtiene una factura por ID.
func (uc *SupplierInvoiceUseCase) Get(ctx context.Context, perms permission.Set, id string) (*dto.SupplierInvoiceResponse, error) {
	inv, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(inv, perms)
	return &resp, nil
}

// Create registra manualmente una factura; file (PDF u ofimático) es opcional.
func (uc *SupplierInvoiceUseCase) Create(ctx context.Context, userID string, in dto.SupplierInvoiceRequest, file *ports.FileInput) (*dto.SupplierInvoiceResponse, error) {
	number := strings.ToUpper(strings.TrimSpace(in.Number))
	if in.TerceroID == "" || number == "" {
		return nil, domain.ErrInvalidInput
	}
	issue, err := time.Parse(dateLayout, in.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var due *time.Time
	if in.DueDate != "" {
		d, err := time.Parse(dateLayout, in.DueDate)
		if err != nil || d.Before(issue) {
			return nil, domain.ErrInvalidInput
		}
		due = &d
	}
	if err := validateAmounts(in.Subtotal, in.TaxTotal, in.Total); err != nil {
		return nil, err
	}
	supplier, err := uc.supplier(ctx, in.TerceroID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.SupplierInvoice{
		ID:           uuid.New().String(),
		TerceroID:    supplier.ID,
		SupplierName: supplier.Name,
		Number:       number,
		CUFE:         strings.TrimSpace(in.CUFE),
		IssueDate:    issue,
		DueDate:      due,
		Subtotal:     in.Subtotal,
		TaxTotal:     in.TaxTotal,
		Total:        in.Total,
		Status:       entity.SupplierInvoiceRecibida,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.save(ctx, uc.repo, inv, file); err != nil {
		return nil, err
	}
	resp := toResponse(inv, permission.AdminSet)
	return &resp, nil
}

// Import registra una factura a partir de su XML UBL 2.1 (DIAN). Si el NIT del
// emisor no existe como tercero se crea como proveedor. La misma factura
// (mismo XML canonicalizado, o mismo proveedor y número) no se importa dos veces.
func (uc *SupplierInvoiceUseCase) Import(ctx context.Context, userID string, xmlFile *ports.FileInput, attachment *ports.FileInput) (*dto.SupplierInvoiceResponse, error) {
	if xmlFile == nil || permission.Extension(xmlFile.Name) != "xml" {
		return nil, domain.ErrUnsupportedFormat
	}
	raw, err := io.ReadAll(io.LimitReader(xmlFile.Body, maxXMLSize+1))
	if err != nil {
		return nil, fmt.Errorf("leer XML: %w", err)
	}
	if len(raw) == 0 || len(raw) > maxXMLSize {
		return nil, domain.ErrInvalidInput
	}
	parsed, err := uc.parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	now := time.Now()
	inv := &entity.SupplierInvoice{
		ID:          uuid.New().String(),
		Number:      parsed.Number,
		CUFE:        parsed.CUFE,
		IssueDate:   parsed.IssueDate,
		DueDate:     parsed.DueDate,
		Subtotal:    parsed.Subtotal,
		TaxTotal:    parsed.TaxTotal,
		Total:       parsed.Total,
		Status:      entity.SupplierInvoiceRecibida,
		Fingerprint: parsed.Fingerprint,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunSupplierInvoice(ctx, func(terceros repository.TerceroRepository, invoices repository.SupplierInvoiceRepository) error {
		if dup, err := invoices.GetByFingerprint(ctx, parsed.Fingerprint); err != nil {
			return err
		} else if dup != nil {
			return domain.ErrDuplicate
		}
		supplier, err := supplierByNIT(ctx, terceros, parsed)
		if err != nil {
			return err
		}
		inv.TerceroID = supplier.ID
		inv.SupplierName = supplier.Name
		return uc.save(ctx, invoices, inv, attachment)
	})
	if err != nil {
		// Rollback o commit fallido: se borra el adjunto ya subido.
		if inv.StorageKey != "" {
			_ = uc.storage.Delete(ctx, inv.StorageKey)
		}
		return nil, err
	}
	resp := toResponse(inv, permission.AdminSet)
	return &resp, nil
}

// ChangeStatus aplica una transición válida: RECIBIDA→APROBADA|RECHAZADA, APROBADA→PAGADA.
func (uc *SupplierInvoiceUseCase) ChangeStatus(ctx context.Context, id, status string) (*dto.SupplierInvoiceResponse, error) {
	if !validStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(inv.Status, status) {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateStatus(ctx, inv.ID, status); err != nil {
		return nil, err
	}
	inv.Status = status
	inv.UpdatedAt = time.Now()
	resp := toResponse(inv, permission.AdminSet)
	return &resp, nil
}

// Delete elimina una factura que aún no ha sido pagada, junto con su adjunto.
func (uc *SupplierInvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status == entity.SupplierInvoicePagada {
		return domain.ErrConflict
	}
	if err := uc.repo.Delete(ctx, inv.ID); err != nil {
		return err
	}
	if inv.StorageKey != "" {
		return uc.storage.Delete(ctx, inv.StorageKey)
	}
	return nil
}

// Download devuelve un enlace temporal al adjunto si su formato es descargable.
func (uc *SupplierInvoiceUseCase) Download(ctx context.Context, perms permission.Set, id string) (*dto.DownloadResponse, error) {
	if !perms.CanView {
		return nil, domain.ErrForbidden
	}
	inv, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.StorageKey == "" {
		return nil, domain.ErrNotFound
	}
	if !perms.CanDownloadByFormat(inv.FileName) {
		return nil, domain.ErrForbidden
	}
	url, expires, err := uc.storage.PresignGet(ctx, inv.StorageKey, inv.FileName)
	if err != nil {
		return nil, err
	}
	return &dto.DownloadResponse{FileName: inv.FileName, URL: url, ExpiresIn: expires}, nil
}

// SummaryPDF genera la hoja resumen de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrForbidden       si el usuario no puede descargar en el módulo.
//   - domain.ErrNotFound        si la factura o el proveedor no existen.
func (uc *SupplierInvoiceUseCase) SummaryPDF(ctx context.Context, perms permission.Set, id string) ([]byte, string, error) {
	if !perms.CanDownload {
		return nil, "", domain.ErrForbidden
	}
	inv, err := uc.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	supplier, err := uc.terceros.GetByID(ctx, inv.TerceroID)
	if err != nil {
		return nil, "", err
	}
	if supplier == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.pdf.GenerateSupplierInvoicePDF(ctx, inv, supplier)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("factura-%s.pdf", inv.Number), nil
}

// save valida el número por proveedor, sube el adjunto (si hay) y persiste la factura.
func (uc *SupplierInvoiceUseCase) save(ctx context.Context, repo repository.SupplierInvoiceRepository, inv *entity.SupplierInvoice, file *ports.FileInput) error {
	existing, err := repo.GetByTerceroAndNumber(ctx, inv.TerceroID, inv.Number)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicate
	}
	if file != nil {
		name, err := file.CleanName()
		if err != nil {
			return err
		}
		key := fmt.Sprintf("proveedores/%s/%s", inv.ID, name)
		if err := uc.storage.Upload(ctx, ports.UploadInput{
			Key:         key,
			Body:        file.Body,
			ContentType: file.ResolvedContentType(name),
			Size:        file.Size,
		}); err != nil {
			return err
		}
		inv.FileName = name
		inv.StorageKey = key
	}
	if err := repo.Create(ctx, inv); err != nil {
		if inv.StorageKey != "" {
			_ = uc.storage.Delete(ctx, inv.StorageKey)
			inv.FileName, inv.StorageKey = "", ""
		}
		return err
	}
	return nil
}

func (uc *SupplierInvoiceUseCase) find(ctx context.Context, id string) (*entity.SupplierInvoice, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (uc *SupplierInvoiceUseCase) supplier(ctx context.Context, terceroID string) (*entity.Tercero, error) {
	t, err := uc.terceros.GetByID(ctx, terceroID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !t.IsSupplier || !t.Active {
		return nil, domain.ErrInvalidInput
	}
	return t, nil
}

// supplierByNIT busca el emisor por NIT; si no existe lo registra como proveedor.
func supplierByNIT(ctx context.Context, terceros repository.TerceroRepository, parsed *ports.ParsedInvoice) (*entity.Tercero, error) {
	t, err := terceros.GetByDocument(ctx, entity.DocTypeNIT, parsed.SupplierNIT)
	if err != nil {
		return nil, err
	}
	if t != nil {
		if !t.IsSupplier {
			t.IsSupplier = true
			t.UpdatedAt = time.Now()
			if err := terceros.Update(ctx, t); err != nil {
				return nil, err
			}
		}
		return t, nil
	}
	now := time.Now()
	t = &entity.Tercero{
		ID:         uuid.New().String(),
		DocType:    entity.DocTypeNIT,
		DocNumber:  parsed.SupplierNIT,
		Name:       parsed.SupplierName,
		IsSupplier: true,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if dv, err := nit.VerificationDigit(parsed.SupplierNIT); err == nil {
		t.VerificationDigit = dv
	}
	if err := terceros.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func validStatus(s string) bool {
	switch s {
	case entity.SupplierInvoiceRecibida, entity.SupplierInvoiceAprobada,
		entity.SupplierInvoiceRechazada, entity.SupplierInvoicePagada:
		return true
	}
	return false
}

// validateAmounts exige montos no negativos y total = subtotal + impuestos.
func validateAmounts(subtotal, tax, total decimal.Decimal) error {
	if subtotal.IsNegative() || tax.IsNegative() || total.IsNegative() {
		return domain.ErrInvalidInput
	}
	if !subtotal.Add(tax).Equal(total) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toResponse(inv *entity.SupplierInvoice, perms permission.Set) dto.SupplierInvoiceResponse {
	out := dto.SupplierInvoiceResponse{
		ID:           inv.ID,
		TerceroID:    inv.TerceroID,
		SupplierName: inv.SupplierName,
		Number:       inv.Number,
		CUFE:         inv.CUFE,
		IssueDate:    inv.IssueDate.Format(dateLayout),
		Subtotal:     inv.Subtotal,
		TaxTotal:     inv.TaxTotal,
		Total:        inv.Total,
		Status:       inv.Status,
		FileName:     inv.FileName,
		Downloadable: inv.StorageKey != "" && perms.CanView && perms.CanDownloadByFormat(inv.FileName),
		Notes:        inv.Notes,
		CreatedAt:    inv.CreatedAt,
	}
	if inv.DueDate != nil {
		out.DueDate = inv.DueDate.Format(dateLayout)
	}
	return out
}
