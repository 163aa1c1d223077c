package billing_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-intranet/internal/application/billing"
	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/ports"
	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memInvoices struct {
	byID map[string]*entity.SupplierInvoice
}

func (m *memInvoices) Create(_ context.Context, inv *entity.SupplierInvoice) error {
	m.byID[inv.ID] = inv
	return nil
}

func (m *memInvoices) GetByID(_ context.Context, id string) (*entity.SupplierInvoice, error) {
	return m.byID[id], nil
}

func (m *memInvoices) GetByTerceroAndNumber(_ context.Context, terceroID, number string) (*entity.SupplierInvoice, error) {
	for _, inv := range m.byID {
		if inv.TerceroID == terceroID && inv.Number == number {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *memInvoices) GetByFingerprint(_ context.Context, fp string) (*entity.SupplierInvoice, error) {
	for _, inv := range m.byID {
		if fp != "" && inv.Fingerprint == fp {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *memInvoices) List(_ context.Context, f repository.SupplierInvoiceFilter) ([]*entity.SupplierInvoice, int, error) {
	var out []*entity.SupplierInvoice
	for _, inv := range m.byID {
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, len(out), nil
}

func (m *memInvoices) UpdateStatus(_ context.Context, id, status string) error {
	inv, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (m *memInvoices) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memTerceros struct {
	byID map[string]*entity.Tercero
}

func (m *memTerceros) Create(_ context.Context, t *entity.Tercero) error {
	m.byID[t.ID] = t
	return nil
}

func (m *memTerceros) GetByID(_ context.Context, id string) (*entity.Tercero, error) {
	return m.byID[id], nil
}

func (m *memTerceros) GetByDocument(_ context.Context, docType, docNumber string) (*entity.Tercero, error) {
	for _, t := range m.byID {
		if t.DocType == docType && t.DocNumber == docNumber {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memTerceros) List(_ context.Context, _ repository.TerceroFilter) ([]*entity.Tercero, int, error) {
	return nil, 0, nil
}

func (m *memTerceros) Update(_ context.Context, t *entity.Tercero) error {
	m.byID[t.ID] = t
	return nil
}

func (m *memTerceros) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type fakeStorage struct {
	objects map[string]string
}

func (s *fakeStorage) Upload(_ context.Context, in ports.UploadInput) error {
	s.objects[in.Key] = in.ContentType
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) PresignGet(_ context.Context, key, _ string) (string, int, error) {
	return "https://s3.test/" + key, 300, nil
}

type fakeParser struct {
	out *ports.ParsedInvoice
	err error
}

func (p fakeParser) Parse(_ []byte) (*ports.ParsedInvoice, error) { return p.out, p.err }

type fakePDF struct{}

func (fakePDF) GenerateSupplierInvoicePDF(_ context.Context, inv *entity.SupplierInvoice, supplier *entity.Tercero) ([]byte, error) {
	return []byte("%PDF-" + inv.Number + "-" + supplier.Name), nil
}

// directTx ejecuta fn sin transacción real sobre los repos en memoria.
// commitErr simula un fallo al confirmar después de que fn termina bien.
type directTx struct {
	terceros  *memTerceros
	invoices  *memInvoices
	commitErr error
}

func (d directTx) RunSupplierInvoice(_ context.Context, fn func(repository.TerceroRepository, repository.SupplierInvoiceRepository) error) error {
	if err := fn(d.terceros, d.invoices); err != nil {
		return err
	}
	return d.commitErr
}

type fixture struct {
	uc       *billing.SupplierInvoiceUseCase
	invoices *memInvoices
	terceros *memTerceros
	storage  *fakeStorage
}

func newFixture(parser fakeParser) *fixture {
	f := &fixture{
		invoices: &memInvoices{byID: map[string]*entity.SupplierInvoice{}},
		terceros: &memTerceros{byID: map[string]*entity.Tercero{
			"t1": {ID: "t1", DocType: entity.DocTypeNIT, DocNumber: "800197268", VerificationDigit: "4", Name: "Suministros Médicos SAS", IsSupplier: true, Active: true},
			"t2": {ID: "t2", DocType: entity.DocTypeCC, DocNumber: "1020304050", Name: "Paciente", Active: true},
		}},
		storage: &fakeStorage{objects: map[string]string{}},
	}
	f.uc = billing.NewSupplierInvoiceUseCase(f.invoices, f.terceros, f.storage, parser, fakePDF{},
		directTx{terceros: f.terceros, invoices: f.invoices})
	return f
}

func manualRequest() dto.SupplierInvoiceRequest {
	return dto.SupplierInvoiceRequest{
		TerceroID: "t1",
		Number:    " fe-1001 ",
		IssueDate: "2026-03-01",
		DueDate:   "2026-03-31",
		Subtotal:  decimal.RequireFromString("100000"),
		TaxTotal:  decimal.RequireFromString("19000"),
		Total:     decimal.RequireFromString("119000"),
	}
}

func pdfFile(name string) *ports.FileInput {
	return &ports.FileInput{Name: name, Size: 4, Body: strings.NewReader("%PDF")}
}

var (
	adminPerms = permission.Resolve([]permission.Role{permission.NewRole("admin", permission.AppProveedores)}, permission.AppProveedores)
	userPerms  = permission.Resolve([]permission.Role{permission.NewRole("user", permission.AppProveedores)}, permission.AppProveedores)
	noPerms    = permission.Set{}
)

// ──────────────────────────────────────────────────────────────────────────────
// Registro manual
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RegistraFacturaConAdjunto(t *testing.T) {
	f := newFixture(fakeParser{})
	out, err := f.uc.Create(context.Background(), "u1", manualRequest(), pdfFile("C:\\facturas\\FE-1001.pdf"))
	require.NoError(t, err)

	assert.Equal(t, "FE-1001", out.Number)
	assert.Equal(t, entity.SupplierInvoiceRecibida, out.Status)
	assert.Equal(t, "Suministros Médicos SAS", out.SupplierName)
	assert.Equal(t, "FE-1001.pdf", out.FileName)
	assert.Equal(t, "2026-03-31", out.DueDate)
	assert.True(t, out.Downloadable)
	assert.Len(t, f.storage.objects, 1)
	assert.Equal(t, "application/pdf", f.storage.objects["proveedores/"+out.ID+"/FE-1001.pdf"])
}

func TestCreate_Validaciones(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.SupplierInvoiceRequest)
		want   error
	}{
		{"sin número", func(r *dto.SupplierInvoiceRequest) { r.Number = "  " }, domain.ErrInvalidInput},
		{"fecha inválida", func(r *dto.SupplierInvoiceRequest) { r.IssueDate = "01/03/2026" }, domain.ErrInvalidInput},
		{"vence antes de emitir", func(r *dto.SupplierInvoiceRequest) { r.DueDate = "2026-02-01" }, domain.ErrInvalidInput},
		{"total no cuadra", func(r *dto.SupplierInvoiceRequest) { r.Total = decimal.RequireFromString("120000") }, domain.ErrInvalidInput},
		{"monto negativo", func(r *dto.SupplierInvoiceRequest) {
			r.Subtotal = decimal.RequireFromString("-1")
			r.Total = decimal.RequireFromString("18999")
		}, domain.ErrInvalidInput},
		{"tercero inexistente", func(r *dto.SupplierInvoiceRequest) { r.TerceroID = "nope" }, domain.ErrNotFound},
		{"tercero que no es proveedor", func(r *dto.SupplierInvoiceRequest) { r.TerceroID = "t2" }, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(fakeParser{})
			req := manualRequest()
			tc.mutate(&req)
			_, err := f.uc.Create(context.Background(), "u1", req, nil)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreate_NumeroDuplicadoPorProveedor(t *testing.T) {
	f := newFixture(fakeParser{})
	_, err := f.uc.Create(context.Background(), "u1", manualRequest(), nil)
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), "u1", manualRequest(), nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_AdjuntoNoPermitido(t *testing.T) {
	f := newFixture(fakeParser{})
	_, err := f.uc.Create(context.Background(), "u1", manualRequest(), pdfFile("factura.exe"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Empty(t, f.invoices.byID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación XML
// ──────────────────────────────────────────────────────────────────────────────

func parsed(nitEmisor string) *ports.ParsedInvoice {
	return &ports.ParsedInvoice{
		Number:       "SETP990000002",
		CUFE:         "abc123",
		IssueDate:    time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		SupplierNIT:  nitEmisor,
		SupplierName: "Laboratorio Andino SA",
		Subtotal:     decimal.RequireFromString("1000"),
		TaxTotal:     decimal.RequireFromString("190"),
		Total:        decimal.RequireFromString("1190"),
		Fingerprint:  "fp-" + nitEmisor,
	}
}

func xmlFile() *ports.FileInput {
	return &ports.FileInput{Name: "fv.xml", Body: strings.NewReader("<Invoice/>")}
}

func TestImport_CreaProveedorSiNoExiste(t *testing.T) {
	f := newFixture(fakeParser{out: parsed("900123456")})
	out, err := f.uc.Import(context.Background(), "u1", xmlFile(), nil)
	require.NoError(t, err)

	assert.Equal(t, "SETP990000002", out.Number)
	assert.Equal(t, "Laboratorio Andino SA", out.SupplierName)
	supplier := f.terceros.byID[out.TerceroID]
	require.NotNil(t, supplier)
	assert.True(t, supplier.IsSupplier)
	assert.Equal(t, "8", supplier.VerificationDigit)
	assert.Equal(t, "fp-900123456", f.invoices.byID[out.ID].Fingerprint)
}

func TestImport_ReutilizaProveedorExistente(t *testing.T) {
	f := newFixture(fakeParser{out: parsed("800197268")})
	out, err := f.uc.Import(context.Background(), "u1", xmlFile(), pdfFile("representacion.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "t1", out.TerceroID)
	assert.Equal(t, "representacion.pdf", out.FileName)
	assert.Len(t, f.terceros.byID, 2)
}

func TestImport_DuplicadoPorHuella(t *testing.T) {
	f := newFixture(fakeParser{out: parsed("800197268")})
	_, err := f.uc.Import(context.Background(), "u1", xmlFile(), nil)
	require.NoError(t, err)
	_, err = f.uc.Import(context.Background(), "u1", xmlFile(), nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestImport_HuellaSeConsultaEnLaTransaccion(t *testing.T) {
	f := newFixture(fakeParser{out: parsed("800197268")})
	enTx := &memInvoices{byID: map[string]*entity.SupplierInvoice{
		"previa": {ID: "previa", TerceroID: "t1", Number: "OTRA", Fingerprint: "fp-800197268"},
	}}
	uc := billing.NewSupplierInvoiceUseCase(f.invoices, f.terceros, f.storage, fakeParser{out: parsed("800197268")}, fakePDF{},
		directTx{terceros: f.terceros, invoices: enTx})

	_, err := uc.Import(context.Background(), "u1", xmlFile(), pdfFile("representacion.pdf"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, f.storage.objects)
}

func TestImport_CommitFallidoBorraAdjunto(t *testing.T) {
	f := newFixture(fakeParser{out: parsed("800197268")})
	commitErr := errors.New("commit: conexión cerrada")
	uc := billing.NewSupplierInvoiceUseCase(f.invoices, f.terceros, f.storage, fakeParser{out: parsed("800197268")}, fakePDF{},
		directTx{terceros: f.terceros, invoices: f.invoices, commitErr: commitErr})

	_, err := uc.Import(context.Background(), "u1", xmlFile(), pdfFile("representacion.pdf"))
	assert.ErrorIs(t, err, commitErr)
	assert.Empty(t, f.storage.objects, "el adjunto no queda huérfano en S3")
}

func TestImport_ErroresDeEntrada(t *testing.T) {
	f := newFixture(fakeParser{err: errors.New("no es UBL")})
	_, err := f.uc.Import(context.Background(), "u1", &ports.FileInput{Name: "fv.pdf", Body: strings.NewReader("x")}, nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = f.uc.Import(context.Background(), "u1", &ports.FileInput{Name: "fv.xml", Body: strings.NewReader("")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Import(context.Background(), "u1", xmlFile(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados, borrado y descargas
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_Transiciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture(fakeParser{})
	inv, err := f.uc.Create(ctx, "u1", manualRequest(), nil)
	require.NoError(t, err)

	_, err = f.uc.ChangeStatus(ctx, inv.ID, entity.SupplierInvoicePagada)
	assert.ErrorIs(t, err, domain.ErrConflict, "RECIBIDA no pasa directo a PAGADA")

	_, err = f.uc.ChangeStatus(ctx, inv.ID, "ANULADA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.uc.ChangeStatus(ctx, inv.ID, entity.SupplierInvoiceAprobada)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierInvoiceAprobada, out.Status)

	_, err = f.uc.ChangeStatus(ctx, inv.ID, entity.SupplierInvoicePagada)
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.Delete(ctx, inv.ID), domain.ErrConflict, "una factura pagada no se elimina")
}

func TestDelete_EliminaAdjunto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(fakeParser{})
	inv, err := f.uc.Create(ctx, "u1", manualRequest(), pdfFile("fe.pdf"))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, inv.ID))
	assert.Empty(t, f.invoices.byID)
	assert.Empty(t, f.storage.objects)
	assert.ErrorIs(t, f.uc.Delete(ctx, inv.ID), domain.ErrNotFound)
}

func TestDownload_SegunFormatoYNivel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(fakeParser{})
	conPDF, err := f.uc.Create(ctx, "u1", manualRequest(), pdfFile("fe.pdf"))
	require.NoError(t, err)
	req := manualRequest()
	req.Number = "FE-2002"
	conExcel, err := f.uc.Create(ctx, "u1", req, pdfFile("soporte.xlsx"))
	require.NoError(t, err)
	req.Number = "FE-3003"
	sinArchivo, err := f.uc.Create(ctx, "u1", req, nil)
	require.NoError(t, err)

	out, err := f.uc.Download(ctx, adminPerms, conPDF.ID)
	require.NoError(t, err)
	assert.Equal(t, "fe.pdf", out.FileName)
	assert.Contains(t, out.URL, conPDF.ID)

	_, err = f.uc.Download(ctx, userPerms, conPDF.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "un usuario básico no descarga PDF")

	_, err = f.uc.Download(ctx, userPerms, conExcel.ID)
	assert.NoError(t, err, "los formatos ofimáticos se descargan con solo ver")

	_, err = f.uc.Download(ctx, noPerms, conExcel.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Download(ctx, adminPerms, sinArchivo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_MarcaDescargables(t *testing.T) {
	ctx := context.Background()
	f := newFixture(fakeParser{})
	_, err := f.uc.Create(ctx, "u1", manualRequest(), pdfFile("fe.pdf"))
	require.NoError(t, err)

	items, total, err := f.uc.List(ctx, userPerms, dto.SupplierInvoiceListQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.False(t, items[0].Downloadable)

	items, _, err = f.uc.List(ctx, adminPerms, dto.SupplierInvoiceListQuery{})
	require.NoError(t, err)
	assert.True(t, items[0].Downloadable)

	_, _, err = f.uc.List(ctx, adminPerms, dto.SupplierInvoiceListQuery{Status: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummaryPDF(t *testing.T) {
	ctx := context.Background()
	f := newFixture(fakeParser{})
	inv, err := f.uc.Create(ctx, "u1", manualRequest(), nil)
	require.NoError(t, err)

	data, name, err := f.uc.SummaryPDF(ctx, adminPerms, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "factura-FE-1001.pdf", name)
	assert.Contains(t, string(data), "Suministros Médicos SAS")

	_, _, err = f.uc.SummaryPDF(ctx, userPerms, inv.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
