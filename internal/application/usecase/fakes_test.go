package usecase_test

import (
	"context"
	"sort"

	"github.com/jhoicas/portal-intranet/internal/application/ports"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memDocuments struct {
	byID map[string]*entity.Document
}

func newMemDocuments() *memDocuments { return &memDocuments{byID: map[string]*entity.Document{}} }

func (m *memDocuments) Create(_ context.Context, d *entity.Document) error {
	cp := *d
	m.byID[d.ID] = &cp
	return nil
}

func (m *memDocuments) GetByID(_ context.Context, id string) (*entity.Document, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *memDocuments) GetByCode(_ context.Context, code string) (*entity.Document, error) {
	for _, d := range m.byID {
		if d.Code == code {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memDocuments) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	var out []*entity.Document
	for _, d := range m.byID {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, len(out), nil
}

func (m *memDocuments) Update(_ context.Context, d *entity.Document) error {
	cp := *d
	m.byID[d.ID] = &cp
	return nil
}

func (m *memDocuments) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memIndicators struct {
	byID         map[string]*entity.Indicator
	measurements map[string][]*entity.IndicatorMeasurement
}

func newMemIndicators() *memIndicators {
	return &memIndicators{
		byID:         map[string]*entity.Indicator{},
		measurements: map[string][]*entity.IndicatorMeasurement{},
	}
}

func (m *memIndicators) Create(_ context.Context, ind *entity.Indicator) error {
	m.byID[ind.ID] = ind
	return nil
}

func (m *memIndicators) GetByID(_ context.Context, id string) (*entity.Indicator, error) {
	return m.byID[id], nil
}

func (m *memIndicators) GetByCode(_ context.Context, code string) (*entity.Indicator, error) {
	for _, ind := range m.byID {
		if ind.Code == code {
			return ind, nil
		}
	}
	return nil, nil
}

func (m *memIndicators) List(_ context.Context, f repository.IndicatorFilter) ([]*entity.Indicator, int, error) {
	var out []*entity.Indicator
	for _, ind := range m.byID {
		if f.OnlyActive && !ind.Active {
			continue
		}
		out = append(out, ind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, len(out), nil
}

func (m *memIndicators) Update(_ context.Context, ind *entity.Indicator) error {
	m.byID[ind.ID] = ind
	return nil
}

func (m *memIndicators) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	delete(m.measurements, id)
	return nil
}

func (m *memIndicators) AddMeasurement(_ context.Context, ms *entity.IndicatorMeasurement) error {
	m.measurements[ms.IndicatorID] = append(m.measurements[ms.IndicatorID], ms)
	return nil
}

func (m *memIndicators) ListMeasurements(_ context.Context, id string) ([]*entity.IndicatorMeasurement, error) {
	out := append([]*entity.IndicatorMeasurement(nil), m.measurements[id]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

type memTerceros struct {
	byID map[string]*entity.Tercero
}

func newMemTerceros() *memTerceros { return &memTerceros{byID: map[string]*entity.Tercero{}} }

func (m *memTerceros) Create(_ context.Context, t *entity.Tercero) error {
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTerceros) GetByID(_ context.Context, id string) (*entity.Tercero, error) {
	t, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTerceros) GetByDocument(_ context.Context, docType, docNumber string) (*entity.Tercero, error) {
	for _, t := range m.byID {
		if t.DocType == docType && t.DocNumber == docNumber {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memTerceros) List(_ context.Context, f repository.TerceroFilter) ([]*entity.Tercero, int, error) {
	var out []*entity.Tercero
	for _, t := range m.byID {
		if f.OnlySupplier && !t.IsSupplier {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memTerceros) Update(_ context.Context, t *entity.Tercero) error {
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTerceros) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memDashboard struct {
	counts repository.DashboardCounts
	anns   []*entity.Announcement
	limit  int
}

func (m *memDashboard) Counts(_ context.Context) (repository.DashboardCounts, error) {
	return m.counts, nil
}

func (m *memDashboard) ActiveAnnouncements(_ context.Context, limit int) ([]*entity.Announcement, error) {
	m.limit = limit
	if len(m.anns) > limit {
		return m.anns[:limit], nil
	}
	return m.anns, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Almacenamiento y exportador
// ──────────────────────────────────────────────────────────────────────────────

type memStorage struct {
	objects map[string]string // key -> content type
}

func newMemStorage() *memStorage { return &memStorage{objects: map[string]string{}} }

func (s *memStorage) Upload(_ context.Context, in ports.UploadInput) error {
	s.objects[in.Key] = in.ContentType
	return nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memStorage) PresignGet(_ context.Context, key, _ string) (string, int, error) {
	return "https://storage.test/" + key, 300, nil
}

type recordingExporter struct {
	rows []ports.IndicatorReportRow
}

func (e *recordingExporter) ExportIndicators(_ context.Context, rows []ports.IndicatorReportRow) ([]byte, error) {
	e.rows = rows
	return []byte("PK"), nil
}
