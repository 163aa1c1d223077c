package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/ports"
	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

// DocumentUseCase casos de uso del módulo procesos (documentos de calidad).
type DocumentUseCase struct {
	repo    repository.DocumentRepository
	storage ports.ObjectStorage
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repo repository.DocumentRepository, storage ports.ObjectStorage) *DocumentUseCase {
	return &DocumentUseCase{repo: repo, storage: storage}
}

// List lista documentos con filtros. perms define qué archivos se marcan como descargables.
func (uc *DocumentUseCase) List(ctx context.Context, perms permission.Set, q dto.DocumentListQuery) ([]dto.DocumentResponse, int, error) {
	q.DefaultPage()
	if q.Status != "" && !entity.ValidDocumentStatus(q.Status) {
		return nil, 0, domain.ErrInvalidInput
	}
	list, total, err := uc.repo.List(ctx, repository.DocumentFilter{
		Status:  q.Status,
		Process: strings.TrimSpace(q.Process),
		Search:  strings.TrimSpace(q.Search),
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDocumentResponse(d, perms))
	}
	return out, total, nil
}

// Get obtiene un documento por ID.
func (uc *DocumentUseCase) Get(ctx context.Context, perms permission.Set, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toDocumentResponse(doc, perms)
	return &resp, nil
}

// Create registra un documento vigente y sube su archivo.
func (uc *DocumentUseCase) Create(ctx context.Context, userID string, in dto.DocumentRequest, file *ports.FileInput) (*dto.DocumentResponse, error) {
	if err := validateDocument(in); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, strings.TrimSpace(in.Code))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	version := in.Version
	if version <= 0 {
		version = 1
	}
	doc := &entity.Document{
		ID:        uuid.New().String(),
		Code:      strings.TrimSpace(in.Code),
		Name:      strings.TrimSpace(in.Name),
		Process:   strings.TrimSpace(in.Process),
		Type:      strings.TrimSpace(in.Type),
		Version:   version,
		Status:    entity.DocumentStatusVigente,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.putFile(ctx, doc, file); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		_ = uc.storage.Delete(ctx, doc.StorageKey)
		return nil, err
	}
	resp := toDocumentResponse(doc, permission.AdminSet)
	return &resp, nil
}

// Update actualiza los metadatos del documento.
func (uc *DocumentUseCase) Update(ctx context.Context, id string, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	if err := validateDocument(in); err != nil {
		return nil, err
	}
	doc, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(in.Code)
	if code != doc.Code {
		other, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != doc.ID {
			return nil, domain.ErrDuplicate
		}
	}
	doc.Code = code
	doc.Name = strings.TrimSpace(in.Name)
	doc.Process = strings.TrimSpace(in.Process)
	doc.Type = strings.TrimSpace(in.Type)
	if in.Version > 0 {
		doc.Version = in.Version
	}
	doc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	resp := toDocumentResponse(doc, permission.AdminSet)
	return &resp, nil
}

// ReplaceFile carga una nueva versión del archivo: incrementa la versión y
// elimina el objeto anterior.
func (uc *DocumentUseCase) ReplaceFile(ctx context.Context, id string, file *ports.FileInput) (*dto.DocumentResponse, error) {
	if file == nil {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	oldKey := doc.StorageKey
	doc.Version++
	if err := uc.putFile(ctx, doc, file); err != nil {
		return nil, err
	}
	doc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, doc); err != nil {
		_ = uc.storage.Delete(ctx, doc.StorageKey)
		return nil, err
	}
	if oldKey != "" && oldKey != doc.StorageKey {
		if err := uc.storage.Delete(ctx, oldKey); err != nil {
			return nil, fmt.Errorf("documento %s: eliminar versión anterior: %w", doc.Code, err)
		}
	}
	resp := toDocumentResponse(doc, permission.AdminSet)
	return &resp, nil
}

// ChangeStatus marca el documento como vigente u obsoleto.
func (uc *DocumentUseCase) ChangeStatus(ctx context.Context, id, status string) (*dto.DocumentResponse, error) {
	if !entity.ValidDocumentStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == status {
		return nil, domain.ErrConflict
	}
	doc.Status = status
	doc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	resp := toDocumentResponse(doc, permission.AdminSet)
	return &resp, nil
}

// Delete elimina el documento y su archivo.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, doc.ID); err != nil {
		return err
	}
	if doc.HasFile() {
		return uc.storage.Delete(ctx, doc.StorageKey)
	}
	return nil
}

// Download devuelve un enlace temporal al archivo si el formato es descargable
// para el nivel del usuario.
func (uc *DocumentUseCase) Download(ctx context.Context, perms permission.Set, id string) (*dto.DownloadResponse, error) {
	if !perms.CanView {
		return nil, domain.ErrForbidden
	}
	doc, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.HasFile() {
		return nil, domain.ErrNotFound
	}
	if !perms.CanDownloadByFormat(doc.FileName) {
		return nil, domain.ErrForbidden
	}
	url, expires, err := uc.storage.PresignGet(ctx, doc.StorageKey, doc.FileName)
	if err != nil {
		return nil, err
	}
	return &dto.DownloadResponse{FileName: doc.FileName, URL: url, ExpiresIn: expires}, nil
}

func (uc *DocumentUseCase) find(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (uc *DocumentUseCase) putFile(ctx context.Context, doc *entity.Document, file *ports.FileInput) error {
	name, err := file.CleanName()
	if err != nil {
		return err
	}
	key := fmt.Sprintf("procesos/%s/v%d-%s", doc.ID, doc.Version, name)
	ct := file.ResolvedContentType(name)
	if err := uc.storage.Upload(ctx, ports.UploadInput{Key: key, Body: file.Body, ContentType: ct, Size: file.Size}); err != nil {
		return err
	}
	doc.FileName = name
	doc.StorageKey = key
	doc.ContentType = ct
	doc.Size = file.Size
	return nil
}

func validateDocument(in dto.DocumentRequest) error {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Process) == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

func toDocumentResponse(d *entity.Document, perms permission.Set) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:           d.ID,
		Code:         d.Code,
		Name:         d.Name,
		Process:      d.Process,
		Type:         d.Type,
		Version:      d.Version,
		Status:       d.Status,
		FileName:     d.FileName,
		Size:         d.Size,
		Downloadable: d.HasFile() && perms.CanView && perms.CanDownloadByFormat(d.FileName),
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
