package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/ports"
	"github.com/jhoicas/portal-intranet/internal/application/usecase"
	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
)

func permsFor(role, app string) permission.Set {
	return permission.Resolve([]permission.Role{permission.NewRole(role, app)}, app)
}

// permsFrom resuelve sobre procesos un rol asignado a roleApp.
func permsFrom(role, roleApp string) permission.Set {
	return permission.Resolve([]permission.Role{permission.NewRole(role, roleApp)}, permission.AppProcesos)
}

func upload(name string) *ports.FileInput {
	return &ports.FileInput{Name: name, Size: 3, Body: strings.NewReader("abc")}
}

func docRequest(code string) dto.DocumentRequest {
	return dto.DocumentRequest{Code: code, Name: "Lavado de manos", Process: "Calidad", Type: "procedimiento"}
}

func TestDocument_CreateYVersiones(t *testing.T) {
	ctx := context.Background()
	repo, storage := newMemDocuments(), newMemStorage()
	uc := usecase.NewDocumentUseCase(repo, storage)

	doc, err := uc.Create(ctx, "u1", docRequest("GC-PR-001"), upload("lavado.docx"))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, entity.DocumentStatusVigente, doc.Status)
	assert.True(t, doc.Downloadable)
	firstKey := "procesos/" + doc.ID + "/v1-lavado.docx"
	assert.Contains(t, storage.objects, firstKey)

	_, err = uc.Create(ctx, "u1", docRequest("GC-PR-001"), upload("otro.pdf"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	replaced, err := uc.ReplaceFile(ctx, doc.ID, upload("lavado-v2.pdf"))
	require.NoError(t, err)
	assert.Equal(t, 2, replaced.Version)
	assert.Equal(t, "lavado-v2.pdf", replaced.FileName)
	assert.NotContains(t, storage.objects, firstKey, "la versión anterior se elimina")
	assert.Equal(t, "application/pdf", storage.objects["procesos/"+doc.ID+"/v2-lavado-v2.pdf"])
}

func TestDocument_CreateValidaciones(t *testing.T) {
	uc := usecase.NewDocumentUseCase(newMemDocuments(), newMemStorage())
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.DocumentRequest{Code: "X"}, upload("a.pdf"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", docRequest("GC-1"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", docRequest("GC-1"), upload("script.sh"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestDocument_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDocumentUseCase(newMemDocuments(), newMemStorage())
	doc, err := uc.Create(ctx, "u1", docRequest("GC-PR-002"), upload("a.pdf"))
	require.NoError(t, err)

	_, err = uc.ChangeStatus(ctx, doc.ID, entity.DocumentStatusVigente)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.ChangeStatus(ctx, doc.ID, "BORRADOR")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.ChangeStatus(ctx, doc.ID, entity.DocumentStatusObsoleto)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusObsoleto, out.Status)
}

func TestDocument_Update(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDocumentUseCase(newMemDocuments(), newMemStorage())
	a, err := uc.Create(ctx, "u1", docRequest("GC-A"), upload("a.pdf"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, "u1", docRequest("GC-B"), upload("b.pdf"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, a.ID, docRequest("GC-B"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	req := docRequest("GC-A")
	req.Name = "Lavado de manos clínico"
	out, err := uc.Update(ctx, a.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Lavado de manos clínico", out.Name)

	_, err = uc.Update(ctx, "no-existe", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocument_DownloadSegunNivel(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDocumentUseCase(newMemDocuments(), newMemStorage())
	pdf, err := uc.Create(ctx, "u1", docRequest("GC-PDF"), upload("manual.pdf"))
	require.NoError(t, err)
	xls, err := uc.Create(ctx, "u1", docRequest("GC-XLS"), upload("formato.xlsx"))
	require.NoError(t, err)

	cases := []struct {
		name  string
		perms permission.Set
		id    string
		want  error
	}{
		{"admin descarga PDF", permsFor("admin", permission.AppProcesos), pdf.ID, nil},
		{"gestor descarga PDF", permsFor("gestor", permission.AppProcesos), pdf.ID, nil},
		{"user no descarga PDF", permsFor("user", permission.AppProcesos), pdf.ID, domain.ErrForbidden},
		{"user descarga XLSX", permsFor("user", permission.AppProcesos), xls.ID, nil},
		{"rol de otra app", permsFrom("admin", permission.AppTerceros), xls.ID, domain.ErrForbidden},
		{"sin roles", permission.Set{}, xls.ID, domain.ErrForbidden},
		{"inexistente", permsFor("admin", permission.AppProcesos), "nope", domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := uc.Download(ctx, tc.perms, tc.id)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, out.URL)
			assert.Equal(t, 300, out.ExpiresIn)
		})
	}
}

func TestDocument_ListMarcaDescargables(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDocumentUseCase(newMemDocuments(), newMemStorage())
	_, err := uc.Create(ctx, "u1", docRequest("GC-1"), upload("a.pdf"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, "u1", docRequest("GC-2"), upload("b.doc"))
	require.NoError(t, err)

	items, total, err := uc.List(ctx, permsFor("user", permission.AppProcesos), dto.DocumentListQuery{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	assert.False(t, items[0].Downloadable, "PDF")
	assert.True(t, items[1].Downloadable, "DOC")

	_, _, err = uc.List(ctx, permission.Set{}, dto.DocumentListQuery{Status: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocument_Delete(t *testing.T) {
	ctx := context.Background()
	repo, storage := newMemDocuments(), newMemStorage()
	uc := usecase.NewDocumentUseCase(repo, storage)
	doc, err := uc.Create(ctx, "u1", docRequest("GC-DEL"), upload("a.pdf"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, doc.ID))
	assert.Empty(t, repo.byID)
	assert.Empty(t, storage.objects)
	assert.ErrorIs(t, uc.Delete(ctx, doc.ID), domain.ErrNotFound)
}
