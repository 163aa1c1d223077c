package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-intranet/internal/application/usecase"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

func TestMenu_SoloAppsVisibles(t *testing.T) {
	uc := usecase.NewMenuUseCase(&memDashboard{})
	roles := []permission.Role{
		permission.NewRole("user", "Proveedores"),
		permission.NewRole("gestor", "procesos"),
		permission.NewRole("admin", ""), // sin aplicación: no otorga nada
		permission.NewRole("user", "procesos"),
	}
	menu := uc.Menu(roles)
	require.Len(t, menu.Items, 2)

	assert.Equal(t, permission.AppProcesos, menu.Items[0].App, "orden del portal")
	assert.Equal(t, "gestor", menu.Items[0].Role)
	assert.True(t, menu.Items[0].Permissions.CanDownload)

	assert.Equal(t, permission.AppProveedores, menu.Items[1].App)
	assert.Equal(t, "user", menu.Items[1].Role)
	assert.False(t, menu.Items[1].Permissions.CanDownload)
}

func TestMenu_SinRoles(t *testing.T) {
	uc := usecase.NewMenuUseCase(&memDashboard{})
	assert.Empty(t, uc.Menu(nil).Items)
}

func TestWidgets_OcultaContadoresDeAppsNoVisibles(t *testing.T) {
	now := time.Now()
	repo := &memDashboard{
		counts: repository.DashboardCounts{VigentDocuments: 12, ActiveIndicators: 4, ActiveTerceros: 30, PendingInvoices: 7},
	}
	for i := 0; i < 8; i++ {
		repo.anns = append(repo.anns, &entity.Announcement{ID: string(rune('a' + i)), Title: "Novedad", PublishedAt: now})
	}
	uc := usecase.NewMenuUseCase(repo)

	out, err := uc.Widgets(context.Background(), []permission.Role{permission.NewRole("user", "indicadores")})
	require.NoError(t, err)
	require.NotNil(t, out.ActiveIndicators)
	assert.Equal(t, 4, *out.ActiveIndicators)
	assert.Nil(t, out.VigentDocuments)
	assert.Nil(t, out.ActiveTerceros)
	assert.Nil(t, out.PendingInvoices)
	assert.Len(t, out.Announcements, 5)
	assert.Equal(t, 5, repo.limit)
}
