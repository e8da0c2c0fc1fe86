package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jash90/accounting-app-sub014/internal/application/dto"
	"github.com/jash90/accounting-app-sub014/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Grant a empleado: la puerta del invariante
// ──────────────────────────────────────────────────────────────────────────────

func TestEmployeeGrant_RequiereModuloHabilitadoEnEmpresa(t *testing.T) {
	e := newEnv(t)
	module := testModule("ai-agent", true)
	company := testCompany("acme")
	employee := testEmployee(company, "ana@acme.test")
	e.addModule(module)
	e.addCompany(company)
	e.addUser(employee)

	ctx := context.Background()
	// Sin grant de empresa el permiso se rechaza y NO se crea ninguna fila.
	_, err := e.permUC.Grant(ctx, employee.ID, "ai-agent",
		dto.GrantPermissionRequest{CanRead: true}, "owner-1")
	assert.ErrorIs(t, err, domain.ErrModuleNotEnabledForCompany)
	assert.Empty(t, e.perms.perms)

	_, err = e.accessUC.Grant(ctx, company.ID, module.ID)
	require.NoError(t, err)

	resp, err := e.permUC.Grant(ctx, employee.ID, "ai-agent",
		dto.GrantPermissionRequest{CanRead: true, CanWrite: true}, "owner-1")
	require.NoError(t, err)
	assert.True(t, resp.CanRead)
	assert.True(t, resp.CanWrite)
	assert.False(t, resp.CanDelete)
	assert.Equal(t, "owner-1", resp.GrantedByID)
}

func TestEmployeeGrant_UsaEmpresaActualNoLaOriginal(t *testing.T) {
	e := newEnv(t)
	module := testModule("zus", true)
	acme := testCompany("acme")
	globex := testCompany("globex")
	employee := testEmployee(acme, "ana@acme.test")
	e.addModule(module)
	e.addCompany(acme)
	e.addCompany(globex)
	e.addUser(employee)

	ctx := context.Background()
	// Solo globex tiene el módulo; la empresa original del empleado no.
	_, err := e.accessUC.Grant(ctx, globex.ID, module.ID)
	require.NoError(t, err)

	_, err = e.permUC.Grant(ctx, employee.ID, "zus",
		dto.GrantPermissionRequest{CanRead: true}, "owner-1")
	assert.ErrorIs(t, err, domain.ErrModuleNotEnabledForCompany)

	// Tras la reasignación, la empresa ACTUAL decide: ahora sí procede.
	require.NoError(t, e.users.UpdateCompany(employee.ID, globex.ID))
	_, err = e.permUC.Grant(ctx, employee.ID, "zus",
		dto.GrantPermissionRequest{CanRead: true}, "owner-2")
	require.NoError(t, err)
}

func TestEmployeeGrant_ActualizaFlagsSinDuplicar(t *testing.T) {
	e := newEnv(t)
	module := testModule("email", true)
	company := testCompany("acme")
	employee := testEmployee(company, "ana@acme.test")
	e.addModule(module)
	e.addCompany(company)
	e.addUser(employee)

	ctx := context.Background()
	_, err := e.accessUC.Grant(ctx, company.ID, module.ID)
	require.NoError(t, err)

	first, err := e.permUC.Grant(ctx, employee.ID, "email",
		dto.GrantPermissionRequest{CanRead: true}, "owner-1")
	require.NoError(t, err)
	second, err := e.permUC.Grant(ctx, employee.ID, "email",
		dto.GrantPermissionRequest{CanRead: true, CanWrite: true, CanDelete: true}, "owner-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, e.perms.perms, 1)
	assert.True(t, second.CanDelete)
}

func TestEmployeeGrant_ErroresDeLookup(t *testing.T) {
	e := newEnv(t)
	module := testModule("ai-agent", true)
	inactive := testModule("legacy", false)
	company := testCompany("acme")
	e.addModule(module)
	e.addModule(inactive)
	e.addCompany(company)

	ctx := context.Background()
	req := dto.GrantPermissionRequest{CanRead: true}

	_, err := e.permUC.Grant(ctx, "no-such-user", "ai-agent", req, "owner-1")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	employee := testEmployee(company, "ana@acme.test")
	e.addUser(employee)

	_, err = e.permUC.Grant(ctx, employee.ID, "no-such-slug", req, "owner-1")
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)

	// Un módulo desactivado a nivel plataforma tampoco admite permisos nuevos.
	_, err = e.permUC.Grant(ctx, employee.ID, "legacy", req, "owner-1")
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)
}

func TestOwnsEmployee_SigueLaEmpresaActual(t *testing.T) {
	e := newEnv(t)
	acme := testCompany("acme")
	globex := testCompany("globex")
	employee := testEmployee(acme, "ana@acme.test")
	e.addCompany(acme)
	e.addCompany(globex)
	e.addUser(employee)

	ctx := context.Background()
	owns, err := e.permUC.OwnsEmployee(ctx, employee.ID, acme.ID)
	require.NoError(t, err)
	assert.True(t, owns)

	require.NoError(t, e.users.UpdateCompany(employee.ID, globex.ID))
	owns, err = e.permUC.OwnsEmployee(ctx, employee.ID, acme.ID)
	require.NoError(t, err)
	assert.False(t, owns, "tras la reasignación el empleado ya no es de acme")

	_, err = e.permUC.OwnsEmployee(ctx, "no-such-user", acme.ID)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Revoke a empleado y listado
// ──────────────────────────────────────────────────────────────────────────────

func TestEmployeeRevoke_EsIdempotente(t *testing.T) {
	e := newEnv(t)
	module := testModule("ai-agent", true)
	company := testCompany("acme")
	employee := testEmployee(company, "ana@acme.test")
	e.addModule(module)
	e.addCompany(company)
	e.addUser(employee)

	ctx := context.Background()
	_, err := e.accessUC.Grant(ctx, company.ID, module.ID)
	require.NoError(t, err)
	e.grantPerm(t, employee, "ai-agent")

	require.NoError(t, e.permUC.Revoke(ctx, employee.ID, module.ID))
	assert.Empty(t, e.perms.perms)

	// Revocar de nuevo no es un error.
	require.NoError(t, e.permUC.Revoke(ctx, employee.ID, module.ID))

	err = e.permUC.Revoke(ctx, "no-such-user", module.ID)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestListForEmployee_NoRevalidaElInvariante(t *testing.T) {
	e := newEnv(t)
	module := testModule("zus", true)
	acme := testCompany("acme")
	globex := testCompany("globex")
	employee := testEmployee(acme, "ana@acme.test")
	e.addModule(module)
	e.addCompany(acme)
	e.addCompany(globex)
	e.addUser(employee)

	ctx := context.Background()
	_, err := e.accessUC.Grant(ctx, acme.ID, module.ID)
	require.NoError(t, err)
	e.grantPerm(t, employee, "zus")

	// El empleado se muda a una empresa sin el módulo: su permiso queda
	// huérfano, pero el listado lo muestra tal cual hasta que corra el barrido.
	require.NoError(t, e.users.UpdateCompany(employee.ID, globex.ID))

	list, err := e.permUC.ListForEmployee(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "zus", list[0].Module.Slug)
}
