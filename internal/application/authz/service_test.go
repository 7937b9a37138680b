package authz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	domauthz "github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake in-memory del puerto UsuarioRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	cuentas map[string]*entity.Usuario
}

func newFakeUsuarioRepo(usuarios ...*entity.Usuario) *fakeUsuarioRepo {
	r := &fakeUsuarioRepo{cuentas: make(map[string]*entity.Usuario)}
	for _, u := range usuarios {
		r.cuentas[u.ID] = u
	}
	return r
}

func (r *fakeUsuarioRepo) Create(u *entity.Usuario) error {
	r.cuentas[u.ID] = clonarUsuario(u)
	return nil
}

func (r *fakeUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	u, ok := r.cuentas[id]
	if !ok {
		return nil, nil
	}
	return clonarUsuario(u), nil
}

func (r *fakeUsuarioRepo) GetByUsername(username string) (*entity.Usuario, error) {
	for _, u := range r.cuentas {
		if u.Username == username {
			return clonarUsuario(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	for _, u := range r.cuentas {
		if u.Email == email {
			return clonarUsuario(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) Update(u *entity.Usuario) error {
	r.cuentas[u.ID] = clonarUsuario(u)
	return nil
}

func (r *fakeUsuarioRepo) ListAll(limit, offset int) ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for _, u := range r.cuentas {
		out = append(out, clonarUsuario(u))
	}
	return out, nil
}

func (r *fakeUsuarioRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for _, u := range r.cuentas {
		if u.FabricaID == fabricaID {
			out = append(out, clonarUsuario(u))
		}
	}
	return out, nil
}

func (r *fakeUsuarioRepo) Delete(id string) error {
	delete(r.cuentas, id)
	return nil
}

// clonarUsuario copia para que el fake se comporte como una DB real: cada
// lectura devuelve un registro fresco, no memoria compartida con el caller.
func clonarUsuario(u *entity.Usuario) *entity.Usuario {
	cp := *u
	cp.Permisos = u.Permisos.Clonar()
	return &cp
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func cuentaConRol(t *testing.T, id, fabricaID string, rol domauthz.Rol) *entity.Usuario {
	t.Helper()
	permisos, err := domauthz.PermisosPorDefecto(rol)
	require.NoError(t, err)
	now := time.Now()
	return &entity.Usuario{
		ID:        id,
		FabricaID: fabricaID,
		Username:  "u-" + id,
		Email:     id + "@fabrica.test",
		Rol:       rol,
		Permisos:  permisos,
		Estado:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func rolStr(r domauthz.Rol) *string {
	s := string(r)
	return &s
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualizar: precondiciones
// ──────────────────────────────────────────────────────────────────────────────

// Un rol sin alcance administrativo jamás puede mutar, ni siquiera sobre sí
// mismo: no hay auto-escalación.
func TestActualizar_RolesSinAlcance_Forbidden(t *testing.T) {
	for _, rol := range []domauthz.Rol{domauthz.RolComprador, domauthz.RolAprobador, domauthz.RolUsuario} {
		actor := cuentaConRol(t, "actor", "f1", rol)
		objetivo := cuentaConRol(t, "objetivo", "f1", domauthz.RolUsuario)
		svc := NewPermisosService(newFakeUsuarioRepo(actor, objetivo))

		_, err := svc.Actualizar(actor, "objetivo", dto.ActualizarPermisosRequest{
			Permisos: map[string]map[string]any{"compras": {"ver": true}},
		})
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s no debe poder mutar", rol)

		// Ni siquiera sobre su propia cuenta
		_, err = svc.Actualizar(actor, "actor", dto.ActualizarPermisosRequest{
			Permisos: map[string]map[string]any{"compras": {"aprobar": true}},
		})
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s no debe auto-escalar", rol)
	}
}

func TestActualizar_ObjetivoInexistente_NotFound(t *testing.T) {
	actor := cuentaConRol(t, "actor", "f1", domauthz.RolSuperAdmin)
	svc := NewPermisosService(newFakeUsuarioRepo(actor))

	_, err := svc.Actualizar(actor, "no-existe", dto.ActualizarPermisosRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ADMIN_FABRICA nunca puede mutar fuera de su fábrica, sin importar el parche.
func TestActualizar_AdminFabricaCruzaFabrica_Falla(t *testing.T) {
	actor := cuentaConRol(t, "admin-f1", "f1", domauthz.RolAdminFabrica)
	objetivo := cuentaConRol(t, "user-f2", "f2", domauthz.RolUsuario)
	svc := NewPermisosService(newFakeUsuarioRepo(actor, objetivo))

	parches := []dto.ActualizarPermisosRequest{
		{},
		{Permisos: map[string]map[string]any{"reportes": {"ver": true}}},
		{Rol: rolStr(domauthz.RolComprador)},
		{Permisos: map[string]map[string]any{"modulo-falso": {"ver": true}}}, // inválido, pero el alcance gana primero
	}
	for i, parche := range parches {
		_, err := svc.Actualizar(actor, "user-f2", parche)
		assert.ErrorIs(t, err, domain.ErrFabricaAjena, "parche %d debe fallar por alcance", i)
	}
}

// SUPER_ADMIN opera entre fábricas sin restricción de alcance.
func TestActualizar_SuperAdminCruzaFabrica_Exito(t *testing.T) {
	actor := cuentaConRol(t, "root", "f1", domauthz.RolSuperAdmin)
	objetivo := cuentaConRol(t, "user-f2", "f2", domauthz.RolUsuario)
	repo := newFakeUsuarioRepo(actor, objetivo)
	svc := NewPermisosService(repo)

	out, err := svc.Actualizar(actor, "user-f2", dto.ActualizarPermisosRequest{
		Permisos: map[string]map[string]any{"reportes": {"ver": true}},
	})
	require.NoError(t, err)
	assert.True(t, out.Permisos.Permite(domauthz.ModuloReportes, domauthz.AccionVer))
}

// Un módulo fuera del conjunto cerrado aborta todo y no persiste nada:
// verificado releyendo el registro almacenado.
func TestActualizar_ModuloDesconocido_SinEscrituraParcial(t *testing.T) {
	actor := cuentaConRol(t, "root", "f1", domauthz.RolSuperAdmin)
	objetivo := cuentaConRol(t, "obj", "f1", domauthz.RolAprobador)
	repo := newFakeUsuarioRepo(actor, objetivo)
	svc := NewPermisosService(repo)

	antes, err := repo.GetByID("obj")
	require.NoError(t, err)

	_, err = svc.Actualizar(actor, "obj", dto.ActualizarPermisosRequest{
		Permisos: map[string]map[string]any{
			"facturacion": {"ver": true}, // no existe; el módulo real es "facturas"
		},
	})
	assert.ErrorIs(t, err, domain.ErrPermisosInvalidos)

	despues, err := repo.GetByID("obj")
	require.NoError(t, err)
	assert.Equal(t, antes.Permisos, despues.Permisos,
		"la matriz almacenada debe quedar exactamente igual tras un parche rechazado")
	assert.Equal(t, antes.Rol, despues.Rol)
}

// Parche mixto válido+rol inválido: el rol inválido aborta también los
// permisos válidos del mismo parche (todo o nada).
func TestActualizar_RolInvalido_AbortaTodoElParche(t *testing.T) {
	actor := cuentaConRol(t, "root", "f1", domauthz.RolSuperAdmin)
	objetivo := cuentaConRol(t, "obj", "f1", domauthz.RolUsuario)
	repo := newFakeUsuarioRepo(actor, objetivo)
	svc := NewPermisosService(repo)

	malRol := "GERENTE"
	_, err := svc.Actualizar(actor, "obj", dto.ActualizarPermisosRequest{
		Permisos: map[string]map[string]any{"reportes": {"ver": true}},
		Rol:      &malRol,
	})
	assert.ErrorIs(t, err, domain.ErrRolInvalido)

	releido, err := repo.GetByID("obj")
	require.NoError(t, err)
	assert.False(t, releido.Permisos.Permite(domauthz.ModuloReportes, domauthz.AccionVer),
		"los permisos válidos del parche abortado no deben persistirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualizar: efectos
// ──────────────────────────────────────────────────────────────────────────────

// Escenario completo: cuenta APROBADOR recién creada, un ADMIN_FABRICA de la
// misma fábrica le concede reportes.ver; solo reportes cambia.
func TestActualizar_EscenarioAprobadorGanaReportes(t *testing.T) {
	admin := cuentaConRol(t, "admin", "f1", domauthz.RolAdminFabrica)
	aprobador := cuentaConRol(t, "apr", "f1", domauthz.RolAprobador)
	repo := newFakeUsuarioRepo(admin, aprobador)
	svc := NewPermisosService(repo)

	// La cuenta nace con la tabla por defecto de APROBADOR
	defaults, err := domauthz.PermisosPorDefecto(domauthz.RolAprobador)
	require.NoError(t, err)
	assert.Equal(t, defaults, aprobador.Permisos)

	out, err := svc.Actualizar(admin, "apr", dto.ActualizarPermisosRequest{
		Permisos: map[string]map[string]any{"reportes": {"ver": true}},
	})
	require.NoError(t, err)

	assert.True(t, out.Permisos.Permite(domauthz.ModuloReportes, domauthz.AccionVer))
	// Los defaults previos del APROBADOR quedan intactos
	for _, mod := range []domauthz.Modulo{domauthz.ModuloCompras, domauthz.ModuloOrdenesCompra, domauthz.ModuloPagos} {
		assert.True(t, out.Permisos.Permite(mod, domauthz.AccionVer), "%s.ver debe conservarse", mod)
		assert.True(t, out.Permisos.Permite(mod, domauthz.AccionAprobar), "%s.aprobar debe conservarse", mod)
	}
	assert.False(t, out.Permisos.Permite(domauthz.ModuloProductos, domauthz.AccionVer),
		"módulos no tocados siguen denegados")
}

// Aplicar el mismo parche dos veces produce la misma matriz que aplicarlo una.
func TestActualizar_ParcheIdempotente(t *testing.T) {
	actor := cuentaConRol(t, "root", "f1", domauthz.RolSuperAdmin)
	objetivo := cuentaConRol(t, "obj", "f1", domauthz.RolComprador)
	repo := newFakeUsuarioRepo(actor, objetivo)
	svc := NewPermisosService(repo)

	parche := dto.ActualizarPermisosRequest{
		Permisos: map[string]map[string]any{
			"productos": {"ver": true, "editar": true},
		},
	}

	una, err := svc.Actualizar(actor, "obj", parche)
	require.NoError(t, err)
	dos, err := svc.Actualizar(actor, "obj", parche)
	require.NoError(t, err)

	assert.Equal(t, una.Permisos, dos.Permisos)
}

// El parche reemplaza el módulo completo: conceder productos.editar sin
// repetir productos.ver borra el ver que tenía el COMPRADOR.
func TestActualizar_ReemplazoPorModuloNoFusionaAcciones(t *testing.T) {
	actor := cuentaConRol(t, "root", "f1", domauthz.RolSuperAdmin)
	objetivo := cuentaConRol(t, "obj", "f1", domauthz.RolComprador)
	repo := newFakeUsuarioRepo(actor, objetivo)
	svc := NewPermisosService(repo)

	out, err := svc.Actualizar(actor, "obj", dto.ActualizarPermisosRequest{
		Permisos: map[string]map[string]any{"productos": {"editar": true}},
	})
	require.NoError(t, err)

	assert.True(t, out.Permisos.Permite(domauthz.ModuloProductos, domauthz.AccionEditar))
	assert.False(t, out.Permisos.Permite(domauthz.ModuloProductos, domauthz.AccionVer),
		"el reemplazo por módulo descarta las acciones no incluidas en el parche")
	// Otros módulos del COMPRADOR intactos
	assert.True(t, out.Permisos.Permite(domauthz.ModuloCompras, domauthz.AccionCrear))
}

// Cambiar el rol NO vuelve a aplicar los defaults: las concesiones
// personalizadas previas sobreviven al cambio de rol.
func TestActualizar_CambioDeRolConservaPermisosPersonalizados(t *testing.T) {
	actor := cuentaConRol(t, "root", "f1", domauthz.RolSuperAdmin)
	objetivo := cuentaConRol(t, "obj", "f1", domauthz.RolUsuario)
	repo := newFakeUsuarioRepo(actor, objetivo)
	svc := NewPermisosService(repo)

	// Concesión personalizada previa
	_, err := svc.Actualizar(actor, "obj", dto.ActualizarPermisosRequest{
		Permisos: map[string]map[string]any{"reportes": {"ver": true, "acceso": true}},
	})
	require.NoError(t, err)

	// Cambio de rol en un parche aparte
	out, err := svc.Actualizar(actor, "obj", dto.ActualizarPermisosRequest{
		Rol: rolStr(domauthz.RolComprador),
	})
	require.NoError(t, err)

	assert.Equal(t, domauthz.RolComprador, out.Rol)
	assert.True(t, out.Permisos.Permite(domauthz.ModuloReportes, domauthz.AccionVer),
		"la concesión personalizada debe sobrevivir al cambio de rol")
	assert.False(t, out.Permisos.Permite(domauthz.ModuloCompras, domauthz.AccionCrear),
		"los defaults del rol nuevo NO se aplican en un cambio de rol")
}

// La respuesta nunca incluye credenciales y la matriz sale completa.
func TestActualizar_ProyeccionPublica(t *testing.T) {
	actor := cuentaConRol(t, "root", "f1", domauthz.RolSuperAdmin)
	objetivo := cuentaConRol(t, "obj", "f1", domauthz.RolUsuario)
	objetivo.PasswordHash = "$2a$10$secreto"
	repo := newFakeUsuarioRepo(actor, objetivo)
	svc := NewPermisosService(repo)

	out, err := svc.Actualizar(actor, "obj", dto.ActualizarPermisosRequest{})
	require.NoError(t, err)

	require.Len(t, out.Permisos, len(domauthz.Modulos()), "la matriz proyectada sale completa")
	// dto.UsuarioResponse no tiene campo de password por construcción; aquí
	// solo verificamos que la proyección existe y es la cuenta correcta.
	assert.Equal(t, "obj", out.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listar y VerPermisos
// ──────────────────────────────────────────────────────────────────────────────

func TestListar_AlcancePorRol(t *testing.T) {
	root := cuentaConRol(t, "root", "f1", domauthz.RolSuperAdmin)
	adminF1 := cuentaConRol(t, "admin-f1", "f1", domauthz.RolAdminFabrica)
	userF1 := cuentaConRol(t, "user-f1", "f1", domauthz.RolUsuario)
	userF2 := cuentaConRol(t, "user-f2", "f2", domauthz.RolUsuario)
	repo := newFakeUsuarioRepo(root, adminF1, userF1, userF2)
	svc := NewPermisosService(repo)

	// SUPER_ADMIN: sin filtro de fábrica
	todos, err := svc.Listar(root, 50, 0)
	require.NoError(t, err)
	assert.Len(t, todos.Items, 4)

	// ADMIN_FABRICA: solo su fábrica
	propios, err := svc.Listar(adminF1, 50, 0)
	require.NoError(t, err)
	assert.Len(t, propios.Items, 3)
	for _, item := range propios.Items {
		assert.Equal(t, "f1", item.FabricaID)
	}

	// Otros roles: denegado
	_, err = svc.Listar(userF1, 50, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVerPermisos_SoloSuperAdminVeAjenos(t *testing.T) {
	root := cuentaConRol(t, "root", "f1", domauthz.RolSuperAdmin)
	admin := cuentaConRol(t, "admin", "f1", domauthz.RolAdminFabrica)
	user := cuentaConRol(t, "user", "f1", domauthz.RolUsuario)
	repo := newFakeUsuarioRepo(root, admin, user)
	svc := NewPermisosService(repo)

	// SUPER_ADMIN ve a cualquiera
	out, err := svc.VerPermisos(root, "user")
	require.NoError(t, err)
	assert.Equal(t, "user", out.ID)

	// ADMIN_FABRICA no ve permisos ajenos aunque su matriz esté toda en true
	_, err = svc.VerPermisos(admin, "user")
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"ver permisos ajenos es elevación fija a SUPER_ADMIN, la matriz no lo concede")

	// Cualquiera ve los suyos propios
	propio, err := svc.VerPermisos(user, "user")
	require.NoError(t, err)
	assert.Equal(t, "user", propio.ID)
}
