package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	apphttp "github.com/tu-usuario/gestor-fabricas/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/gestor-fabricas/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testFabricaID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "gestor-fabricas-test"
	testExpMin    = 60
)

// fakeLoader sirve cuentas en memoria para el middleware.
type fakeLoader struct {
	usuarios map[string]*entity.Usuario
	err      error
}

func (f *fakeLoader) GetByID(id string) (*entity.Usuario, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.usuarios[id], nil
}

// cuentaConPermisos construye una cuenta activa cuya matriz concede exactamente
// los pares módulo/acción indicados.
func cuentaConPermisos(rol authz.Rol, concedidos map[authz.Modulo][]authz.Accion) *entity.Usuario {
	matriz := authz.MatrizPermisos{}
	for mod, accs := range concedidos {
		set := authz.AccionSet{}
		for _, a := range accs {
			set[a] = true
		}
		matriz[mod] = set
	}
	return &entity.Usuario{
		ID:        testUserID,
		FabricaID: testFabricaID,
		Username:  "prueba",
		Rol:       rol,
		Permisos:  matriz.Normalizada(),
		Estado:    "active",
	}
}

// buildPermApp construye una app Fiber con una ruta protegida por
// AuthMiddleware + RequirePermission(compras, aprobar).
func buildPermApp(loader *fakeLoader) *fiber.App {
	app := fiber.New()
	app.Post("/compras/decidir",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(authz.ModuloCompras, authz.AccionAprobar, loader),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID, rol string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testFabricaID, rol, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doPost(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: La matriz persistida concede la acción → HTTP 200.
func TestRequirePermission_ConPermiso_Pasa(t *testing.T) {
	u := cuentaConPermisos(authz.RolAprobador, map[authz.Modulo][]authz.Accion{
		authz.ModuloCompras: {authz.AccionVer, authz.AccionAprobar},
	})
	app := buildPermApp(&fakeLoader{usuarios: map[string]*entity.Usuario{u.ID: u}})

	resp := doPost(t, app, "/compras/decidir", tokenFor(t, u.ID, string(u.Rol)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"una cuenta con compras.aprobar debe pasar el middleware")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
}

// Caso 2: La matriz deniega la acción → HTTP 403 aunque el módulo conceda otras.
func TestRequirePermission_SinAccion_Retorna403(t *testing.T) {
	u := cuentaConPermisos(authz.RolComprador, map[authz.Modulo][]authz.Accion{
		authz.ModuloCompras: {authz.AccionVer, authz.AccionCrear},
	})
	app := buildPermApp(&fakeLoader{usuarios: map[string]*entity.Usuario{u.ID: u}})

	resp := doPost(t, app, "/compras/decidir", tokenFor(t, u.ID, string(u.Rol)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"compras.ver no implica compras.aprobar")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 3: El rol del token NO autoriza: la decisión es contra la matriz
// persistida, así que un token de ADMIN_FABRICA con matriz vacía recibe 403.
func TestRequirePermission_RolDelTokenNoAutoriza(t *testing.T) {
	u := cuentaConPermisos(authz.RolUsuario, nil) // matriz toda en false
	app := buildPermApp(&fakeLoader{usuarios: map[string]*entity.Usuario{u.ID: u}})

	resp := doPost(t, app, "/compras/decidir", tokenFor(t, u.ID, string(authz.RolAdminFabrica)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"el rol declarado en el token no debe conceder nada")
}

// Caso 4: La cuenta no existe en la base → HTTP 403.
func TestRequirePermission_CuentaInexistente_Retorna403(t *testing.T) {
	app := buildPermApp(&fakeLoader{usuarios: map[string]*entity.Usuario{}})

	resp := doPost(t, app, "/compras/decidir", tokenFor(t, testUserID, "APROBADOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 5: Cuenta suspendida → HTTP 403 aunque la matriz conceda la acción.
func TestRequirePermission_CuentaSuspendida_Retorna403(t *testing.T) {
	u := cuentaConPermisos(authz.RolAprobador, map[authz.Modulo][]authz.Accion{
		authz.ModuloCompras: {authz.AccionAprobar},
	})
	u.Estado = "suspended"
	app := buildPermApp(&fakeLoader{usuarios: map[string]*entity.Usuario{u.ID: u}})

	resp := doPost(t, app, "/compras/decidir", tokenFor(t, u.ID, string(u.Rol)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 6: Fallo de infraestructura al cargar la cuenta → HTTP 503.
func TestRequirePermission_FalloDeCarga_Retorna503(t *testing.T) {
	app := buildPermApp(&fakeLoader{err: errors.New("db caída")})

	resp := doPost(t, app, "/compras/decidir", tokenFor(t, testUserID, "APROBADOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PERMISSION_CHECK_FAILED")
}

// Caso 7: Sin header Authorization → HTTP 401 antes de tocar el loader.
func TestRequirePermission_SinToken_Retorna401(t *testing.T) {
	app := buildPermApp(&fakeLoader{err: errors.New("no debe llamarse")})

	resp := doPost(t, app, "/compras/decidir", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRol
// ──────────────────────────────────────────────────────────────────────────────

func buildRolApp(loader *fakeLoader, roles ...authz.Rol) *fiber.App {
	app := fiber.New()
	app.Post("/admin",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRol(loader, roles...),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

// El rol PERSISTIDO decide: un SUPER_ADMIN en base pasa aunque el token diga otra cosa.
func TestRequireRol_RolPersistidoAutoriza(t *testing.T) {
	u := cuentaConPermisos(authz.RolSuperAdmin, nil)
	app := buildRolApp(&fakeLoader{usuarios: map[string]*entity.Usuario{u.ID: u}}, authz.RolSuperAdmin)

	resp := doPost(t, app, "/admin", tokenFor(t, u.ID, string(authz.RolUsuario)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRol_RolInsuficiente_Retorna403(t *testing.T) {
	u := cuentaConPermisos(authz.RolAdminFabrica, nil)
	app := buildRolApp(&fakeLoader{usuarios: map[string]*entity.Usuario{u.ID: u}}, authz.RolSuperAdmin)

	resp := doPost(t, app, "/admin", tokenFor(t, u.ID, string(authz.RolSuperAdmin)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"el rol del token no debe suplantar al rol persistido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"fabrica_id": apphttp.GetFabricaID(c),
			"rol":        apphttp.GetRol(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID, "APROBADOR"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testFabricaID, body["fabrica_id"])
	assert.Equal(t, "APROBADOR", body["rol"])
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildPermApp(&fakeLoader{})

	resp := doPost(t, app, "/compras/decidir", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg: integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testFabricaID, "COMPRADOR", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, fabricaID, rol, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testFabricaID, fabricaID)
	assert.Equal(t, "COMPRADOR", rol)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testFabricaID, "USUARIO", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testFabricaID, "USUARIO", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
