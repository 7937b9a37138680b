package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestor-fabricas/internal/application/auth"
	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/gestor-fabricas/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	porID       map[string]*entity.Usuario
	porUsername map[string]*entity.Usuario
	porEmail    map[string]*entity.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{
		porID:       map[string]*entity.Usuario{},
		porUsername: map[string]*entity.Usuario{},
		porEmail:    map[string]*entity.Usuario{},
	}
}

func (f *fakeUsuarioRepo) Create(u *entity.Usuario) error {
	cp := *u
	f.porID[u.ID] = &cp
	f.porUsername[u.Username] = &cp
	f.porEmail[u.Email] = &cp
	return nil
}

func (f *fakeUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	if u, ok := f.porID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsuarioRepo) GetByUsername(username string) (*entity.Usuario, error) {
	if u, ok := f.porUsername[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	if u, ok := f.porEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsuarioRepo) Update(u *entity.Usuario) error {
	if _, ok := f.porID[u.ID]; !ok {
		return errors.New("no existe")
	}
	cp := *u
	f.porID[u.ID] = &cp
	f.porUsername[u.Username] = &cp
	f.porEmail[u.Email] = &cp
	return nil
}

func (f *fakeUsuarioRepo) ListAll(limit, offset int) ([]*entity.Usuario, error) { return nil, nil }
func (f *fakeUsuarioRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Usuario, error) {
	return nil, nil
}
func (f *fakeUsuarioRepo) Delete(id string) error { return nil }

type fakeFabricaRepo struct {
	ids map[string]bool
}

func (f *fakeFabricaRepo) Create(fa *entity.Fabrica) error                       { return nil }
func (f *fakeFabricaRepo) GetByID(id string) (*entity.Fabrica, error)            { return nil, nil }
func (f *fakeFabricaRepo) GetByNumero(numero int) (*entity.Fabrica, error)       { return nil, nil }
func (f *fakeFabricaRepo) Exists(id string) (bool, error)                        { return f.ids[id], nil }
func (f *fakeFabricaRepo) Update(fa *entity.Fabrica) error                       { return nil }
func (f *fakeFabricaRepo) List(limit, offset int) ([]*entity.Fabrica, error)     { return nil, nil }
func (f *fakeFabricaRepo) Delete(id string) error                                { return nil }

const (
	fabricaID = "fab-001"
	jwtSecret = "secret-de-pruebas"
)

func nuevoAuthUC(usuarios *fakeUsuarioRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(usuarios, &fakeFabricaRepo{ids: map[string]bool{fabricaID: true}}, auth.JWTConfig{
		Secret:     jwtSecret,
		ExpMinutes: 60,
		Issuer:     "test",
	})
}

func registroValido() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:  "aprobador1",
		Email:     "aprobador1@fabrica.co",
		Password:  "clave-segura-123",
		Rol:       "APROBADOR",
		FabricaID: fabricaID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// El registro siembra la matriz con los defaults del rol: un APROBADOR nace
// con ver+aprobar en compras, ordenesCompra y pagos, y nada más.
func TestRegister_SiembraDefaultsDelRol(t *testing.T) {
	uc := nuevoAuthUC(newFakeUsuarioRepo())

	out, err := uc.Register(registroValido())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, authz.Rol("APROBADOR"), out.Rol)
	assert.True(t, out.Permisos.Permite(authz.ModuloCompras, authz.AccionAprobar))
	assert.True(t, out.Permisos.Permite(authz.ModuloPagos, authz.AccionVer))
	assert.False(t, out.Permisos.Permite(authz.ModuloCompras, authz.AccionCrear),
		"APROBADOR no nace con permiso de crear")
	assert.False(t, out.Permisos.Permite(authz.ModuloFacturas, authz.AccionVer))

	// La matriz persistida debe estar completa: todos los módulos presentes.
	for _, mod := range authz.Modulos() {
		_, ok := out.Permisos[mod]
		assert.True(t, ok, "módulo %s ausente de la matriz", mod)
	}
}

func TestRegister_RolFueraDelConjunto(t *testing.T) {
	uc := nuevoAuthUC(newFakeUsuarioRepo())

	in := registroValido()
	in.Rol = "GERENTE" // no existe
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrRolInvalido)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := nuevoAuthUC(repo)

	_, err := uc.Register(registroValido())
	require.NoError(t, err)

	in := registroValido()
	in.Email = "otro@fabrica.co"
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_FabricaInexistente(t *testing.T) {
	uc := nuevoAuthUC(newFakeUsuarioRepo())

	in := registroValido()
	in.FabricaID = "fab-fantasma"
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El hash nunca viaja en la respuesta y el password no se guarda en claro.
func TestRegister_NoExponeCredenciales(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := nuevoAuthUC(repo)

	out, err := uc.Register(registroValido())
	require.NoError(t, err)

	guardado, _ := repo.GetByID(out.ID)
	require.NotNil(t, guardado)
	assert.NotEqual(t, "clave-segura-123", guardado.PasswordHash)
	assert.NotEmpty(t, guardado.PasswordHash)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenConClaimsCorrectos(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := nuevoAuthUC(repo)

	reg, err := uc.Register(registroValido())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Username: "aprobador1", Password: "clave-segura-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, fabID, rol, err := pkgjwt.Parse(jwtSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, fabricaID, fabID)
	assert.Equal(t, "APROBADOR", rol)

	assert.True(t, out.Usuario.Online, "login debe marcar la cuenta como online")
	require.NotNil(t, out.Usuario.UltimaSesion)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := nuevoAuthUC(newFakeUsuarioRepo())
	_, err := uc.Register(registroValido())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "aprobador1", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInexistente(t *testing.T) {
	uc := nuevoAuthUC(newFakeUsuarioRepo())

	_, err := uc.Login(dto.LoginRequest{Username: "nadie", Password: "da igual"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaSuspendida(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := nuevoAuthUC(repo)

	reg, err := uc.Register(registroValido())
	require.NoError(t, err)

	u, _ := repo.GetByID(reg.ID)
	u.Estado = "suspended"
	require.NoError(t, repo.Update(u))

	_, err = uc.Login(dto.LoginRequest{Username: "aprobador1", Password: "clave-segura-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogout_MarcaOffline(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := nuevoAuthUC(repo)

	reg, err := uc.Register(registroValido())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "aprobador1", Password: "clave-segura-123"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(reg.ID))

	u, _ := repo.GetByID(reg.ID)
	assert.False(t, u.Online)
}

func TestLogout_CuentaInexistente(t *testing.T) {
	uc := nuevoAuthUC(newFakeUsuarioRepo())
	assert.ErrorIs(t, uc.Logout("no-existe"), domain.ErrUserNotFound)
}
