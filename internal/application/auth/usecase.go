package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/gestor-fabricas/internal/application/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	domauthz "github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
	"github.com/tu-usuario/gestor-fabricas/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y logout.
type AuthUseCase struct {
	usuarios repository.UsuarioRepository
	fabricas repository.FabricaRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarios repository.UsuarioRepository, fabricas repository.FabricaRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarios: usuarios, fabricas: fabricas, jwtCfg: jwtCfg}
}

// Register crea una cuenta: valida el rol contra el conjunto cerrado,
// verifica que la fábrica exista, hashea el password con bcrypt y siembra la
// matriz de permisos con los defaults del rol. Es el único momento en que se
// consulta la tabla de defaults.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	rol := domauthz.Rol(in.Rol)
	if !rol.Valido() {
		return nil, domain.ErrRolInvalido
	}

	if existing, _ := uc.usuarios.GetByUsername(in.Username); existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if existing, _ := uc.usuarios.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	ok, err := uc.fabricas.Exists(in.FabricaID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound // la fábrica no existe
	}

	permisos, err := domauthz.PermisosPorDefecto(rol)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Username
	}
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		FabricaID:    in.FabricaID,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Nombre:       nombre,
		Rol:          rol,
		Permisos:     permisos,
		Estado:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarios.Create(usuario); err != nil {
		return nil, err
	}
	return authz.ToUsuarioResponse(usuario), nil
}

// Login verifica username/password, marca la cuenta como online, genera JWT
// y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarios.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if usuario.Estado != "active" {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	usuario.Online = true
	usuario.UltimaSesion = &now
	usuario.UpdatedAt = now
	if err := uc.usuarios.Update(usuario); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.FabricaID, string(usuario.Rol), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *authz.ToUsuarioResponse(usuario),
	}, nil
}

// Logout marca la cuenta como offline y registra la última conexión.
func (uc *AuthUseCase) Logout(userID string) error {
	usuario, err := uc.usuarios.GetByID(userID)
	if err != nil {
		return err
	}
	if usuario == nil {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	usuario.Online = false
	usuario.UltimaSesion = &now
	usuario.UpdatedAt = now
	return uc.usuarios.Update(usuario)
}
