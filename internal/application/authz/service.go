// Package authz implementa los casos de uso administrativos sobre el modelo
// de autorización: mutar permisos/rol de una cuenta, listar cuentas con sus
// permisos y consultar la matriz de otra cuenta.
//
// Es el ÚNICO escritor de la matriz de permisos de un usuario después de la
// creación de la cuenta.
package authz

import (
	"time"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	domauthz "github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// PermisosService valida y aplica parches parciales sobre permisos y rol.
type PermisosService struct {
	usuarios repository.UsuarioRepository
}

// NewPermisosService construye el servicio con el puerto de persistencia.
func NewPermisosService(usuarios repository.UsuarioRepository) *PermisosService {
	return &PermisosService{usuarios: usuarios}
}

// Actualizar aplica un parche parcial {permisos?, rol?} sobre la cuenta
// objetivo. Las precondiciones se verifican en orden y la primera que falle
// gana; no hay aplicación parcial: o todo el parche es válido y se persiste,
// o no se escribe nada.
//
// Orden de precondiciones:
//  1. El actor debe ser SUPER_ADMIN o ADMIN_FABRICA   → domain.ErrForbidden
//  2. La cuenta objetivo debe existir                  → domain.ErrUserNotFound
//  3. ADMIN_FABRICA solo dentro de su propia fábrica   → domain.ErrFabricaAjena
//  4. El parche de permisos respeta conjuntos cerrados → domain.ErrPermisosInvalidos
//  5. El rol nuevo pertenece al conjunto cerrado       → domain.ErrRolInvalido
//
// Un cambio de rol NO vuelve a aplicar los defaults del rol: las concesiones
// personalizadas previas se conservan.
func (s *PermisosService) Actualizar(actor *entity.Usuario, targetID string, in dto.ActualizarPermisosRequest) (*dto.UsuarioResponse, error) {
	if !domauthz.PuedeAdministrarPermisos(actor.Rol) {
		return nil, domain.ErrForbidden
	}

	target, err := s.usuarios.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}

	if !domauthz.IgnoraAlcanceFabrica(actor.Rol) && !domauthz.MismaFabrica(actor.FabricaID, target.FabricaID) {
		return nil, domain.ErrFabricaAjena
	}

	var parche domauthz.MatrizPermisos
	if in.Permisos != nil {
		parche, err = domauthz.ValidarParche(in.Permisos)
		if err != nil {
			return nil, err
		}
	}

	if in.Rol != nil && !domauthz.Rol(*in.Rol).Valido() {
		return nil, domain.ErrRolInvalido
	}

	// Todas las precondiciones pasaron: aplicar en memoria y persistir una vez.
	if parche != nil {
		target.Permisos = target.Permisos.Fusionar(parche)
	}
	if in.Rol != nil {
		target.Rol = domauthz.Rol(*in.Rol)
	}
	target.UpdatedAt = time.Now()

	if err := s.usuarios.Update(target); err != nil {
		return nil, err
	}
	return ToUsuarioResponse(target), nil
}

// Listar devuelve las cuentas con sus permisos, con alcance según el rol del
// actor: SUPER_ADMIN ve todas las fábricas, ADMIN_FABRICA solo la suya y
// cualquier otro rol recibe domain.ErrForbidden.
func (s *PermisosService) Listar(actor *entity.Usuario, limit, offset int) (*dto.UsuarioListResponse, error) {
	if !domauthz.PuedeAdministrarPermisos(actor.Rol) {
		return nil, domain.ErrForbidden
	}

	var (
		list []*entity.Usuario
		err  error
	)
	if domauthz.IgnoraAlcanceFabrica(actor.Rol) {
		list, err = s.usuarios.ListAll(limit, offset)
	} else {
		list, err = s.usuarios.ListByFabrica(actor.FabricaID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUsuarioResponse(u))
	}
	return &dto.UsuarioListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// VerPermisos devuelve la proyección pública de la cuenta objetivo. Consultar
// la propia cuenta siempre está permitido; consultar la de OTRO usuario exige
// SUPER_ADMIN (elevación fija, independiente de la matriz del actor).
func (s *PermisosService) VerPermisos(actor *entity.Usuario, targetID string) (*dto.UsuarioResponse, error) {
	if targetID != actor.ID && !domauthz.PuedeVerPermisosAjenos(actor.Rol) {
		return nil, domain.ErrForbidden
	}

	target, err := s.usuarios.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUsuarioResponse(target), nil
}

// ToUsuarioResponse proyecta una cuenta a su forma pública (sin credenciales).
// La matriz se normaliza a la salida para garantizar el invariante de forma
// completa aunque el registro venga de datos antiguos.
func ToUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:           u.ID,
		FabricaID:    u.FabricaID,
		Username:     u.Username,
		Email:        u.Email,
		Nombre:       u.Nombre,
		Rol:          u.Rol,
		Permisos:     u.Permisos.Normalizada(),
		Online:       u.Online,
		UltimaSesion: u.UltimaSesion,
		Estado:       u.Estado,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
