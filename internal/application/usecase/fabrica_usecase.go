package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// FabricaUseCase aplica reglas de negocio para fábricas (tenants).
type FabricaUseCase struct {
	repo repository.FabricaRepository
}

// NewFabricaUseCase construye el caso de uso con el puerto de persistencia.
func NewFabricaUseCase(repo repository.FabricaRepository) *FabricaUseCase {
	return &FabricaUseCase{repo: repo}
}

// Create crea una fábrica. Devuelve domain.ErrDuplicate si el número ya existe.
func (uc *FabricaUseCase) Create(in dto.CreateFabricaRequest) (*dto.FabricaResponse, error) {
	existing, _ := uc.repo.GetByNumero(in.Numero)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	fabrica := &entity.Fabrica{
		ID:        uuid.New().String(),
		Numero:    in.Numero,
		Nombre:    in.Nombre,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Estado:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(fabrica); err != nil {
		return nil, err
	}
	return toFabricaResponse(fabrica), nil
}

// GetByID obtiene una fábrica por ID.
func (uc *FabricaUseCase) GetByID(id string) (*dto.FabricaResponse, error) {
	fabrica, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fabrica == nil {
		return nil, nil
	}
	return toFabricaResponse(fabrica), nil
}

// List lista fábricas con paginación.
func (uc *FabricaUseCase) List(limit, offset int) (*dto.FabricaListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FabricaResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFabricaResponse(f))
	}
	return &dto.FabricaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toFabricaResponse(f *entity.Fabrica) *dto.FabricaResponse {
	if f == nil {
		return nil
	}
	return &dto.FabricaResponse{
		ID:        f.ID,
		Numero:    f.Numero,
		Nombre:    f.Nombre,
		Direccion: f.Direccion,
		Telefono:  f.Telefono,
		Email:     f.Email,
		Estado:    f.Estado,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
