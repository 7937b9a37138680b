package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// FabricaRepository define el puerto de persistencia para Fabrica (DIP).
// Exists se consulta antes de que cualquier cuenta pueda referenciar la fábrica.
type FabricaRepository interface {
	Create(f *entity.Fabrica) error
	GetByID(id string) (*entity.Fabrica, error)
	GetByNumero(numero int) (*entity.Fabrica, error)
	Exists(id string) (bool, error)
	Update(f *entity.Fabrica) error
	List(limit, offset int) ([]*entity.Fabrica, error)
	Delete(id string) error
}
