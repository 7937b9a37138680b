package repository

import "github.com/tu-usuario/gestor-fabricas/internal/domain/entity"

// ReporteRepository define el puerto de consultas agregadas para reportes.
// Solo lectura; los totales se calculan en la base de datos.
type ReporteRepository interface {
	ResumenFabrica(fabricaID string) (*entity.ResumenFabrica, error)
}
