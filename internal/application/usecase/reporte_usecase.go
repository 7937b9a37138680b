package usecase

import (
	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// ReporteUseCase consultas agregadas del módulo de reportes.
type ReporteUseCase struct {
	repo repository.ReporteRepository
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(repo repository.ReporteRepository) *ReporteUseCase {
	return &ReporteUseCase{repo: repo}
}

// ResumenFabrica devuelve los indicadores agregados de la fábrica.
func (uc *ReporteUseCase) ResumenFabrica(fabricaID string) (*dto.ResumenFabricaResponse, error) {
	resumen, err := uc.repo.ResumenFabrica(fabricaID)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenFabricaResponse{
		FabricaID:          resumen.FabricaID,
		ComprasPendientes:  resumen.ComprasPendientes,
		ComprasAprobadas:   resumen.ComprasAprobadas,
		TotalComprado:      resumen.TotalComprado,
		FacturasEmitidas:   resumen.FacturasEmitidas,
		TotalFacturado:     resumen.TotalFacturado,
		SaldoPorCobrar:     resumen.SaldoPorCobrar,
		PagosPendientes:    resumen.PagosPendientes,
		TotalPagado:        resumen.TotalPagado,
		ProductosActivos:   resumen.ProductosActivos,
		ProveedoresActivos: resumen.ProveedoresActivos,
	}, nil
}
