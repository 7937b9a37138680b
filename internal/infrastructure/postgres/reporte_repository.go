package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas agregadas para el módulo de reportes. Solo lectura.
type ReporteRepo struct {
	pool *pgxpool.Pool
}

// NewReporteRepository construye el adaptador de reportes.
func NewReporteRepository(pool *pgxpool.Pool) *ReporteRepo {
	return &ReporteRepo{pool: pool}
}

// ResumenFabrica calcula los indicadores de la fábrica en la base de datos.
// COALESCE evita NULL cuando la fábrica aún no tiene movimientos.
func (r *ReporteRepo) ResumenFabrica(fabricaID string) (*entity.ResumenFabrica, error) {
	resumen := &entity.ResumenFabrica{FabricaID: fabricaID}
	query := `
		SELECT
			(SELECT COUNT(*) FROM compras WHERE fabrica_id = $1 AND estado = 'pendiente'),
			(SELECT COUNT(*) FROM compras WHERE fabrica_id = $1 AND estado = 'aprobada'),
			(SELECT COALESCE(SUM(total), 0) FROM compras WHERE fabrica_id = $1 AND estado = 'aprobada'),
			(SELECT COUNT(*) FROM facturas WHERE fabrica_id = $1 AND estado <> 'anulada'),
			(SELECT COALESCE(SUM(total), 0) FROM facturas WHERE fabrica_id = $1 AND estado <> 'anulada'),
			(SELECT COALESCE(SUM(saldo), 0) FROM facturas WHERE fabrica_id = $1 AND estado = 'emitida'),
			(SELECT COUNT(*) FROM pagos WHERE fabrica_id = $1 AND estado = 'pendiente'),
			(SELECT COALESCE(SUM(monto), 0) FROM pagos WHERE fabrica_id = $1 AND estado = 'aprobado'),
			(SELECT COUNT(*) FROM productos WHERE fabrica_id = $1 AND estado = 'active'),
			(SELECT COUNT(*) FROM proveedores WHERE fabrica_id = $1 AND estado = 'active')`
	err := r.pool.QueryRow(context.Background(), query, fabricaID).Scan(
		&resumen.ComprasPendientes,
		&resumen.ComprasAprobadas,
		&resumen.TotalComprado,
		&resumen.FacturasEmitidas,
		&resumen.TotalFacturado,
		&resumen.SaldoPorCobrar,
		&resumen.PagosPendientes,
		&resumen.TotalPagado,
		&resumen.ProductosActivos,
		&resumen.ProveedoresActivos,
	)
	if err != nil {
		return nil, fmt.Errorf("resumen fabrica: %w", err)
	}
	return resumen, nil
}
