package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

var _ repository.OrdenCompraRepository = (*OrdenCompraRepo)(nil)

// OrdenCompraRepo implementación del puerto OrdenCompraRepository sobre PostgreSQL.
type OrdenCompraRepo struct {
	pool *pgxpool.Pool
}

// NewOrdenCompraRepository construye el adaptador de persistencia para órdenes de compra.
func NewOrdenCompraRepository(pool *pgxpool.Pool) *OrdenCompraRepo {
	return &OrdenCompraRepo{pool: pool}
}

const ordenColumns = `id, fabrica_id, proveedor_id, numero, fecha, fecha_entrega, subtotal, iva, total, estado, aprobada_por, notas, created_at, updated_at`

// CreateConDetalles persiste cabecera y líneas en una sola transacción.
func (r *OrdenCompraRepo) CreateConDetalles(o *entity.OrdenCompra, detalles []*entity.OrdenCompraDetalle) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx orden: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO ordenes_compra (` + ordenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = tx.Exec(ctx, query,
		o.ID, o.FabricaID, o.ProveedorID, o.Numero, o.Fecha, o.FechaEntrega,
		o.Subtotal, o.IVA, o.Total, o.Estado, o.AprobadaPor, o.Notas, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	for _, d := range detalles {
		_, err = tx.Exec(ctx, `
			INSERT INTO orden_compra_detalles (id, orden_id, producto_id, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.OrdenID, d.ProductoID, d.Cantidad, d.PrecioUnitario, d.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert orden detalle: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// GetByID obtiene una orden por ID. Devuelve (nil, nil) si no existe.
func (r *OrdenCompraRepo) GetByID(id string) (*entity.OrdenCompra, error) {
	var o entity.OrdenCompra
	err := r.pool.QueryRow(context.Background(),
		`SELECT `+ordenColumns+` FROM ordenes_compra WHERE id = $1`, id).Scan(
		&o.ID, &o.FabricaID, &o.ProveedorID, &o.Numero, &o.Fecha, &o.FechaEntrega,
		&o.Subtotal, &o.IVA, &o.Total, &o.Estado, &o.AprobadaPor, &o.Notas, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	return &o, nil
}

// GetDetalles obtiene las líneas de una orden.
func (r *OrdenCompraRepo) GetDetalles(ordenID string) ([]*entity.OrdenCompraDetalle, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, orden_id, producto_id, cantidad, precio_unitario, subtotal
		FROM orden_compra_detalles WHERE orden_id = $1`, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list orden detalles: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrdenCompraDetalle
	for rows.Next() {
		var d entity.OrdenCompraDetalle
		if err := rows.Scan(&d.ID, &d.OrdenID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan orden detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una orden.
func (r *OrdenCompraRepo) Update(o *entity.OrdenCompra) error {
	query := `
		UPDATE ordenes_compra
		SET fecha_entrega = $2, estado = $3, aprobada_por = $4, notas = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		o.ID, o.FechaEntrega, o.Estado, o.AprobadaPor, o.Notas, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update orden: %w", err)
	}
	return nil
}

// ListByFabrica lista las órdenes de una fábrica con paginación.
func (r *OrdenCompraRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.OrdenCompra, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_compra WHERE fabrica_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, fabricaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrdenCompra
	for rows.Next() {
		var o entity.OrdenCompra
		if err := rows.Scan(&o.ID, &o.FabricaID, &o.ProveedorID, &o.Numero, &o.Fecha, &o.FechaEntrega, &o.Subtotal, &o.IVA, &o.Total, &o.Estado, &o.AprobadaPor, &o.Notas, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
