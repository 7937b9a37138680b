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

var _ repository.CompraRepository = (*CompraRepo)(nil)

// CompraRepo implementación del puerto CompraRepository sobre PostgreSQL.
type CompraRepo struct {
	pool *pgxpool.Pool
}

// NewCompraRepository construye el adaptador de persistencia para compras.
func NewCompraRepository(pool *pgxpool.Pool) *CompraRepo {
	return &CompraRepo{pool: pool}
}

const compraColumns = `id, fabrica_id, proveedor_id, numero, fecha, subtotal, iva, total, estado, aprobada_por, notas, created_at, updated_at`

// CreateConDetalles persiste cabecera y líneas en una sola transacción.
func (r *CompraRepo) CreateConDetalles(c *entity.Compra, detalles []*entity.CompraDetalle) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx compra: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO compras (` + compraColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = tx.Exec(ctx, query,
		c.ID, c.FabricaID, c.ProveedorID, c.Numero, c.Fecha, c.Subtotal, c.IVA, c.Total, c.Estado,
		c.AprobadaPor, c.Notas, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert compra: %w", err)
	}
	for _, d := range detalles {
		_, err = tx.Exec(ctx, `
			INSERT INTO compra_detalles (id, compra_id, producto_id, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.CompraID, d.ProductoID, d.Cantidad, d.PrecioUnitario, d.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert compra detalle: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// GetByID obtiene una compra por ID. Devuelve (nil, nil) si no existe.
func (r *CompraRepo) GetByID(id string) (*entity.Compra, error) {
	var c entity.Compra
	err := r.pool.QueryRow(context.Background(),
		`SELECT `+compraColumns+` FROM compras WHERE id = $1`, id).Scan(
		&c.ID, &c.FabricaID, &c.ProveedorID, &c.Numero, &c.Fecha, &c.Subtotal, &c.IVA, &c.Total, &c.Estado,
		&c.AprobadaPor, &c.Notas, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	return &c, nil
}

// GetDetalles obtiene las líneas de una compra.
func (r *CompraRepo) GetDetalles(compraID string) ([]*entity.CompraDetalle, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, compra_id, producto_id, cantidad, precio_unitario, subtotal
		FROM compra_detalles WHERE compra_id = $1`, compraID)
	if err != nil {
		return nil, fmt.Errorf("list compra detalles: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompraDetalle
	for rows.Next() {
		var d entity.CompraDetalle
		if err := rows.Scan(&d.ID, &d.CompraID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan compra detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una compra (estado y aprobación incluidos).
func (r *CompraRepo) Update(c *entity.Compra) error {
	query := `
		UPDATE compras
		SET estado = $2, aprobada_por = $3, notas = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.Estado, c.AprobadaPor, c.Notas, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update compra: %w", err)
	}
	return nil
}

// ListByFabrica lista las compras de una fábrica con paginación.
func (r *CompraRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Compra, error) {
	query := `SELECT ` + compraColumns + ` FROM compras WHERE fabrica_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	return r.list(query, fabricaID, limit, offset)
}

// ListByEstado lista las compras de una fábrica filtradas por estado.
func (r *CompraRepo) ListByEstado(fabricaID, estado string, limit, offset int) ([]*entity.Compra, error) {
	query := `SELECT ` + compraColumns + ` FROM compras WHERE fabrica_id = $1 AND estado = $2 ORDER BY fecha DESC LIMIT $3 OFFSET $4`
	return r.list(query, fabricaID, estado, limit, offset)
}

func (r *CompraRepo) list(query string, args ...any) ([]*entity.Compra, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()
	var list []*entity.Compra
	for rows.Next() {
		var c entity.Compra
		if err := rows.Scan(&c.ID, &c.FabricaID, &c.ProveedorID, &c.Numero, &c.Fecha, &c.Subtotal, &c.IVA, &c.Total, &c.Estado, &c.AprobadaPor, &c.Notas, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
