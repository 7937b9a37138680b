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

var _ repository.FacturaRepository = (*FacturaRepo)(nil)

// FacturaRepo implementación del puerto FacturaRepository sobre PostgreSQL.
type FacturaRepo struct {
	pool *pgxpool.Pool
}

// NewFacturaRepository construye el adaptador de persistencia para facturas.
func NewFacturaRepository(pool *pgxpool.Pool) *FacturaRepo {
	return &FacturaRepo{pool: pool}
}

const facturaColumns = `id, fabrica_id, cliente_id, prefijo, numero, fecha, subtotal, iva, total, saldo, estado, notas, created_at, updated_at`

// CreateConDetalles persiste cabecera y líneas en una sola transacción.
func (r *FacturaRepo) CreateConDetalles(f *entity.Factura, detalles []*entity.FacturaDetalle) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx factura: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO facturas (` + facturaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = tx.Exec(ctx, query,
		f.ID, f.FabricaID, f.ClienteID, f.Prefijo, f.Numero, f.Fecha,
		f.Subtotal, f.IVA, f.Total, f.Saldo, f.Estado, f.Notas, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	for _, d := range detalles {
		_, err = tx.Exec(ctx, `
			INSERT INTO factura_detalles (id, factura_id, producto_id, cantidad, precio_unitario, iva, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, d.FacturaID, d.ProductoID, d.Cantidad, d.PrecioUnitario, d.IVA, d.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert factura detalle: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// GetByID obtiene una factura por ID. Devuelve (nil, nil) si no existe.
func (r *FacturaRepo) GetByID(id string) (*entity.Factura, error) {
	var f entity.Factura
	err := r.pool.QueryRow(context.Background(),
		`SELECT `+facturaColumns+` FROM facturas WHERE id = $1`, id).Scan(
		&f.ID, &f.FabricaID, &f.ClienteID, &f.Prefijo, &f.Numero, &f.Fecha,
		&f.Subtotal, &f.IVA, &f.Total, &f.Saldo, &f.Estado, &f.Notas, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return &f, nil
}

// GetDetalles obtiene las líneas de una factura.
func (r *FacturaRepo) GetDetalles(facturaID string) ([]*entity.FacturaDetalle, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, factura_id, producto_id, cantidad, precio_unitario, iva, subtotal
		FROM factura_detalles WHERE factura_id = $1`, facturaID)
	if err != nil {
		return nil, fmt.Errorf("list factura detalles: %w", err)
	}
	defer rows.Close()
	var list []*entity.FacturaDetalle
	for rows.Next() {
		var d entity.FacturaDetalle
		if err := rows.Scan(&d.ID, &d.FacturaID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &d.IVA, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan factura detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una factura (saldo y estado incluidos).
func (r *FacturaRepo) Update(f *entity.Factura) error {
	query := `
		UPDATE facturas
		SET saldo = $2, estado = $3, notas = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		f.ID, f.Saldo, f.Estado, f.Notas, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update factura: %w", err)
	}
	return nil
}

// ListByFabrica lista las facturas de una fábrica con paginación.
func (r *FacturaRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Factura, error) {
	query := `SELECT ` + facturaColumns + ` FROM facturas WHERE fabrica_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, fabricaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Factura
	for rows.Next() {
		var f entity.Factura
		if err := rows.Scan(&f.ID, &f.FabricaID, &f.ClienteID, &f.Prefijo, &f.Numero, &f.Fecha, &f.Subtotal, &f.IVA, &f.Total, &f.Saldo, &f.Estado, &f.Notas, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// SiguienteNumero devuelve el siguiente consecutivo de la fábrica. Usa una
// secuencia por fila en la tabla de consecutivos con upsert atómico.
func (r *FacturaRepo) SiguienteNumero(fabricaID string) (int, error) {
	var n int
	err := r.pool.QueryRow(context.Background(), `
		INSERT INTO factura_consecutivos (fabrica_id, ultimo)
		VALUES ($1, 1)
		ON CONFLICT (fabrica_id) DO UPDATE SET ultimo = factura_consecutivos.ultimo + 1
		RETURNING ultimo`, fabricaID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("siguiente numero factura: %w", err)
	}
	return n, nil
}
