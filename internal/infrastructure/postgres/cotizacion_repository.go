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

var _ repository.CotizacionRepository = (*CotizacionRepo)(nil)

// CotizacionRepo implementación del puerto CotizacionRepository sobre PostgreSQL.
type CotizacionRepo struct {
	pool *pgxpool.Pool
}

// NewCotizacionRepository construye el adaptador de persistencia para cotizaciones.
func NewCotizacionRepository(pool *pgxpool.Pool) *CotizacionRepo {
	return &CotizacionRepo{pool: pool}
}

const cotizacionColumns = `id, fabrica_id, cliente_id, numero, fecha, valida_hasta, descuento_pct, subtotal, descuento, iva, total, estado, factura_id, notas, created_at, updated_at`

// CreateConLineas persiste cabecera y líneas en una sola transacción.
func (r *CotizacionRepo) CreateConLineas(c *entity.Cotizacion, lineas []*entity.CotizacionLinea) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx cotizacion: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO cotizaciones (` + cotizacionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = tx.Exec(ctx, query,
		c.ID, c.FabricaID, c.ClienteID, c.Numero, c.Fecha, c.ValidaHasta, c.DescuentoPct,
		c.Subtotal, c.Descuento, c.IVA, c.Total, c.Estado, c.FacturaID, c.Notas, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cotizacion: %w", err)
	}
	for _, l := range lineas {
		_, err = tx.Exec(ctx, `
			INSERT INTO cotizacion_lineas (id, cotizacion_id, producto_id, cantidad, precio_unitario, descuento_pct, iva, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, l.CotizacionID, l.ProductoID, l.Cantidad, l.PrecioUnitario, l.DescuentoPct, l.IVA, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert cotizacion linea: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// GetByID obtiene una cotización por ID. Devuelve (nil, nil) si no existe.
func (r *CotizacionRepo) GetByID(id string) (*entity.Cotizacion, error) {
	var c entity.Cotizacion
	err := r.pool.QueryRow(context.Background(),
		`SELECT `+cotizacionColumns+` FROM cotizaciones WHERE id = $1`, id).Scan(
		&c.ID, &c.FabricaID, &c.ClienteID, &c.Numero, &c.Fecha, &c.ValidaHasta, &c.DescuentoPct,
		&c.Subtotal, &c.Descuento, &c.IVA, &c.Total, &c.Estado, &c.FacturaID, &c.Notas, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cotizacion: %w", err)
	}
	return &c, nil
}

// GetLineas obtiene las líneas de una cotización.
func (r *CotizacionRepo) GetLineas(cotizacionID string) ([]*entity.CotizacionLinea, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, cotizacion_id, producto_id, cantidad, precio_unitario, descuento_pct, iva, subtotal
		FROM cotizacion_lineas WHERE cotizacion_id = $1`, cotizacionID)
	if err != nil {
		return nil, fmt.Errorf("list cotizacion lineas: %w", err)
	}
	defer rows.Close()
	var list []*entity.CotizacionLinea
	for rows.Next() {
		var l entity.CotizacionLinea
		if err := rows.Scan(&l.ID, &l.CotizacionID, &l.ProductoID, &l.Cantidad, &l.PrecioUnitario, &l.DescuentoPct, &l.IVA, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan cotizacion linea: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una cotización.
func (r *CotizacionRepo) Update(c *entity.Cotizacion) error {
	query := `
		UPDATE cotizaciones
		SET valida_hasta = $2, estado = $3, factura_id = $4, notas = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.ValidaHasta, c.Estado, c.FacturaID, c.Notas, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cotizacion: %w", err)
	}
	return nil
}

// ListByFabrica lista las cotizaciones de una fábrica con paginación.
func (r *CotizacionRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Cotizacion, error) {
	query := `SELECT ` + cotizacionColumns + ` FROM cotizaciones WHERE fabrica_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, fabricaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cotizaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cotizacion
	for rows.Next() {
		var c entity.Cotizacion
		if err := rows.Scan(&c.ID, &c.FabricaID, &c.ClienteID, &c.Numero, &c.Fecha, &c.ValidaHasta, &c.DescuentoPct, &c.Subtotal, &c.Descuento, &c.IVA, &c.Total, &c.Estado, &c.FacturaID, &c.Notas, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cotizacion: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
