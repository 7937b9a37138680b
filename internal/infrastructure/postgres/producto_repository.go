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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL.
type ProductoRepo struct {
	pool *pgxpool.Pool
}

// NewProductoRepository construye el adaptador de persistencia para productos.
func NewProductoRepository(pool *pgxpool.Pool) *ProductoRepo {
	return &ProductoRepo{pool: pool}
}

const productoColumns = `id, fabrica_id, sku, nombre, descripcion, precio, costo, iva, unidad, estado, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.FabricaID, p.SKU, p.Nombre, p.Descripcion, p.Precio, p.Costo, p.IVA, p.Unidad, p.Estado,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	return r.findOne(`SELECT `+productoColumns+` FROM productos WHERE id = $1`, id)
}

// GetByFabricaYSKU obtiene un producto por SKU dentro de una fábrica.
func (r *ProductoRepo) GetByFabricaYSKU(fabricaID, sku string) (*entity.Producto, error) {
	return r.findOne(`SELECT `+productoColumns+` FROM productos WHERE fabrica_id = $1 AND sku = $2`, fabricaID, sku)
}

func (r *ProductoRepo) findOne(query string, args ...any) (*entity.Producto, error) {
	var p entity.Producto
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.FabricaID, &p.SKU, &p.Nombre, &p.Descripcion, &p.Precio, &p.Costo, &p.IVA, &p.Unidad, &p.Estado,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto.
func (r *ProductoRepo) Update(p *entity.Producto) error {
	query := `
		UPDATE productos
		SET sku = $2, nombre = $3, descripcion = $4, precio = $5, costo = $6, iva = $7, unidad = $8, estado = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.SKU, p.Nombre, p.Descripcion, p.Precio, p.Costo, p.IVA, p.Unidad, p.Estado, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// ListByFabrica lista los productos de una fábrica con paginación.
func (r *ProductoRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE fabrica_id = $1 ORDER BY nombre LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, fabricaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.FabricaID, &p.SKU, &p.Nombre, &p.Descripcion, &p.Precio, &p.Costo, &p.IVA, &p.Unidad, &p.Estado, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductoRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}
