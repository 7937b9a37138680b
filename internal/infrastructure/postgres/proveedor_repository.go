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

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación del puerto ProveedorRepository sobre PostgreSQL.
type ProveedorRepo struct {
	pool *pgxpool.Pool
}

// NewProveedorRepository construye el adaptador de persistencia para proveedores.
func NewProveedorRepository(pool *pgxpool.Pool) *ProveedorRepo {
	return &ProveedorRepo{pool: pool}
}

const proveedorColumns = `id, fabrica_id, nombre, nit, contacto, direccion, telefono, email, estado, created_at, updated_at`

// Create persiste un nuevo proveedor.
func (r *ProveedorRepo) Create(p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (` + proveedorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.FabricaID, p.Nombre, p.NIT, p.Contacto, p.Direccion, p.Telefono, p.Email, p.Estado,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. Devuelve (nil, nil) si no existe.
func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	return r.findOne(`SELECT `+proveedorColumns+` FROM proveedores WHERE id = $1`, id)
}

// GetByFabricaYNIT obtiene un proveedor por NIT dentro de una fábrica.
func (r *ProveedorRepo) GetByFabricaYNIT(fabricaID, nit string) (*entity.Proveedor, error) {
	return r.findOne(`SELECT `+proveedorColumns+` FROM proveedores WHERE fabrica_id = $1 AND nit = $2`, fabricaID, nit)
}

func (r *ProveedorRepo) findOne(query string, args ...any) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.FabricaID, &p.Nombre, &p.NIT, &p.Contacto, &p.Direccion, &p.Telefono, &p.Email, &p.Estado,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

// Update actualiza un proveedor.
func (r *ProveedorRepo) Update(p *entity.Proveedor) error {
	query := `
		UPDATE proveedores
		SET nombre = $2, nit = $3, contacto = $4, direccion = $5, telefono = $6, email = $7, estado = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Nombre, p.NIT, p.Contacto, p.Direccion, p.Telefono, p.Email, p.Estado, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// ListByFabrica lista los proveedores de una fábrica con paginación.
func (r *ProveedorRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE fabrica_id = $1 ORDER BY nombre LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, fabricaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.FabricaID, &p.Nombre, &p.NIT, &p.Contacto, &p.Direccion, &p.Telefono, &p.Email, &p.Estado, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un proveedor por ID.
func (r *ProveedorRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM proveedores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	return nil
}
