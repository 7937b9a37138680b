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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación del puerto ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	pool *pgxpool.Pool
}

// NewClienteRepository construye el adaptador de persistencia para clientes.
func NewClienteRepository(pool *pgxpool.Pool) *ClienteRepo {
	return &ClienteRepo{pool: pool}
}

const clienteColumns = `id, fabrica_id, nombre, nit, direccion, telefono, email, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.FabricaID, c.Nombre, c.NIT, c.Direccion, c.Telefono, c.Email, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	return r.findOne(`SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id)
}

// GetByFabricaYNIT obtiene un cliente por NIT dentro de una fábrica.
func (r *ClienteRepo) GetByFabricaYNIT(fabricaID, nit string) (*entity.Cliente, error) {
	return r.findOne(`SELECT `+clienteColumns+` FROM clientes WHERE fabrica_id = $1 AND nit = $2`, fabricaID, nit)
}

func (r *ClienteRepo) findOne(query string, args ...any) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.FabricaID, &c.Nombre, &c.NIT, &c.Direccion, &c.Telefono, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Update actualiza un cliente.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	query := `
		UPDATE clientes
		SET nombre = $2, nit = $3, direccion = $4, telefono = $5, email = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.Nombre, c.NIT, c.Direccion, c.Telefono, c.Email, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// ListByFabrica lista los clientes de una fábrica con paginación.
func (r *ClienteRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE fabrica_id = $1 ORDER BY nombre LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, fabricaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.FabricaID, &c.Nombre, &c.NIT, &c.Direccion, &c.Telefono, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un cliente por ID.
func (r *ClienteRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}
