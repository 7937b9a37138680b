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

var _ repository.FabricaRepository = (*FabricaRepo)(nil)

// FabricaRepo implementación del puerto FabricaRepository sobre PostgreSQL.
type FabricaRepo struct {
	pool *pgxpool.Pool
}

// NewFabricaRepository construye el adaptador de persistencia para fábricas.
func NewFabricaRepository(pool *pgxpool.Pool) *FabricaRepo {
	return &FabricaRepo{pool: pool}
}

const fabricaColumns = `id, numero, nombre, direccion, telefono, email, estado, created_at, updated_at`

// Create persiste una nueva fábrica.
func (r *FabricaRepo) Create(f *entity.Fabrica) error {
	query := `
		INSERT INTO fabricas (` + fabricaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		f.ID, f.Numero, f.Nombre, f.Direccion, f.Telefono, f.Email, f.Estado, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fabrica: %w", err)
	}
	return nil
}

// GetByID obtiene una fábrica por ID. Devuelve (nil, nil) si no existe.
func (r *FabricaRepo) GetByID(id string) (*entity.Fabrica, error) {
	return r.findOne(`SELECT `+fabricaColumns+` FROM fabricas WHERE id = $1`, id)
}

// GetByNumero obtiene una fábrica por su índice numérico.
func (r *FabricaRepo) GetByNumero(numero int) (*entity.Fabrica, error) {
	return r.findOne(`SELECT `+fabricaColumns+` FROM fabricas WHERE numero = $1`, numero)
}

func (r *FabricaRepo) findOne(query string, arg any) (*entity.Fabrica, error) {
	var f entity.Fabrica
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&f.ID, &f.Numero, &f.Nombre, &f.Direccion, &f.Telefono, &f.Email, &f.Estado, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fabrica: %w", err)
	}
	return &f, nil
}

// Exists verifica si la fábrica existe.
func (r *FabricaRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM fabricas WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists fabrica: %w", err)
	}
	return exists, nil
}

// Update actualiza una fábrica.
func (r *FabricaRepo) Update(f *entity.Fabrica) error {
	query := `
		UPDATE fabricas
		SET nombre = $2, direccion = $3, telefono = $4, email = $5, estado = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		f.ID, f.Nombre, f.Direccion, f.Telefono, f.Email, f.Estado, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fabrica: %w", err)
	}
	return nil
}

// List lista fábricas con paginación.
func (r *FabricaRepo) List(limit, offset int) ([]*entity.Fabrica, error) {
	query := `SELECT ` + fabricaColumns + ` FROM fabricas ORDER BY numero LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fabricas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Fabrica
	for rows.Next() {
		var f entity.Fabrica
		if err := rows.Scan(&f.ID, &f.Numero, &f.Nombre, &f.Direccion, &f.Telefono, &f.Email, &f.Estado, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fabrica: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Delete elimina una fábrica por ID.
func (r *FabricaRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM fabricas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fabrica: %w", err)
	}
	return nil
}
