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

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación del puerto PagoRepository sobre PostgreSQL.
type PagoRepo struct {
	pool *pgxpool.Pool
}

// NewPagoRepository construye el adaptador de persistencia para pagos.
func NewPagoRepository(pool *pgxpool.Pool) *PagoRepo {
	return &PagoRepo{pool: pool}
}

const pagoColumns = `id, fabrica_id, factura_id, monto, metodo, referencia, fecha, estado, aprobado_por, created_at, updated_at`

// Create persiste un nuevo pago.
func (r *PagoRepo) Create(p *entity.Pago) error {
	query := `
		INSERT INTO pagos (` + pagoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.FabricaID, p.FacturaID, p.Monto, p.Metodo, p.Referencia, p.Fecha, p.Estado,
		p.AprobadoPor, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID. Devuelve (nil, nil) si no existe.
func (r *PagoRepo) GetByID(id string) (*entity.Pago, error) {
	var p entity.Pago
	err := r.pool.QueryRow(context.Background(),
		`SELECT `+pagoColumns+` FROM pagos WHERE id = $1`, id).Scan(
		&p.ID, &p.FabricaID, &p.FacturaID, &p.Monto, &p.Metodo, &p.Referencia, &p.Fecha, &p.Estado,
		&p.AprobadoPor, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return &p, nil
}

// Update actualiza un pago (estado y aprobación incluidos).
func (r *PagoRepo) Update(p *entity.Pago) error {
	query := `
		UPDATE pagos
		SET estado = $2, aprobado_por = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Estado, p.AprobadoPor, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pago: %w", err)
	}
	return nil
}

// ListByFactura lista los pagos de una factura.
func (r *PagoRepo) ListByFactura(facturaID string) ([]*entity.Pago, error) {
	query := `SELECT ` + pagoColumns + ` FROM pagos WHERE factura_id = $1 ORDER BY fecha`
	return r.list(query, facturaID)
}

// ListByFabrica lista los pagos de una fábrica con paginación.
func (r *PagoRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Pago, error) {
	query := `SELECT ` + pagoColumns + ` FROM pagos WHERE fabrica_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	return r.list(query, fabricaID, limit, offset)
}

func (r *PagoRepo) list(query string, args ...any) ([]*entity.Pago, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(&p.ID, &p.FabricaID, &p.FacturaID, &p.Monto, &p.Metodo, &p.Referencia, &p.Fecha, &p.Estado, &p.AprobadoPor, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
